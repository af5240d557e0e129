package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

type pagadorRepo struct {
	db *sqlx.DB
}

// NewPagadorRepo creates a new PostgreSQL-backed PagadorRepository.
func NewPagadorRepo(db *sqlx.DB) port.PagadorRepository {
	return &pagadorRepo{db: db}
}

func (r *pagadorRepo) PermissionarioPorCNPJ(ctx context.Context, cnpjDigitos string) (*domain.Permissionario, error) {
	var p domain.Permissionario
	err := r.db.GetContext(ctx, &p,
		`SELECT id, nome_empresa, cnpj FROM permissionarios
		  WHERE `+normDoc("cnpj")+` = $1 AND $1 <> ''
		  LIMIT 1`, cnpjDigitos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pagadorRepo.PermissionarioPorCNPJ: %w", err)
	}
	return &p, nil
}

func (r *pagadorRepo) PermissionariosPorRaizCNPJ(ctx context.Context, raiz string) ([]domain.Permissionario, error) {
	var ps []domain.Permissionario
	err := r.db.SelectContext(ctx, &ps,
		`SELECT id, nome_empresa, cnpj FROM permissionarios
		  WHERE substr(`+normDoc("cnpj")+`, 1, 8) = $1 AND $1 <> ''`, raiz)
	if err != nil {
		return nil, fmt.Errorf("pagadorRepo.PermissionariosPorRaizCNPJ: %w", err)
	}
	return ps, nil
}

func (r *pagadorRepo) ContribuinteDoDar(ctx context.Context, darID int64) (*domain.Contribuinte, error) {
	var row struct {
		Nome      string `db:"nome"`
		Documento string `db:"documento"`
	}

	err := r.db.GetContext(ctx, &row,
		`SELECT p.nome_empresa AS nome, p.cnpj AS documento
		   FROM dars d
		   JOIN permissionarios p ON p.id = d.permissionario_id
		  WHERE d.id = $1`, darID)
	if err == nil {
		return &domain.Contribuinte{Origem: domain.OrigemPermissionario, Nome: row.Nome, Documento: row.Documento}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pagadorRepo.ContribuinteDoDar permissionario: %w", err)
	}

	err = r.db.GetContext(ctx, &row,
		`SELECT ce.nome AS nome, ce.documento AS documento
		   FROM dars_eventos de
		   JOIN eventos e ON e.id = de.id_evento
		   JOIN clientes_eventos ce ON ce.id = e.id_cliente
		  WHERE de.id_dar = $1
		  LIMIT 1`, darID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("pagadorRepo.ContribuinteDoDar evento: %w", err)
	}
	return &domain.Contribuinte{Origem: domain.OrigemEvento, Nome: row.Nome, Documento: row.Documento}, nil
}
