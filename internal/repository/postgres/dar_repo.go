package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

// darColumns enumerates the dars columns scanned into domain.Dar.
const darColumns = `d.id, d.permissionario_id, d.mes_referencia, d.ano_referencia,
	d.valor, d.data_vencimento, d.data_pagamento, d.status,
	d.numero_documento, d.codigo_barras, d.linha_digitavel, d.data_emissao`

// normDoc strips every non-digit from a column, mirroring how guide numbers,
// barcodes and digit lines are compared across systems that disagree on
// punctuation.
func normDoc(col string) string {
	return `regexp_replace(COALESCE(` + col + `, ''), '\D', '', 'g')`
}

// naoPago filters rows not yet paid. Legacy rows carry status variants such
// as "Pago (manual)", so the prefix is matched instead of strict equality.
func naoPago(col string) string {
	return `lower(` + col + `) NOT LIKE 'pago%'`
}

// ordemCandidatos ranks candidate rows before the LIMIT truncates them:
// oldest billing period first (rows without one last), then smallest amount
// delta, then earliest due date. pago is the placeholder of the paid amount
// in cents.
func ordemCandidatos(pago string) string {
	return ` ORDER BY COALESCE(d.ano_referencia, 9999)*100 + COALESCE(d.mes_referencia, 99) ASC,
	        ABS(ROUND(d.valor*100) - ` + pago + `) ASC, d.data_vencimento ASC
	 LIMIT 50`
}

type darRepo struct {
	db *sqlx.DB
}

// NewDarRepo creates a new PostgreSQL-backed DarRepository.
func NewDarRepo(db *sqlx.DB) port.DarRepository {
	return &darRepo{db: db}
}

func (r *darRepo) BuscarPorID(ctx context.Context, id int64) (*domain.Dar, error) {
	var dar domain.Dar
	err := r.db.GetContext(ctx, &dar,
		`SELECT `+darColumns+` FROM dars d WHERE d.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("darRepo.BuscarPorID: %w", err)
	}
	return &dar, nil
}

func (r *darRepo) ListarPorCodigoBarras(ctx context.Context, codigo string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorCodigoBarras",
		`SELECT `+darColumns+` FROM dars d WHERE d.codigo_barras = $1`, codigo)
}

func (r *darRepo) ListarPorLinhaDigitavel(ctx context.Context, linha string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorLinhaDigitavel",
		`SELECT `+darColumns+` FROM dars d WHERE d.linha_digitavel = $1`, linha)
}

func (r *darRepo) ListarPorNumeroDocumento(ctx context.Context, numero string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorNumeroDocumento",
		`SELECT `+darColumns+` FROM dars d WHERE d.numero_documento = $1`, numero)
}

func (r *darRepo) ListarPorCodigoBarrasNormalizado(ctx context.Context, digitos string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorCodigoBarrasNormalizado",
		`SELECT `+darColumns+` FROM dars d WHERE `+normDoc("d.codigo_barras")+` = $1 AND $1 <> ''`, digitos)
}

func (r *darRepo) ListarPorLinhaDigitavelNormalizada(ctx context.Context, digitos string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorLinhaDigitavelNormalizada",
		`SELECT `+darColumns+` FROM dars d WHERE `+normDoc("d.linha_digitavel")+` = $1 AND $1 <> ''`, digitos)
}

// ListarPorGuiaNumerica compares guide numbers as numbers, tolerating leading
// zeroes and formatting differences on either side.
func (r *darRepo) ListarPorGuiaNumerica(ctx context.Context, guia string) ([]domain.Dar, error) {
	return r.listar(ctx, "ListarPorGuiaNumerica",
		`SELECT `+darColumns+` FROM dars d
		 WHERE NULLIF(`+normDoc("d.numero_documento")+`, '')::numeric =
		       NULLIF(`+normDoc("$1")+`, '')::numeric`, guia)
}

func (r *darRepo) CandidatosPorPermissionarios(ctx context.Context, ids []int64, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`SELECT `+darColumns+` FROM dars d
		 WHERE d.permissionario_id IN (?)
		   AND `+naoPago("d.status")+`
		   AND d.data_vencimento <= ?`+ordemCandidatos("?"),
		ids, referencia, pagoCentavos)
	if err != nil {
		return nil, fmt.Errorf("darRepo.CandidatosPorPermissionarios: %w", err)
	}
	query = r.db.Rebind(query)
	var dars []domain.Dar
	if err := r.db.SelectContext(ctx, &dars, query, args...); err != nil {
		return nil, fmt.Errorf("darRepo.CandidatosPorPermissionarios: %w", err)
	}
	return dars, nil
}

func (r *darRepo) CandidatosPorClienteEvento(ctx context.Context, documento, raizCNPJ string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	return r.listar(ctx, "CandidatosPorClienteEvento",
		`SELECT `+darColumns+` FROM dars d
		 JOIN dars_eventos de ON de.id_dar = d.id
		 JOIN eventos e ON e.id = de.id_evento
		 JOIN clientes_eventos ce ON ce.id = e.id_cliente
		 WHERE (
		         `+normDoc("ce.documento")+` = $1
		      OR ($2 <> ''
		          AND length(`+normDoc("ce.documento")+`) = 14
		          AND substr(`+normDoc("ce.documento")+`, 1, 8) = $2)
		 )
		   AND `+naoPago("d.status")+`
		   AND d.data_vencimento <= $4`+ordemCandidatos("$3"),
		documento, raizCNPJ, pagoCentavos, referencia)
}

func (r *darRepo) CandidatosPorGuia(ctx context.Context, guia string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	return r.listar(ctx, "CandidatosPorGuia",
		`SELECT `+darColumns+` FROM dars d
		 WHERE NULLIF(`+normDoc("d.numero_documento")+`, '')::numeric =
		       NULLIF(`+normDoc("$1")+`, '')::numeric
		   AND `+naoPago("d.status")+`
		   AND d.data_vencimento <= $3`+ordemCandidatos("$2"),
		guia, pagoCentavos, referencia)
}

func (r *darRepo) CandidatosPorSufixoGuia(ctx context.Context, sufixo string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	return r.listar(ctx, "CandidatosPorSufixoGuia",
		`SELECT `+darColumns+` FROM dars d
		 WHERE `+normDoc("d.numero_documento")+` LIKE '%' || $1
		   AND $1 <> ''
		   AND `+naoPago("d.status")+`
		   AND d.data_vencimento <= $3`+ordemCandidatos("$2"),
		sufixo, pagoCentavos, referencia)
}

func (r *darRepo) CandidatosPorJanelaVencimento(ctx context.Context, pagoCentavos, toleranciaCentavos int64, base, referencia time.Time) ([]domain.Dar, error) {
	return r.listar(ctx, "CandidatosPorJanelaVencimento",
		`SELECT `+darColumns+` FROM dars d
		 WHERE `+naoPago("d.status")+`
		   AND ABS(ROUND(d.valor*100) - $1) <= $2
		   AND d.data_vencimento BETWEEN ($3::date - 60) AND ($3::date + 60)
		   AND d.data_vencimento <= $4`+ordemCandidatos("$1"),
		pagoCentavos, toleranciaCentavos, base, referencia)
}

func (r *darRepo) MarcarPago(ctx context.Context, id int64, dataPagamento *time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE dars
		    SET status = 'Pago',
		        data_pagamento = COALESCE($1, data_pagamento)
		  WHERE id = $2 AND `+naoPago("status"),
		dataPagamento, id)
	if err != nil {
		return false, fmt.Errorf("darRepo.MarcarPago: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("darRepo.MarcarPago rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *darRepo) ExisteGuia(ctx context.Context, guia string) (bool, error) {
	var existe bool
	err := r.db.GetContext(ctx, &existe,
		`SELECT EXISTS (
		   SELECT 1 FROM dars d
		    WHERE NULLIF(`+normDoc("d.numero_documento")+`, '')::numeric =
		          NULLIF(`+normDoc("$1")+`, '')::numeric
		 )`, guia)
	if err != nil {
		return false, fmt.Errorf("darRepo.ExisteGuia: %w", err)
	}
	return existe, nil
}

func (r *darRepo) listar(ctx context.Context, op, query string, args ...interface{}) ([]domain.Dar, error) {
	var dars []domain.Dar
	if err := r.db.SelectContext(ctx, &dars, query, args...); err != nil {
		return nil, fmt.Errorf("darRepo.%s: %w", op, err)
	}
	return dars, nil
}
