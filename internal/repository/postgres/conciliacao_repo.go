package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

// The audit tables are provisioned lazily on first use instead of through
// db/migrations, preserving the legacy behavior of the reconciliation cron.
const schemaConciliacoes = `
CREATE TABLE IF NOT EXISTS dar_conciliacoes (
	id BIGSERIAL PRIMARY KEY,
	data_execucao TIMESTAMPTZ NOT NULL,
	data_referencia DATE NOT NULL,
	iniciou_em TIMESTAMPTZ,
	finalizou_em TIMESTAMPTZ,
	duracao_ms BIGINT,
	total_pagamentos INTEGER DEFAULT 0,
	total_atualizados INTEGER DEFAULT 0,
	status TEXT NOT NULL DEFAULT 'sucesso' CHECK (status IN ('sucesso','falha')),
	mensagem TEXT
);
CREATE INDEX IF NOT EXISTS idx_dar_conciliacoes_data_ref ON dar_conciliacoes (data_referencia);
CREATE INDEX IF NOT EXISTS idx_dar_conciliacoes_execucao ON dar_conciliacoes (data_execucao DESC);

CREATE TABLE IF NOT EXISTS dar_conciliacoes_pagamentos (
	id BIGSERIAL PRIMARY KEY,
	conciliacao_id BIGINT NOT NULL REFERENCES dar_conciliacoes(id) ON DELETE CASCADE,
	dar_id BIGINT,
	status_anterior TEXT,
	status_atual TEXT,
	numero_documento TEXT,
	valor DOUBLE PRECISION,
	data_vencimento DATE,
	data_pagamento DATE,
	origem TEXT,
	contribuinte TEXT,
	documento_contribuinte TEXT,
	pagamento_guia TEXT,
	pagamento_documento TEXT,
	pagamento_valor DOUBLE PRECISION,
	pagamento_data DATE,
	criado_em TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_dar_conc_pag_conciliacao ON dar_conciliacoes_pagamentos (conciliacao_id);
CREATE INDEX IF NOT EXISTS idx_dar_conc_pag_dar ON dar_conciliacoes_pagamentos (dar_id);
`

type conciliacaoRepo struct {
	db *sqlx.DB

	schemaOnce sync.Once
	schemaErr  error
}

// NewConciliacaoRepo creates a new PostgreSQL-backed ConciliacaoRepository.
func NewConciliacaoRepo(db *sqlx.DB) port.ConciliacaoRepository {
	return &conciliacaoRepo{db: db}
}

func (r *conciliacaoRepo) EnsureSchema(ctx context.Context) error {
	r.schemaOnce.Do(func() {
		if _, err := r.db.ExecContext(ctx, schemaConciliacoes); err != nil {
			r.schemaErr = fmt.Errorf("conciliacaoRepo.EnsureSchema: %w", err)
		}
	})
	return r.schemaErr
}

func (r *conciliacaoRepo) Criar(ctx context.Context, c *domain.Conciliacao) error {
	err := r.db.GetContext(ctx, &c.ID,
		`INSERT INTO dar_conciliacoes
		   (data_execucao, data_referencia, iniciou_em, finalizou_em, duracao_ms,
		    total_pagamentos, total_atualizados, status, mensagem)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		c.DataExecucao, c.DataReferencia, c.IniciouEm, c.FinalizouEm, c.DuracaoMS,
		c.TotalPagamentos, c.TotalAtualizados, c.Status, c.Mensagem)
	if err != nil {
		return fmt.Errorf("conciliacaoRepo.Criar: %w", err)
	}
	return nil
}

func (r *conciliacaoRepo) CriarDetalhe(ctx context.Context, d *domain.ConciliacaoPagamento) error {
	err := r.db.GetContext(ctx, &d.ID,
		`INSERT INTO dar_conciliacoes_pagamentos
		   (conciliacao_id, dar_id, status_anterior, status_atual, numero_documento,
		    valor, data_vencimento, data_pagamento, origem, contribuinte,
		    documento_contribuinte, pagamento_guia, pagamento_documento,
		    pagamento_valor, pagamento_data)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING id`,
		d.ConciliacaoID, d.DarID, d.StatusAnterior, d.StatusAtual, d.NumeroDocumento,
		d.Valor, d.DataVencimento, d.DataPagamento, d.Origem, d.Contribuinte,
		d.DocumentoContribuinte, d.PagamentoGuia, d.PagamentoDocumento,
		d.PagamentoValor, d.PagamentoData)
	if err != nil {
		return fmt.Errorf("conciliacaoRepo.CriarDetalhe: %w", err)
	}
	return nil
}

func (r *conciliacaoRepo) Listar(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM dar_conciliacoes`); err != nil {
		return nil, 0, fmt.Errorf("conciliacaoRepo.Listar count: %w", err)
	}

	var runs []domain.Conciliacao
	err := r.db.SelectContext(ctx, &runs,
		`SELECT * FROM dar_conciliacoes
		 ORDER BY data_execucao DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("conciliacaoRepo.Listar: %w", err)
	}
	return runs, total, nil
}

func (r *conciliacaoRepo) BuscarPorID(ctx context.Context, id int64) (*domain.Conciliacao, error) {
	var c domain.Conciliacao
	err := r.db.GetContext(ctx, &c,
		`SELECT * FROM dar_conciliacoes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("conciliacaoRepo.BuscarPorID: %w", err)
	}
	return &c, nil
}

func (r *conciliacaoRepo) DetalhesPorConciliacao(ctx context.Context, conciliacaoID int64) ([]domain.ConciliacaoPagamento, error) {
	var detalhes []domain.ConciliacaoPagamento
	err := r.db.SelectContext(ctx, &detalhes,
		`SELECT * FROM dar_conciliacoes_pagamentos
		 WHERE conciliacao_id = $1
		 ORDER BY id ASC`, conciliacaoID)
	if err != nil {
		return nil, fmt.Errorf("conciliacaoRepo.DetalhesPorConciliacao: %w", err)
	}
	return detalhes, nil
}
