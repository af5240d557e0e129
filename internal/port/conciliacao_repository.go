package port

import (
	"context"

	"ciptpag/internal/domain"
)

// ConciliacaoRepository persists reconciliation-run audit rows. The audit
// tables are created lazily on first use rather than migrated, matching how
// the legacy system provisioned them.
type ConciliacaoRepository interface {
	EnsureSchema(ctx context.Context) error
	Criar(ctx context.Context, c *domain.Conciliacao) error
	CriarDetalhe(ctx context.Context, d *domain.ConciliacaoPagamento) error
	Listar(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error)
	BuscarPorID(ctx context.Context, id int64) (*domain.Conciliacao, error)
	DetalhesPorConciliacao(ctx context.Context, conciliacaoID int64) ([]domain.ConciliacaoPagamento, error)
}
