package port

import (
	"context"
	"time"

	"ciptpag/internal/domain"
)

// PaymentSource lists settled payments from the tax authority. Either call
// may fail independently; the orchestrator treats a failing source as an
// empty result and proceeds with the other one.
type PaymentSource interface {
	// ListarPorDataArrecadacao lists payments settled between the two
	// dates (inclusive) for one revenue code.
	ListarPorDataArrecadacao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error)
	// ListarPorDataInclusao lists payments recorded by the authority
	// inside the datetime window for one revenue code.
	ListarPorDataInclusao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error)
}
