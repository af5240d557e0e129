package port

import (
	"context"
	"time"

	"ciptpag/internal/domain"
)

// DarRepository defines the invoice-store queries used by the reconciliation
// engine. Lookup methods for exact and normalized keys return rows of any
// status so the caller can distinguish "already paid" from "no match";
// Candidatos* methods return only unpaid DARs with data_vencimento on or
// before the reference date, ordered by (amount distance, data_vencimento)
// ascending and capped at 50 rows.
type DarRepository interface {
	BuscarPorID(ctx context.Context, id int64) (*domain.Dar, error)

	// Exact-key lookups (strategy 1).
	ListarPorCodigoBarras(ctx context.Context, codigo string) ([]domain.Dar, error)
	ListarPorLinhaDigitavel(ctx context.Context, linha string) ([]domain.Dar, error)
	ListarPorNumeroDocumento(ctx context.Context, numero string) ([]domain.Dar, error)

	// Normalized-equivalence lookups (strategy 2). digitos carries only
	// the digits of the key being matched.
	ListarPorCodigoBarrasNormalizado(ctx context.Context, digitos string) ([]domain.Dar, error)
	ListarPorLinhaDigitavelNormalizada(ctx context.Context, digitos string) ([]domain.Dar, error)
	ListarPorGuiaNumerica(ctx context.Context, guia string) ([]domain.Dar, error)

	// Tolerance-filtered candidate queries (strategies 3-6).
	CandidatosPorPermissionarios(ctx context.Context, ids []int64, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error)
	CandidatosPorClienteEvento(ctx context.Context, documento, raizCNPJ string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error)
	CandidatosPorGuia(ctx context.Context, guia string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error)
	CandidatosPorSufixoGuia(ctx context.Context, sufixo string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error)
	CandidatosPorJanelaVencimento(ctx context.Context, pagoCentavos, toleranciaCentavos int64, base, referencia time.Time) ([]domain.Dar, error)

	// MarcarPago performs the guarded transition to Pago. It returns true
	// only when a row actually changed; a zero-row update means the DAR
	// was concurrently paid or does not exist, and the caller must re-read.
	MarcarPago(ctx context.Context, id int64, dataPagamento *time.Time) (bool, error)

	// ExisteGuia reports whether any DAR carries the given guide number,
	// used for the operator-facing "DAR inexistente" diagnostic.
	ExisteGuia(ctx context.Context, guia string) (bool, error)
}
