package port

import (
	"context"
	"time"

	"ciptpag/internal/domain"
)

// PagadorRepository resolves payer identities. Read-only from the
// reconciliation engine's perspective.
type PagadorRepository interface {
	// PermissionarioPorCNPJ matches the full normalized document.
	PermissionarioPorCNPJ(ctx context.Context, cnpjDigitos string) (*domain.Permissionario, error)
	// PermissionariosPorRaizCNPJ matches the 8-digit CNPJ root; an
	// ambiguous root yields every matching tenant.
	PermissionariosPorRaizCNPJ(ctx context.Context, raiz string) ([]domain.Permissionario, error)
	// ContribuinteDoDar resolves the payer context of a DAR (direct
	// permissionário reference or evento linkage) for audit rows.
	ContribuinteDoDar(ctx context.Context, darID int64) (*domain.Contribuinte, error)
}

// EventoRepository updates evento rollup state derived from DAR payments.
type EventoRepository interface {
	// MarcarEventosQuitados marks eventos whose installments are all paid
	// and whose last payment date falls inside [inicio, fim] as Pago,
	// returning the affected evento ids.
	MarcarEventosQuitados(ctx context.Context, inicio, fim time.Time) ([]int64, error)
}
