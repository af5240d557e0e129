package domain

import "strings"

// DarStatus represents the lifecycle state of a DAR.
type DarStatus string

const (
	DarStatusPendente   DarStatus = "Pendente"
	DarStatusPago       DarStatus = "Pago"
	DarStatusVencido    DarStatus = "Vencido"
	DarStatusEmitido    DarStatus = "Emitido"
	DarStatusReemitido  DarStatus = "Reemitido"
)

// EstaPago reports whether a status string counts as paid. Legacy rows carry
// variants such as "Pago (manual)", so only the prefix is checked.
func EstaPago(status string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(status)), "pago")
}

// ConciliacaoStatus is the outcome recorded for a reconciliation run.
type ConciliacaoStatus string

const (
	ConciliacaoSucesso ConciliacaoStatus = "sucesso"
	ConciliacaoFalha   ConciliacaoStatus = "falha"
)

// OrigemPagador identifies which entity a DAR bills.
type OrigemPagador string

const (
	OrigemPermissionario OrigemPagador = "permissionario"
	OrigemEvento         OrigemPagador = "evento"
)

// UserRole defines the roles accepted on the admin API.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperador UserRole = "operador"
)
