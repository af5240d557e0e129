package port

import (
	"context"
	"time"

	"ciptpag/internal/domain"
)

// AlertSender delivers operator alerts about reconciliation runs.
type AlertSender interface {
	EnviarAlertaFalha(ctx context.Context, referencia time.Time, mensagem string) error
	EnviarAlertaNaoVinculados(ctx context.Context, referencia time.Time, pagamentos []domain.PagamentoSefaz) error
}
