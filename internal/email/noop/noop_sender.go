package noop

import (
	"context"
	"log"
	"time"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op AlertSender that logs alerts to stdout.
func NewNoopSender() port.AlertSender {
	return &noopSender{}
}

func (s *noopSender) EnviarAlertaFalha(_ context.Context, referencia time.Time, mensagem string) error {
	log.Printf("[NOOP EMAIL] Conciliação de %s falhou: %s", referencia.Format("02/01/2006"), mensagem)
	return nil
}

func (s *noopSender) EnviarAlertaNaoVinculados(_ context.Context, referencia time.Time, pagamentos []domain.PagamentoSefaz) error {
	log.Printf("[NOOP EMAIL] Conciliação de %s: %d pagamento(s) sem DAR", referencia.Format("02/01/2006"), len(pagamentos))
	return nil
}
