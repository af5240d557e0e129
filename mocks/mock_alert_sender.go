package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) EnviarAlertaFalha(ctx context.Context, referencia time.Time, mensagem string) error {
	args := m.Called(ctx, referencia, mensagem)
	return args.Error(0)
}

func (m *MockAlertSender) EnviarAlertaNaoVinculados(ctx context.Context, referencia time.Time, pagamentos []domain.PagamentoSefaz) error {
	args := m.Called(ctx, referencia, pagamentos)
	return args.Error(0)
}
