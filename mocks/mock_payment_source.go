package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockPaymentSource is a mock implementation of port.PaymentSource.
type MockPaymentSource struct {
	mock.Mock
}

func (m *MockPaymentSource) ListarPorDataArrecadacao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error) {
	args := m.Called(ctx, inicio, fim, receita)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PagamentoSefaz), args.Error(1)
}

func (m *MockPaymentSource) ListarPorDataInclusao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error) {
	args := m.Called(ctx, inicio, fim, receita)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PagamentoSefaz), args.Error(1)
}
