package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockConciliacaoRepo is a mock implementation of port.ConciliacaoRepository.
type MockConciliacaoRepo struct {
	mock.Mock
}

func (m *MockConciliacaoRepo) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockConciliacaoRepo) Criar(ctx context.Context, c *domain.Conciliacao) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockConciliacaoRepo) CriarDetalhe(ctx context.Context, d *domain.ConciliacaoPagamento) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockConciliacaoRepo) Listar(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Conciliacao), args.Int(1), args.Error(2)
}

func (m *MockConciliacaoRepo) BuscarPorID(ctx context.Context, id int64) (*domain.Conciliacao, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conciliacao), args.Error(1)
}

func (m *MockConciliacaoRepo) DetalhesPorConciliacao(ctx context.Context, conciliacaoID int64) ([]domain.ConciliacaoPagamento, error) {
	args := m.Called(ctx, conciliacaoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConciliacaoPagamento), args.Error(1)
}
