package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockConciliacaoService is a mock implementation of service.ConciliacaoService.
type MockConciliacaoService struct {
	mock.Mock
}

func (m *MockConciliacaoService) ConciliarDia(ctx context.Context, referencia time.Time) (*domain.ResultadoConciliacao, error) {
	args := m.Called(ctx, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultadoConciliacao), args.Error(1)
}

func (m *MockConciliacaoService) ListarRuns(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Conciliacao), args.Int(1), args.Error(2)
}

func (m *MockConciliacaoService) BuscarRun(ctx context.Context, id int64) (*domain.Conciliacao, []domain.ConciliacaoPagamento, error) {
	args := m.Called(ctx, id)
	var run *domain.Conciliacao
	if args.Get(0) != nil {
		run = args.Get(0).(*domain.Conciliacao)
	}
	var detalhes []domain.ConciliacaoPagamento
	if args.Get(1) != nil {
		detalhes = args.Get(1).([]domain.ConciliacaoPagamento)
	}
	return run, detalhes, args.Error(2)
}
