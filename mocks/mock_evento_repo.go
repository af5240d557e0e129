package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockEventoRepo is a mock implementation of port.EventoRepository.
type MockEventoRepo struct {
	mock.Mock
}

func (m *MockEventoRepo) MarcarEventosQuitados(ctx context.Context, inicio, fim time.Time) ([]int64, error) {
	args := m.Called(ctx, inicio, fim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}
