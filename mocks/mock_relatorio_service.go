package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRelatorioService is a mock implementation of service.RelatorioService.
type MockRelatorioService struct {
	mock.Mock
}

func (m *MockRelatorioService) ExportarRun(ctx context.Context, conciliacaoID int64) ([]byte, string, error) {
	args := m.Called(ctx, conciliacaoID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
