package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockPagadorRepo is a mock implementation of port.PagadorRepository.
type MockPagadorRepo struct {
	mock.Mock
}

func (m *MockPagadorRepo) PermissionarioPorCNPJ(ctx context.Context, cnpjDigitos string) (*domain.Permissionario, error) {
	args := m.Called(ctx, cnpjDigitos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Permissionario), args.Error(1)
}

func (m *MockPagadorRepo) PermissionariosPorRaizCNPJ(ctx context.Context, raiz string) ([]domain.Permissionario, error) {
	args := m.Called(ctx, raiz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Permissionario), args.Error(1)
}

func (m *MockPagadorRepo) ContribuinteDoDar(ctx context.Context, darID int64) (*domain.Contribuinte, error) {
	args := m.Called(ctx, darID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribuinte), args.Error(1)
}
