package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
)

// MockDarRepo is a mock implementation of port.DarRepository.
type MockDarRepo struct {
	mock.Mock
}

func (m *MockDarRepo) BuscarPorID(ctx context.Context, id int64) (*domain.Dar, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorCodigoBarras(ctx context.Context, codigo string) ([]domain.Dar, error) {
	args := m.Called(ctx, codigo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorLinhaDigitavel(ctx context.Context, linha string) ([]domain.Dar, error) {
	args := m.Called(ctx, linha)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorNumeroDocumento(ctx context.Context, numero string) ([]domain.Dar, error) {
	args := m.Called(ctx, numero)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorCodigoBarrasNormalizado(ctx context.Context, digitos string) ([]domain.Dar, error) {
	args := m.Called(ctx, digitos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorLinhaDigitavelNormalizada(ctx context.Context, digitos string) ([]domain.Dar, error) {
	args := m.Called(ctx, digitos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) ListarPorGuiaNumerica(ctx context.Context, guia string) ([]domain.Dar, error) {
	args := m.Called(ctx, guia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) CandidatosPorPermissionarios(ctx context.Context, ids []int64, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	args := m.Called(ctx, ids, pagoCentavos, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) CandidatosPorClienteEvento(ctx context.Context, documento, raizCNPJ string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	args := m.Called(ctx, documento, raizCNPJ, pagoCentavos, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) CandidatosPorGuia(ctx context.Context, guia string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	args := m.Called(ctx, guia, pagoCentavos, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) CandidatosPorSufixoGuia(ctx context.Context, sufixo string, pagoCentavos int64, referencia time.Time) ([]domain.Dar, error) {
	args := m.Called(ctx, sufixo, pagoCentavos, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) CandidatosPorJanelaVencimento(ctx context.Context, pagoCentavos, toleranciaCentavos int64, base, referencia time.Time) ([]domain.Dar, error) {
	args := m.Called(ctx, pagoCentavos, toleranciaCentavos, base, referencia)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dar), args.Error(1)
}

func (m *MockDarRepo) MarcarPago(ctx context.Context, id int64, dataPagamento *time.Time) (bool, error) {
	args := m.Called(ctx, id, dataPagamento)
	return args.Bool(0), args.Error(1)
}

func (m *MockDarRepo) ExisteGuia(ctx context.Context, guia string) (bool, error) {
	args := m.Called(ctx, guia)
	return args.Bool(0), args.Error(1)
}
