package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"ciptpag/internal/domain"
	"ciptpag/internal/service"
	"ciptpag/mocks"
)

type conciliacaoMocks struct {
	dars         *mocks.MockDarRepo
	pagadores    *mocks.MockPagadorRepo
	eventos      *mocks.MockEventoRepo
	conciliacoes *mocks.MockConciliacaoRepo
	fonte        *mocks.MockPaymentSource
	alertas      *mocks.MockAlertSender
}

func newConciliacaoService() (service.ConciliacaoService, *conciliacaoMocks) {
	m := &conciliacaoMocks{
		dars:         new(mocks.MockDarRepo),
		pagadores:    new(mocks.MockPagadorRepo),
		eventos:      new(mocks.MockEventoRepo),
		conciliacoes: new(mocks.MockConciliacaoRepo),
		fonte:        new(mocks.MockPaymentSource),
		alertas:      new(mocks.MockAlertSender),
	}
	svc := service.NewConciliacaoService(
		m.dars, m.pagadores, m.eventos, m.conciliacoes, m.fonte, m.alertas,
		service.ConciliacaoConfig{
			ToleranciaCentavos: 500,
			Receitas:           []int{20165},
		})
	return svc, m
}

var referencia = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func darAberta(id int64, valor float64) domain.Dar {
	return domain.Dar{
		ID:             id,
		Valor:          valor,
		DataVencimento: referencia.AddDate(0, 0, -5),
		Status:         "Pendente",
	}
}

// expectRunBase wires the expectations every successful run needs.
func expectRunBase(m *conciliacaoMocks) {
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)
	m.conciliacoes.On("Criar", mock.Anything, mock.Anything).Return(nil)
	m.eventos.On("MarcarEventosQuitados", mock.Anything, mock.Anything, mock.Anything).Return([]int64{}, nil)
}

func expectFonte(m *conciliacaoMocks, arrecadacao, inclusao []domain.PagamentoSefaz) {
	m.fonte.On("ListarPorDataArrecadacao", mock.Anything, mock.Anything, mock.Anything, 20165).Return(arrecadacao, nil)
	m.fonte.On("ListarPorDataInclusao", mock.Anything, mock.Anything, mock.Anything, 20165).Return(inclusao, nil)
}

func TestConciliarDia_SemPagamentos(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)
	expectFonte(m, nil, nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalPagamentos)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.conciliacoes.AssertCalled(t, "Criar", mock.Anything, mock.MatchedBy(func(c *domain.Conciliacao) bool {
		return c.Status == domain.ConciliacaoSucesso && c.TotalPagamentos == 0
	}))
	m.conciliacoes.AssertExpectations(t)
}

func TestConciliarDia_VinculaPorCodigoBarras(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{
		CodigoBarras:    "85800000001000",
		NumeroInscricao: "12345678000199",
		ValorPago:       10.00,
	}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	dar := darAberta(42, 10.00)
	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).Return([]domain.Dar{dar}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(42), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(42)).Return(&domain.Contribuinte{
		Origem:    domain.OrigemPermissionario,
		Nome:      "Empresa Teste LTDA",
		Documento: "12345678000199",
	}, nil)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 1, res.TotalAtualizados)
	assert.Len(t, res.Detalhes, 1)
	assert.Equal(t, int64(42), res.Detalhes[0].DarID)
	assert.Equal(t, "Pendente", res.Detalhes[0].StatusAnterior)
	assert.Equal(t, "Pago", res.Detalhes[0].StatusAtual)
	m.alertas.AssertNotCalled(t, "EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything)
	m.dars.AssertExpectations(t)
	m.conciliacoes.AssertExpectations(t)
}

func TestConciliarDia_JaPagoEhNoOp(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{CodigoBarras: "85800000001000", ValorPago: 10.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	dar := darAberta(42, 10.00)
	dar.Status = "Pago"
	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).Return([]domain.Dar{dar}, nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, mock.Anything, mock.Anything)
	m.conciliacoes.AssertNotCalled(t, "CriarDetalhe", mock.Anything, mock.Anything)
	m.alertas.AssertNotCalled(t, "EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything)
}

func TestConciliarDia_ChaveExataPrefereDarAberta(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{CodigoBarras: "85800000001000", ValorPago: 10.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	// the barcode matches a reissued pair: the paid row must not shadow the
	// open one
	paga := darAberta(1, 10.00)
	paga.Status = "Pago"
	aberta := darAberta(2, 10.00)
	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).
		Return([]domain.Dar{paga, aberta}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(2), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(2)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalAtualizados)
	m.dars.AssertCalled(t, "MarcarPago", mock.Anything, int64(2), mock.Anything)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, int64(1), mock.Anything)
}

func TestConciliarDia_ToleranciaBaseVinculaSemChaveExata(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	// keyless payment of 100.00 against a DAR of 103.00: outside the 2¢
	// level, inside the 500¢ base level
	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678000199", ValorPago: 100.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	quase := darAberta(5, 103.00)
	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(10000), mock.Anything).
		Return([]domain.Dar{quase}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(5), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(5)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalAtualizados)
	m.dars.AssertCalled(t, "MarcarPago", mock.Anything, int64(5), mock.Anything)
}

func TestConciliarDia_ToleranciaPercentualVinculaValorAlto(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	// keyless payment of 1000.00: 3% (3000¢) widens past the 500¢ base, so a
	// DAR off by 20.00 still matches
	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678000199", ValorPago: 1000.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	quase := darAberta(6, 1020.00)
	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(100000), mock.Anything).
		Return([]domain.Dar{quase}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(6), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(6)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalAtualizados)
	m.dars.AssertCalled(t, "MarcarPago", mock.Anything, int64(6), mock.Anything)
}

func TestConciliarDia_ChaveExataNaoAlargaTolerancia(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	// a payment carrying a guide number only gets the 2¢ level: a DAR off by
	// 3.00 must never fuzzy-match, in any strategy
	pag := domain.PagamentoSefaz{
		NumeroGuia:      "20260000123456",
		NumeroInscricao: "12345678000199",
		ValorPago:       100.00,
	}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	m.dars.On("ListarPorNumeroDocumento", mock.Anything, pag.NumeroGuia).Return([]domain.Dar{}, nil)
	m.dars.On("ListarPorGuiaNumerica", mock.Anything, pag.NumeroGuia).Return([]domain.Dar{}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	quase := darAberta(5, 103.00)
	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(10000), mock.Anything).
		Return([]domain.Dar{quase}, nil)
	m.dars.On("CandidatosPorClienteEvento", mock.Anything, "12345678000199", "12345678", int64(10000), mock.Anything).
		Return([]domain.Dar{}, nil)
	m.dars.On("CandidatosPorGuia", mock.Anything, pag.NumeroGuia, int64(10000), mock.Anything).
		Return([]domain.Dar{}, nil)
	m.dars.On("CandidatosPorSufixoGuia", mock.Anything, "123456", int64(10000), mock.Anything).
		Return([]domain.Dar{}, nil)
	m.dars.On("CandidatosPorJanelaVencimento", mock.Anything, int64(10000), int64(2), mock.Anything, mock.Anything).
		Return([]domain.Dar{}, nil)
	m.dars.On("ExisteGuia", mock.Anything, pag.NumeroGuia).Return(true, nil)
	m.alertas.On("EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, mock.Anything, mock.Anything)
	// the window query receives the 2¢ cap, proving the ladder never widened
	m.dars.AssertCalled(t, "CandidatosPorJanelaVencimento",
		mock.Anything, int64(10000), int64(2), mock.Anything, mock.Anything)
}

func TestConciliarDia_AmbiguidadeNivelApertadoNaoAlarga(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678000199", ValorPago: 100.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	// two indistinguishable exact-amount candidates plus a third that would
	// be unique at the base tolerance; the 2¢ ambiguity must abort rather
	// than widen to it
	c1 := darAberta(1, 100.00)
	c2 := darAberta(2, 100.00)
	quase := darAberta(3, 103.00)
	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(10000), mock.Anything).
		Return([]domain.Dar{c1, c2, quase}, nil)
	m.alertas.On("EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, mock.Anything, mock.Anything)
	m.dars.AssertNotCalled(t, "CandidatosPorClienteEvento",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConciliarDia_DeduplicaEntreFontes(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{NumeroGuia: "20260000123456", ValorPago: 10.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, []domain.PagamentoSefaz{pag})

	dar := darAberta(7, 10.00)
	num := "20260000123456"
	dar.NumeroDocumento = &num
	m.dars.On("ListarPorNumeroDocumento", mock.Anything, pag.NumeroGuia).Return([]domain.Dar{dar}, nil).Once()
	m.dars.On("MarcarPago", mock.Anything, int64(7), mock.Anything).Return(true, nil).Once()
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(7)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 1, res.TotalAtualizados)
	m.dars.AssertExpectations(t)
}

func TestConciliarDia_FonteFalhaParcial(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{CodigoBarras: "85800000001000", ValorPago: 10.00}
	m.fonte.On("ListarPorDataArrecadacao", mock.Anything, mock.Anything, mock.Anything, 20165).
		Return(nil, errors.New("timeout"))
	m.fonte.On("ListarPorDataInclusao", mock.Anything, mock.Anything, mock.Anything, 20165).
		Return([]domain.PagamentoSefaz{pag}, nil)

	dar := darAberta(42, 10.00)
	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).Return([]domain.Dar{dar}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(42), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 1, res.TotalAtualizados)
}

func TestConciliarDia_NaoVinculadoDisparaAlerta(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	// CPF payer with no matching DAR anywhere
	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678901", ValorPago: 250.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678901").Return(nil, domain.ErrNotFound)
	m.dars.On("CandidatosPorClienteEvento", mock.Anything, "12345678901", "", int64(25000), mock.Anything).
		Return([]domain.Dar{}, nil)
	m.dars.On("CandidatosPorJanelaVencimento", mock.Anything, int64(25000), mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Dar{}, nil)
	m.alertas.On("EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.alertas.AssertCalled(t, "EnviarAlertaNaoVinculados", mock.Anything, mock.Anything,
		mock.MatchedBy(func(pags []domain.PagamentoSefaz) bool { return len(pags) == 1 }))
}

func TestConciliarDia_AmbiguidadeNaoResolvidaAbortaPagamento(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678000199", ValorPago: 100.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	// two indistinguishable candidates: same amount, period and due date
	c1 := darAberta(1, 100.00)
	c2 := darAberta(2, 100.00)
	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(10000), mock.Anything).
		Return([]domain.Dar{c1, c2}, nil)
	m.alertas.On("EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, mock.Anything, mock.Anything)
	// ambiguity is terminal: later strategies must not run for this payment
	m.dars.AssertNotCalled(t, "CandidatosPorClienteEvento",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.dars.AssertNotCalled(t, "CandidatosPorJanelaVencimento",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConciliarDia_DesempateEscolheCompetenciaMaisAntiga(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{NumeroInscricao: "12345678000199", ValorPago: 100.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	perm := &domain.Permissionario{ID: 7, NomeEmpresa: "Empresa", CNPJ: "12345678000199"}
	m.pagadores.On("PermissionarioPorCNPJ", mock.Anything, "12345678000199").Return(perm, nil)

	mes1, ano1 := 3, 2026
	mes2, ano2 := 7, 2026
	antiga := darAberta(1, 100.00)
	antiga.MesReferencia, antiga.AnoReferencia = &mes1, &ano1
	recente := darAberta(2, 100.00)
	recente.MesReferencia, recente.AnoReferencia = &mes2, &ano2

	m.dars.On("CandidatosPorPermissionarios", mock.Anything, []int64{7}, int64(10000), mock.Anything).
		Return([]domain.Dar{recente, antiga}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(1), mock.Anything).Return(true, nil)
	m.pagadores.On("ContribuinteDoDar", mock.Anything, int64(1)).Return(nil, domain.ErrNotFound)
	m.conciliacoes.On("CriarDetalhe", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalAtualizados)
	m.dars.AssertCalled(t, "MarcarPago", mock.Anything, int64(1), mock.Anything)
	m.dars.AssertNotCalled(t, "MarcarPago", mock.Anything, int64(2), mock.Anything)
}

func TestConciliarDia_ConcorrenteVenceCorrida(t *testing.T) {
	svc, m := newConciliacaoService()
	expectRunBase(m)

	pag := domain.PagamentoSefaz{CodigoBarras: "85800000001000", ValorPago: 10.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	dar := darAberta(42, 10.00)
	pago := dar
	pago.Status = "Pago"
	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).Return([]domain.Dar{dar}, nil)
	m.dars.On("MarcarPago", mock.Anything, int64(42), mock.Anything).Return(false, nil)
	m.dars.On("BuscarPorID", mock.Anything, int64(42)).Return(&pago, nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalPagamentos)
	assert.Equal(t, 0, res.TotalAtualizados)
	m.conciliacoes.AssertNotCalled(t, "CriarDetalhe", mock.Anything, mock.Anything)
	m.alertas.AssertNotCalled(t, "EnviarAlertaNaoVinculados", mock.Anything, mock.Anything, mock.Anything)
}

func TestConciliarDia_ErroDeVinculacaoRegistraFalha(t *testing.T) {
	svc, m := newConciliacaoService()
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)
	m.conciliacoes.On("Criar", mock.Anything, mock.Anything).Return(nil)

	pag := domain.PagamentoSefaz{CodigoBarras: "85800000001000", ValorPago: 10.00}
	expectFonte(m, []domain.PagamentoSefaz{pag}, nil)

	m.dars.On("ListarPorCodigoBarras", mock.Anything, pag.CodigoBarras).
		Return(nil, errors.New("connection reset"))
	m.alertas.On("EnviarAlertaFalha", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.Error(t, err)
	assert.Nil(t, res)
	m.conciliacoes.AssertCalled(t, "Criar", mock.Anything, mock.MatchedBy(func(c *domain.Conciliacao) bool {
		return c.Status == domain.ConciliacaoFalha && c.Mensagem != nil
	}))
	m.alertas.AssertCalled(t, "EnviarAlertaFalha", mock.Anything, mock.Anything, mock.Anything)
	m.eventos.AssertNotCalled(t, "MarcarEventosQuitados", mock.Anything, mock.Anything, mock.Anything)
}

func TestConciliarDia_FalhaDeAuditoriaPropagada(t *testing.T) {
	svc, m := newConciliacaoService()
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)
	m.conciliacoes.On("Criar", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	m.eventos.On("MarcarEventosQuitados", mock.Anything, mock.Anything, mock.Anything).Return([]int64{}, nil)
	expectFonte(m, nil, nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestConciliarDia_EventosQuitadosNaoFatais(t *testing.T) {
	svc, m := newConciliacaoService()
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)
	m.conciliacoes.On("Criar", mock.Anything, mock.Anything).Return(nil)
	m.eventos.On("MarcarEventosQuitados", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("deadlock"))
	expectFonte(m, nil, nil)

	res, err := svc.ConciliarDia(context.Background(), referencia)
	assert.NoError(t, err)
	assert.Equal(t, 0, res.EventosQuitados)
}

func TestListarRuns_Passthrough(t *testing.T) {
	svc, m := newConciliacaoService()
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)

	runs := []domain.Conciliacao{{ID: 1}, {ID: 2}}
	m.conciliacoes.On("Listar", mock.Anything, 0, 20).Return(runs, 2, nil)

	got, total, err := svc.ListarRuns(context.Background(), 0, 20)
	assert.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, runs, got)
}

func TestBuscarRun_NaoEncontrado(t *testing.T) {
	svc, m := newConciliacaoService()
	m.conciliacoes.On("EnsureSchema", mock.Anything).Return(nil)
	m.conciliacoes.On("BuscarPorID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	run, detalhes, err := svc.BuscarRun(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, run)
	assert.Nil(t, detalhes)
}
