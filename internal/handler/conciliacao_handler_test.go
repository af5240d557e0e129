package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ciptpag/internal/domain"
	"ciptpag/internal/handler"
	"ciptpag/internal/lock"
	"ciptpag/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newConciliacaoHandler(t *testing.T) (*handler.ConciliacaoHandler, *mocks.MockConciliacaoService, *mocks.MockRelatorioService, *lock.FileLock) {
	t.Helper()
	mockSvc := new(mocks.MockConciliacaoService)
	mockRel := new(mocks.MockRelatorioService)
	lck := lock.New(filepath.Join(t.TempDir(), "conciliacao.lock"))
	h := handler.NewConciliacaoHandler(mockSvc, mockRel, lck, time.UTC, "ontem")
	return h, mockSvc, mockRel, lck
}

func postJSON(h *handler.ConciliacaoHandler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/conciliacoes", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Executar(c)
	return w
}

func TestConciliacaoHandler_Executar_DataUnica(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	res := &domain.ResultadoConciliacao{DataReferencia: dia, TotalPagamentos: 2, TotalAtualizados: 1}
	mockSvc.On("ConciliarDia", mock.Anything, dia).Return(res, nil)

	w := postJSON(h, `{"data":"2026-08-30"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestConciliacaoHandler_Executar_Intervalo(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	d1 := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	mockSvc.On("ConciliarDia", mock.Anything, d1).Return(&domain.ResultadoConciliacao{DataReferencia: d1}, nil)
	mockSvc.On("ConciliarDia", mock.Anything, d2).Return(&domain.ResultadoConciliacao{DataReferencia: d2}, nil)

	w := postJSON(h, `{"inicio":"2026-08-29","fim":"2026-08-30"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertNumberOfCalls(t, "ConciliarDia", 2)
}

func TestConciliacaoHandler_Executar_DataInvalida(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	w := postJSON(h, `{"data":"30/08/2026"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ConciliarDia", mock.Anything, mock.Anything)
}

func TestConciliacaoHandler_Executar_IntervaloInvertido(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	w := postJSON(h, `{"inicio":"2026-08-30","fim":"2026-08-01"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "ConciliarDia", mock.Anything, mock.Anything)
}

func TestConciliacaoHandler_Executar_LockOcupado(t *testing.T) {
	h, mockSvc, _, lck := newConciliacaoHandler(t)

	require.NoError(t, lck.Acquire())
	defer lck.Release()

	w := postJSON(h, `{"data":"2026-08-30"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockSvc.AssertNotCalled(t, "ConciliarDia", mock.Anything, mock.Anything)
}

func TestConciliacaoHandler_Listar(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	runs := []domain.Conciliacao{{ID: 2}, {ID: 1}}
	mockSvc.On("ListarRuns", mock.Anything, 0, 20).Return(runs, 2, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conciliacoes", http.NoBody)
	h.Listar(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Total)
}

func TestConciliacaoHandler_BuscarPorID_NaoEncontrado(t *testing.T) {
	h, mockSvc, _, _ := newConciliacaoHandler(t)

	mockSvc.On("BuscarRun", mock.Anything, int64(99)).Return(nil, nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conciliacoes/99", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	h.BuscarPorID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConciliacaoHandler_Exportar(t *testing.T) {
	h, _, mockRel, _ := newConciliacaoHandler(t)

	mockRel.On("ExportarRun", mock.Anything, int64(12)).
		Return([]byte("planilha"), "conciliacao_2026-08-30_12.xlsx", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conciliacoes/12/export", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	h.Exportar(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "conciliacao_2026-08-30_12.xlsx")
	assert.Equal(t, "planilha", w.Body.String())
}

func TestConciliacaoHandler_Exportar_IDInvalido(t *testing.T) {
	h, _, mockRel, _ := newConciliacaoHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/conciliacoes/abc/export", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Exportar(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRel.AssertNotCalled(t, "ExportarRun", mock.Anything, mock.Anything)
}
