package sefaz_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ciptpag/internal/config"
	"ciptpag/internal/sefaz"
)

func newTestClient(handler http.HandlerFunc) (*sefaz.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cfg := &config.SefazConfig{AppToken: "token-teste", Timeout: 5 * time.Second}
	return sefaz.NewClientWithEndpoint(cfg, srv.URL), srv
}

func TestListarPorDataArrecadacao(t *testing.T) {
	var gotPath, gotToken string
	var gotQuery map[string][]string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("appToken")
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"numeroGuia":"20260000123456","numeroInscricao":"12345678000199","valorPago":150.5,"dataPagamento":"2026-08-30"},
			{"codigoBarras":"858000000015","valorPago":10,"dataPagamento":"2026-08-30 14:22:10"}
		]`))
	})
	defer srv.Close()

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	pags, err := client.ListarPorDataArrecadacao(context.Background(), dia, dia, 20165)
	require.NoError(t, err)

	assert.Equal(t, "/api/public/pagamento/listarPorDataArrecadacao", gotPath)
	assert.Equal(t, "token-teste", gotToken)
	assert.Equal(t, []string{"2026-08-30"}, gotQuery["dataInicio"])
	assert.Equal(t, []string{"2026-08-30"}, gotQuery["dataFim"])
	assert.Equal(t, []string{"20165"}, gotQuery["codigoReceita"])

	require.Len(t, pags, 2)
	assert.Equal(t, "20260000123456", pags[0].NumeroGuia)
	assert.Equal(t, 150.5, pags[0].ValorPago)
	require.NotNil(t, pags[0].DataPagamento)
	assert.Equal(t, "2026-08-30", pags[0].DataPagamento.Format(time.DateOnly))
	require.NotNil(t, pags[1].DataPagamento)
	assert.Equal(t, "2026-08-30", pags[1].DataPagamento.Format(time.DateOnly))
}

func TestListarPorDataInclusao_JanelaComHorario(t *testing.T) {
	var gotQuery map[string][]string

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	defer srv.Close()

	inicio := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	fim := time.Date(2026, 8, 30, 23, 59, 59, 0, time.UTC)
	pags, err := client.ListarPorDataInclusao(context.Background(), inicio, fim, 20166)
	require.NoError(t, err)
	assert.Empty(t, pags)
	assert.Equal(t, []string{"2026-08-30 00:00:00"}, gotQuery["dataHoraInicio"])
	assert.Equal(t, []string{"2026-08-30 23:59:59"}, gotQuery["dataHoraFim"])
	assert.Equal(t, []string{"20166"}, gotQuery["codigoReceita"])
}

func TestListar_SemConteudo(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	pags, err := client.ListarPorDataArrecadacao(context.Background(), dia, dia, 20165)
	require.NoError(t, err)
	assert.Nil(t, pags)
}

func TestListar_ErroHTTP(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream indisponível"))
	})
	defer srv.Close()

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	_, err := client.ListarPorDataArrecadacao(context.Background(), dia, dia, 20165)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestListar_DataInvalidaViraNil(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"numeroGuia":"1","valorPago":5,"dataPagamento":"30-08-26??"}]`))
	})
	defer srv.Close()

	dia := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	pags, err := client.ListarPorDataArrecadacao(context.Background(), dia, dia, 20165)
	require.NoError(t, err)
	require.Len(t, pags, 1)
	assert.Nil(t, pags[0].DataPagamento)
}
