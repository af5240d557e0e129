package sefaz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ciptpag/internal/config"
	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

const (
	pathPorDataArrecadacao = "/api/public/pagamento/listarPorDataArrecadacao"
	pathPorDataInclusao    = "/api/public/pagamento/listarPorDataInclusao"
)

// Client implements port.PaymentSource against the SEFAZ public API.
type Client struct {
	baseURL  string
	appToken string
	client   *http.Client
}

// NewClient creates a SEFAZ payment source from config.
func NewClient(cfg *config.SefazConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithEndpoint creates a client pointing at a custom base URL (for testing).
func NewClientWithEndpoint(cfg *config.SefazConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.SefazConfig, baseURL string) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		appToken: cfg.AppToken,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListarPorDataArrecadacao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error) {
	params := url.Values{}
	params.Set("dataInicio", inicio.Format(time.DateOnly))
	params.Set("dataFim", fim.Format(time.DateOnly))
	params.Set("codigoReceita", strconv.Itoa(receita))
	return c.listar(ctx, pathPorDataArrecadacao, params)
}

func (c *Client) ListarPorDataInclusao(ctx context.Context, inicio, fim time.Time, receita int) ([]domain.PagamentoSefaz, error) {
	params := url.Values{}
	params.Set("dataHoraInicio", inicio.Format(time.DateTime))
	params.Set("dataHoraFim", fim.Format(time.DateTime))
	params.Set("codigoReceita", strconv.Itoa(receita))
	return c.listar(ctx, pathPorDataInclusao, params)
}

func (c *Client) listar(ctx context.Context, path string, params url.Values) ([]domain.PagamentoSefaz, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("appToken", c.appToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling SEFAZ API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SEFAZ API error (status %d): %s", resp.StatusCode, truncate(string(respBody), 500))
	}

	var itens []pagamentoWire
	if err := json.Unmarshal(respBody, &itens); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	pagamentos := make([]domain.PagamentoSefaz, 0, len(itens))
	for i := range itens {
		pagamentos = append(pagamentos, itens[i].toDomain())
	}
	return pagamentos, nil
}

// pagamentoWire models one payment as SEFAZ reports it. Dates arrive as
// strings in more than one layout depending on the listing.
type pagamentoWire struct {
	NumeroDocOrigem string  `json:"numeroDocOrigem"`
	NumeroGuia      string  `json:"numeroGuia"`
	CodigoBarras    string  `json:"codigoBarras"`
	LinhaDigitavel  string  `json:"linhaDigitavel"`
	NumeroInscricao string  `json:"numeroInscricao"`
	ValorPago       float64 `json:"valorPago"`
	DataPagamento   string  `json:"dataPagamento"`
}

func (p *pagamentoWire) toDomain() domain.PagamentoSefaz {
	return domain.PagamentoSefaz{
		NumeroDocOrigem: p.NumeroDocOrigem,
		NumeroGuia:      p.NumeroGuia,
		CodigoBarras:    p.CodigoBarras,
		LinhaDigitavel:  p.LinhaDigitavel,
		NumeroInscricao: p.NumeroInscricao,
		ValorPago:       p.ValorPago,
		DataPagamento:   parseDataSefaz(p.DataPagamento),
	}
}

// parseDataSefaz accepts the date layouts observed across the two listings.
// An unparseable or empty date yields nil; matching then falls back to the
// reference date.
func parseDataSefaz(s string) *time.Time {
	if s == "" {
		return nil
	}
	layouts := []string{
		time.DateOnly,
		time.DateTime,
		"2006-01-02T15:04:05",
		time.RFC3339,
		"02/01/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ port.PaymentSource = (*Client)(nil)
