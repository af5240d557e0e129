package xlsxexport

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"ciptpag/internal/domain"
)

const (
	sheetResumo   = "Resumo"
	sheetDetalhes = "Detalhes"
)

// detalheColunas defines the header row of the Detalhes sheet (14 columns).
var detalheColunas = []interface{}{
	"DAR",
	"Status Anterior",
	"Status Atual",
	"Número do Documento",
	"Valor (R$)",
	"Vencimento",
	"Data de Pagamento",
	"Origem",
	"Contribuinte",
	"Documento do Contribuinte",
	"Guia SEFAZ",
	"Documento do Pagador",
	"Valor Pago (R$)",
	"Data do Pagamento SEFAZ",
}

// Escrever renders one reconciliation run as an XLSX workbook with a summary
// sheet and one detail row per DAR transition.
func Escrever(w io.Writer, run *domain.Conciliacao, detalhes []domain.ConciliacaoPagamento) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetResumo)
	if err := escreverResumo(f, run, len(detalhes)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetDetalhes); err != nil {
		return fmt.Errorf("creating detail sheet: %w", err)
	}
	if err := escreverDetalhes(f, detalhes); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func escreverResumo(f *excelize.File, run *domain.Conciliacao, detalhes int) error {
	mensagem := ""
	if run.Mensagem != nil {
		mensagem = *run.Mensagem
	}
	linhas := [][]interface{}{
		{"Execução", run.ID},
		{"Data de referência", run.DataReferencia.Format("02/01/2006")},
		{"Executada em", run.DataExecucao.Format("02/01/2006 15:04:05")},
		{"Duração (ms)", run.DuracaoMS},
		{"Status", string(run.Status)},
		{"Mensagem", mensagem},
		{"Pagamentos SEFAZ", run.TotalPagamentos},
		{"DARs atualizadas", run.TotalAtualizados},
		{"Detalhes registrados", detalhes},
	}
	for i, linha := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("summary cell: %w", err)
		}
		if err := f.SetSheetRow(sheetResumo, cell, &linha); err != nil {
			return fmt.Errorf("summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func escreverDetalhes(f *excelize.File, detalhes []domain.ConciliacaoPagamento) error {
	if err := f.SetSheetRow(sheetDetalhes, "A1", &detalheColunas); err != nil {
		return fmt.Errorf("detail header: %w", err)
	}
	for i := range detalhes {
		row := detalheParaLinha(&detalhes[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("detail cell: %w", err)
		}
		if err := f.SetSheetRow(sheetDetalhes, cell, &row); err != nil {
			return fmt.Errorf("detail row %d: %w", i+2, err)
		}
	}
	return nil
}

func detalheParaLinha(d *domain.ConciliacaoPagamento) []interface{} {
	return []interface{}{
		d.DarID,
		d.StatusAnterior,
		d.StatusAtual,
		deref(d.NumeroDocumento),
		d.Valor,
		formatarData(d.DataVencimento),
		formatarData(d.DataPagamento),
		d.Origem,
		d.Contribuinte,
		d.DocumentoContribuinte,
		d.PagamentoGuia,
		d.PagamentoDocumento,
		d.PagamentoValor,
		formatarData(d.PagamentoData),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatarData(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// naoAlfanumerico matches characters that are not alphanumeric, hyphen, or underscore.
var naoAlfanumerico = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiSublinhado matches consecutive underscores.
var multiSublinhado = regexp.MustCompile(`_{2,}`)

// SanitizarNome cleans an arbitrary label for use in filenames and
// Content-Disposition headers.
func SanitizarNome(nome string) string {
	s := naoAlfanumerico.ReplaceAllString(nome, "_")
	s = multiSublinhado.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// NomeArquivo returns the workbook filename for one run:
// conciliacao_{YYYY-MM-DD}_{runID}.xlsx.
func NomeArquivo(run *domain.Conciliacao) string {
	return fmt.Sprintf("conciliacao_%s_%d.xlsx",
		run.DataReferencia.Format("2006-01-02"), run.ID)
}
