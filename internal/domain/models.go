package domain

import (
	"fmt"
	"time"
)

// Dar is a fee document (Documento de Arrecadação) issued to a payer.
// Exactly one of PermissionarioID or an eventos linkage (via dars_eventos)
// identifies the payer context.
type Dar struct {
	ID               int64      `db:"id" json:"id"`
	PermissionarioID *int64     `db:"permissionario_id" json:"permissionario_id,omitempty"`
	MesReferencia    *int       `db:"mes_referencia" json:"mes_referencia,omitempty"`
	AnoReferencia    *int       `db:"ano_referencia" json:"ano_referencia,omitempty"`
	Valor            float64    `db:"valor" json:"valor"`
	DataVencimento   time.Time  `db:"data_vencimento" json:"data_vencimento"`
	DataPagamento    *time.Time `db:"data_pagamento" json:"data_pagamento,omitempty"`
	Status           string     `db:"status" json:"status"`
	NumeroDocumento  *string    `db:"numero_documento" json:"numero_documento,omitempty"`
	CodigoBarras     *string    `db:"codigo_barras" json:"codigo_barras,omitempty"`
	LinhaDigitavel   *string    `db:"linha_digitavel" json:"linha_digitavel,omitempty"`
	DataEmissao      *time.Time `db:"data_emissao" json:"data_emissao,omitempty"`
}

// ValorCentavos returns the DAR amount in cents, rounded half away from zero.
func (d *Dar) ValorCentavos() int64 {
	return Centavos(d.Valor)
}

// Centavos converts a currency amount to integer cents.
func Centavos(valor float64) int64 {
	if valor >= 0 {
		return int64(valor*100 + 0.5)
	}
	return int64(valor*100 - 0.5)
}

// Permissionario is a tenant with a recurring monthly fee obligation.
type Permissionario struct {
	ID          int64  `db:"id" json:"id"`
	NomeEmpresa string `db:"nome_empresa" json:"nome_empresa"`
	CNPJ        string `db:"cnpj" json:"cnpj"`
}

// ClienteEvento is an event client billed through eventos/dars_eventos.
type ClienteEvento struct {
	ID        int64  `db:"id" json:"id"`
	Nome      string `db:"nome" json:"nome"`
	Documento string `db:"documento" json:"documento"`
}

// Evento is a booked event whose fee may be split into DAR installments.
type Evento struct {
	ID         int64   `db:"id" json:"id"`
	IDCliente  int64   `db:"id_cliente" json:"id_cliente"`
	NomeEvento string  `db:"nome_evento" json:"nome_evento"`
	ValorFinal float64 `db:"valor_final" json:"valor_final"`
	Status     string  `db:"status" json:"status"`
}

// PagamentoSefaz is one settlement reported by the tax authority. It is the
// ephemeral input driving matching and is never persisted as its own entity.
type PagamentoSefaz struct {
	NumeroDocOrigem string     `json:"numeroDocOrigem,omitempty"`
	NumeroGuia      string     `json:"numeroGuia,omitempty"`
	CodigoBarras    string     `json:"codigoBarras,omitempty"`
	LinhaDigitavel  string     `json:"linhaDigitavel,omitempty"`
	NumeroInscricao string     `json:"numeroInscricao,omitempty"`
	ValorPago       float64    `json:"valorPago"`
	DataPagamento   *time.Time `json:"dataPagamento,omitempty"`
	Origem          string     `json:"origem,omitempty"`
}

// ValorCentavos returns the paid amount in cents.
func (p *PagamentoSefaz) ValorCentavos() int64 {
	return Centavos(p.ValorPago)
}

// TemChaveExata reports whether the payment carries any exact matching key.
func (p *PagamentoSefaz) TemChaveExata() bool {
	return p.NumeroGuia != "" || p.CodigoBarras != "" || p.LinhaDigitavel != ""
}

// ChaveDeduplicacao builds the composite key used to merge the two source
// listings: guide number, else barcode, else digit line, else a synthetic
// taxid-amount-date key.
func (p *PagamentoSefaz) ChaveDeduplicacao() string {
	switch {
	case p.NumeroGuia != "":
		return p.NumeroGuia
	case p.CodigoBarras != "":
		return p.CodigoBarras
	case p.LinhaDigitavel != "":
		return p.LinhaDigitavel
	}
	data := ""
	if p.DataPagamento != nil {
		data = p.DataPagamento.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s-%.2f-%s", p.NumeroInscricao, p.ValorPago, data)
}

// Conciliacao is the audit record of one reconciliation run for one
// reference date.
type Conciliacao struct {
	ID               int64             `db:"id" json:"id"`
	DataExecucao     time.Time         `db:"data_execucao" json:"data_execucao"`
	DataReferencia   time.Time         `db:"data_referencia" json:"data_referencia"`
	IniciouEm        time.Time         `db:"iniciou_em" json:"iniciou_em"`
	FinalizouEm      time.Time         `db:"finalizou_em" json:"finalizou_em"`
	DuracaoMS        int64             `db:"duracao_ms" json:"duracao_ms"`
	TotalPagamentos  int               `db:"total_pagamentos" json:"total_pagamentos"`
	TotalAtualizados int               `db:"total_atualizados" json:"total_atualizados"`
	Status           ConciliacaoStatus `db:"status" json:"status"`
	Mensagem         *string           `db:"mensagem" json:"mensagem,omitempty"`
}

// ConciliacaoPagamento is the per-DAR detail of a status transition recorded
// during a run. No-op matches against already-paid DARs do not produce one.
type ConciliacaoPagamento struct {
	ID                    int64      `db:"id" json:"id"`
	ConciliacaoID         int64      `db:"conciliacao_id" json:"conciliacao_id"`
	DarID                 int64      `db:"dar_id" json:"dar_id"`
	StatusAnterior        string     `db:"status_anterior" json:"status_anterior"`
	StatusAtual           string     `db:"status_atual" json:"status_atual"`
	NumeroDocumento       *string    `db:"numero_documento" json:"numero_documento,omitempty"`
	Valor                 float64    `db:"valor" json:"valor"`
	DataVencimento        *time.Time `db:"data_vencimento" json:"data_vencimento,omitempty"`
	DataPagamento         *time.Time `db:"data_pagamento" json:"data_pagamento,omitempty"`
	Origem                string     `db:"origem" json:"origem"`
	Contribuinte          string     `db:"contribuinte" json:"contribuinte"`
	DocumentoContribuinte string     `db:"documento_contribuinte" json:"documento_contribuinte"`
	PagamentoGuia         string     `db:"pagamento_guia" json:"pagamento_guia"`
	PagamentoDocumento    string     `db:"pagamento_documento" json:"pagamento_documento"`
	PagamentoValor        float64    `db:"pagamento_valor" json:"pagamento_valor"`
	PagamentoData         *time.Time `db:"pagamento_data" json:"pagamento_data,omitempty"`
	CriadoEm              time.Time  `db:"criado_em" json:"criado_em"`
}

// Contribuinte is the resolved payer context of a DAR, used for audit rows.
type Contribuinte struct {
	Origem    OrigemPagador `json:"origem"`
	Nome      string        `json:"nome"`
	Documento string        `json:"documento"`
}

// ResultadoConciliacao summarizes one orchestrator invocation.
type ResultadoConciliacao struct {
	DataReferencia   time.Time              `json:"data_referencia"`
	TotalPagamentos  int                    `json:"total_pagamentos"`
	TotalAtualizados int                    `json:"total_atualizados"`
	EventosQuitados  int                    `json:"eventos_quitados"`
	Detalhes         []ConciliacaoPagamento `json:"detalhes"`
}
