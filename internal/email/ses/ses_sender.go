package ses

import (
	"context"
	"fmt"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESSender creates a new SES-backed AlertSender.
func NewSESSender(region, fromAddress, fromName, toAddress string) (port.AlertSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (s *sesSender) EnviarAlertaFalha(ctx context.Context, referencia time.Time, mensagem string) error {
	dia := referencia.Format("02/01/2006")
	subject := fmt.Sprintf("[CIPT] Conciliação de %s FALHOU", dia)
	textBody := fmt.Sprintf(
		"A conciliação de pagamentos de %s terminou com erro:\n\n%s\n\nVerifique os registros em dar_conciliacoes antes de reexecutar.\n\nCIPT Pagamentos",
		dia, mensagem)
	htmlBody := buildFalhaHTML(dia, mensagem)
	return s.enviar(ctx, subject, htmlBody, textBody)
}

func (s *sesSender) EnviarAlertaNaoVinculados(ctx context.Context, referencia time.Time, pagamentos []domain.PagamentoSefaz) error {
	dia := referencia.Format("02/01/2006")
	subject := fmt.Sprintf("[CIPT] Conciliação de %s: %d pagamento(s) sem DAR", dia, len(pagamentos))

	var text strings.Builder
	fmt.Fprintf(&text, "A conciliação de %s não conseguiu vincular %d pagamento(s) da SEFAZ:\n\n", dia, len(pagamentos))
	for i := range pagamentos {
		p := &pagamentos[i]
		fmt.Fprintf(&text, "  guia=%s inscrição=%s valor=R$ %.2f\n",
			valueOr(p.NumeroGuia), valueOr(p.NumeroInscricao), p.ValorPago)
	}
	text.WriteString("\nVincule-os manualmente pelo painel administrativo.\n\nCIPT Pagamentos")

	return s.enviar(ctx, subject, buildNaoVinculadosHTML(dia, pagamentos), text.String())
}

func (s *sesSender) enviar(ctx context.Context, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{s.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildFalhaHTML(dia, mensagem string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #B91C1C;">Conciliação de %s falhou</h2>
  <p>A execução terminou com o seguinte erro:</p>
  <pre style="background: #FEF2F2; padding: 12px; border-radius: 6px; white-space: pre-wrap;">%s</pre>
  <p>Verifique os registros em <code>dar_conciliacoes</code> antes de reexecutar.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">CIPT Pagamentos - Conciliação SEFAZ</p>
</body>
</html>`, dia, mensagem)
}

func buildNaoVinculadosHTML(dia string, pagamentos []domain.PagamentoSefaz) string {
	var rows strings.Builder
	for i := range pagamentos {
		p := &pagamentos[i]
		fmt.Fprintf(&rows,
			`<tr><td style="padding:4px 8px;">%s</td><td style="padding:4px 8px;">%s</td><td style="padding:4px 8px;text-align:right;">R$ %.2f</td></tr>`,
			valueOr(p.NumeroGuia), valueOr(p.NumeroInscricao), p.ValorPago)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Pagamentos sem DAR em %s</h2>
  <p>Os pagamentos abaixo foram informados pela SEFAZ mas nenhuma DAR pôde ser vinculada:</p>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr style="background: #F3F4F6;"><th style="padding:4px 8px;text-align:left;">Guia</th><th style="padding:4px 8px;text-align:left;">Inscrição</th><th style="padding:4px 8px;text-align:right;">Valor</th></tr>
    %s
  </table>
  <p>Vincule-os manualmente pelo painel administrativo.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">CIPT Pagamentos - Conciliação SEFAZ</p>
</body>
</html>`, dia, rows.String())
}

func valueOr(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
