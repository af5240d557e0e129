package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strconv"
	"time"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
)

// ConciliacaoConfig holds the matching engine settings.
type ConciliacaoConfig struct {
	// ToleranciaCentavos is the base tolerance of the ladder, in cents.
	ToleranciaCentavos int64
	// Debug enables per-candidate logging of every ladder step.
	Debug bool
	// Receitas lists the SEFAZ revenue codes fetched per run.
	Receitas []int
}

// ConciliacaoService reconciles SEFAZ payments against open DARs.
type ConciliacaoService interface {
	// ConciliarDia runs the full reconciliation for one reference date.
	// It always writes exactly one audit-run row, even when it returns an
	// error.
	ConciliarDia(ctx context.Context, referencia time.Time) (*domain.ResultadoConciliacao, error)
	// ListarRuns pages through past audit-run rows, newest first.
	ListarRuns(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error)
	// BuscarRun returns one audit-run row and its detail rows.
	BuscarRun(ctx context.Context, id int64) (*domain.Conciliacao, []domain.ConciliacaoPagamento, error)
}

type conciliacaoService struct {
	dars         port.DarRepository
	pagadores    port.PagadorRepository
	eventos      port.EventoRepository
	conciliacoes port.ConciliacaoRepository
	fonte        port.PaymentSource
	alertas      port.AlertSender
	cfg          ConciliacaoConfig
}

// NewConciliacaoService creates the reconciliation engine.
func NewConciliacaoService(
	dars port.DarRepository,
	pagadores port.PagadorRepository,
	eventos port.EventoRepository,
	conciliacoes port.ConciliacaoRepository,
	fonte port.PaymentSource,
	alertas port.AlertSender,
	cfg ConciliacaoConfig,
) ConciliacaoService {
	if cfg.ToleranciaCentavos <= 0 {
		cfg.ToleranciaCentavos = 500
	}
	return &conciliacaoService{
		dars:         dars,
		pagadores:    pagadores,
		eventos:      eventos,
		conciliacoes: conciliacoes,
		fonte:        fonte,
		alertas:      alertas,
		cfg:          cfg,
	}
}

func (s *conciliacaoService) dlog(format string, args ...interface{}) {
	if s.cfg.Debug {
		log.Printf("conciliacao: "+format, args...)
	}
}

func (s *conciliacaoService) ListarRuns(ctx context.Context, offset, limit int) ([]domain.Conciliacao, int, error) {
	if err := s.conciliacoes.EnsureSchema(ctx); err != nil {
		return nil, 0, err
	}
	return s.conciliacoes.Listar(ctx, offset, limit)
}

func (s *conciliacaoService) BuscarRun(ctx context.Context, id int64) (*domain.Conciliacao, []domain.ConciliacaoPagamento, error) {
	if err := s.conciliacoes.EnsureSchema(ctx); err != nil {
		return nil, nil, err
	}
	run, err := s.conciliacoes.BuscarPorID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	detalhes, err := s.conciliacoes.DetalhesPorConciliacao(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return run, detalhes, nil
}

// vinculo is the outcome of one bind attempt. vinculado means the payment
// found its DAR; atualizado means this run performed the status transition
// (false for already-paid no-ops).
type vinculo struct {
	vinculado      bool
	atualizado     bool
	dar            *domain.Dar
	statusAnterior string
	estrategia     string
}

type resultadoRank struct {
	done  bool
	multi bool
	v     vinculo
}

func (s *conciliacaoService) ConciliarDia(ctx context.Context, referencia time.Time) (res *domain.ResultadoConciliacao, err error) {
	referencia = time.Date(referencia.Year(), referencia.Month(), referencia.Day(), 0, 0, 0, 0, referencia.Location())

	if schemaErr := s.conciliacoes.EnsureSchema(ctx); schemaErr != nil {
		return nil, schemaErr
	}

	iniciou := time.Now()
	run := &domain.Conciliacao{
		DataExecucao:   iniciou,
		DataReferencia: referencia,
		IniciouEm:      iniciou,
		Status:         domain.ConciliacaoSucesso,
	}

	var (
		detalhes         []domain.ConciliacaoPagamento
		totalPagamentos  int
		totalAtualizados int
	)

	// The audit-run row is written whatever happens to the run itself.
	defer func() {
		finalizou := time.Now()
		run.FinalizouEm = finalizou
		run.DuracaoMS = finalizou.Sub(iniciou).Milliseconds()
		run.TotalPagamentos = totalPagamentos
		run.TotalAtualizados = totalAtualizados
		if err != nil {
			run.Status = domain.ConciliacaoFalha
			msg := err.Error()
			run.Mensagem = &msg
		}

		auditCtx := context.WithoutCancel(ctx)
		if auditErr := s.conciliacoes.Criar(auditCtx, run); auditErr != nil {
			log.Printf("conciliacao: falha ao gravar auditoria da execução: %v", auditErr)
			if err == nil {
				res = nil
				err = auditErr
			}
			return
		}
		for i := range detalhes {
			detalhes[i].ConciliacaoID = run.ID
			if derr := s.conciliacoes.CriarDetalhe(auditCtx, &detalhes[i]); derr != nil {
				log.Printf("conciliacao: falha ao gravar detalhe (dar %d): %v", detalhes[i].DarID, derr)
			}
		}

		if err != nil && s.alertas != nil {
			if aerr := s.alertas.EnviarAlertaFalha(auditCtx, referencia, err.Error()); aerr != nil {
				log.Printf("conciliacao: falha ao enviar alerta de falha: %v", aerr)
			}
		}
	}()

	log.Printf("conciliacao: iniciando conciliação de %s", referencia.Format(time.DateOnly))

	pagamentos := s.buscarPagamentos(ctx, referencia)
	totalPagamentos = len(pagamentos)
	log.Printf("conciliacao: pagamentos únicos na SEFAZ em %s: %d", referencia.Format(time.DateOnly), totalPagamentos)

	var naoVinculados []domain.PagamentoSefaz
	for i := range pagamentos {
		p := &pagamentos[i]

		v, verr := s.tentarVincular(ctx, p, referencia)
		if verr != nil {
			return nil, fmt.Errorf("vinculando pagamento guia=%s: %w", p.NumeroGuia, verr)
		}
		if !v.vinculado {
			log.Printf("conciliacao: NÃO VINCULADO: inscrição=%s guia=%s valor=%.2f",
				p.NumeroInscricao, orTraco(p.NumeroGuia), p.ValorPago)
			naoVinculados = append(naoVinculados, *p)
			continue
		}
		if v.atualizado {
			totalAtualizados++
			detalhes = append(detalhes, s.montarDetalhe(ctx, &v, p))
		}
	}

	eventosQuitados := s.quitarEventos(ctx, referencia)

	if len(naoVinculados) > 0 && s.alertas != nil {
		if aerr := s.alertas.EnviarAlertaNaoVinculados(ctx, referencia, naoVinculados); aerr != nil {
			log.Printf("conciliacao: falha ao enviar alerta de não vinculados: %v", aerr)
		}
	}

	log.Printf("conciliacao: finalizado %s: %d pagamento(s), %d DAR(s) atualizadas, %d evento(s) quitado(s)",
		referencia.Format(time.DateOnly), totalPagamentos, totalAtualizados, eventosQuitados)

	return &domain.ResultadoConciliacao{
		DataReferencia:   referencia,
		TotalPagamentos:  totalPagamentos,
		TotalAtualizados: totalAtualizados,
		EventosQuitados:  eventosQuitados,
		Detalhes:         detalhes,
	}, nil
}

// buscarPagamentos fetches the day's payments from both SEFAZ listings and
// merges them into an insertion-ordered, deduplicated slice. A failing source
// is logged and treated as empty; the run proceeds with whatever the other
// source returned.
func (s *conciliacaoService) buscarPagamentos(ctx context.Context, referencia time.Time) []domain.PagamentoSefaz {
	inicioDia := referencia
	fimDia := referencia.Add(24*time.Hour - time.Second)

	vistos := make(map[string]struct{})
	var pagamentos []domain.PagamentoSefaz
	adicionar := func(itens []domain.PagamentoSefaz) {
		for _, p := range itens {
			chave := p.ChaveDeduplicacao()
			if _, ok := vistos[chave]; ok {
				continue
			}
			vistos[chave] = struct{}{}
			pagamentos = append(pagamentos, p)
		}
	}

	for _, receita := range s.cfg.Receitas {
		itens, err := s.fonte.ListarPorDataArrecadacao(ctx, referencia, referencia, receita)
		if err != nil {
			log.Printf("conciliacao: falha no por-data-arrecadacao (receita %d): %v", receita, err)
			continue
		}
		adicionar(itens)
	}
	for _, receita := range s.cfg.Receitas {
		itens, err := s.fonte.ListarPorDataInclusao(ctx, inicioDia, fimDia, receita)
		if err != nil {
			log.Printf("conciliacao: falha no por-data-inclusao (receita %d): %v", receita, err)
			continue
		}
		adicionar(itens)
	}
	return pagamentos
}

// tentarVincular runs the full matching cascade for one payment: exact keys,
// normalized keys, payer context, guide number, guide suffix and finally the
// due-date window, each amount-based strategy going through the tolerance
// ladder. An ambiguity that the tie-break cannot resolve aborts the whole
// cascade for this payment.
func (s *conciliacaoService) tentarVincular(ctx context.Context, p *domain.PagamentoSefaz, referencia time.Time) (vinculo, error) {
	// 1) direct exact-key lookups, no monetary tolerance
	if v, done, err := s.tentarChavesExatas(ctx, p); err != nil || done {
		return v, err
	}

	// 2) normalized-equivalence lookups
	if v, done, err := s.tentarChavesNormalizadas(ctx, p); err != nil || done {
		return v, err
	}

	if p.ValorPago <= 0 {
		return vinculo{}, nil
	}

	tolList := s.toleranciasPara(p)
	pagoCents := p.ValorCentavos()

	// 3) payer context + amount tolerance
	permIDs, err := s.resolverPermissionarios(ctx, p.NumeroInscricao)
	if err != nil {
		return vinculo{}, err
	}
	if len(permIDs) > 0 {
		cands, err := s.dars.CandidatosPorPermissionarios(ctx, permIDs, pagoCents, referencia)
		if err != nil {
			return vinculo{}, err
		}
		r, err := s.rankAndTry(ctx, cands, tolList, "perm", p)
		if err != nil || r.done || r.multi {
			return r.v, err
		}
	}

	docPagador := normalizarDoc(p.NumeroInscricao)
	if docPagador != "" {
		raiz := ""
		if ehCNPJ(p.NumeroInscricao) {
			raiz = raizCNPJ(p.NumeroInscricao)
		}
		cands, err := s.dars.CandidatosPorClienteEvento(ctx, docPagador, raiz, pagoCents, referencia)
		if err != nil {
			return vinculo{}, err
		}
		r, err := s.rankAndTry(ctx, cands, tolList, "evento", p)
		if err != nil || r.done || r.multi {
			return r.v, err
		}
	}

	// 4) guide number + amount tolerance, independent of payer
	if p.NumeroGuia != "" {
		cands, err := s.dars.CandidatosPorGuia(ctx, p.NumeroGuia, pagoCents, referencia)
		if err != nil {
			return vinculo{}, err
		}
		r, err := s.rankAndTry(ctx, cands, tolList, "guia+valor", p)
		if err != nil || r.done || r.multi {
			return r.v, err
		}
	}

	// 5) guide-number suffix + amount tolerance
	if sfx := sufixoGuia(p.NumeroGuia, 6); sfx != "" {
		cands, err := s.dars.CandidatosPorSufixoGuia(ctx, sfx, pagoCents, referencia)
		if err != nil {
			return vinculo{}, err
		}
		r, err := s.rankAndTry(ctx, cands, tolList, "sufixoGuia+valor", p)
		if err != nil || r.done || r.multi {
			return r.v, err
		}
	}

	// 6) last resort: due-date window around the payment date
	base := referencia
	if p.DataPagamento != nil {
		base = *p.DataPagamento
	}
	maxTol := tolList[len(tolList)-1]
	cands, err := s.dars.CandidatosPorJanelaVencimento(ctx, pagoCents, maxTol, base, referencia)
	if err != nil {
		return vinculo{}, err
	}
	r, err := s.rankAndTry(ctx, cands, tolList, "janela", p)
	if err != nil || r.done || r.multi {
		return r.v, err
	}

	// operator diagnostic: does this guide exist at all?
	if p.NumeroGuia != "" {
		existe, err := s.dars.ExisteGuia(ctx, p.NumeroGuia)
		if err != nil {
			return vinculo{}, err
		}
		if !existe {
			log.Printf("conciliacao: DAR inexistente no banco para guia=%s", p.NumeroGuia)
		}
	}
	return vinculo{}, nil
}

// tentarChavesExatas tries each exact key independently; the first key with
// any matching row settles the payment (done=true) whether it binds, hits an
// already-paid DAR, or fails.
func (s *conciliacaoService) tentarChavesExatas(ctx context.Context, p *domain.PagamentoSefaz) (vinculo, bool, error) {
	if p.NumeroDocOrigem != "" {
		if id, perr := strconv.ParseInt(normalizarDoc(p.NumeroDocOrigem), 10, 64); perr == nil {
			dar, err := s.dars.BuscarPorID(ctx, id)
			if err != nil && err != domain.ErrNotFound {
				return vinculo{}, false, err
			}
			if dar != nil {
				v, err := s.bindDar(ctx, dar, p, "id")
				return v, true, err
			}
		}
	}

	tentativas := []struct {
		label string
		val   string
		query func(context.Context, string) ([]domain.Dar, error)
	}{
		{"codigo_barras", p.CodigoBarras, s.dars.ListarPorCodigoBarras},
		{"linha_digitavel", p.LinhaDigitavel, s.dars.ListarPorLinhaDigitavel},
		{"numero_documento", p.NumeroGuia, s.dars.ListarPorNumeroDocumento},
	}
	for _, t := range tentativas {
		if t.val == "" {
			continue
		}
		rows, err := t.query(ctx, t.val)
		if err != nil {
			return vinculo{}, false, err
		}
		s.dlog("direta: %s=%s → %d linha(s)", t.label, t.val, len(rows))
		if len(rows) == 0 {
			continue
		}
		v, err := s.bindPrimeiro(ctx, rows, p, t.label)
		return v, true, err
	}
	return vinculo{}, false, nil
}

func (s *conciliacaoService) tentarChavesNormalizadas(ctx context.Context, p *domain.PagamentoSefaz) (vinculo, bool, error) {
	tentativas := []struct {
		label string
		val   string
		query func(context.Context, string) ([]domain.Dar, error)
	}{
		{"codigo_barras~", normalizarDoc(p.CodigoBarras), s.dars.ListarPorCodigoBarrasNormalizado},
		{"linha_digitavel~", normalizarDoc(p.LinhaDigitavel), s.dars.ListarPorLinhaDigitavelNormalizada},
		{"guia~", p.NumeroGuia, s.dars.ListarPorGuiaNumerica},
	}
	for _, t := range tentativas {
		if normalizarDoc(t.val) == "" {
			continue
		}
		rows, err := t.query(ctx, t.val)
		if err != nil {
			return vinculo{}, false, err
		}
		s.dlog("normalizada: %s=%s → %d linha(s)", t.label, t.val, len(rows))
		if len(rows) == 0 {
			continue
		}
		v, err := s.bindPrimeiro(ctx, rows, p, t.label)
		return v, true, err
	}
	return vinculo{}, false, nil
}

// bindPrimeiro binds the first unpaid row carrying the key. The already-paid
// no-op applies only when every row with the key is paid; an unpaid row
// always wins over a paid one.
func (s *conciliacaoService) bindPrimeiro(ctx context.Context, rows []domain.Dar, p *domain.PagamentoSefaz, label string) (vinculo, error) {
	for i := range rows {
		if domain.EstaPago(rows[i].Status) {
			continue
		}
		v, err := s.bindDar(ctx, &rows[i], p, label)
		if err != nil || v.vinculado {
			return v, err
		}
	}
	for i := range rows {
		if domain.EstaPago(rows[i].Status) {
			return vinculo{vinculado: true, dar: &rows[i], estrategia: label}, nil
		}
	}
	return vinculo{}, nil
}

// toleranciasPara builds the ladder for one payment. Payments carrying an
// exact key must not fuzzy-match on amount, so they only get the 2¢ level.
func (s *conciliacaoService) toleranciasPara(p *domain.PagamentoSefaz) []int64 {
	if p.TemChaveExata() {
		return []int64{2}
	}
	tolBase := s.cfg.ToleranciaCentavos
	tolPct := int64(math.Round(float64(p.ValorCentavos()) * 0.03))
	if tolPct < tolBase {
		tolPct = tolBase
	}
	return []int64{2, tolBase, tolPct}
}

// resolverPermissionarios maps the payer's tax id to tenant ids: full-document
// match first, then the 8-digit CNPJ root. An ambiguous root keeps every
// matching tenant as a candidate filter.
func (s *conciliacaoService) resolverPermissionarios(ctx context.Context, numeroInscricao string) ([]int64, error) {
	doc := normalizarDoc(numeroInscricao)
	if doc == "" {
		return nil, nil
	}

	perm, err := s.pagadores.PermissionarioPorCNPJ(ctx, doc)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if perm != nil {
		return []int64{perm.ID}, nil
	}

	if !ehCNPJ(numeroInscricao) {
		return nil, nil
	}
	perms, err := s.pagadores.PermissionariosPorRaizCNPJ(ctx, raizCNPJ(numeroInscricao))
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(perms))
	for _, pm := range perms {
		ids = append(ids, pm.ID)
	}
	return ids, nil
}

// rankAndTry walks the tolerance ladder over a pre-filtered candidate set.
// Ambiguity that the tie-break cannot resolve is terminal for the whole
// cascade: widening the tolerance after a real ambiguity would accept
// implausible matches.
func (s *conciliacaoService) rankAndTry(ctx context.Context, cands []domain.Dar, tolList []int64, label string, p *domain.PagamentoSefaz) (resultadoRank, error) {
	s.dlog("%s: pré-tol=%d", label, len(cands))
	pagoCents := p.ValorCentavos()

	for _, tol := range tolList {
		var candTol []domain.Dar
		for _, c := range cands {
			if abs64(c.ValorCentavos()-pagoCents) <= tol {
				candTol = append(candTol, c)
			}
		}
		s.dlog("%s: tol=%d¢ → %d", label, tol, len(candTol))

		switch {
		case len(candTol) == 1:
			v, err := s.bindDar(ctx, &candTol[0], p, label)
			if err != nil {
				return resultadoRank{}, err
			}
			if v.vinculado {
				return resultadoRank{done: true, v: v}, nil
			}
			// bind lost to an unexpected modification; try the next level

		case len(candTol) > 1:
			escolhido := desempatar(candTol, p)
			if escolhido != nil {
				v, err := s.bindDar(ctx, escolhido, p, label)
				if err != nil {
					return resultadoRank{}, err
				}
				if v.vinculado {
					return resultadoRank{done: true, v: v}, nil
				}
			}
			s.dlog("%s: ambíguo (%d candidatos)", label, len(candTol))
			log.Printf("conciliacao: ambíguo em %s para guia=%s valor=%.2f (%d candidatos)",
				label, orTraco(p.NumeroGuia), p.ValorPago, len(candTol))
			return resultadoRank{multi: true}, nil
		}
	}
	return resultadoRank{}, nil
}

// bindDar performs the guarded transition of one DAR to Pago. A zero-row
// conditional update is re-read: finding the DAR paid means another process
// won the race, which is still a correct end state.
func (s *conciliacaoService) bindDar(ctx context.Context, dar *domain.Dar, p *domain.PagamentoSefaz, label string) (vinculo, error) {
	if domain.EstaPago(dar.Status) {
		return vinculo{vinculado: true, dar: dar, estrategia: label}, nil
	}

	atualizou, err := s.dars.MarcarPago(ctx, dar.ID, p.DataPagamento)
	if err != nil {
		return vinculo{}, err
	}
	if atualizou {
		s.dlog("%s: DAR %d → Pago", label, dar.ID)
		return vinculo{
			vinculado:      true,
			atualizado:     true,
			dar:            dar,
			statusAnterior: dar.Status,
			estrategia:     label,
		}, nil
	}

	atual, err := s.dars.BuscarPorID(ctx, dar.ID)
	if err == domain.ErrNotFound {
		return vinculo{}, nil
	}
	if err != nil {
		return vinculo{}, err
	}
	if domain.EstaPago(atual.Status) {
		// lost the race to a concurrent run
		return vinculo{vinculado: true, dar: atual, estrategia: label}, nil
	}
	return vinculo{}, nil
}

// desempatar deterministically narrows an ambiguous candidate set: guide
// suffix, oldest billing period, then due date closest to the payment date.
// The winner must be strictly ahead of the runner-up; an exact tie stays
// unresolved rather than guessed.
func desempatar(cands []domain.Dar, p *domain.PagamentoSefaz) *domain.Dar {
	if len(cands) == 0 {
		return nil
	}

	list := make([]domain.Dar, len(cands))
	copy(list, cands)

	if p.NumeroGuia != "" {
		var bySfx []domain.Dar
		for _, c := range list {
			if c.NumeroDocumento != nil && docTerminaComSufixo(*c.NumeroDocumento, p.NumeroGuia, 6) {
				bySfx = append(bySfx, c)
			}
		}
		if len(bySfx) == 1 {
			return &bySfx[0]
		}
		if len(bySfx) > 1 {
			list = bySfx
		}
	}

	sort.SliceStable(list, func(i, j int) bool {
		pi, pj := periodoCobranca(&list[i]), periodoCobranca(&list[j])
		if pi != pj {
			return pi < pj
		}
		if p.DataPagamento != nil {
			return distanciaDias(&list[i], *p.DataPagamento) < distanciaDias(&list[j], *p.DataPagamento)
		}
		return false
	})

	if len(list) == 1 {
		return &list[0]
	}

	primeiro, segundo := &list[0], &list[1]
	if periodoCobranca(primeiro) < periodoCobranca(segundo) {
		return primeiro
	}
	if p.DataPagamento != nil && distanciaDias(primeiro, *p.DataPagamento) < distanciaDias(segundo, *p.DataPagamento) {
		return primeiro
	}
	return nil
}

// periodoCobranca orders DARs by billing period; rows without one sort last.
func periodoCobranca(d *domain.Dar) int {
	ano, mes := 9999, 99
	if d.AnoReferencia != nil {
		ano = *d.AnoReferencia
	}
	if d.MesReferencia != nil {
		mes = *d.MesReferencia
	}
	return ano*100 + mes
}

// distanciaDias is the absolute distance in days between the DAR's due date
// and the payment date.
func distanciaDias(d *domain.Dar, pagamento time.Time) int64 {
	diff := d.DataVencimento.Sub(pagamento)
	if diff < 0 {
		diff = -diff
	}
	return int64(diff.Hours() / 24)
}

// montarDetalhe builds the audit-detail snapshot of a transitioned DAR.
func (s *conciliacaoService) montarDetalhe(ctx context.Context, v *vinculo, p *domain.PagamentoSefaz) domain.ConciliacaoPagamento {
	dar := v.dar

	dataPagamento := p.DataPagamento
	if dataPagamento == nil {
		dataPagamento = dar.DataPagamento
	}
	venc := dar.DataVencimento
	det := domain.ConciliacaoPagamento{
		DarID:              dar.ID,
		StatusAnterior:     v.statusAnterior,
		StatusAtual:        string(domain.DarStatusPago),
		NumeroDocumento:    dar.NumeroDocumento,
		Valor:              dar.Valor,
		DataVencimento:     &venc,
		DataPagamento:      dataPagamento,
		PagamentoGuia:      p.NumeroGuia,
		PagamentoDocumento: p.NumeroInscricao,
		PagamentoValor:     p.ValorPago,
		PagamentoData:      p.DataPagamento,
	}

	contrib, err := s.pagadores.ContribuinteDoDar(ctx, dar.ID)
	if err != nil {
		if err != domain.ErrNotFound {
			log.Printf("conciliacao: falha ao resolver contribuinte do DAR %d: %v", dar.ID, err)
		}
		return det
	}
	det.Origem = string(contrib.Origem)
	det.Contribuinte = contrib.Nome
	det.DocumentoContribuinte = contrib.Documento
	return det
}

// quitarEventos rolls up evento status for the reference year. Failures here
// never fail the run; the rollup is re-derived on the next execution.
func (s *conciliacaoService) quitarEventos(ctx context.Context, referencia time.Time) int {
	inicio := time.Date(referencia.Year(), time.January, 1, 0, 0, 0, 0, referencia.Location())
	fim := time.Date(referencia.Year(), time.December, 31, 0, 0, 0, 0, referencia.Location())
	ids, err := s.eventos.MarcarEventosQuitados(ctx, inicio, fim)
	if err != nil {
		log.Printf("conciliacao: falha ao atualizar eventos quitados: %v", err)
		return 0
	}
	if len(ids) > 0 {
		log.Printf("conciliacao: eventos quitados: %v", ids)
	}
	return len(ids)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func orTraco(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
