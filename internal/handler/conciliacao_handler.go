package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"ciptpag/internal/domain"
	"ciptpag/internal/lock"
	"ciptpag/internal/service"
)

// maxDiasIntervalo caps manually triggered ranges to avoid accidental
// multi-year replays through the API.
const maxDiasIntervalo = 92

// ConciliacaoHandler handles reconciliation endpoints.
type ConciliacaoHandler struct {
	svc       service.ConciliacaoService
	relatorio service.RelatorioService
	lck       *lock.FileLock
	loc       *time.Location
	baseDia   string
}

// NewConciliacaoHandler creates a new ConciliacaoHandler.
func NewConciliacaoHandler(
	svc service.ConciliacaoService,
	relatorio service.RelatorioService,
	lck *lock.FileLock,
	loc *time.Location,
	baseDia string,
) *ConciliacaoHandler {
	if loc == nil {
		loc = time.Local
	}
	return &ConciliacaoHandler{
		svc:       svc,
		relatorio: relatorio,
		lck:       lck,
		loc:       loc,
		baseDia:   baseDia,
	}
}

type executarRequest struct {
	Data   string `json:"data"`
	Inicio string `json:"inicio"`
	Fim    string `json:"fim"`
}

// Executar handles POST /api/v1/conciliacoes. The body selects a single date,
// an inclusive range, or nothing (the configured default day). Each day runs
// under the process lock; a held lock yields 409.
func (h *ConciliacaoHandler) Executar(c *gin.Context) {
	var req executarRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
		return
	}

	dias, err := h.resolverDias(&req)
	if err != nil {
		HandleError(c, err)
		return
	}

	resultados := make([]*domain.ResultadoConciliacao, 0, len(dias))
	for _, dia := range dias {
		if err := h.lck.Acquire(); err != nil {
			if err == lock.ErrHeld {
				RespondError(c, http.StatusConflict, "RUN_IN_PROGRESS", "another reconciliation run is in progress")
				return
			}
			HandleError(c, err)
			return
		}

		res, runErr := h.svc.ConciliarDia(c.Request.Context(), dia)
		h.lck.Release()
		if runErr != nil {
			RespondError(c, http.StatusInternalServerError, "RUN_FAILED",
				fmt.Sprintf("reconciliation of %s failed", dia.Format(time.DateOnly)))
			return
		}
		resultados = append(resultados, res)
	}

	RespondCreated(c, resultados)
}

// resolverDias expands the request into the list of reference dates to run.
func (h *ConciliacaoHandler) resolverDias(req *executarRequest) ([]time.Time, error) {
	switch {
	case req.Data != "":
		dia, err := time.ParseInLocation(time.DateOnly, req.Data, h.loc)
		if err != nil {
			return nil, domain.ErrDataInvalida
		}
		return []time.Time{dia}, nil

	case req.Inicio != "" || req.Fim != "":
		if req.Inicio == "" || req.Fim == "" {
			return nil, domain.ErrDataInvalida
		}
		inicio, err := time.ParseInLocation(time.DateOnly, req.Inicio, h.loc)
		if err != nil {
			return nil, domain.ErrDataInvalida
		}
		fim, err := time.ParseInLocation(time.DateOnly, req.Fim, h.loc)
		if err != nil {
			return nil, domain.ErrDataInvalida
		}
		if fim.Before(inicio) {
			return nil, domain.ErrDataInvalida
		}
		var dias []time.Time
		for d := inicio; !d.After(fim); d = d.AddDate(0, 0, 1) {
			dias = append(dias, d)
			if len(dias) > maxDiasIntervalo {
				return nil, domain.ErrDataInvalida
			}
		}
		return dias, nil

	default:
		dia := time.Now().In(h.loc)
		if h.baseDia != "hoje" {
			dia = dia.AddDate(0, 0, -1)
		}
		return []time.Time{dia}, nil
	}
}

// Listar handles GET /api/v1/conciliacoes
func (h *ConciliacaoHandler) Listar(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	runs, total, err := h.svc.ListarRuns(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// BuscarPorID handles GET /api/v1/conciliacoes/:id
func (h *ConciliacaoHandler) BuscarPorID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}

	run, detalhes, err := h.svc.BuscarRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"conciliacao": run, "detalhes": detalhes})
}

// Exportar handles GET /api/v1/conciliacoes/:id/export
func (h *ConciliacaoHandler) Exportar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be an integer")
		return
	}

	data, filename, err := h.relatorio.ExportarRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
