package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"

	"ciptpag/internal/domain"
	"ciptpag/internal/port"
	"ciptpag/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RelatorioConfig holds settings for archived run reports.
type RelatorioConfig struct {
	// Arquivar enables uploading each exported workbook to object storage.
	Arquivar bool
	Bucket   string
	Prefix   string
}

// RelatorioService exports reconciliation runs as XLSX workbooks.
type RelatorioService interface {
	// ExportarRun renders the run and its detail rows as a workbook and
	// returns the bytes plus the suggested filename. When archiving is
	// enabled the workbook is also uploaded to object storage; an upload
	// failure is logged but does not fail the export.
	ExportarRun(ctx context.Context, conciliacaoID int64) ([]byte, string, error)
}

type relatorioService struct {
	conciliacoes port.ConciliacaoRepository
	storage      port.ObjectStorage
	cfg          RelatorioConfig
}

// NewRelatorioService creates a new RelatorioService. storage may be nil when
// archiving is disabled.
func NewRelatorioService(conciliacoes port.ConciliacaoRepository, storage port.ObjectStorage, cfg RelatorioConfig) RelatorioService {
	return &relatorioService{
		conciliacoes: conciliacoes,
		storage:      storage,
		cfg:          cfg,
	}
}

func (s *relatorioService) ExportarRun(ctx context.Context, conciliacaoID int64) ([]byte, string, error) {
	run, err := s.conciliacoes.BuscarPorID(ctx, conciliacaoID)
	if err != nil {
		return nil, "", err
	}
	detalhes, err := s.conciliacoes.DetalhesPorConciliacao(ctx, conciliacaoID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err := xlsxexport.Escrever(&buf, run, detalhes); err != nil {
		return nil, "", fmt.Errorf("exporting run %d: %w", conciliacaoID, err)
	}
	filename := xlsxexport.NomeArquivo(run)

	if s.cfg.Arquivar && s.storage != nil {
		s.arquivar(ctx, run, buf.Bytes(), filename)
	}
	return buf.Bytes(), filename, nil
}

func (s *relatorioService) arquivar(ctx context.Context, run *domain.Conciliacao, data []byte, filename string) {
	key := path.Join(s.cfg.Prefix, run.DataReferencia.Format("2006/01"), filename)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: xlsxContentType,
	})
	if err != nil {
		log.Printf("relatorio: falha ao arquivar %s: %v", key, err)
		return
	}
	log.Printf("relatorio: arquivado em %s", out.Location)
}
