package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ciptpag/internal/config"
	"ciptpag/internal/email/noop"
	"ciptpag/internal/email/ses"
	"ciptpag/internal/handler"
	"ciptpag/internal/lock"
	"ciptpag/internal/port"
	"ciptpag/internal/repository/postgres"
	"ciptpag/internal/router"
	"ciptpag/internal/sefaz"
	"ciptpag/internal/service"
	s3storage "ciptpag/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Conciliacao.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Conciliacao.Timezone, err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	darRepo := postgres.NewDarRepo(db)
	pagadorRepo := postgres.NewPagadorRepo(db)
	eventoRepo := postgres.NewEventoRepo(db)
	conciliacaoRepo := postgres.NewConciliacaoRepo(db)

	// Initialize external clients
	fonte := sefaz.NewClient(&cfg.Sefaz)

	var alertas port.AlertSender
	if cfg.Email.Provider == "ses" && cfg.Email.ToAddress != "" {
		alertas, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		alertas = noop.NewNoopSender()
	}

	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	conciliacaoSvc := service.NewConciliacaoService(
		darRepo, pagadorRepo, eventoRepo, conciliacaoRepo, fonte, alertas,
		service.ConciliacaoConfig{
			ToleranciaCentavos: cfg.Conciliacao.ToleranciaCentavos,
			Debug:              cfg.Conciliacao.Debug,
			Receitas:           cfg.Sefaz.Receitas,
		})
	relatorioSvc := service.NewRelatorioService(conciliacaoRepo, storage, service.RelatorioConfig{
		Arquivar: cfg.S3.Enabled,
		Bucket:   cfg.S3.Bucket,
		Prefix:   cfg.S3.Prefix,
	})

	lck := lock.New(cfg.Conciliacao.LockPath)

	// Initialize handlers
	conciliacaoH := handler.NewConciliacaoHandler(conciliacaoSvc, relatorioSvc, lck, loc, cfg.Conciliacao.BaseDia)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(&cfg.JWT, conciliacaoH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Daily scheduler
	workerDone := make(chan struct{})
	if cfg.Conciliacao.SchedulerOn {
		worker := service.NewConciliacaoWorker(conciliacaoSvc, lck, service.WorkerConfig{
			Hour:     cfg.Conciliacao.ScheduleHour,
			Minute:   cfg.Conciliacao.ScheduleMinute,
			Location: loc,
			BaseDia:  cfg.Conciliacao.BaseDia,
		})
		go func() {
			defer close(workerDone)
			worker.Start(ctx)
		}()
	} else {
		close(workerDone)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	<-workerDone

	return nil
}
