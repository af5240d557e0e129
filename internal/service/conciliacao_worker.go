package service

import (
	"context"
	"log"
	"sync"
	"time"

	"ciptpag/internal/lock"
)

// WorkerConfig holds settings for the daily reconciliation worker.
type WorkerConfig struct {
	Hour     int
	Minute   int
	Location *time.Location
	// BaseDia selects the reference date of a scheduled run: "ontem" or
	// "hoje" relative to the trigger instant.
	BaseDia string
}

// ConciliacaoWorker triggers a reconciliation run once a day at the
// configured local time, guarded by the process lock.
type ConciliacaoWorker struct {
	svc  ConciliacaoService
	lck  *lock.FileLock
	cfg  WorkerConfig
	wg   sync.WaitGroup
	nowF func() time.Time
}

// NewConciliacaoWorker creates a new ConciliacaoWorker.
func NewConciliacaoWorker(svc ConciliacaoService, lck *lock.FileLock, cfg WorkerConfig) *ConciliacaoWorker {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &ConciliacaoWorker{
		svc:  svc,
		lck:  lck,
		cfg:  cfg,
		nowF: time.Now,
	}
}

// Start runs the schedule loop until ctx is canceled. It blocks until an
// in-flight run has finished.
func (w *ConciliacaoWorker) Start(ctx context.Context) {
	log.Printf("conciliacaoWorker: started (daily at %02d:%02d %s, base=%s)",
		w.cfg.Hour, w.cfg.Minute, w.cfg.Location, w.cfg.BaseDia)

	for {
		wait := w.proximoDisparo().Sub(w.nowF().In(w.cfg.Location))
		timer := time.NewTimer(wait)

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("conciliacaoWorker: shutting down, waiting for in-flight run...")
			w.wg.Wait()
			log.Printf("conciliacaoWorker: shutdown complete")
			return
		case <-timer.C:
			w.dispararRun()
		}
	}
}

// proximoDisparo returns the next HH:MM occurrence in the worker's timezone.
func (w *ConciliacaoWorker) proximoDisparo() time.Time {
	now := w.nowF().In(w.cfg.Location)
	next := time.Date(now.Year(), now.Month(), now.Day(), w.cfg.Hour, w.cfg.Minute, 0, 0, w.cfg.Location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (w *ConciliacaoWorker) dispararRun() {
	if err := w.lck.Acquire(); err != nil {
		if err == lock.ErrHeld {
			log.Printf("conciliacaoWorker: execução anterior ainda em andamento, pulando")
			return
		}
		log.Printf("conciliacaoWorker: falha ao adquirir lock: %v", err)
		return
	}

	referencia := w.nowF().In(w.cfg.Location)
	if w.cfg.BaseDia != "hoje" {
		referencia = referencia.AddDate(0, 0, -1)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.lck.Release()

		// Independent of the schedule loop's context so a run already in
		// flight completes during shutdown.
		runCtx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		if _, err := w.svc.ConciliarDia(runCtx, referencia); err != nil {
			log.Printf("conciliacaoWorker: conciliação de %s falhou: %v",
				referencia.Format(time.DateOnly), err)
		}
	}()
}
