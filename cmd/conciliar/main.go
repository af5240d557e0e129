// Command conciliar runs the SEFAZ payment reconciliation from the command
// line. With no flags it reconciles the configured default day (yesterday or
// today); --date runs a single day and --range runs every day of an inclusive
// interval, each day under its own lock acquisition.
// Usage:
//
//	conciliar
//	conciliar --date 2026-08-31
//	conciliar --range 2026-08-01:2026-08-31
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"ciptpag/internal/config"
	"ciptpag/internal/email/noop"
	"ciptpag/internal/email/ses"
	"ciptpag/internal/lock"
	"ciptpag/internal/port"
	"ciptpag/internal/repository/postgres"
	"ciptpag/internal/sefaz"
	"ciptpag/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dateFlag := flag.String("date", "", "reconcile a single day (YYYY-MM-DD)")
	rangeFlag := flag.String("range", "", "reconcile an inclusive interval (YYYY-MM-DD:YYYY-MM-DD)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Conciliacao.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Conciliacao.Timezone, err)
	}

	dias, err := resolverDias(*dateFlag, *rangeFlag, cfg.Conciliacao.BaseDia, loc)
	if err != nil {
		return err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var alertas port.AlertSender
	if cfg.Email.Provider == "ses" && cfg.Email.ToAddress != "" {
		alertas, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.ToAddress)
		if err != nil {
			return fmt.Errorf("initializing SES sender: %w", err)
		}
	} else {
		alertas = noop.NewNoopSender()
	}

	svc := service.NewConciliacaoService(
		postgres.NewDarRepo(db),
		postgres.NewPagadorRepo(db),
		postgres.NewEventoRepo(db),
		postgres.NewConciliacaoRepo(db),
		sefaz.NewClient(&cfg.Sefaz),
		alertas,
		service.ConciliacaoConfig{
			ToleranciaCentavos: cfg.Conciliacao.ToleranciaCentavos,
			Debug:              cfg.Conciliacao.Debug,
			Receitas:           cfg.Sefaz.Receitas,
		})

	lck := lock.New(cfg.Conciliacao.LockPath)
	ctx := context.Background()

	for _, dia := range dias {
		if err := conciliarDia(ctx, svc, lck, dia); err != nil {
			return err
		}
	}
	return nil
}

func conciliarDia(ctx context.Context, svc service.ConciliacaoService, lck *lock.FileLock, dia time.Time) error {
	if err := lck.Acquire(); err != nil {
		if err == lock.ErrHeld {
			log.Printf("conciliar: outra execução em andamento, pulando %s", dia.Format(time.DateOnly))
			return nil
		}
		return err
	}
	defer lck.Release()

	res, err := svc.ConciliarDia(ctx, dia)
	if err != nil {
		return fmt.Errorf("conciliação de %s: %w", dia.Format(time.DateOnly), err)
	}
	log.Printf("conciliar: %s → %d pagamento(s), %d atualizada(s)",
		res.DataReferencia.Format(time.DateOnly), res.TotalPagamentos, res.TotalAtualizados)
	return nil
}

func resolverDias(dateFlag, rangeFlag, baseDia string, loc *time.Location) ([]time.Time, error) {
	switch {
	case dateFlag != "" && rangeFlag != "":
		return nil, fmt.Errorf("--date and --range are mutually exclusive")

	case dateFlag != "":
		dia, err := time.ParseInLocation(time.DateOnly, dateFlag, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: %w", dateFlag, err)
		}
		return []time.Time{dia}, nil

	case rangeFlag != "":
		partes := strings.SplitN(rangeFlag, ":", 2)
		if len(partes) != 2 {
			return nil, fmt.Errorf("invalid --range %q: want YYYY-MM-DD:YYYY-MM-DD", rangeFlag)
		}
		inicio, err := time.ParseInLocation(time.DateOnly, partes[0], loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --range start %q: %w", partes[0], err)
		}
		fim, err := time.ParseInLocation(time.DateOnly, partes[1], loc)
		if err != nil {
			return nil, fmt.Errorf("invalid --range end %q: %w", partes[1], err)
		}
		if fim.Before(inicio) {
			return nil, fmt.Errorf("invalid --range: end before start")
		}
		var dias []time.Time
		for d := inicio; !d.After(fim); d = d.AddDate(0, 0, 1) {
			dias = append(dias, d)
		}
		return dias, nil

	default:
		dia := time.Now().In(loc)
		if baseDia != "hoje" {
			dia = dia.AddDate(0, 0, -1)
		}
		return []time.Time{dia}, nil
	}
}
