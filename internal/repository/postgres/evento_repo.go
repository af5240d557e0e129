package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"ciptpag/internal/port"
)

type eventoRepo struct {
	db *sqlx.DB
}

// NewEventoRepo creates a new PostgreSQL-backed EventoRepository.
func NewEventoRepo(db *sqlx.DB) port.EventoRepository {
	return &eventoRepo{db: db}
}

// MarcarEventosQuitados promotes eventos to Pago once every installment DAR
// is paid and the last payment date falls inside the window.
func (r *eventoRepo) MarcarEventosQuitados(ctx context.Context, inicio, fim time.Time) ([]int64, error) {
	var ids []int64
	err := r.db.SelectContext(ctx, &ids,
		`WITH ev AS (
		   SELECT e.id AS evento_id,
		          COUNT(de.id_dar) AS qtd_parcelas,
		          SUM(CASE WHEN lower(d.status) LIKE 'pago%' THEN 1 ELSE 0 END) AS qtd_pagas,
		          MAX(d.data_pagamento) AS ultima_data_pagamento
		     FROM eventos e
		     JOIN dars_eventos de ON de.id_evento = e.id
		     JOIN dars d ON d.id = de.id_dar
		    GROUP BY e.id
		 )
		 UPDATE eventos
		    SET status = 'Pago'
		  WHERE id IN (
		          SELECT evento_id FROM ev
		           WHERE qtd_parcelas > 0
		             AND qtd_parcelas = qtd_pagas
		             AND ultima_data_pagamento::date BETWEEN $1 AND $2
		        )
		    AND lower(status) NOT LIKE 'pago%'
		 RETURNING id`,
		inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("eventoRepo.MarcarEventosQuitados: %w", err)
	}
	return ids, nil
}
