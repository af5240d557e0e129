package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdemCandidatos_CompetenciaAntesDoDelta(t *testing.T) {
	clause := ordemCandidatos("$1")

	// the LIMIT cuts the candidate set, so the billing period must rank
	// before the amount delta and the due date
	iPeriodo := strings.Index(clause, "ano_referencia")
	iDelta := strings.Index(clause, "ABS(ROUND(d.valor*100)")
	iVenc := strings.Index(clause, "d.data_vencimento")
	require.NotEqual(t, -1, iPeriodo)
	require.NotEqual(t, -1, iDelta)
	require.NotEqual(t, -1, iVenc)
	assert.Less(t, iPeriodo, iDelta)
	assert.Less(t, iDelta, iVenc)

	// rows without a billing period sort last via the same sentinel the
	// tie-break uses
	assert.Contains(t, clause, "COALESCE(d.ano_referencia, 9999)")
	assert.Contains(t, clause, "COALESCE(d.mes_referencia, 99)")
	assert.Contains(t, clause, "LIMIT 50")
	assert.Contains(t, clause, "$1")
}

func TestNormDoc_RemoveNaoDigitos(t *testing.T) {
	assert.Equal(t,
		`regexp_replace(COALESCE(d.codigo_barras, ''), '\D', '', 'g')`,
		normDoc("d.codigo_barras"))
}
