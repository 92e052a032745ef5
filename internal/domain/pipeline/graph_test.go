package pipeline_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/pipeline"
)

// aristas esperadas del pipeline, espejo independiente del grafo real.
var expectedEdges = map[entity.Stage][]entity.Stage{
	entity.StageNew:             {entity.StageRequiresDocs, entity.StageInReview},
	entity.StageRequiresDocs:    {entity.StageInReview},
	entity.StageInReview:        {entity.StageReadyForLenders, entity.StageRequiresDocs},
	entity.StageReadyForLenders: {entity.StageSentToLender},
	entity.StageSentToLender:    {entity.StageFunded, entity.StageRequiresDocs},
	entity.StageFunded:          {entity.StageClosed},
	entity.StageClosed:          {},
}

// Clausura del grafo: para cada par ordenado de etapas, CanMove debe coincidir
// exactamente con el conjunto de aristas esperado. Ningún par extra, ninguno menos.
func TestCanMove_ClausuraCompleta(t *testing.T) {
	for _, from := range entity.AllStages() {
		allowed := make(map[entity.Stage]bool)
		for _, to := range expectedEdges[from] {
			allowed[to] = true
		}
		for _, to := range entity.AllStages() {
			got := pipeline.CanMove(from, to)
			assert.Equal(t, allowed[to], got,
				"CanMove(%s, %s) debe ser %v", from, to, allowed[to])
		}
	}
}

func TestCanMove_NingunaEtapaSeMueveASiMisma(t *testing.T) {
	for _, s := range entity.AllStages() {
		assert.False(t, pipeline.CanMove(s, s), "%s no debe tener auto-arista", s)
	}
}

func TestNextStages_ClosedEsTerminal(t *testing.T) {
	assert.Empty(t, pipeline.NextStages(entity.StageClosed))
}

func TestNextStages_DevuelveCopia(t *testing.T) {
	a := pipeline.NextStages(entity.StageNew)
	require.NotEmpty(t, a)
	a[0] = entity.StageClosed
	b := pipeline.NextStages(entity.StageNew)
	assert.NotEqual(t, entity.StageClosed, b[0], "mutar el resultado no debe tocar el grafo")
}

func TestValidStage(t *testing.T) {
	for _, s := range entity.AllStages() {
		assert.True(t, pipeline.ValidStage(s))
	}
	assert.False(t, pipeline.ValidStage("archived"))
	assert.False(t, pipeline.ValidStage(""))
}

func TestCheckMove_AristaValida(t *testing.T) {
	assert.NoError(t, pipeline.CheckMove(entity.StageNew, entity.StageInReview))
}

func TestCheckMove_AristaInexistente_RetornaErrInvalidTransition(t *testing.T) {
	err := pipeline.CheckMove(entity.StageNew, entity.StageFunded)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	// El detalle debe nombrar ambas etapas para el diagnóstico del caller.
	assert.Contains(t, err.Error(), "new")
	assert.Contains(t, err.Error(), "funded")
}

func TestCheckMove_EtapaDestinoDesconocida(t *testing.T) {
	err := pipeline.CheckMove(entity.StageNew, "archived")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

// Los retrocesos explícitos no existen: ready_for_lenders no vuelve a in_review,
// funded no vuelve a sent_to_lender.
func TestCheckMove_SinRetrocesos(t *testing.T) {
	assert.Error(t, pipeline.CheckMove(entity.StageReadyForLenders, entity.StageInReview))
	assert.Error(t, pipeline.CheckMove(entity.StageFunded, entity.StageSentToLender))
	assert.Error(t, pipeline.CheckMove(entity.StageInReview, entity.StageNew))
}
