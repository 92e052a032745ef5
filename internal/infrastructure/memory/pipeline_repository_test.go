package memory_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
)

func record(appID string, from, to entity.Stage) *entity.TransitionRecord {
	return &entity.TransitionRecord{
		ID:            fmt.Sprintf("rec-%s-%s-%s", appID, from, to),
		Silo:          entity.SiloBF,
		ApplicationID: appID,
		FromStage:     from,
		ToStage:       to,
		CreatedAt:     time.Now(),
	}
}

func TestGetOrInitStage_CreaEnNew(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)

	a, err := r.GetOrInitStage("app-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StageNew, a.Stage)
	assert.Equal(t, entity.SiloBF, a.Silo)

	// La segunda consulta devuelve la misma asignación, no la reinicia.
	require.NoError(t, r.RecordTransition(record("app-1", entity.StageNew, entity.StageInReview)))
	b, err := r.GetOrInitStage("app-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StageInReview, b.Stage)
}

// El CAS rechaza un FromStage que no coincide con la etapa almacenada y el
// error nombra ambas etapas.
func TestRecordTransition_CASRechazaFromStageViejo(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)

	require.NoError(t, r.RecordTransition(record("app-1", entity.StageNew, entity.StageInReview)))

	err := r.RecordTransition(record("app-1", entity.StageNew, entity.StageRequiresDocs))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "in_review")
	assert.Contains(t, err.Error(), "new")

	// El perdedor no escribe historial.
	hist, err := r.History("app-1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

// First-touch dentro de RecordTransition: mover sin haber consultado la etapa
// funciona partiendo de "new".
func TestRecordTransition_FirstTouchImplicito(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)

	require.NoError(t, r.RecordTransition(record("app-9", entity.StageNew, entity.StageRequiresDocs)))

	a, err := r.GetOrInitStage("app-9")
	require.NoError(t, err)
	assert.Equal(t, entity.StageRequiresDocs, a.Stage)
}

// Carrera real sobre el CAS: movers concurrentes con el mismo FromStage;
// exactamente uno gana y el historial queda con un solo registro.
func TestRecordTransition_CarreraUnSoloGanador(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)
	_, err := r.GetOrInitStage("app-1")
	require.NoError(t, err)

	const movers = 32
	var wg sync.WaitGroup
	errs := make([]error, movers)
	for i := 0; i < movers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			rec := record("app-1", entity.StageNew, entity.StageInReview)
			rec.ID = fmt.Sprintf("rec-%d", n)
			errs[n] = r.RecordTransition(rec)
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.True(t, errors.Is(err, domain.ErrConflict))
		}
	}
	assert.Equal(t, 1, wins)

	hist, err := r.History("app-1")
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestListByStage_OrdenPorAntiguedad(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)

	base := time.Now()
	for i, id := range []string{"app-c", "app-a", "app-b"} {
		rec := record(id, entity.StageNew, entity.StageInReview)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, r.RecordTransition(rec))
	}

	ids, err := r.ListByStage(entity.StageInReview)
	require.NoError(t, err)
	assert.Equal(t, []string{"app-c", "app-a", "app-b"}, ids, "orden por UpdatedAt ascendente")

	empty, err := r.ListByStage(entity.StageFunded)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSetAssignee(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)

	_, err := r.SetAssignee("app-1", "user-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "sin asignación previa no hay qué asignar")

	_, err = r.GetOrInitStage("app-1")
	require.NoError(t, err)
	a, err := r.SetAssignee("app-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", a.AssignedTo)
}

// El historial devuelve copias: mutar el resultado no contamina el store.
func TestHistory_DevuelveCopias(t *testing.T) {
	r := memory.NewPipelineRepository(entity.SiloBF)
	require.NoError(t, r.RecordTransition(record("app-1", entity.StageNew, entity.StageInReview)))

	hist, err := r.History("app-1")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	hist[0].ToStage = entity.StageClosed

	again, err := r.History("app-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StageInReview, again[0].ToStage)
}
