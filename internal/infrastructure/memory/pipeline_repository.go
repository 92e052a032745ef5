package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo adaptador en memoria del pipeline. El mutex del store hace de
// la lectura-comparación-escritura de RecordTransition una operación atómica:
// el CAS sobre la etapa almacenada decide el ganador entre movers concurrentes.
type PipelineRepo struct {
	silo        entity.Silo
	mu          sync.Mutex
	assignments map[string]entity.StageAssignment
	history     map[string][]entity.TransitionRecord // orden de inserción = cronológico
}

// NewPipelineRepository construye el adaptador vacío para un silo.
func NewPipelineRepository(silo entity.Silo) *PipelineRepo {
	return &PipelineRepo{
		silo:        silo,
		assignments: make(map[string]entity.StageAssignment),
		history:     make(map[string][]entity.TransitionRecord),
	}
}

// GetOrInitStage devuelve la asignación actual; la primera consulta la crea en "new".
func (r *PipelineRepo) GetOrInitStage(applicationID string) (*entity.StageAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[applicationID]
	if !ok {
		a = entity.StageAssignment{
			Silo:          r.silo,
			ApplicationID: applicationID,
			Stage:         entity.StageNew,
			UpdatedAt:     time.Now(),
		}
		r.assignments[applicationID] = a
	}
	return &a, nil
}

// ListByStage devuelve los IDs actualmente en la etapa, por antigüedad de la asignación.
func (r *PipelineRepo) ListByStage(stage entity.Stage) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	type row struct {
		id string
		at time.Time
	}
	rows := make([]row, 0)
	for id, a := range r.assignments {
		if a.Stage == stage {
			rows = append(rows, row{id: id, at: a.UpdatedAt})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].at.Equal(rows[j].at) {
			return rows[i].id < rows[j].id
		}
		return rows[i].at.Before(rows[j].at)
	})
	ids := make([]string, 0, len(rows))
	for _, rw := range rows {
		ids = append(ids, rw.id)
	}
	return ids, nil
}

// RecordTransition CAS: la etapa almacenada debe ser rec.FromStage, si no ErrConflict.
// Actualiza la etapa y añade el registro al historial bajo el mismo lock.
func (r *PipelineRepo) RecordTransition(rec *entity.TransitionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[rec.ApplicationID]
	if !ok {
		// First-touch implícito: el estado previo lógico es "new".
		a = entity.StageAssignment{
			Silo:          r.silo,
			ApplicationID: rec.ApplicationID,
			Stage:         entity.StageNew,
		}
	}
	if a.Stage != rec.FromStage {
		return fmt.Errorf("%w: la etapa almacenada es %q, no %q", domain.ErrConflict, a.Stage, rec.FromStage)
	}
	a.Stage = rec.ToStage
	a.UpdatedAt = rec.CreatedAt
	r.assignments[rec.ApplicationID] = a
	r.history[rec.ApplicationID] = append(r.history[rec.ApplicationID], *rec)
	return nil
}

// SetAssignee cambia el staff asignado a la etapa.
func (r *PipelineRepo) SetAssignee(applicationID, userID string) (*entity.StageAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[applicationID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a.AssignedTo = userID
	a.UpdatedAt = time.Now()
	r.assignments[applicationID] = a
	return &a, nil
}

// History devuelve copias de los registros, de más antiguo a más reciente.
func (r *PipelineRepo) History(applicationID string) ([]*entity.TransitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	recs := r.history[applicationID]
	out := make([]*entity.TransitionRecord, 0, len(recs))
	for i := range recs {
		rec := recs[i]
		out = append(out, &rec)
	}
	return out, nil
}
