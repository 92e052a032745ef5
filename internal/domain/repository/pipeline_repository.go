package repository

import "github.com/werb210/staff-portal-api/internal/domain/entity"

// PipelineRepository define el puerto de persistencia del pipeline: etapa
// actual + historial append-only, atado a un silo.
//
// RecordTransition es la única operación sensible a concurrencia del sistema:
// debe ser atómica por applicationID con semántica compare-and-swap — si la
// etapa almacenada ya no es from, devuelve domain.ErrConflict y no escribe
// nada. Dos movers simultáneos que leyeron la misma etapa previa nunca
// tienen éxito ambos.
type PipelineRepository interface {
	// GetOrInitStage devuelve la asignación de etapa actual. Si la solicitud
	// aún no entró al pipeline, la crea implícitamente en StageNew
	// (first-touch, exactamente una vez).
	GetOrInitStage(applicationID string) (*entity.StageAssignment, error)
	// ListByStage devuelve los IDs de solicitud actualmente en la etapa.
	ListByStage(stage entity.Stage) ([]string, error)
	// RecordTransition aplica el CAS (etapa almacenada == rec.FromStage),
	// actualiza la etapa actual y añade rec al historial.
	RecordTransition(rec *entity.TransitionRecord) error
	// SetAssignee actualiza el staff asignado a la etapa sin generar transición.
	SetAssignee(applicationID, userID string) (*entity.StageAssignment, error)
	// History devuelve las transiciones de la solicitud, de más antigua a más reciente.
	History(applicationID string) ([]*entity.TransitionRecord, error)
}
