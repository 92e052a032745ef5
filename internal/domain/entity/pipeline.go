package entity

import "time"

// Stage posición operativa de una solicitud en el pipeline (distinta del Status del ciclo de vida).
type Stage string

// Etapas del pipeline. closed es terminal.
const (
	StageNew             Stage = "new"
	StageRequiresDocs    Stage = "requires_docs"
	StageInReview        Stage = "in_review"
	StageReadyForLenders Stage = "ready_for_lenders"
	StageSentToLender    Stage = "sent_to_lender"
	StageFunded          Stage = "funded"
	StageClosed          Stage = "closed"
)

// AllStages devuelve las etapas en orden de tablero.
func AllStages() []Stage {
	return []Stage{
		StageNew, StageRequiresDocs, StageInReview,
		StageReadyForLenders, StageSentToLender, StageFunded, StageClosed,
	}
}

func (s Stage) String() string { return string(s) }

// StageAssignment etapa actual de una solicitud. Única por (silo, applicationId);
// se crea implícitamente en StageNew la primera vez que se consulta.
type StageAssignment struct {
	Silo          Silo
	ApplicationID string
	Stage         Stage
	AssignedTo    string // UserID del staff que trabaja la etapa (opcional)
	UpdatedAt     time.Time
}

// TransitionRecord entrada inmutable de auditoría: un movimiento de etapa.
// Append-only: se crea exactamente una vez por transición exitosa y nunca se
// muta ni se borra.
type TransitionRecord struct {
	ID            string
	Silo          Silo
	ApplicationID string
	FromStage     Stage
	ToStage       Stage
	Actor         string // UserID que ejecutó el movimiento (opcional)
	Note          string
	CreatedAt     time.Time
}
