package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una solicitud de crédito. La escalera es
// monótona: draft -> submitted -> review -> approved -> completed; la API
// pública no permite retrocesos.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReview    = "review"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
)

// statusRank posición de cada estado en la escalera (para validar avances).
var statusRank = map[string]int{
	StatusDraft:     0,
	StatusSubmitted: 1,
	StatusReview:    2,
	StatusApproved:  3,
	StatusCompleted: 4,
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// StatusAdvances indica si pasar de from a to avanza exactamente un paso en la escalera.
func StatusAdvances(from, to string) bool {
	fr, okF := statusRank[from]
	tr, okT := statusRank[to]
	return okF && okT && tr == fr+1
}

// LenderReady indica si el estado habilita el envío a lenders.
func LenderReady(status string) bool {
	return status == StatusApproved || status == StatusCompleted
}

// Application representa una solicitud de crédito dentro de un silo.
type Application struct {
	ID             string
	Silo           Silo
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	LoanAmount     decimal.Decimal
	LoanPurpose    string
	ProductID      string // referencia a LenderProduct del mismo silo
	Status         string // draft, submitted, review, approved, completed
	AssignedTo     string // UserID del staff asignado (opcional)
	SubmittedAt    *time.Time
	SubmittedBy    string
	ApprovedAt     *time.Time
	ApprovedBy     string
	CompletedAt    *time.Time
	CompletedBy    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
