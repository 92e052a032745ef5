package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateApplicationRequest alta de solicitud (queda en draft).
type CreateApplicationRequest struct {
	ApplicantName  string          `json:"applicant_name"`
	ApplicantEmail string          `json:"applicant_email"`
	ApplicantPhone string          `json:"applicant_phone"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	LoanPurpose    string          `json:"loan_purpose"`
	ProductID      string          `json:"product_id"`
}

// AssignRequest cambio de staff asignado (solicitud o etapa).
type AssignRequest struct {
	AssignedTo string `json:"assigned_to"`
}

// ApplicationResponse representación de una solicitud en respuestas.
type ApplicationResponse struct {
	ID             string          `json:"id"`
	Silo           string          `json:"silo"`
	ApplicantName  string          `json:"applicant_name"`
	ApplicantEmail string          `json:"applicant_email"`
	ApplicantPhone string          `json:"applicant_phone,omitempty"`
	LoanAmount     decimal.Decimal `json:"loan_amount"`
	LoanPurpose    string          `json:"loan_purpose"`
	ProductID      string          `json:"product_id"`
	Status         string          `json:"status"`
	AssignedTo     string          `json:"assigned_to,omitempty"`
	SubmittedAt    *time.Time      `json:"submitted_at,omitempty"`
	SubmittedBy    string          `json:"submitted_by,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy     string          `json:"approved_by,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	CompletedBy    string          `json:"completed_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ApplicationListResponse listado paginado de solicitudes.
type ApplicationListResponse struct {
	Items []ApplicationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
