package dto

import "time"

// MoveStageRequest petición de movimiento de etapa.
type MoveStageRequest struct {
	ToStage string `json:"to_stage"`
	Note    string `json:"note,omitempty"`
}

// StageResponse etapa actual de una solicitud.
type StageResponse struct {
	ApplicationID string    `json:"application_id"`
	Stage         string    `json:"stage"`
	AssignedTo    string    `json:"assigned_to,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TransitionResponse resultado de un movimiento: par anterior/nuevo + registro de auditoría.
type TransitionResponse struct {
	FromStage string                   `json:"from_stage"`
	ToStage   string                   `json:"to_stage"`
	Record    TransitionRecordResponse `json:"record"`
}

// TransitionRecordResponse entrada del historial de transiciones.
type TransitionRecordResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"application_id"`
	FromStage     string    `json:"from_stage"`
	ToStage       string    `json:"to_stage"`
	Actor         string    `json:"actor,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryResponse historial completo, de más antiguo a más reciente.
type HistoryResponse struct {
	ApplicationID string                     `json:"application_id"`
	Items         []TransitionRecordResponse `json:"items"`
}

// BoardColumnResponse columna del tablero: una etapa con sus solicitudes.
type BoardColumnResponse struct {
	Stage          string   `json:"stage"`
	ApplicationIDs []string `json:"application_ids"`
}

// BoardResponse tablero completo del silo.
type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}
