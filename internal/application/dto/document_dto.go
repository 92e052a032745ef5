package dto

import "time"

// UploadDocumentRequest alta de documento (metadatos; el contenido va en el body binario).
type UploadDocumentRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Category    string `json:"category"`
}

// ReviewDocumentRequest aceptación o rechazo de un documento por el staff.
type ReviewDocumentRequest struct {
	Status string `json:"status"` // accepted | rejected
	Note   string `json:"note,omitempty"`
}

// DocumentResponse representación de un documento en respuestas.
type DocumentResponse struct {
	ID            string    `json:"id"`
	Silo          string    `json:"silo"`
	ApplicationID string    `json:"application_id"`
	FileName      string    `json:"file_name"`
	ContentType   string    `json:"content_type"`
	SizeBytes     int64     `json:"size_bytes"`
	Category      string    `json:"category"`
	Status        string    `json:"status"`
	ReviewNote    string    `json:"review_note,omitempty"`
	UploadedBy    string    `json:"uploaded_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DocumentListResponse documentos de una solicitud.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
}
