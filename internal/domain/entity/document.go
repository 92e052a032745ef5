package entity

import "time"

// Estados de revisión de un documento adjunto.
const (
	DocumentPending  = "pending"
	DocumentAccepted = "accepted"
	DocumentRejected = "rejected"
)

// Categorías de documento habituales en originación.
const (
	DocBankStatements = "bank_statements"
	DocTaxReturns     = "tax_returns"
	DocFinancials     = "financial_statements"
	DocIdentity       = "identity"
	DocOther          = "other"
)

// Document metadato de un documento adjunto a una solicitud. El contenido
// binario vive detrás del puerto BlobStore; aquí solo la referencia.
type Document struct {
	ID            string
	Silo          Silo
	ApplicationID string
	FileName      string
	ContentType   string
	SizeBytes     int64
	Category      string // bank_statements, tax_returns, ...
	Status        string // pending, accepted, rejected
	ReviewNote    string
	UploadedBy    string // UserID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
