package usecase

import (
	"context"

	"github.com/werb210/staff-portal-api/internal/domain/entity"
)

// BlobStore puerto de almacenamiento binario para documentos. El contrato es
// la única superficie que este core conoce del storage: el proveedor concreto
// (disco, S3, memoria) es un adaptador intercambiable.
type BlobStore interface {
	Put(ctx context.Context, key string, content []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// SummaryPDFGenerator puerto de generación del PDF de resumen de una solicitud
// (dossier: solicitante, crédito, etapa actual e historial del pipeline).
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(
		ctx context.Context,
		app *entity.Application,
		product *entity.LenderProduct,
		assignment *entity.StageAssignment,
		history []*entity.TransitionRecord,
	) ([]byte, error)
}
