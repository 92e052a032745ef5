package repository

import "github.com/werb210/staff-portal-api/internal/domain/entity"

// DocumentRepository puerto de persistencia para metadatos de documentos, atado a un silo.
// El contenido binario vive detrás de BlobStore (puerto de los casos de uso).
type DocumentRepository interface {
	Create(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	Update(doc *entity.Document) error
	Delete(id string) error
	ListByApplication(applicationID string) ([]*entity.Document, error)
}
