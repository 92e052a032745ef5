package memory

import (
	"sort"
	"sync"

	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo adaptador en memoria para metadatos de documentos.
type DocumentRepo struct {
	mu   sync.RWMutex
	docs map[string]entity.Document
}

// NewDocumentRepository construye el adaptador vacío.
func NewDocumentRepository() *DocumentRepo {
	return &DocumentRepo{docs: make(map[string]entity.Document)}
}

// Create persiste un nuevo documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = *doc
	return nil
}

// GetByID obtiene un documento; nil si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return &doc, nil
}

// Update reemplaza el documento.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return nil
	}
	r.docs[doc.ID] = *doc
	return nil
}

// Delete elimina el documento.
func (r *DocumentRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

// ListByApplication documentos de una solicitud, más antiguos primero.
func (r *DocumentRepo) ListByApplication(applicationID string) ([]*entity.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Document, 0)
	for _, doc := range r.docs {
		if doc.ApplicationID == applicationID {
			cp := doc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
