package memory

import (
	"context"
	"sync"

	"github.com/werb210/staff-portal-api/internal/application/usecase"
	"github.com/werb210/staff-portal-api/internal/domain"
)

var _ usecase.BlobStore = (*BlobStore)(nil)

// BlobStore contenido binario de documentos en memoria. Cumple el contrato
// del puerto; un adaptador de disco o de nube lo sustituye sin tocar los
// casos de uso.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore construye el store vacío.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Put guarda una copia del contenido bajo la clave.
func (s *BlobStore) Put(_ context.Context, key string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(content))
	copy(cp, content)
	s.blobs[key] = cp
	return nil
}

// Get devuelve una copia del contenido; ErrNotFound si la clave no existe.
func (s *BlobStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.blobs[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp, nil
}

// Delete elimina el contenido.
func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
