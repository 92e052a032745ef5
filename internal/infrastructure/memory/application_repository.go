// Package memory implementa los puertos de persistencia sobre mapas en
// proceso. Es el adaptador por defecto en desarrollo y tests; cada silo
// recibe instancias nuevas (ningún mapa se comparte entre silos).
package memory

import (
	"sort"
	"sync"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo adaptador en memoria para solicitudes.
type ApplicationRepo struct {
	mu   sync.RWMutex
	apps map[string]entity.Application // copia por valor: el caller nunca ve el mapa
}

// NewApplicationRepository construye el adaptador vacío.
func NewApplicationRepository() *ApplicationRepo {
	return &ApplicationRepo{apps: make(map[string]entity.Application)}
}

// Create persiste una nueva solicitud.
func (r *ApplicationRepo) Create(app *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.apps[app.ID] = *app
	return nil
}

// GetByID obtiene una solicitud; nil si no existe.
func (r *ApplicationRepo) GetByID(id string) (*entity.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, nil
	}
	return &app, nil
}

// Update reemplaza el estado completo de la solicitud.
func (r *ApplicationRepo) Update(app *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; !ok {
		return domain.ErrNotFound
	}
	r.apps[app.ID] = *app
	return nil
}

// Delete elimina la solicitud.
func (r *ApplicationRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	return nil
}

// List lista solicitudes con filtro de estado opcional, más recientes primero.
func (r *ApplicationRepo) List(status string, limit, offset int) ([]*entity.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Application, 0, len(r.apps))
	for _, app := range r.apps {
		if status != "" && app.Status != status {
			continue
		}
		a := app
		all = append(all, &a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

// paginate aplica limit/offset sobre un slice ya ordenado.
func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
