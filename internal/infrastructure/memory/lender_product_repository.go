package memory

import (
	"sort"
	"sync"

	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.LenderProductRepository = (*LenderProductRepo)(nil)

// LenderProductRepo adaptador en memoria para productos de crédito.
type LenderProductRepo struct {
	mu       sync.RWMutex
	products map[string]entity.LenderProduct
}

// NewLenderProductRepository construye el adaptador vacío.
func NewLenderProductRepository() *LenderProductRepo {
	return &LenderProductRepo{products: make(map[string]entity.LenderProduct)}
}

// Create persiste un nuevo producto.
func (r *LenderProductRepo) Create(product *entity.LenderProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = *product
	return nil
}

// GetByID obtiene un producto; nil si no existe.
func (r *LenderProductRepo) GetByID(id string) (*entity.LenderProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Update reemplaza el producto.
func (r *LenderProductRepo) Update(product *entity.LenderProduct) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return nil
	}
	r.products[product.ID] = *product
	return nil
}

// List lista productos, más recientes primero.
func (r *LenderProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.LenderProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.LenderProduct, 0, len(r.products))
	for _, p := range r.products {
		if onlyActive && !p.Active {
			continue
		}
		cp := p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}
