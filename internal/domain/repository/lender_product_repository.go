package repository

import "github.com/werb210/staff-portal-api/internal/domain/entity"

// LenderProductRepository puerto de persistencia para productos de crédito, atado a un silo.
type LenderProductRepository interface {
	Create(product *entity.LenderProduct) error
	GetByID(id string) (*entity.LenderProduct, error)
	Update(product *entity.LenderProduct) error
	// List lista productos del silo; onlyActive filtra los inactivos.
	List(onlyActive bool, limit, offset int) ([]*entity.LenderProduct, error)
}
