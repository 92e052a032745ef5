package repository

import "github.com/werb210/staff-portal-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios del staff.
// Los usuarios no pertenecen a un silo único (llevan membresías), así que
// este puerto es global al proceso, no por silo.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
