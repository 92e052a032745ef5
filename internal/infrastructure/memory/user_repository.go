package memory

import (
	"strings"
	"sync"

	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo adaptador en memoria para usuarios del staff (global, no por silo).
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

// NewUserRepository construye el adaptador vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{users: make(map[string]entity.User)}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

// GetByID obtiene un usuario; nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// FindByEmail busca por email (case-insensitive); nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}
