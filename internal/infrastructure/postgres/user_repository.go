package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL. Global al
// proceso: las membresías de silo van en la columna silos (text[]).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, silos, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		siloStrings(user.Silos), user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario; nil si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.findOne(`SELECT id, email, password_hash, name, role, silos, status, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// FindByEmail busca por email (case-insensitive); nil si no existe.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	return r.findOne(`SELECT id, email, password_hash, name, role, silos, status, created_at, updated_at
		FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) findOne(query string, arg any) (*entity.User, error) {
	var u entity.User
	var silos []string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &silos,
		&u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	for _, key := range silos {
		if s, perr := entity.ParseSilo(key); perr == nil {
			u.Silos = append(u.Silos, s)
		}
	}
	return &u, nil
}

func siloStrings(silos []entity.Silo) []string {
	out := make([]string, 0, len(silos))
	for _, s := range silos {
		out = append(out, s.String())
	}
	return out
}
