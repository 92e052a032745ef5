package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleUnderwriter = "underwriter"
	RoleAgent       = "agent"
)

// User representa un miembro del staff. A diferencia de las demás entidades,
// un usuario puede pertenecer a varios silos: Silos define a cuáles puede entrar.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, underwriter, agent
	Silos        []Silo // membresías; vacío = sin acceso a ningún silo
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MemberOf indica si el usuario pertenece al silo.
func (u *User) MemberOf(s Silo) bool {
	for _, m := range u.Silos {
		if m == s {
			return true
		}
	}
	return false
}
