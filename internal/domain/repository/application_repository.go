package repository

import "github.com/werb210/staff-portal-api/internal/domain/entity"

// ApplicationRepository define el puerto de persistencia para solicitudes (DIP).
// Cada instancia está atada a exactamente un silo: ningún método recibe ni
// expone datos de otro silo.
type ApplicationRepository interface {
	Create(app *entity.Application) error
	GetByID(id string) (*entity.Application, error)
	// Update persiste el estado completo de la solicitud (status, asignación, metadatos).
	Update(app *entity.Application) error
	// Delete elimina la solicitud. El caso de uso garantiza que solo se borran drafts.
	Delete(id string) error
	// List lista solicitudes del silo; status vacío = todas.
	List(status string, limit, offset int) ([]*entity.Application, error)
}
