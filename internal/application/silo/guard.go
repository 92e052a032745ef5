package silo

import (
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
)

// Authorize verifica que el caller (con sus membresías de silo) pueda operar
// sobre el silo solicitado. Chequeo puro, sin efectos: debe invocarse antes
// de que cualquier lectura o escritura llegue a los stores de un silo.
//
// Un conjunto de membresías vacío o nil niega el acceso a todos los silos
// (fail closed, nunca fail open).
func Authorize(callerSilos []entity.Silo, requested entity.Silo) error {
	for _, s := range callerSilos {
		if s == requested {
			return nil
		}
	}
	return domain.ErrForbidden
}

// AuthorizeKeys variante sobre claves crudas (claims del JWT). Claves
// desconocidas en el conjunto del caller se ignoran en lugar de fallar: una
// membresía corrupta no debe ampliar ni tumbar el acceso al resto.
func AuthorizeKeys(callerKeys []string, requested entity.Silo) error {
	silos := make([]entity.Silo, 0, len(callerKeys))
	for _, key := range callerKeys {
		if s, err := entity.ParseSilo(key); err == nil {
			silos = append(silos, s)
		}
	}
	return Authorize(silos, requested)
}
