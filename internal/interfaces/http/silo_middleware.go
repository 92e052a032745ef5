package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/application/silo"
	"github.com/werb210/staff-portal-api/internal/domain"
)

const localBundle = "silo_bundle"

// SiloMiddleware resuelve el parámetro :silo de la ruta contra el Registry y
// autoriza al caller por sus membresías del token. Debe usarse DESPUÉS de
// AuthMiddleware (necesita LocalSilos).
//
// Comportamiento:
//   - 404 Not Found → la clave no es un silo del conjunto fijo.
//   - 403 Forbidden → silo válido pero el caller no es miembro.
func SiloMiddleware(registry *silo.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("silo")
		bundle, err := registry.ResolveAuthorized(GetSilos(c), key)
		if err != nil {
			if errors.Is(err, domain.ErrUnknownSilo) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Code:    "UNKNOWN_SILO",
					Message: "el silo '" + key + "' no existe",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "sin membresía en el silo '" + key + "'",
			})
		}
		c.Locals(localBundle, bundle)
		return c.Next()
	}
}

// GetBundle devuelve el Bundle del silo resuelto (después de SiloMiddleware).
func GetBundle(c *fiber.Ctx) *silo.Bundle {
	v := c.Locals(localBundle)
	if v == nil {
		return nil
	}
	b, _ := v.(*silo.Bundle)
	return b
}
