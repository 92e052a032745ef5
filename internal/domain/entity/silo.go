package entity

import "github.com/werb210/staff-portal-api/internal/domain"

// Silo identifica una partición aislada de datos (unidad de negocio).
// El conjunto es fijo y se crea al arranque del proceso; nunca se comparten
// stores mutables entre silos.
type Silo string

// Silos válidos.
const (
	SiloBF  Silo = "BF"
	SiloSLF Silo = "SLF"
	SiloBI  Silo = "BI"
)

// AllSilos devuelve el conjunto completo de silos, en orden estable.
func AllSilos() []Silo {
	return []Silo{SiloBF, SiloSLF, SiloBI}
}

// ParseSilo valida una clave de silo externa (ruta, header, seed).
func ParseSilo(key string) (Silo, error) {
	switch Silo(key) {
	case SiloBF, SiloSLF, SiloBI:
		return Silo(key), nil
	}
	return "", domain.ErrUnknownSilo
}

func (s Silo) String() string { return string(s) }
