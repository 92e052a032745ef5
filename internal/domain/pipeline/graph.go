// Package pipeline contiene las reglas puras del pipeline operativo:
// el grafo dirigido de etapas y sus consultas. Sin dependencias de
// persistencia ni de transporte.
package pipeline

import (
	"fmt"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
)

// graph aristas permitidas del pipeline. Toda transición que no aparezca aquí
// se rechaza. requires_docs es alcanzable desde casi todas las etapas para
// modelar los ciclos de rechazo de documentos; closed es terminal.
var graph = map[entity.Stage][]entity.Stage{
	entity.StageNew:             {entity.StageRequiresDocs, entity.StageInReview},
	entity.StageRequiresDocs:    {entity.StageInReview},
	entity.StageInReview:        {entity.StageReadyForLenders, entity.StageRequiresDocs},
	entity.StageReadyForLenders: {entity.StageSentToLender},
	entity.StageSentToLender:    {entity.StageFunded, entity.StageRequiresDocs},
	entity.StageFunded:          {entity.StageClosed},
	entity.StageClosed:          {},
}

// ValidStage indica si s es una etapa conocida del pipeline.
func ValidStage(s entity.Stage) bool {
	_, ok := graph[s]
	return ok
}

// CanMove indica si existe la arista from -> to.
func CanMove(from, to entity.Stage) bool {
	for _, next := range graph[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStages devuelve las etapas alcanzables desde from (copia, orden estable).
func NextStages(from entity.Stage) []entity.Stage {
	edges := graph[from]
	out := make([]entity.Stage, len(edges))
	copy(out, edges)
	return out
}

// CheckMove valida la arista from -> to y devuelve ErrInvalidTransition con
// detalle (etapa almacenada y etapa intentada) si no existe.
func CheckMove(from, to entity.Stage) error {
	if !ValidStage(to) {
		return fmt.Errorf("%w: etapa destino desconocida %q", domain.ErrInvalidTransition, to)
	}
	if !CanMove(from, to) {
		return fmt.Errorf("%w: de %q a %q", domain.ErrInvalidTransition, from, to)
	}
	return nil
}
