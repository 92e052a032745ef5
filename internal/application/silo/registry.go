// Package silo implementa el aislamiento multi-tenant del portal: el
// Registry construye un paquete de servicios por silo (stores recién
// creados, nunca compartidos) y el guard autoriza cada acceso.
package silo

import (
	"github.com/werb210/staff-portal-api/internal/application/pipeline"
	"github.com/werb210/staff-portal-api/internal/application/usecase"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// Stores repositorios de un silo. La StoreFactory los construye frescos por
// silo: el aislamiento es arquitectural (instancias separadas), no un filtro.
type Stores struct {
	Applications repository.ApplicationRepository
	Pipeline     repository.PipelineRepository
	Products     repository.LenderProductRepository
	Documents    repository.DocumentRepository
}

// StoreFactory construye los stores de un silo. El adaptador postgres ata el
// silo a cada query; el adaptador memory crea mapas nuevos por silo.
type StoreFactory func(s entity.Silo) Stores

// Bundle servicios de un silo. Todo lo que la capa HTTP puede tocar tras
// resolver el silo de la ruta.
type Bundle struct {
	Silo         entity.Silo
	Applications *usecase.ApplicationUseCase
	Pipeline     *pipeline.UseCase
	Products     *usecase.LenderProductUseCase
	Documents    *usecase.DocumentUseCase
	SummaryPDF   *usecase.SummaryPDFUseCase
}

// Registry mapea claves de silo a su Bundle. Se construye completo al
// arranque y es de solo lectura después: resolver nunca crea estado.
type Registry struct {
	bundles map[entity.Silo]*Bundle
}

// NewRegistry construye un Bundle por silo con stores frescos de la factory.
func NewRegistry(factory StoreFactory, blobs usecase.BlobStore, pdfGen usecase.SummaryPDFGenerator) *Registry {
	bundles := make(map[entity.Silo]*Bundle, len(entity.AllSilos()))
	for _, s := range entity.AllSilos() {
		stores := factory(s)
		bundles[s] = &Bundle{
			Silo:         s,
			Applications: usecase.NewApplicationUseCase(s, stores.Applications, stores.Products),
			Pipeline:     pipeline.NewUseCase(s, stores.Pipeline, stores.Applications),
			Products:     usecase.NewLenderProductUseCase(s, stores.Products),
			Documents:    usecase.NewDocumentUseCase(s, stores.Documents, stores.Applications, blobs),
			SummaryPDF:   usecase.NewSummaryPDFUseCase(stores.Applications, stores.Products, stores.Pipeline, pdfGen),
		}
	}
	return &Registry{bundles: bundles}
}

// Resolve devuelve el Bundle del silo. Claves fuera del conjunto fijo
// fallan con ErrUnknownSilo.
func (r *Registry) Resolve(key string) (*Bundle, error) {
	s, err := entity.ParseSilo(key)
	if err != nil {
		return nil, err
	}
	return r.bundles[s], nil
}

// ResolveAuthorized autoriza al caller contra el silo y resuelve el Bundle.
// Es el camino que usa la capa HTTP: guard primero, servicios después.
func (r *Registry) ResolveAuthorized(callerKeys []string, key string) (*Bundle, error) {
	s, err := entity.ParseSilo(key)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeKeys(callerKeys, s); err != nil {
		return nil, err
	}
	return r.bundles[s], nil
}
