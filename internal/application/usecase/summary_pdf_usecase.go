package usecase

import (
	"context"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// SummaryPDFUseCase genera el dossier PDF de una solicitud: datos del
// solicitante, condiciones del crédito, etapa actual e historial del pipeline.
type SummaryPDFUseCase struct {
	appRepo      repository.ApplicationRepository
	productRepo  repository.LenderProductRepository
	pipelineRepo repository.PipelineRepository
	generator    SummaryPDFGenerator
}

// NewSummaryPDFUseCase construye el caso de uso.
func NewSummaryPDFUseCase(
	appRepo repository.ApplicationRepository,
	productRepo repository.LenderProductRepository,
	pipelineRepo repository.PipelineRepository,
	generator SummaryPDFGenerator,
) *SummaryPDFUseCase {
	return &SummaryPDFUseCase{
		appRepo:      appRepo,
		productRepo:  productRepo,
		pipelineRepo: pipelineRepo,
		generator:    generator,
	}
}

// Generate arma el dossier y devuelve los bytes del PDF.
func (uc *SummaryPDFUseCase) Generate(ctx context.Context, applicationID string) ([]byte, error) {
	app, err := uc.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}

	// El producto puede haber sido desactivado después del alta; el PDF lo muestra igual.
	product, err := uc.productRepo.GetByID(app.ProductID)
	if err != nil {
		return nil, err
	}

	assignment, err := uc.pipelineRepo.GetOrInitStage(applicationID)
	if err != nil {
		return nil, err
	}
	history, err := uc.pipelineRepo.History(applicationID)
	if err != nil {
		return nil, err
	}

	return uc.generator.GenerateSummaryPDF(ctx, app, product, assignment, history)
}
