package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// ApplicationUseCase ciclo de vida de solicitudes de un silo:
// draft -> submitted -> review -> approved -> completed, sin retrocesos.
// La posición operativa en el pipeline se maneja aparte (pipeline.UseCase).
type ApplicationUseCase struct {
	silo        entity.Silo
	repo        repository.ApplicationRepository
	productRepo repository.LenderProductRepository
}

// NewApplicationUseCase construye el caso de uso atado a un silo.
func NewApplicationUseCase(silo entity.Silo, repo repository.ApplicationRepository, productRepo repository.LenderProductRepository) *ApplicationUseCase {
	return &ApplicationUseCase{silo: silo, repo: repo, productRepo: productRepo}
}

// Create crea una solicitud en draft. Valida email, monto > 0, propósito y
// que el producto exista en este silo, esté activo y acepte el monto.
func (uc *ApplicationUseCase) Create(in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if strings.TrimSpace(in.ApplicantName) == "" {
		return nil, fmt.Errorf("%w: applicant_name requerido", domain.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.ApplicantEmail); err != nil {
		return nil, fmt.Errorf("%w: applicant_email malformado", domain.ErrInvalidInput)
	}
	if !in.LoanAmount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: loan_amount debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.LoanPurpose) == "" {
		return nil, fmt.Errorf("%w: loan_purpose requerido", domain.ErrInvalidInput)
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, fmt.Errorf("%w: producto %s no disponible en este silo", domain.ErrInvalidInput, in.ProductID)
	}
	if !product.AcceptsAmount(in.LoanAmount) {
		return nil, fmt.Errorf("%w: loan_amount fuera del rango del producto", domain.ErrInvalidInput)
	}

	now := time.Now()
	app := &entity.Application{
		ID:             uuid.New().String(),
		Silo:           uc.silo,
		ApplicantName:  strings.TrimSpace(in.ApplicantName),
		ApplicantEmail: in.ApplicantEmail,
		ApplicantPhone: in.ApplicantPhone,
		LoanAmount:     in.LoanAmount,
		LoanPurpose:    strings.TrimSpace(in.LoanPurpose),
		ProductID:      in.ProductID,
		Status:         entity.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// GetByID obtiene una solicitud del silo.
func (uc *ApplicationUseCase) GetByID(id string) (*dto.ApplicationResponse, error) {
	app, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// Submit pasa draft -> submitted y registra quién y cuándo.
func (uc *ApplicationUseCase) Submit(id, submittedBy string) (*dto.ApplicationResponse, error) {
	return uc.advance(id, entity.StatusSubmitted, func(app *entity.Application, now time.Time) {
		app.SubmittedAt = &now
		app.SubmittedBy = submittedBy
	})
}

// Review pasa submitted -> review (toma de la cola de underwriting).
func (uc *ApplicationUseCase) Review(id string) (*dto.ApplicationResponse, error) {
	return uc.advance(id, entity.StatusReview, nil)
}

// Approve pasa review -> approved y registra quién y cuándo.
func (uc *ApplicationUseCase) Approve(id, approvedBy string) (*dto.ApplicationResponse, error) {
	return uc.advance(id, entity.StatusApproved, func(app *entity.Application, now time.Time) {
		app.ApprovedAt = &now
		app.ApprovedBy = approvedBy
	})
}

// Complete pasa approved -> completed y registra quién y cuándo.
func (uc *ApplicationUseCase) Complete(id, completedBy string) (*dto.ApplicationResponse, error) {
	return uc.advance(id, entity.StatusCompleted, func(app *entity.Application, now time.Time) {
		app.CompletedAt = &now
		app.CompletedBy = completedBy
	})
}

// advance aplica un paso de la escalera de estados. mutar añade metadatos del paso.
func (uc *ApplicationUseCase) advance(id, to string, mutar func(*entity.Application, time.Time)) (*dto.ApplicationResponse, error) {
	app, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if !entity.StatusAdvances(app.Status, to) {
		return nil, fmt.Errorf("%w: de %q a %q", domain.ErrInvalidStatus, app.Status, to)
	}
	now := time.Now()
	app.Status = to
	app.UpdatedAt = now
	if mutar != nil {
		mutar(app, now)
	}
	if err := uc.repo.Update(app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// UpdateAssignment cambia el staff asignado. Permitido en cualquier estado.
func (uc *ApplicationUseCase) UpdateAssignment(id, assignee string) (*dto.ApplicationResponse, error) {
	app, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	app.AssignedTo = assignee
	app.UpdatedAt = time.Now()
	if err := uc.repo.Update(app); err != nil {
		return nil, err
	}
	return toApplicationResponse(app), nil
}

// Delete elimina una solicitud. Solo drafts: una vez enviada queda para auditoría.
func (uc *ApplicationUseCase) Delete(id string) error {
	app, err := uc.load(id)
	if err != nil {
		return err
	}
	if app.Status != entity.StatusDraft {
		return fmt.Errorf("%w: solo se eliminan solicitudes en draft", domain.ErrConflict)
	}
	return uc.repo.Delete(id)
}

// List lista solicitudes del silo con filtro de estado opcional y paginación.
func (uc *ApplicationUseCase) List(status string, limit, offset int) (*dto.ApplicationListResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, fmt.Errorf("%w: status desconocido %q", domain.ErrInvalidInput, status)
	}
	list, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApplicationResponse, 0, len(list))
	for _, app := range list {
		items = append(items, *toApplicationResponse(app))
	}
	return &dto.ApplicationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Entity devuelve la entidad cruda del silo (para otros casos de uso: pipeline, PDF).
func (uc *ApplicationUseCase) Entity(id string) (*entity.Application, error) {
	return uc.load(id)
}

func (uc *ApplicationUseCase) load(id string) (*entity.Application, error) {
	app, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

func toApplicationResponse(app *entity.Application) *dto.ApplicationResponse {
	if app == nil {
		return nil
	}
	return &dto.ApplicationResponse{
		ID:             app.ID,
		Silo:           app.Silo.String(),
		ApplicantName:  app.ApplicantName,
		ApplicantEmail: app.ApplicantEmail,
		ApplicantPhone: app.ApplicantPhone,
		LoanAmount:     app.LoanAmount,
		LoanPurpose:    app.LoanPurpose,
		ProductID:      app.ProductID,
		Status:         app.Status,
		AssignedTo:     app.AssignedTo,
		SubmittedAt:    app.SubmittedAt,
		SubmittedBy:    app.SubmittedBy,
		ApprovedAt:     app.ApprovedAt,
		ApprovedBy:     app.ApprovedBy,
		CompletedAt:    app.CompletedAt,
		CompletedBy:    app.CompletedBy,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}
