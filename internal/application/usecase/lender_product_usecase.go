package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// Categorías válidas de producto de crédito.
var productCategories = map[string]bool{
	"term_loan":         true,
	"line_of_credit":    true,
	"equipment":         true,
	"invoice_factoring": true,
}

// LenderProductUseCase CRUD de productos de crédito de un silo.
type LenderProductUseCase struct {
	silo entity.Silo
	repo repository.LenderProductRepository
}

// NewLenderProductUseCase construye el caso de uso atado a un silo.
func NewLenderProductUseCase(silo entity.Silo, repo repository.LenderProductRepository) *LenderProductUseCase {
	return &LenderProductUseCase{silo: silo, repo: repo}
}

// Create crea un producto activo. MaxAmount en cero = sin tope.
func (uc *LenderProductUseCase) Create(in dto.CreateLenderProductRequest) (*dto.LenderProductResponse, error) {
	if strings.TrimSpace(in.LenderName) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: lender_name y name son requeridos", domain.ErrInvalidInput)
	}
	if !productCategories[in.Category] {
		return nil, fmt.Errorf("%w: category desconocida %q", domain.ErrInvalidInput, in.Category)
	}
	if in.MinAmount.IsNegative() || in.MaxAmount.IsNegative() || in.RatePct.IsNegative() {
		return nil, fmt.Errorf("%w: montos y tasa no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.MaxAmount.IsPositive() && in.MinAmount.GreaterThan(in.MaxAmount) {
		return nil, fmt.Errorf("%w: min_amount mayor que max_amount", domain.ErrInvalidInput)
	}
	now := time.Now()
	product := &entity.LenderProduct{
		ID:         uuid.New().String(),
		Silo:       uc.silo,
		LenderName: strings.TrimSpace(in.LenderName),
		Name:       strings.TrimSpace(in.Name),
		Category:   in.Category,
		MinAmount:  in.MinAmount,
		MaxAmount:  in.MaxAmount,
		RatePct:    in.RatePct,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toLenderProductResponse(product), nil
}

// GetByID obtiene un producto del silo.
func (uc *LenderProductUseCase) GetByID(id string) (*dto.LenderProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toLenderProductResponse(product), nil
}

// Update actualización parcial; Active=false desactiva el producto sin borrarlo.
func (uc *LenderProductUseCase) Update(id string, in dto.UpdateLenderProductRequest) (*dto.LenderProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.LenderName != nil {
		product.LenderName = strings.TrimSpace(*in.LenderName)
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		if !productCategories[*in.Category] {
			return nil, fmt.Errorf("%w: category desconocida %q", domain.ErrInvalidInput, *in.Category)
		}
		product.Category = *in.Category
	}
	if in.MinAmount != nil {
		product.MinAmount = *in.MinAmount
	}
	if in.MaxAmount != nil {
		product.MaxAmount = *in.MaxAmount
	}
	if in.RatePct != nil {
		product.RatePct = *in.RatePct
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if product.MinAmount.IsNegative() || product.MaxAmount.IsNegative() {
		return nil, fmt.Errorf("%w: montos no pueden ser negativos", domain.ErrInvalidInput)
	}
	if product.MaxAmount.IsPositive() && product.MinAmount.GreaterThan(product.MaxAmount) {
		return nil, fmt.Errorf("%w: min_amount mayor que max_amount", domain.ErrInvalidInput)
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toLenderProductResponse(product), nil
}

// List lista productos del silo con paginación.
func (uc *LenderProductUseCase) List(onlyActive bool, limit, offset int) (*dto.LenderProductListResponse, error) {
	list, err := uc.repo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LenderProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toLenderProductResponse(p))
	}
	return &dto.LenderProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toLenderProductResponse(p *entity.LenderProduct) *dto.LenderProductResponse {
	if p == nil {
		return nil
	}
	return &dto.LenderProductResponse{
		ID:         p.ID,
		Silo:       p.Silo.String(),
		LenderName: p.LenderName,
		Name:       p.Name,
		Category:   p.Category,
		MinAmount:  p.MinAmount,
		MaxAmount:  p.MaxAmount,
		RatePct:    p.RatePct,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
