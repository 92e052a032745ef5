package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLenderProductRequest alta de producto de crédito.
type CreateLenderProductRequest struct {
	LenderName string          `json:"lender_name"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	MinAmount  decimal.Decimal `json:"min_amount"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
	RatePct    decimal.Decimal `json:"rate_pct"`
}

// UpdateLenderProductRequest actualización parcial (punteros = campo opcional).
type UpdateLenderProductRequest struct {
	LenderName *string          `json:"lender_name,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Category   *string          `json:"category,omitempty"`
	MinAmount  *decimal.Decimal `json:"min_amount,omitempty"`
	MaxAmount  *decimal.Decimal `json:"max_amount,omitempty"`
	RatePct    *decimal.Decimal `json:"rate_pct,omitempty"`
	Active     *bool            `json:"active,omitempty"`
}

// LenderProductResponse representación de un producto en respuestas.
type LenderProductResponse struct {
	ID         string          `json:"id"`
	Silo       string          `json:"silo"`
	LenderName string          `json:"lender_name"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	MinAmount  decimal.Decimal `json:"min_amount"`
	MaxAmount  decimal.Decimal `json:"max_amount"`
	RatePct    decimal.Decimal `json:"rate_pct"`
	Active     bool            `json:"active"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LenderProductListResponse listado paginado de productos.
type LenderProductListResponse struct {
	Items []LenderProductResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
