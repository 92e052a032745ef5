package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LenderProduct producto de crédito ofrecido por un lender dentro de un silo.
// Las solicitudes referencian un producto y su monto debe caer en el rango.
type LenderProduct struct {
	ID         string
	Silo       Silo
	LenderName string
	Name       string
	Category   string // term_loan, line_of_credit, equipment, invoice_factoring
	MinAmount  decimal.Decimal
	MaxAmount  decimal.Decimal
	RatePct    decimal.Decimal // tasa anual de referencia
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AcceptsAmount indica si el monto solicitado cae dentro del rango del producto.
func (p *LenderProduct) AcceptsAmount(amount decimal.Decimal) bool {
	if amount.LessThan(p.MinAmount) {
		return false
	}
	if p.MaxAmount.IsPositive() && amount.GreaterThan(p.MaxAmount) {
		return false
	}
	return true
}
