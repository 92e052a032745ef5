package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.LenderProductRepository = (*LenderProductRepo)(nil)

// LenderProductRepo implementación de LenderProductRepository sobre PostgreSQL, atada a un silo.
type LenderProductRepo struct {
	q    Querier
	silo entity.Silo
}

// NewLenderProductRepository construye el adaptador para un silo. Pasar pool o tx (Querier).
func NewLenderProductRepository(q Querier, silo entity.Silo) *LenderProductRepo {
	return &LenderProductRepo{q: q, silo: silo}
}

const lenderProductColumns = `id, silo, lender_name, name, category, min_amount, max_amount, rate_pct, active, created_at, updated_at`

// Create persiste un nuevo producto del silo.
func (r *LenderProductRepo) Create(product *entity.LenderProduct) error {
	query := `
		INSERT INTO lender_products (` + lenderProductColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, r.silo, product.LenderName, product.Name, product.Category,
		product.MinAmount, product.MaxAmount, product.RatePct, product.Active,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lender product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del silo; nil si no existe.
func (r *LenderProductRepo) GetByID(id string) (*entity.LenderProduct, error) {
	query := `SELECT ` + lenderProductColumns + ` FROM lender_products WHERE id = $1 AND silo = $2`
	var p entity.LenderProduct
	err := r.q.QueryRow(context.Background(), query, id, r.silo).Scan(
		&p.ID, &p.Silo, &p.LenderName, &p.Name, &p.Category,
		&p.MinAmount, &p.MaxAmount, &p.RatePct, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lender product: %w", err)
	}
	return &p, nil
}

// Update actualiza el producto.
func (r *LenderProductRepo) Update(product *entity.LenderProduct) error {
	query := `
		UPDATE lender_products SET
			lender_name = $3, name = $4, category = $5, min_amount = $6,
			max_amount = $7, rate_pct = $8, active = $9, updated_at = $10
		WHERE id = $1 AND silo = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, r.silo, product.LenderName, product.Name, product.Category,
		product.MinAmount, product.MaxAmount, product.RatePct, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lender product: %w", err)
	}
	return nil
}

// List lista productos del silo con paginación, más recientes primero.
func (r *LenderProductRepo) List(onlyActive bool, limit, offset int) ([]*entity.LenderProduct, error) {
	query := `SELECT ` + lenderProductColumns + `
		FROM lender_products
		WHERE silo = $1 AND ($2 = false OR active = true)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, r.silo, onlyActive, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lender products: %w", err)
	}
	defer rows.Close()

	var out []*entity.LenderProduct
	for rows.Next() {
		var p entity.LenderProduct
		if err := rows.Scan(
			&p.ID, &p.Silo, &p.LenderName, &p.Name, &p.Category,
			&p.MinAmount, &p.MaxAmount, &p.RatePct, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lender product: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
