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

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implementación del puerto ApplicationRepository sobre
// PostgreSQL. El silo queda atado en la construcción y entra en el WHERE de
// cada query: una instancia jamás ve filas de otro silo.
type ApplicationRepo struct {
	q    Querier
	silo entity.Silo
}

// NewApplicationRepository construye el adaptador para un silo. Pasar pool o tx (Querier).
func NewApplicationRepository(q Querier, silo entity.Silo) *ApplicationRepo {
	return &ApplicationRepo{q: q, silo: silo}
}

const applicationColumns = `id, silo, applicant_name, applicant_email, applicant_phone,
	loan_amount, loan_purpose, product_id, status, assigned_to,
	submitted_at, submitted_by, approved_at, approved_by, completed_at, completed_by,
	created_at, updated_at`

// Create persiste una nueva solicitud del silo.
func (r *ApplicationRepo) Create(app *entity.Application) error {
	query := `
		INSERT INTO applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		app.ID, r.silo, app.ApplicantName, app.ApplicantEmail, app.ApplicantPhone,
		app.LoanAmount, app.LoanPurpose, app.ProductID, app.Status, nullable(app.AssignedTo),
		app.SubmittedAt, nullable(app.SubmittedBy), app.ApprovedAt, nullable(app.ApprovedBy),
		app.CompletedAt, nullable(app.CompletedBy), app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud del silo; nil si no existe.
func (r *ApplicationRepo) GetByID(id string) (*entity.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND silo = $2`
	app, err := scanApplication(r.q.QueryRow(context.Background(), query, id, r.silo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return app, nil
}

// Update persiste el estado completo de la solicitud.
func (r *ApplicationRepo) Update(app *entity.Application) error {
	query := `
		UPDATE applications SET
			applicant_name = $3, applicant_email = $4, applicant_phone = $5,
			loan_amount = $6, loan_purpose = $7, product_id = $8, status = $9, assigned_to = $10,
			submitted_at = $11, submitted_by = $12, approved_at = $13, approved_by = $14,
			completed_at = $15, completed_by = $16, updated_at = $17
		WHERE id = $1 AND silo = $2`
	tag, err := r.q.Exec(context.Background(), query,
		app.ID, r.silo, app.ApplicantName, app.ApplicantEmail, app.ApplicantPhone,
		app.LoanAmount, app.LoanPurpose, app.ProductID, app.Status, nullable(app.AssignedTo),
		app.SubmittedAt, nullable(app.SubmittedBy), app.ApprovedAt, nullable(app.ApprovedBy),
		app.CompletedAt, nullable(app.CompletedBy), app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la solicitud del silo.
func (r *ApplicationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM applications WHERE id = $1 AND silo = $2`, id, r.silo)
	if err != nil {
		return fmt.Errorf("delete application: %w", err)
	}
	return nil
}

// List lista solicitudes del silo con filtro de estado opcional, más recientes primero.
func (r *ApplicationRepo) List(status string, limit, offset int) ([]*entity.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE silo = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, r.silo, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []*entity.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// scanApplication lee una fila de applications; los text NULL vuelven como "".
func scanApplication(row pgx.Row) (*entity.Application, error) {
	var app entity.Application
	var assignedTo, submittedBy, approvedBy, completedBy *string
	err := row.Scan(
		&app.ID, &app.Silo, &app.ApplicantName, &app.ApplicantEmail, &app.ApplicantPhone,
		&app.LoanAmount, &app.LoanPurpose, &app.ProductID, &app.Status, &assignedTo,
		&app.SubmittedAt, &submittedBy, &app.ApprovedAt, &approvedBy,
		&app.CompletedAt, &completedBy, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.AssignedTo = deref(assignedTo)
	app.SubmittedBy = deref(submittedBy)
	app.ApprovedBy = deref(approvedBy)
	app.CompletedBy = deref(completedBy)
	return &app, nil
}

// nullable convierte "" a NULL para columnas text opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
