package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL, atada a un silo.
// Solo metadatos: el contenido vive detrás del puerto BlobStore.
type DocumentRepo struct {
	q    Querier
	silo entity.Silo
}

// NewDocumentRepository construye el adaptador para un silo. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier, silo entity.Silo) *DocumentRepo {
	return &DocumentRepo{q: q, silo: silo}
}

const documentColumns = `id, silo, application_id, file_name, content_type, size_bytes,
	category, status, review_note, uploaded_by, created_at, updated_at`

// Create persiste un nuevo metadato de documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, r.silo, doc.ApplicationID, doc.FileName, doc.ContentType, doc.SizeBytes,
		doc.Category, doc.Status, nullable(doc.ReviewNote), nullable(doc.UploadedBy),
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento del silo; nil si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND silo = $2`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id, r.silo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Update actualiza estado de revisión y nota.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents SET status = $3, review_note = $4, updated_at = $5
		WHERE id = $1 AND silo = $2`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, r.silo, doc.Status, nullable(doc.ReviewNote), doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina el metadato del silo.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM documents WHERE id = $1 AND silo = $2`, id, r.silo)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// ListByApplication documentos de una solicitud, más antiguos primero.
func (r *DocumentRepo) ListByApplication(applicationID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE silo = $1 AND application_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, r.silo, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var reviewNote, uploadedBy *string
	err := row.Scan(
		&doc.ID, &doc.Silo, &doc.ApplicationID, &doc.FileName, &doc.ContentType, &doc.SizeBytes,
		&doc.Category, &doc.Status, &reviewNote, &uploadedBy, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.ReviewNote = deref(reviewNote)
	doc.UploadedBy = deref(uploadedBy)
	return &doc, nil
}
