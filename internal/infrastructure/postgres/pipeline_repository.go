package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

var _ repository.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo implementación del puerto PipelineRepository sobre PostgreSQL.
// Recibe el pool (no un Querier) porque RecordTransition abre su propia
// transacción: el CAS sobre la etapa y el insert del historial deben
// confirmar juntos o no confirmar.
type PipelineRepo struct {
	pool *pgxpool.Pool
	silo entity.Silo
}

// NewPipelineRepository construye el adaptador para un silo.
func NewPipelineRepository(pool *pgxpool.Pool, silo entity.Silo) *PipelineRepo {
	return &PipelineRepo{pool: pool, silo: silo}
}

// GetOrInitStage devuelve la asignación actual; la primera consulta inserta
// la fila en "new" (ON CONFLICT DO NOTHING hace el first-touch idempotente
// frente a lectores concurrentes).
func (r *PipelineRepo) GetOrInitStage(applicationID string) (*entity.StageAssignment, error) {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO pipeline_stages (silo, application_id, stage, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (silo, application_id) DO NOTHING`,
		r.silo, applicationID, entity.StageNew)
	if err != nil {
		return nil, fmt.Errorf("init stage: %w", err)
	}
	return r.getStage(ctx, r.pool, applicationID)
}

func (r *PipelineRepo) getStage(ctx context.Context, q Querier, applicationID string) (*entity.StageAssignment, error) {
	var a entity.StageAssignment
	var assignedTo *string
	err := q.QueryRow(ctx, `
		SELECT silo, application_id, stage, assigned_to, updated_at
		FROM pipeline_stages WHERE silo = $1 AND application_id = $2`,
		r.silo, applicationID).Scan(&a.Silo, &a.ApplicationID, &a.Stage, &assignedTo, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	a.AssignedTo = deref(assignedTo)
	return &a, nil
}

// ListByStage devuelve los IDs actualmente en la etapa, por antigüedad de la asignación.
func (r *PipelineRepo) ListByStage(stage entity.Stage) ([]string, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT application_id FROM pipeline_stages
		WHERE silo = $1 AND stage = $2
		ORDER BY updated_at ASC, application_id ASC`,
		r.silo, stage)
	if err != nil {
		return nil, fmt.Errorf("list by stage: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stage row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// RecordTransition CAS + historial en una transacción. El UPDATE condicionado
// a stage = FromStage decide el ganador entre movers concurrentes: cero filas
// afectadas significa que otro mover llegó primero (ErrConflict).
func (r *PipelineRepo) RecordTransition(rec *entity.TransitionRecord) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// First-touch dentro de la misma tx: una solicitud nunca movida parte de "new".
	if _, err := tx.Exec(ctx, `
		INSERT INTO pipeline_stages (silo, application_id, stage, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (silo, application_id) DO NOTHING`,
		r.silo, rec.ApplicationID, entity.StageNew); err != nil {
		return fmt.Errorf("init stage: %w", err)
	}

	cmd, err := tx.Exec(ctx, `
		UPDATE pipeline_stages SET stage = $4, updated_at = $5
		WHERE silo = $1 AND application_id = $2 AND stage = $3`,
		r.silo, rec.ApplicationID, rec.FromStage, rec.ToStage, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		stored, serr := r.getStage(ctx, tx, rec.ApplicationID)
		if serr != nil {
			return fmt.Errorf("%w: la etapa ya no es %q", domain.ErrConflict, rec.FromStage)
		}
		return fmt.Errorf("%w: la etapa almacenada es %q, no %q", domain.ErrConflict, stored.Stage, rec.FromStage)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO pipeline_transitions (id, silo, application_id, from_stage, to_stage, actor, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, r.silo, rec.ApplicationID, rec.FromStage, rec.ToStage,
		nullable(rec.Actor), nullable(rec.Note), rec.CreatedAt); err != nil {
		return fmt.Errorf("insert transition: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// SetAssignee cambia el staff asignado a la etapa.
func (r *PipelineRepo) SetAssignee(applicationID, userID string) (*entity.StageAssignment, error) {
	ctx := context.Background()
	cmd, err := r.pool.Exec(ctx, `
		UPDATE pipeline_stages SET assigned_to = $3, updated_at = now()
		WHERE silo = $1 AND application_id = $2`,
		r.silo, applicationID, nullable(userID))
	if err != nil {
		return nil, fmt.Errorf("set assignee: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.getStage(ctx, r.pool, applicationID)
}

// History devuelve las transiciones de más antigua a más reciente.
func (r *PipelineRepo) History(applicationID string) ([]*entity.TransitionRecord, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, silo, application_id, from_stage, to_stage, actor, note, created_at
		FROM pipeline_transitions
		WHERE silo = $1 AND application_id = $2
		ORDER BY created_at ASC, id ASC`,
		r.silo, applicationID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransitionRecord
	for rows.Next() {
		var rec entity.TransitionRecord
		var actor, note *string
		if err := rows.Scan(&rec.ID, &rec.Silo, &rec.ApplicationID, &rec.FromStage,
			&rec.ToStage, &actor, &note, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		rec.Actor = deref(actor)
		rec.Note = deref(note)
		out = append(out, &rec)
	}
	return out, rows.Err()
}
