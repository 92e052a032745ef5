// Package pipeline implementa el motor de transiciones del pipeline
// operativo: el único componente que mueve solicitudes de etapa.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	domainpipeline "github.com/werb210/staff-portal-api/internal/domain/pipeline"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// UseCase motor de transiciones atado a un silo. Valida el grafo de etapas,
// cruza el estado de la solicitud para la precondición de lenders y delega
// el CAS al repositorio. Nada se reintenta: toda falla sube al caller.
type UseCase struct {
	silo    entity.Silo
	repo    repository.PipelineRepository
	appRepo repository.ApplicationRepository
}

// NewUseCase construye el motor.
func NewUseCase(silo entity.Silo, repo repository.PipelineRepository, appRepo repository.ApplicationRepository) *UseCase {
	return &UseCase{silo: silo, repo: repo, appRepo: appRepo}
}

// Move mueve la solicitud a toStage.
//
//  1. La solicitud debe existir en este silo.
//  2. Se carga la etapa actual (first-touch crea la asignación en "new").
//  3. (actual, toStage) debe ser una arista del grafo; si no, ErrInvalidTransition.
//  4. Para sent_to_lender la solicitud debe estar approved o completed; si no, ErrNotLenderReady.
//     El estado se lee antes del CAS; un cambio de estado concurrente puede dejar
//     esa lectura vieja, pero la escalera de estados es monótona y una solicitud
//     lender-ready nunca deja de serlo, así que la precondición no se invalida.
//  5. RecordTransition aplica el CAS; un mover concurrente recibe ErrConflict sin reintento.
//
// Move no es idempotente: repetir la misma llamada tras un éxito falla con
// ErrInvalidTransition porque la etapa ya avanzó.
func (uc *UseCase) Move(applicationID, toStage, actor, note string) (*dto.TransitionResponse, error) {
	app, err := uc.loadApplication(applicationID)
	if err != nil {
		return nil, err
	}

	assignment, err := uc.repo.GetOrInitStage(applicationID)
	if err != nil {
		return nil, err
	}

	to := entity.Stage(toStage)
	if err := domainpipeline.CheckMove(assignment.Stage, to); err != nil {
		return nil, err
	}
	if to == entity.StageSentToLender && !entity.LenderReady(app.Status) {
		return nil, fmt.Errorf("%w: status actual %q", domain.ErrNotLenderReady, app.Status)
	}

	rec := &entity.TransitionRecord{
		ID:            uuid.New().String(),
		Silo:          uc.silo,
		ApplicationID: applicationID,
		FromStage:     assignment.Stage,
		ToStage:       to,
		Actor:         actor,
		Note:          note,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.RecordTransition(rec); err != nil {
		// ErrConflict de un mover concurrente sube tal cual: el caller relee y decide.
		return nil, err
	}

	return &dto.TransitionResponse{
		FromStage: assignment.Stage.String(),
		ToStage:   to.String(),
		Record:    toTransitionRecordResponse(rec),
	}, nil
}

// GetStage devuelve la etapa actual; la primera consulta crea la asignación en "new".
func (uc *UseCase) GetStage(applicationID string) (*dto.StageResponse, error) {
	if _, err := uc.loadApplication(applicationID); err != nil {
		return nil, err
	}
	assignment, err := uc.repo.GetOrInitStage(applicationID)
	if err != nil {
		return nil, err
	}
	return toStageResponse(assignment), nil
}

// ListByStage devuelve los IDs de solicitud actualmente en la etapa.
func (uc *UseCase) ListByStage(stage string) ([]string, error) {
	s := entity.Stage(stage)
	if !domainpipeline.ValidStage(s) {
		return nil, fmt.Errorf("%w: etapa desconocida %q", domain.ErrInvalidInput, stage)
	}
	return uc.repo.ListByStage(s)
}

// Board devuelve el tablero completo del silo: cada etapa con sus solicitudes.
func (uc *UseCase) Board() (*dto.BoardResponse, error) {
	out := &dto.BoardResponse{Columns: make([]dto.BoardColumnResponse, 0, len(entity.AllStages()))}
	for _, stage := range entity.AllStages() {
		ids, err := uc.repo.ListByStage(stage)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, dto.BoardColumnResponse{
			Stage:          stage.String(),
			ApplicationIDs: ids,
		})
	}
	return out, nil
}

// AssignStage cambia el staff asignado a la etapa sin generar transición.
func (uc *UseCase) AssignStage(applicationID, userID string) (*dto.StageResponse, error) {
	if _, err := uc.loadApplication(applicationID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetOrInitStage(applicationID); err != nil {
		return nil, err
	}
	assignment, err := uc.repo.SetAssignee(applicationID, userID)
	if err != nil {
		return nil, err
	}
	return toStageResponse(assignment), nil
}

// History devuelve el historial de transiciones, de más antiguo a más reciente.
func (uc *UseCase) History(applicationID string) (*dto.HistoryResponse, error) {
	if _, err := uc.loadApplication(applicationID); err != nil {
		return nil, err
	}
	records, err := uc.repo.History(applicationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransitionRecordResponse, 0, len(records))
	for _, rec := range records {
		items = append(items, toTransitionRecordResponse(rec))
	}
	return &dto.HistoryResponse{ApplicationID: applicationID, Items: items}, nil
}

// HistoryRecords devuelve el historial como entidades (para el PDF de resumen).
func (uc *UseCase) HistoryRecords(applicationID string) ([]*entity.TransitionRecord, error) {
	if _, err := uc.loadApplication(applicationID); err != nil {
		return nil, err
	}
	return uc.repo.History(applicationID)
}

func (uc *UseCase) loadApplication(id string) (*entity.Application, error) {
	app, err := uc.appRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	return app, nil
}

func toStageResponse(a *entity.StageAssignment) *dto.StageResponse {
	return &dto.StageResponse{
		ApplicationID: a.ApplicationID,
		Stage:         a.Stage.String(),
		AssignedTo:    a.AssignedTo,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toTransitionRecordResponse(rec *entity.TransitionRecord) dto.TransitionRecordResponse {
	return dto.TransitionRecordResponse{
		ID:            rec.ID,
		ApplicationID: rec.ApplicationID,
		FromStage:     rec.FromStage.String(),
		ToStage:       rec.ToStage.String(),
		Actor:         rec.Actor,
		Note:          rec.Note,
		CreatedAt:     rec.CreatedAt,
	}
}
