package pipeline_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/application/pipeline"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildUseCase arma el motor con stores en memoria y una solicitud sembrada.
func buildUseCase(t *testing.T, status string) (*pipeline.UseCase, *entity.Application) {
	t.Helper()
	appRepo := memory.NewApplicationRepository()
	pipeRepo := memory.NewPipelineRepository(entity.SiloBF)

	now := time.Now()
	app := &entity.Application{
		ID:             "app-1",
		Silo:           entity.SiloBF,
		ApplicantName:  "María Gómez",
		ApplicantEmail: "maria@example.com",
		LoanAmount:     decimal.NewFromInt(50_000),
		LoanPurpose:    "capital de trabajo",
		ProductID:      "term-loan-base",
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, appRepo.Create(app))
	return pipeline.NewUseCase(entity.SiloBF, pipeRepo, appRepo), app
}

// ──────────────────────────────────────────────────────────────────────────────
// GetStage — first-touch
// ──────────────────────────────────────────────────────────────────────────────

// La primera consulta de etapa crea la asignación en "new".
func TestGetStage_PrimeraConsultaCreaEnNew(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusDraft)

	out, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", out.Stage)
	assert.Equal(t, app.ID, out.ApplicationID)
}

func TestGetStage_SolicitudInexistente_RetornaNotFound(t *testing.T) {
	uc, _ := buildUseCase(t, entity.StatusDraft)

	_, err := uc.GetStage("no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// El first-touch no escribe historial: una solicitud nunca movida tiene
// historial vacío aunque ya se haya consultado su etapa.
func TestGetStage_FirstTouchNoGeneraHistorial(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusDraft)

	_, err := uc.GetStage(app.ID)
	require.NoError(t, err)

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	assert.Empty(t, hist.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Move — grafo y precondiciones
// ──────────────────────────────────────────────────────────────────────────────

func TestMove_AristaValida(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	out, err := uc.Move(app.ID, "in_review", "user-7", "toma de underwriting")
	require.NoError(t, err)
	assert.Equal(t, "new", out.FromStage)
	assert.Equal(t, "in_review", out.ToStage)
	assert.Equal(t, "user-7", out.Record.Actor)
	assert.Equal(t, "toma de underwriting", out.Record.Note)
	assert.NotEmpty(t, out.Record.ID)

	stage, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_review", stage.Stage)
}

// Un movimiento inválido no debe cambiar la etapa ni escribir historial.
func TestMove_AristaInvalida_NoMutaNada(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.Move(app.ID, "funded", "user-7", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))

	stage, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", stage.Stage, "un movimiento rechazado no debe mover la etapa")

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	assert.Empty(t, hist.Items, "un movimiento rechazado no debe escribir historial")
}

func TestMove_EtapaDesconocida_RetornaInvalidTransition(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.Move(app.ID, "archived", "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

func TestMove_SolicitudInexistente_RetornaNotFound(t *testing.T) {
	uc, _ := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.Move("no-existe", "in_review", "", "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// Repetir el mismo movimiento tras un éxito falla: la etapa ya avanzó y la
// arista ya no sale de la etapa actual.
func TestMove_NoEsIdempotente(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.Move(app.ID, "in_review", "", "")
	require.NoError(t, err)

	_, err = uc.Move(app.ID, "in_review", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
}

// sent_to_lender exige solicitud approved o completed.
func TestMove_SentToLender_RequiereAprobacion(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusReview) // aún no aprobada

	// Llevar la solicitud hasta ready_for_lenders por el grafo.
	_, err := uc.Move(app.ID, "in_review", "", "")
	require.NoError(t, err)
	_, err = uc.Move(app.ID, "ready_for_lenders", "", "")
	require.NoError(t, err)

	_, err = uc.Move(app.ID, "sent_to_lender", "", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotLenderReady))
	assert.Contains(t, err.Error(), "review", "el error debe nombrar el status actual")

	// La precondición fallida tampoco muta.
	stage, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "ready_for_lenders", stage.Stage)
}

func TestMove_SentToLender_ConSolicitudAprobada(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusApproved)

	_, err := uc.Move(app.ID, "in_review", "", "")
	require.NoError(t, err)
	_, err = uc.Move(app.ID, "ready_for_lenders", "", "")
	require.NoError(t, err)

	out, err := uc.Move(app.ID, "sent_to_lender", "underwriter-3", "paquete enviado")
	require.NoError(t, err)
	assert.Equal(t, "sent_to_lender", out.ToStage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial
// ──────────────────────────────────────────────────────────────────────────────

// El historial conserva todos los movimientos en orden cronológico y encadena:
// el to_stage de cada registro es el from_stage del siguiente.
func TestHistory_OrdenYEncadenamiento(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusApproved)

	moves := []string{"requires_docs", "in_review", "ready_for_lenders", "sent_to_lender", "funded", "closed"}
	for _, to := range moves {
		_, err := uc.Move(app.ID, to, "user-1", "")
		require.NoError(t, err, "mover a %s", to)
	}

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	require.Len(t, hist.Items, len(moves))

	assert.Equal(t, "new", hist.Items[0].FromStage, "el primer registro parte de new")
	for i, item := range hist.Items {
		assert.Equal(t, moves[i], item.ToStage)
		if i > 0 {
			assert.Equal(t, hist.Items[i-1].ToStage, item.FromStage,
				"el historial debe encadenar: registro %d", i)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia — un solo ganador
// ──────────────────────────────────────────────────────────────────────────────

// N movers concurrentes desde la misma etapa: exactamente uno gana, el resto
// recibe ErrConflict y el historial queda con un único registro.
func TestMove_Concurrente_UnSoloGanador(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	// Materializar la asignación antes de la carrera.
	_, err := uc.GetStage(app.ID)
	require.NoError(t, err)

	const movers = 16
	var wg sync.WaitGroup
	errs := make([]error, movers)
	for i := 0; i < movers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = uc.Move(app.ID, "in_review", "racer", "")
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrInvalidTransition):
			// El perdedor ve ErrConflict si pierde el CAS, o ErrInvalidTransition
			// si releyó la etapa ya avanzada antes de intentar.
			conflicts++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactamente un mover debe ganar")
	assert.Equal(t, movers-1, conflicts)

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	assert.Len(t, hist.Items, 1, "solo el ganador escribe historial")

	stage, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_review", stage.Stage)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablero y listados
// ──────────────────────────────────────────────────────────────────────────────

func TestBoard_ColumnasCompletas(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.GetStage(app.ID) // materializa en "new"
	require.NoError(t, err)

	board, err := uc.Board()
	require.NoError(t, err)
	require.Len(t, board.Columns, len(entity.AllStages()))

	byStage := make(map[string][]string)
	for _, col := range board.Columns {
		byStage[col.Stage] = col.ApplicationIDs
	}
	assert.Contains(t, byStage["new"], app.ID)
	assert.Empty(t, byStage["funded"])
}

func TestListByStage_EtapaDesconocida(t *testing.T) {
	uc, _ := buildUseCase(t, entity.StatusSubmitted)

	_, err := uc.ListByStage("archived")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de etapa
// ──────────────────────────────────────────────────────────────────────────────

// Asignar staff a la etapa no genera transición ni toca el historial.
func TestAssignStage_NoGeneraTransicion(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusSubmitted)

	out, err := uc.AssignStage(app.ID, "underwriter-9")
	require.NoError(t, err)
	assert.Equal(t, "underwriter-9", out.AssignedTo)
	assert.Equal(t, "new", out.Stage)

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	assert.Empty(t, hist.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo completo con rechazo de documentos: new → in_review → requires_docs →
// in_review → ready_for_lenders → sent_to_lender → funded → closed.
func TestMove_CicloCompletoConRechazoDeDocs(t *testing.T) {
	uc, app := buildUseCase(t, entity.StatusApproved)

	path := []string{"in_review", "requires_docs", "in_review", "ready_for_lenders", "sent_to_lender", "funded", "closed"}
	for _, to := range path {
		_, err := uc.Move(app.ID, to, "user-1", "")
		require.NoError(t, err, "mover a %s", to)
	}

	stage, err := uc.GetStage(app.ID)
	require.NoError(t, err)
	assert.Equal(t, "closed", stage.Stage)

	// closed es terminal: ningún movimiento posterior es válido.
	for _, to := range entity.AllStages() {
		_, err := uc.Move(app.ID, to.String(), "user-1", "")
		assert.Error(t, err, "closed no debe permitir mover a %s", to)
	}

	hist, err := uc.History(app.ID)
	require.NoError(t, err)
	assert.Len(t, hist.Items, len(path))
}
