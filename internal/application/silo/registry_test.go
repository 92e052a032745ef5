package silo_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/application/silo"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func memoryFactory(s entity.Silo) silo.Stores {
	return silo.Stores{
		Applications: memory.NewApplicationRepository(),
		Pipeline:     memory.NewPipelineRepository(s),
		Products:     memory.NewLenderProductRepository(),
		Documents:    memory.NewDocumentRepository(),
	}
}

func newRegistry() *silo.Registry {
	return silo.NewRegistry(memoryFactory, memory.NewBlobStore(), nil)
}

// seedProduct crea un producto en el silo del bundle.
func seedProduct(t *testing.T, b *silo.Bundle) string {
	t.Helper()
	out, err := b.Products.Create(dto.CreateLenderProductRequest{
		LenderName: "Meridian Lending",
		Name:       "Línea de crédito",
		Category:   "line_of_credit",
		MinAmount:  decimal.NewFromInt(5_000),
		MaxAmount:  decimal.NewFromInt(250_000),
		RatePct:    decimal.NewFromFloat(15.0),
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolve
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_TodosLosSilos(t *testing.T) {
	r := newRegistry()
	for _, s := range entity.AllSilos() {
		b, err := r.Resolve(s.String())
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, s, b.Silo)
	}
}

func TestResolve_ClaveDesconocida(t *testing.T) {
	r := newRegistry()
	for _, key := range []string{"XX", "", "bf", "BF "} {
		_, err := r.Resolve(key)
		assert.True(t, errors.Is(err, domain.ErrUnknownSilo), "clave %q debe fallar", key)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre silos
// ──────────────────────────────────────────────────────────────────────────────

// Una solicitud creada en BF jamás aparece en SLF: los stores son instancias
// separadas, no un filtro sobre un store compartido.
func TestAislamiento_SolicitudesNoSeCruzan(t *testing.T) {
	r := newRegistry()
	bf, err := r.Resolve("BF")
	require.NoError(t, err)
	slf, err := r.Resolve("SLF")
	require.NoError(t, err)

	productID := seedProduct(t, bf)
	created, err := bf.Applications.Create(dto.CreateApplicationRequest{
		ApplicantName:  "María Gómez",
		ApplicantEmail: "maria@example.com",
		LoanAmount:     decimal.NewFromInt(50_000),
		LoanPurpose:    "capital de trabajo",
		ProductID:      productID,
	})
	require.NoError(t, err)

	// Visible en BF.
	got, err := bf.Applications.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// Invisible en SLF, incluso con el mismo ID.
	_, err = slf.Applications.GetByID(created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := slf.Applications.List("", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

// El pipeline tampoco cruza: mover en BF no deja rastro en SLF.
func TestAislamiento_PipelineNoSeCruza(t *testing.T) {
	r := newRegistry()
	bf, _ := r.Resolve("BF")
	slf, _ := r.Resolve("SLF")

	productID := seedProduct(t, bf)
	created, err := bf.Applications.Create(dto.CreateApplicationRequest{
		ApplicantName:  "Juan Pérez",
		ApplicantEmail: "juan@example.com",
		LoanAmount:     decimal.NewFromInt(30_000),
		LoanPurpose:    "expansión",
		ProductID:      productID,
	})
	require.NoError(t, err)

	_, err = bf.Pipeline.Move(created.ID, "in_review", "user-1", "")
	require.NoError(t, err)

	_, err = slf.Pipeline.GetStage(created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	board, err := slf.Pipeline.Board()
	require.NoError(t, err)
	for _, col := range board.Columns {
		assert.Empty(t, col.ApplicationIDs, "el tablero de SLF debe estar vacío")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard — fail closed
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthorize_Miembro(t *testing.T) {
	err := silo.Authorize([]entity.Silo{entity.SiloBF, entity.SiloBI}, entity.SiloBI)
	assert.NoError(t, err)
}

func TestAuthorize_NoMiembro(t *testing.T) {
	err := silo.Authorize([]entity.Silo{entity.SiloBF}, entity.SiloSLF)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

// Membresías vacías o nil niegan todo: nunca fail open.
func TestAuthorize_SinMembresias_FailClosed(t *testing.T) {
	for _, s := range entity.AllSilos() {
		assert.True(t, errors.Is(silo.Authorize(nil, s), domain.ErrForbidden))
		assert.True(t, errors.Is(silo.Authorize([]entity.Silo{}, s), domain.ErrForbidden))
	}
}

// Claves desconocidas en el token se ignoran: no amplían ni tumban el acceso.
func TestAuthorizeKeys_IgnoraClavesDesconocidas(t *testing.T) {
	assert.NoError(t, silo.AuthorizeKeys([]string{"XX", "BF"}, entity.SiloBF))
	assert.True(t, errors.Is(
		silo.AuthorizeKeys([]string{"XX", "YY"}, entity.SiloBF), domain.ErrForbidden))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo: escalera de estados + pipeline sobre un mismo bundle
// ──────────────────────────────────────────────────────────────────────────────

// La misma solicitud queda bloqueada en sent_to_lender mientras está draft y
// submitted, y el mismo movimiento pasa tras Review+Approve. El historial
// final son exactamente los movimientos aceptados, encadenados.
func TestFlujoCompleto_LenderReadyDesbloqueaElMismoMovimiento(t *testing.T) {
	r := newRegistry()
	bf, err := r.Resolve("BF")
	require.NoError(t, err)

	productID := seedProduct(t, bf)
	created, err := bf.Applications.Create(dto.CreateApplicationRequest{
		ApplicantName:  "Lucía Torres",
		ApplicantEmail: "lucia@example.com",
		LoanAmount:     decimal.NewFromInt(80_000),
		LoanPurpose:    "compra de maquinaria",
		ProductID:      productID,
	})
	require.NoError(t, err)
	assert.Equal(t, "draft", created.Status)

	// Avanza por el grafo hasta la antesala de lenders.
	_, err = bf.Pipeline.Move(created.ID, "in_review", "user-1", "")
	require.NoError(t, err)
	_, err = bf.Pipeline.Move(created.ID, "ready_for_lenders", "user-1", "")
	require.NoError(t, err)

	// Bloqueada en draft.
	_, err = bf.Pipeline.Move(created.ID, "sent_to_lender", "user-1", "")
	assert.True(t, errors.Is(err, domain.ErrNotLenderReady))

	// Bloqueada también en submitted: submit no alcanza para lenders.
	_, err = bf.Applications.Submit(created.ID, "user-1")
	require.NoError(t, err)
	_, err = bf.Pipeline.Move(created.ID, "sent_to_lender", "user-1", "")
	assert.True(t, errors.Is(err, domain.ErrNotLenderReady))

	// La etapa no se movió con los intentos rechazados.
	stage, err := bf.Pipeline.GetStage(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ready_for_lenders", stage.Stage)

	// Review + Approve desbloquean el mismo movimiento.
	_, err = bf.Applications.Review(created.ID)
	require.NoError(t, err)
	_, err = bf.Applications.Approve(created.ID, "user-2")
	require.NoError(t, err)

	out, err := bf.Pipeline.Move(created.ID, "sent_to_lender", "user-1", "paquete enviado")
	require.NoError(t, err)
	assert.Equal(t, "ready_for_lenders", out.FromStage)
	assert.Equal(t, "sent_to_lender", out.ToStage)

	// El historial registra solo los tres movimientos aceptados, encadenados.
	history, err := bf.Pipeline.History(created.ID)
	require.NoError(t, err)
	require.Len(t, history.Items, 3)
	wantTo := []string{"in_review", "ready_for_lenders", "sent_to_lender"}
	prev := "new"
	for i, item := range history.Items {
		assert.Equal(t, prev, item.FromStage)
		assert.Equal(t, wantTo[i], item.ToStage)
		prev = item.ToStage
	}
}

func TestResolveAuthorized(t *testing.T) {
	r := newRegistry()

	b, err := r.ResolveAuthorized([]string{"BF", "SLF"}, "SLF")
	require.NoError(t, err)
	assert.Equal(t, entity.SiloSLF, b.Silo)

	_, err = r.ResolveAuthorized([]string{"BF"}, "SLF")
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	// Silo desconocido gana sobre la membresía: el caller no aprende si la
	// clave existe detrás de un 403.
	_, err = r.ResolveAuthorized([]string{"BF"}, "XX")
	assert.True(t, errors.Is(err, domain.ErrUnknownSilo))
}
