package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/application/usecase"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
)

// buildDocUseCase arma el caso de uso con una solicitud sembrada.
func buildDocUseCase(t *testing.T) (*usecase.DocumentUseCase, string) {
	t.Helper()
	appRepo := memory.NewApplicationRepository()
	now := time.Now()
	app := &entity.Application{
		ID:             "app-1",
		Silo:           entity.SiloBF,
		ApplicantName:  "María Gómez",
		ApplicantEmail: "maria@example.com",
		LoanAmount:     decimal.NewFromInt(50_000),
		LoanPurpose:    "capital de trabajo",
		Status:         entity.StatusSubmitted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, appRepo.Create(app))
	uc := usecase.NewDocumentUseCase(entity.SiloBF, memory.NewDocumentRepository(), appRepo, memory.NewBlobStore())
	return uc, app.ID
}

func uploadReq() dto.UploadDocumentRequest {
	return dto.UploadDocumentRequest{
		FileName:    "extractos.pdf",
		ContentType: "application/pdf",
		Category:    entity.DocBankStatements,
	}
}

func TestUpload_GuardaMetadatoYContenido(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	ctx := context.Background()
	content := []byte("%PDF-1.7 contenido de prueba")

	out, err := uc.Upload(ctx, appID, "agent-1", uploadReq(), content)
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentPending, out.Status)
	assert.Equal(t, int64(len(content)), out.SizeBytes)

	// El contenido completo vuelve en el download.
	meta, got, err := uc.Download(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, content, got)
	assert.Equal(t, "extractos.pdf", meta.FileName)
}

func TestUpload_SolicitudInexistente(t *testing.T) {
	uc, _ := buildDocUseCase(t)

	_, err := uc.Upload(context.Background(), "no-existe", "agent-1", uploadReq(), []byte("x"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpload_ContenidoVacio(t *testing.T) {
	uc, appID := buildDocUseCase(t)

	_, err := uc.Upload(context.Background(), appID, "agent-1", uploadReq(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUpload_CategoriaDesconocida(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	in := uploadReq()
	in.Category = "selfies"

	_, err := uc.Upload(context.Background(), appID, "agent-1", in, []byte("x"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Un documento solo se revisa una vez: la segunda revisión es conflicto.
func TestReview_SoloUnaVez(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	ctx := context.Background()

	doc, err := uc.Upload(ctx, appID, "agent-1", uploadReq(), []byte("x"))
	require.NoError(t, err)

	out, err := uc.Review(doc.ID, dto.ReviewDocumentRequest{Status: entity.DocumentRejected, Note: "ilegible"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentRejected, out.Status)
	assert.Equal(t, "ilegible", out.ReviewNote)

	_, err = uc.Review(doc.ID, dto.ReviewDocumentRequest{Status: entity.DocumentAccepted})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestReview_StatusInvalido(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	doc, err := uc.Upload(context.Background(), appID, "agent-1", uploadReq(), []byte("x"))
	require.NoError(t, err)

	_, err = uc.Review(doc.ID, dto.ReviewDocumentRequest{Status: "maybe"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// Delete solo para pendientes; elimina también el contenido del blob store.
func TestDelete_SoloPendientes(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	ctx := context.Background()

	doc, err := uc.Upload(ctx, appID, "agent-1", uploadReq(), []byte("x"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, doc.ID))

	_, _, err = uc.Download(ctx, doc.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Un documento ya revisado no se elimina.
	doc2, err := uc.Upload(ctx, appID, "agent-1", uploadReq(), []byte("y"))
	require.NoError(t, err)
	_, err = uc.Review(doc2.ID, dto.ReviewDocumentRequest{Status: entity.DocumentAccepted})
	require.NoError(t, err)

	err = uc.Delete(ctx, doc2.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestListByApplication(t *testing.T) {
	uc, appID := buildDocUseCase(t)
	ctx := context.Background()

	_, err := uc.Upload(ctx, appID, "agent-1", uploadReq(), []byte("a"))
	require.NoError(t, err)
	in := uploadReq()
	in.FileName = "declaracion.pdf"
	in.Category = entity.DocTaxReturns
	_, err = uc.Upload(ctx, appID, "agent-1", in, []byte("b"))
	require.NoError(t, err)

	out, err := uc.ListByApplication(appID)
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)

	empty, err := uc.ListByApplication("otra-app")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
