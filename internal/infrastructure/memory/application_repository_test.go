package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/infrastructure/memory"
)

func sampleApplication(id string) *entity.Application {
	now := time.Now()
	return &entity.Application{
		ID:             id,
		ApplicantName:  "Pedro Ruiz",
		ApplicantEmail: "pedro@example.com",
		LoanAmount:     decimal.NewFromInt(25_000),
		LoanPurpose:    "inventario",
		ProductID:      "prod-1",
		Status:         entity.StatusDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Update sobre un ID inexistente falla con ErrNotFound en vez de tragarse
// la escritura.
func TestApplicationRepo_Update_Inexistente(t *testing.T) {
	repo := memory.NewApplicationRepository()

	err := repo.Update(sampleApplication("app-fantasma"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApplicationRepo_Update_Existente(t *testing.T) {
	repo := memory.NewApplicationRepository()
	app := sampleApplication("app-1")
	require.NoError(t, repo.Create(app))

	app.Status = entity.StatusSubmitted
	require.NoError(t, repo.Update(app))

	got, err := repo.GetByID("app-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSubmitted, got.Status)
}
