package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/werb210/staff-portal-api/internal/application/dto"
	"github.com/werb210/staff-portal-api/internal/domain"
	"github.com/werb210/staff-portal-api/internal/domain/entity"
	"github.com/werb210/staff-portal-api/internal/domain/repository"
)

// Categorías válidas de documento.
var documentCategories = map[string]bool{
	entity.DocBankStatements: true,
	entity.DocTaxReturns:     true,
	entity.DocFinancials:     true,
	entity.DocIdentity:       true,
	entity.DocOther:          true,
}

// DocumentUseCase documentos adjuntos de las solicitudes de un silo:
// metadatos en el repositorio, contenido detrás del puerto BlobStore.
type DocumentUseCase struct {
	silo    entity.Silo
	repo    repository.DocumentRepository
	appRepo repository.ApplicationRepository
	blobs   BlobStore
}

// NewDocumentUseCase construye el caso de uso atado a un silo.
func NewDocumentUseCase(silo entity.Silo, repo repository.DocumentRepository, appRepo repository.ApplicationRepository, blobs BlobStore) *DocumentUseCase {
	return &DocumentUseCase{silo: silo, repo: repo, appRepo: appRepo, blobs: blobs}
}

// Upload guarda el contenido en el BlobStore y registra el metadato en pending.
func (uc *DocumentUseCase) Upload(ctx context.Context, applicationID, uploadedBy string, in dto.UploadDocumentRequest, content []byte) (*dto.DocumentResponse, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, fmt.Errorf("%w: file_name requerido", domain.ErrInvalidInput)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: contenido vacío", domain.ErrInvalidInput)
	}
	category := in.Category
	if category == "" {
		category = entity.DocOther
	}
	if !documentCategories[category] {
		return nil, fmt.Errorf("%w: category desconocida %q", domain.ErrInvalidInput, in.Category)
	}
	app, err := uc.appRepo.GetByID(applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	doc := &entity.Document{
		ID:            uuid.New().String(),
		Silo:          uc.silo,
		ApplicationID: applicationID,
		FileName:      in.FileName,
		ContentType:   in.ContentType,
		SizeBytes:     int64(len(content)),
		Category:      category,
		Status:        entity.DocumentPending,
		UploadedBy:    uploadedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.blobs.Put(ctx, uc.blobKey(doc.ID), content); err != nil {
		return nil, fmt.Errorf("guardar contenido: %w", err)
	}
	if err := uc.repo.Create(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Download devuelve metadato + contenido.
func (uc *DocumentUseCase) Download(ctx context.Context, id string) (*dto.DocumentResponse, []byte, error) {
	doc, err := uc.load(id)
	if err != nil {
		return nil, nil, err
	}
	content, err := uc.blobs.Get(ctx, uc.blobKey(doc.ID))
	if err != nil {
		return nil, nil, fmt.Errorf("leer contenido: %w", err)
	}
	return toDocumentResponse(doc), content, nil
}

// Review acepta o rechaza un documento pendiente.
func (uc *DocumentUseCase) Review(id string, in dto.ReviewDocumentRequest) (*dto.DocumentResponse, error) {
	if in.Status != entity.DocumentAccepted && in.Status != entity.DocumentRejected {
		return nil, fmt.Errorf("%w: status debe ser accepted o rejected", domain.ErrInvalidInput)
	}
	doc, err := uc.load(id)
	if err != nil {
		return nil, err
	}
	if doc.Status != entity.DocumentPending {
		return nil, fmt.Errorf("%w: el documento ya fue revisado (%s)", domain.ErrConflict, doc.Status)
	}
	doc.Status = in.Status
	doc.ReviewNote = in.Note
	doc.UpdatedAt = time.Now()
	if err := uc.repo.Update(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// Delete elimina metadato y contenido. Solo documentos aún pendientes.
func (uc *DocumentUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.load(id)
	if err != nil {
		return err
	}
	if doc.Status != entity.DocumentPending {
		return fmt.Errorf("%w: solo se eliminan documentos pendientes", domain.ErrConflict)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	return uc.blobs.Delete(ctx, uc.blobKey(id))
}

// ListByApplication documentos de una solicitud.
func (uc *DocumentUseCase) ListByApplication(applicationID string) (*dto.DocumentListResponse, error) {
	list, err := uc.repo.ListByApplication(applicationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, doc := range list {
		items = append(items, *toDocumentResponse(doc))
	}
	return &dto.DocumentListResponse{Items: items}, nil
}

func (uc *DocumentUseCase) load(id string) (*entity.Document, error) {
	doc, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// blobKey clave del contenido en el BlobStore, con prefijo de silo.
func (uc *DocumentUseCase) blobKey(docID string) string {
	return fmt.Sprintf("%s/%s", uc.silo, docID)
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	if doc == nil {
		return nil
	}
	return &dto.DocumentResponse{
		ID:            doc.ID,
		Silo:          doc.Silo.String(),
		ApplicationID: doc.ApplicationID,
		FileName:      doc.FileName,
		ContentType:   doc.ContentType,
		SizeBytes:     doc.SizeBytes,
		Category:      doc.Category,
		Status:        doc.Status,
		ReviewNote:    doc.ReviewNote,
		UploadedBy:    doc.UploadedBy,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
}
