package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/dto"
)

// DocumentHandler maneja las peticiones HTTP para documentos de una solicitud
// (protegido, por silo). El contenido binario viaja en el body; los metadatos
// van en headers X-File-Name, X-Category y Content-Type.
type DocumentHandler struct{}

// NewDocumentHandler construye el handler.
func NewDocumentHandler() *DocumentHandler { return &DocumentHandler{} }

// Upload godoc
// @Summary      Subir documento de una solicitud
// @Tags         documents
// @Security     Bearer
// @Accept       octet-stream
// @Produce      json
// @Param        silo         path    string  true  "Clave del silo"
// @Param        id           path    string  true  "ID de la solicitud"
// @Param        X-File-Name  header  string  true  "Nombre del archivo"
// @Param        X-Category   header  string  true  "Categoría del documento"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	content := c.Body()
	if len(content) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "contenido vacío"})
	}
	in := dto.UploadDocumentRequest{
		FileName:    c.Get("X-File-Name"),
		ContentType: c.Get(fiber.HeaderContentType, "application/octet-stream"),
		Category:    c.Get("X-Category"),
	}
	out, err := GetBundle(c).Documents.Upload(c.Context(), c.Params("id"), GetUserID(c), in, content)
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos de una solicitud
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.DocumentListResponse
// @Router       /api/silos/{silo}/applications/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	out, err := GetBundle(c).Documents.ListByApplication(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Download godoc
// @Summary      Descargar el contenido de un documento
// @Tags         documents
// @Security     Bearer
// @Produce      octet-stream
// @Param        silo   path  string  true  "Clave del silo"
// @Param        docID  path  string  true  "ID del documento"
// @Success      200    {file}    binary
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/documents/{docID}/content [get]
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	doc, content, err := GetBundle(c).Documents.Download(c.Context(), c.Params("docID"))
	if err != nil {
		return failErr(c, err)
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.FileName+`"`)
	return c.Send(content)
}

// Review godoc
// @Summary      Aceptar o rechazar un documento pendiente
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo   path  string  true  "Clave del silo"
// @Param        docID  path  string  true  "ID del documento"
// @Param        body   body  dto.ReviewDocumentRequest  true  "status, note"
// @Success      200    {object}  dto.DocumentResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/documents/{docID}/review [post]
func (h *DocumentHandler) Review(c *fiber.Ctx) error {
	var in dto.ReviewDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Documents.Review(c.Params("docID"), in)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un documento pendiente
// @Tags         documents
// @Security     Bearer
// @Param        silo   path  string  true  "Clave del silo"
// @Param        docID  path  string  true  "ID del documento"
// @Success      204
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/documents/{docID} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := GetBundle(c).Documents.Delete(c.Context(), c.Params("docID")); err != nil {
		return failErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
