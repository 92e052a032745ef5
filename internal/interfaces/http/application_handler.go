package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/dto"
)

// ApplicationHandler maneja las peticiones HTTP para solicitudes de crédito
// (protegido, por silo).
type ApplicationHandler struct{}

// NewApplicationHandler construye el handler.
func NewApplicationHandler() *ApplicationHandler { return &ApplicationHandler{} }

// Create godoc
// @Summary      Crear solicitud de crédito (queda en draft)
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        body  body  dto.CreateApplicationRequest  true  "Datos de la solicitud"
// @Success      201   {object}  dto.ApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications [post]
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Applications.Create(in)
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id} [get]
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	out, err := GetBundle(c).Applications.GetByID(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar solicitudes del silo
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo    path   string  true   "Clave del silo"
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ApplicationListResponse
// @Router       /api/silos/{silo}/applications [get]
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := GetBundle(c).Applications.List(c.Query("status"), limit, offset)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Submit godoc
// @Summary      Enviar la solicitud (draft → submitted)
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/submit [post]
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	out, err := GetBundle(c).Applications.Submit(c.Params("id"), GetUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Review godoc
// @Summary      Pasar la solicitud a revisión (submitted → review)
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/review [post]
func (h *ApplicationHandler) Review(c *fiber.Ctx) error {
	out, err := GetBundle(c).Applications.Review(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar la solicitud (review → approved)
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/approve [post]
func (h *ApplicationHandler) Approve(c *fiber.Ctx) error {
	out, err := GetBundle(c).Applications.Approve(c.Params("id"), GetUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Completar la solicitud (approved → completed)
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/complete [post]
func (h *ApplicationHandler) Complete(c *fiber.Ctx) error {
	out, err := GetBundle(c).Applications.Complete(c.Params("id"), GetUserID(c))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Cambiar el staff asignado a la solicitud
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.AssignRequest  true  "assigned_to"
// @Success      200   {object}  dto.ApplicationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/assign [put]
func (h *ApplicationHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Applications.UpdateAssignment(c.Params("id"), in.AssignedTo)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar solicitud (solo en draft)
// @Tags         applications
// @Security     Bearer
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	if err := GetBundle(c).Applications.Delete(c.Params("id")); err != nil {
		return failErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SummaryPDF godoc
// @Summary      Descargar el dossier PDF de la solicitud
// @Tags         applications
// @Security     Bearer
// @Produce      application/pdf
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/applications/{id}/summary.pdf [get]
func (h *ApplicationHandler) SummaryPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	content, err := GetBundle(c).SummaryPDF.Generate(c.Context(), id)
	if err != nil {
		return failErr(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="solicitud-`+id+`.pdf"`)
	return c.Send(content)
}
