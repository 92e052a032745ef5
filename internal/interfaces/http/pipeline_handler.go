package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/dto"
)

// PipelineHandler maneja las peticiones HTTP del pipeline de etapas
// (protegido, por silo).
type PipelineHandler struct{}

// NewPipelineHandler construye el handler.
func NewPipelineHandler() *PipelineHandler { return &PipelineHandler{} }

// Board godoc
// @Summary      Tablero del silo: cada etapa con sus solicitudes
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Success      200   {object}  dto.BoardResponse
// @Router       /api/silos/{silo}/pipeline/board [get]
func (h *PipelineHandler) Board(c *fiber.Ctx) error {
	out, err := GetBundle(c).Pipeline.Board()
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// ListByStage godoc
// @Summary      Solicitudes actualmente en una etapa
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Param        silo   path  string  true  "Clave del silo"
// @Param        stage  path  string  true  "Etapa del pipeline"
// @Success      200    {array}   string
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/pipeline/stages/{stage} [get]
func (h *PipelineHandler) ListByStage(c *fiber.Ctx) error {
	ids, err := GetBundle(c).Pipeline.ListByStage(c.Params("stage"))
	if err != nil {
		return failErr(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(ids)
}

// GetStage godoc
// @Summary      Etapa actual de una solicitud (primera consulta la crea en "new")
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/pipeline/applications/{id}/stage [get]
func (h *PipelineHandler) GetStage(c *fiber.Ctx) error {
	out, err := GetBundle(c).Pipeline.GetStage(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Move godoc
// @Summary      Mover una solicitud de etapa
// @Description  Valida el grafo de transiciones y la precondición de lender;
// @Description  el movimiento es atómico por solicitud (un solo ganador entre
// @Description  movimientos concurrentes).
// @Tags         pipeline
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.MoveStageRequest  true  "to_stage, note"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/pipeline/applications/{id}/move [post]
func (h *PipelineHandler) Move(c *fiber.Ctx) error {
	var in dto.MoveStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ToStage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to_stage es requerido"})
	}
	out, err := GetBundle(c).Pipeline.Move(c.Params("id"), in.ToStage, GetUserID(c), in.Note)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Assign godoc
// @Summary      Cambiar el staff asignado a la etapa actual
// @Tags         pipeline
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.AssignRequest  true  "assigned_to"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/pipeline/applications/{id}/assign [put]
func (h *PipelineHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Pipeline.AssignStage(c.Params("id"), in.AssignedTo)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de transiciones (más antigua primero)
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID de la solicitud"
// @Success      200   {object}  dto.HistoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/pipeline/applications/{id}/history [get]
func (h *PipelineHandler) History(c *fiber.Ctx) error {
	out, err := GetBundle(c).Pipeline.History(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}
