package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/werb210/staff-portal-api/internal/application/dto"
)

// LenderProductHandler maneja las peticiones HTTP para productos de crédito
// (protegido, por silo).
type LenderProductHandler struct{}

// NewLenderProductHandler construye el handler.
func NewLenderProductHandler() *LenderProductHandler { return &LenderProductHandler{} }

// Create godoc
// @Summary      Crear producto de crédito
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        body  body  dto.CreateLenderProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.LenderProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/products [post]
func (h *LenderProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLenderProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Products.Create(in)
	if err != nil {
		return failErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID del producto"
// @Success      200   {object}  dto.LenderProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/products/{id} [get]
func (h *LenderProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := GetBundle(c).Products.GetByID(c.Params("id"))
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos del silo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        silo    path   string  true   "Clave del silo"
// @Param        active  query  bool    false  "Solo activos"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.LenderProductListResponse
// @Router       /api/silos/{silo}/products [get]
func (h *LenderProductHandler) List(c *fiber.Ctx) error {
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
	out, err := GetBundle(c).Products.List(c.QueryBool("active", false), limit, offset)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        silo  path  string  true  "Clave del silo"
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateLenderProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.LenderProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/silos/{silo}/products/{id} [put]
func (h *LenderProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLenderProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := GetBundle(c).Products.Update(c.Params("id"), in)
	if err != nil {
		return failErr(c, err)
	}
	return c.JSON(out)
}
