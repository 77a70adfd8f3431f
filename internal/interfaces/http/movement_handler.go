package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/fetch"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
)

// MovementHandler maneja las peticiones HTTP de movimentações (protegido).
type MovementHandler struct {
	uc      *movement.UseCase
	tracker *fetch.Tracker
	errs    errorMapper
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.UseCase, tracker *fetch.Tracker, log zerolog.Logger) *MovementHandler {
	return &MovementHandler{uc: uc, tracker: tracker, errs: errorMapper{log: log}}
}

// List godoc
// @Summary      Listar movimentações
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        page    query  int  false  "Página"  default(1)
// @Param        limite  query  int  false  "Tamaño de página"  default(10)
// @Success      200  {object}  entity.Page[entity.Movement]
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	ctx, end := track(c, h.tracker, fetch.ViewMovements)
	defer end()

	page, err := h.uc.List(ctx, GetSession(c), pageQuery(c))
	if err = settle(ctx, err); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(page)
}

// GetByID godoc
// @Summary      Obtener movimentação
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  entity.Movement
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar movimentação
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementForm  true  "Movimentação"
// @Success      201   {object}  entity.Movement
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.MovementForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar movimentação
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.MovementForm  true  "Movimentação"
// @Success      200   {object}  entity.Movement
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.MovementForm
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), c.Params("id"), in)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimentação
// @Tags         movements
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetSession(c), c.Params("id")); err != nil {
		return h.errs.write(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
