package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/fetch"
	"github.com/jhoicas/gestao-estoque/internal/application/user"
)

// UserHandler consulta de usuarios (protegido).
type UserHandler struct {
	uc      *user.UseCase
	tracker *fetch.Tracker
	errs    errorMapper
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *user.UseCase, tracker *fetch.Tracker, log zerolog.Logger) *UserHandler {
	return &UserHandler{uc: uc, tracker: tracker, errs: errorMapper{log: log}}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        nome    query  string  false  "Nombre"
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limite  query  int     false  "Tamaño de página"  default(10)
// @Success      200  {object}  entity.Page[entity.User]
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	ctx, end := track(c, h.tracker, fetch.ViewUsers)
	defer end()

	page, err := h.uc.List(ctx, GetSession(c), dto.UserListQuery{PageQuery: pageQuery(c), Name: c.Query("nome")})
	if err = settle(ctx, err); err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(page)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  entity.User
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
