package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/fetch"
	"github.com/jhoicas/gestao-estoque/internal/domain"
)

// HeaderRequestGeneration generación del listado; el cliente descarta respuestas de generaciones anteriores.
const HeaderRequestGeneration = "X-Request-Generation"

// track registra el listado como petición vigente de (sesión, vista) y cancela la anterior.
func track(c *fiber.Ctx, tracker *fetch.Tracker, view string) (context.Context, func()) {
	sess := GetSession(c)
	ctx, gen, end := tracker.Begin(c.UserContext(), fetch.Key{SessionID: sess.ID, View: view})
	c.Set(HeaderRequestGeneration, strconv.FormatUint(gen, 10))
	return ctx, end
}

// settle convierte en ErrSuperseded un resultado obtenido después de ser reemplazado.
func settle(ctx context.Context, err error) error {
	if err == nil && fetch.Superseded(ctx) {
		return domain.ErrSuperseded
	}
	return err
}

func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limite", 0)}
}
