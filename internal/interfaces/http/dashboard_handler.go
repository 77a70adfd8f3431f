package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/report"
)

// DashboardHandler maneja el resumen de la pantalla inicial.
type DashboardHandler struct {
	uc   *report.UseCase
	errs errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *report.UseCase, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errorMapper{log: log}}
}

// GetSummary devuelve totales de productos y estoque, productos con estoque bajo
// y las últimas 5 movimentações.
// GET /api/dashboard
//
// Las tres consultas a la API se hacen en paralelo; si una falla, falla el resumen.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Dashboard(c.UserContext(), GetSession(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(summary)
}
