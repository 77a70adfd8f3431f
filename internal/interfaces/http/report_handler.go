package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/report"
)

// ReportHandler relatórios (protegido).
type ReportHandler struct {
	uc   *report.UseCase
	errs errorMapper
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, errs: errorMapper{log: log}}
}

// Stock godoc
// @Summary      Relatório de estoque
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.StockReport
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(c.UserContext(), GetSession(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// StockPDF godoc
// @Summary      Relatório de estoque en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.StockPDF(c.UserContext(), GetSession(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="relatorio-estoque.pdf"`)
	return c.Send(pdf)
}

// Movements godoc
// @Summary      Relatório de movimentações
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        dataInicio  query  string  false  "YYYY-MM-DD (defecto: hace 30 días)"
// @Param        dataFim     query  string  false  "YYYY-MM-DD (defecto: hoy)"
// @Success      200  {object}  entity.MovementReport
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/movements [get]
func (h *ReportHandler) Movements(c *fiber.Ctx) error {
	q := dto.MovementReportQuery{From: c.Query("dataInicio"), To: c.Query("dataFim")}
	out, err := h.uc.Movements(c.UserContext(), GetSession(c), q)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}

// PopularProducts godoc
// @Summary      Productos más movimentados
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.PopularProductsReport
// @Router       /api/reports/popular-products [get]
func (h *ReportHandler) PopularProducts(c *fiber.Ctx) error {
	out, err := h.uc.PopularProducts(c.UserContext(), GetSession(c))
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(out)
}
