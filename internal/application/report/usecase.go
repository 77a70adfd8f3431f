// Package report relatórios de estoque, movimentações y productos populares, y el dashboard.
package report

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

// DefaultRange período por defecto del relatório de movimentações.
const DefaultRange = 30 * 24 * time.Hour

// Tamaños de las consultas del dashboard.
const (
	dashboardProducts  = 100
	dashboardMovements = 5
)

// ProductLister lo que el dashboard necesita del catálogo.
type ProductLister interface {
	List(ctx context.Context, sess *entity.Session, q dto.ProductListQuery) (entity.Page[entity.Product], error)
	LowStock(ctx context.Context, sess *entity.Session) ([]entity.Product, error)
}

// MovementLister lo que el dashboard necesita de las movimentações.
type MovementLister interface {
	List(ctx context.Context, sess *entity.Session, q dto.PageQuery) (entity.Page[entity.Movement], error)
}

// UseCase relatórios y dashboard.
type UseCase struct {
	api       ports.InventoryAPI
	products  ProductLister
	movements MovementLister
	pdf       ports.ReportPDFGenerator
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso. now nil usa time.Now.
func NewUseCase(
	api ports.InventoryAPI,
	products ProductLister,
	movements MovementLister,
	pdf ports.ReportPDFGenerator,
	log zerolog.Logger,
	now func() time.Time,
) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{api: api, products: products, movements: movements, pdf: pdf, log: log, now: now}
}

// Stock situación actual del estoque.
func (uc *UseCase) Stock(ctx context.Context, sess *entity.Session) (entity.StockReport, error) {
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/relatorios/estoque"})
	if err != nil {
		return entity.StockReport{}, err
	}
	return normalize.StockReport(resp.Body), nil
}

// StockPDF relatório de estoque en PDF.
func (uc *UseCase) StockPDF(ctx context.Context, sess *entity.Session) ([]byte, error) {
	rep, err := uc.Stock(ctx, sess)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStockReportPDF(ctx, rep, uc.now())
}

// Movements resumen de movimentações entre dataInicio y dataFim (YYYY-MM-DD).
// Sin fechas: los últimos 30 días hasta hoy.
func (uc *UseCase) Movements(ctx context.Context, sess *entity.Session, q dto.MovementReportQuery) (entity.MovementReport, error) {
	from, to, err := uc.period(q)
	if err != nil {
		return entity.MovementReport{}, err
	}
	query := url.Values{}
	query.Set("dataInicio", from.Format(normalize.DateLayout))
	query.Set("dataFim", to.Format(normalize.DateLayout))

	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/relatorios/movimentacoes", Query: query})
	if err != nil {
		return entity.MovementReport{}, err
	}
	return normalize.MovementReport(resp.Body, uc.now()), nil
}

// PopularProducts productos con más movimentações.
func (uc *UseCase) PopularProducts(ctx context.Context, sess *entity.Session) (entity.PopularProductsReport, error) {
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/relatorios/produtos-populares"})
	if err != nil {
		return entity.PopularProductsReport{}, err
	}
	return normalize.PopularProducts(resp.Body), nil
}

// Dashboard consulta en paralelo productos, estoque bajo y últimas movimentações.
// Si una consulta falla se cancelan las demás y se devuelve el primer error.
func (uc *UseCase) Dashboard(ctx context.Context, sess *entity.Session) (entity.Dashboard, error) {
	var (
		products  entity.Page[entity.Product]
		lowStock  []entity.Product
		movements entity.Page[entity.Movement]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = uc.products.List(gctx, sess, dto.ProductListQuery{PageQuery: dto.PageQuery{Page: 1, Limit: dashboardProducts}})
		return err
	})
	g.Go(func() error {
		var err error
		lowStock, err = uc.products.LowStock(gctx, sess)
		return err
	})
	g.Go(func() error {
		var err error
		movements, err = uc.movements.List(gctx, sess, dto.PageQuery{Page: 1, Limit: dashboardMovements})
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.Dashboard{}, err
	}

	d := entity.Dashboard{
		TotalProducts:   products.Total,
		LowStockCount:   len(lowStock),
		TotalStockValue: decimal.Zero,
		LowStock:        lowStock,
		LatestMovements: movements.Docs,
	}
	for _, p := range products.Docs {
		d.TotalStock += p.Quantity
		d.TotalStockValue = d.TotalStockValue.Add(p.StockValue())
	}
	if len(d.LatestMovements) > dashboardMovements {
		d.LatestMovements = d.LatestMovements[:dashboardMovements]
	}
	uc.log.Debug().
		Int("produtos", d.TotalProducts).
		Int("estoqueBaixo", d.LowStockCount).
		Msg("dashboard calculado")
	return d, nil
}

func (uc *UseCase) period(q dto.MovementReportQuery) (time.Time, time.Time, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from, to := today.Add(-DefaultRange), today

	fields := validation.FieldErrors{}
	if v := strings.TrimSpace(q.From); v != "" {
		t, err := time.Parse(normalize.DateLayout, v)
		if err != nil {
			fields["dataInicio"] = "Data inicial inválida (use AAAA-MM-DD)"
		}
		from = t
	}
	if v := strings.TrimSpace(q.To); v != "" {
		t, err := time.Parse(normalize.DateLayout, v)
		if err != nil {
			fields["dataFim"] = "Data final inválida (use AAAA-MM-DD)"
		}
		to = t
	}
	if len(fields) == 0 && from.After(to) {
		fields["dataInicio"] = "Data inicial deve ser anterior à data final"
	}
	if len(fields) > 0 {
		return time.Time{}, time.Time{}, fields
	}
	return from, to, nil
}
