// Package catalog casos de uso de productos sobre la API de inventario.
package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

// Config parámetros del catálogo.
type Config struct {
	PageSize   int
	SupplierID int
}

// UseCase listado, detalle, alta, edición, baja y estoque bajo de productos.
type UseCase struct {
	api ports.InventoryAPI
	cfg Config
	log zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(api ports.InventoryAPI, cfg Config, log zerolog.Logger) *UseCase {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &UseCase{api: api, cfg: cfg, log: log}
}

// List devuelve una página de productos con los filtros de nombre, código y categoría.
func (uc *UseCase) List(ctx context.Context, sess *entity.Session, q dto.ProductListQuery) (entity.Page[entity.Product], error) {
	q.Defaults(uc.cfg.PageSize)

	query := url.Values{}
	if v := strings.TrimSpace(q.Name); v != "" {
		query.Set("nome_produto", v)
	}
	if v := strings.TrimSpace(q.Code); v != "" {
		query.Set("codigo_produto", v)
	}
	if v := strings.ToUpper(strings.TrimSpace(q.Category)); v != "" {
		query.Set("categoria", v)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limite", strconv.Itoa(q.Limit))

	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/produtos", Query: query})
	if err != nil {
		return entity.Page[entity.Product]{}, err
	}
	page := normalize.Products(resp.Body, normalize.PageRequest{Page: q.Page, PageSize: q.Limit}, resp.PageHints())
	// Detect vuelve a parsear el cuerpo; solo con debug activo.
	if e := uc.log.Debug(); e.Enabled() {
		e.Str("shape", normalize.Detect(resp.Body).String()).
			Int("docs", len(page.Docs)).
			Int("total", page.Total).
			Msg("produtos normalizados")
	}
	return page, nil
}

// Get devuelve un producto por ID.
func (uc *UseCase) Get(ctx context.Context, sess *entity.Session, id string) (entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return entity.Product{}, domain.ErrInvalidInput
	}
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: productPath(id)})
	if err != nil {
		return entity.Product{}, err
	}
	p := normalize.Product(resp.Body)
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

// Create valida el formulario y da de alta el producto.
func (uc *UseCase) Create(ctx context.Context, sess *entity.Session, in dto.ProductForm) (entity.Product, error) {
	p, err := uc.fromForm(in)
	if err != nil {
		return entity.Product{}, err
	}
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/produtos",
		Body:   normalize.ProductWrite(p, uc.cfg.SupplierID),
	})
	if err != nil {
		return entity.Product{}, err
	}
	return merge(normalize.Product(resp.Body), p), nil
}

// Update valida el formulario y reemplaza los campos editables del producto (PATCH).
func (uc *UseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.ProductForm) (entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return entity.Product{}, domain.ErrInvalidInput
	}
	p, err := uc.fromForm(in)
	if err != nil {
		return entity.Product{}, err
	}
	p.ID = id
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{
		Method: http.MethodPatch,
		Path:   productPath(id),
		Body:   normalize.ProductWrite(p, uc.cfg.SupplierID),
	})
	if err != nil {
		return entity.Product{}, err
	}
	return merge(normalize.Product(resp.Body), p), nil
}

// Delete elimina un producto.
func (uc *UseCase) Delete(ctx context.Context, sess *entity.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	_, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodDelete, Path: productPath(id)})
	return err
}

// LowStock productos con estoque en o por debajo del mínimo, según la API.
func (uc *UseCase) LowStock(ctx context.Context, sess *entity.Session) ([]entity.Product, error) {
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/produtos/estoque-baixo"})
	if err != nil {
		return nil, err
	}
	return normalize.LowStock(resp.Body), nil
}

func (uc *UseCase) fromForm(in dto.ProductForm) (entity.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Code = strings.TrimSpace(in.Code)
	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	if err := validation.Struct(in); err != nil {
		return entity.Product{}, err
	}
	p := entity.Product{
		Name:         in.Name,
		Code:         in.Code,
		Description:  in.Description,
		Price:        in.Price,
		Cost:         in.Cost,
		Quantity:     in.Quantity,
		MinStock:     in.MinStock,
		Category:     entity.Category(in.Category),
		Manufacturer: in.Manufacturer,
		Active:       in.Active == nil || *in.Active,
	}
	if in.ExpirationDate != "" {
		// formato ya validado por la etiqueta datetime
		t, _ := time.Parse(normalize.DateLayout, in.ExpirationDate)
		p.ExpirationDate = &t
	}
	return p, nil
}

// merge usa la respuesta de la API si trae el producto; si solo confirma, el enviado.
func merge(got, sent entity.Product) entity.Product {
	if got.ID == "" && got.Name == "" {
		return sent
	}
	if got.ID == "" {
		got.ID = sent.ID
	}
	return got
}

func productPath(id string) string {
	return "/produtos/" + url.PathEscape(id)
}
