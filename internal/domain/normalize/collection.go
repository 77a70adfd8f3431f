package normalize

import (
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// PageRequest página y tamaño pedidos por el caller.
type PageRequest struct {
	Page     int
	PageSize int
}

// Hints metadata de paginación tomada de los headers (X-Total-Count, X-Total-Pages).
// Solo se usa cuando el cuerpo no trae total/totalPages. Cero = ausente.
type Hints struct {
	TotalCount int
	TotalPages int
}

// Products normaliza un listado de productos.
func Products(body []byte, req PageRequest, hints Hints) entity.Page[entity.Product] {
	return paginate(decode(body), req, hints, productFrom)
}

// Movements normaliza un listado de movimentações. now se usa cuando un registro no trae fecha.
func Movements(body []byte, req PageRequest, hints Hints, now time.Time) entity.Page[entity.Movement] {
	return paginate(decode(body), req, hints, func(r record) entity.Movement {
		return movementFrom(r, now)
	})
}

// Users normaliza un listado de usuarios.
func Users(body []byte, req PageRequest, hints Hints) entity.Page[entity.User] {
	return paginate(decode(body), req, hints, userFrom)
}

// LowStock normaliza /produtos/estoque-baixo sin paginación.
func LowStock(body []byte) []entity.Product {
	d := decode(body)
	out := make([]entity.Product, 0, len(d.records))
	for _, r := range d.records {
		out = append(out, productFrom(r))
	}
	return out
}

func paginate[T any](d decoded, req PageRequest, hints Hints, mapFn func(record) T) entity.Page[T] {
	docs := make([]T, 0, len(d.records))
	for _, r := range d.records {
		docs = append(docs, mapFn(r))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	total := d.total
	if total <= 0 {
		total = hints.TotalCount
	}
	if total <= 0 {
		total = len(docs)
	}

	totalPages := d.totalPages
	if totalPages <= 0 {
		totalPages = hints.TotalPages
	}
	if totalPages <= 0 {
		totalPages = TotalPages(total, req.PageSize)
	}

	return entity.Page[T]{
		Docs:       docs,
		TotalPages: totalPages,
		Page:       page,
		Total:      total,
	}
}

// TotalPages ceil(total / pageSize) con piso 1. pageSize <= 0 → 1.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}
