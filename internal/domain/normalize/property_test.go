package normalize_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

var categories = []entity.Category{entity.CategoryA, entity.CategoryB, entity.CategoryC, entity.CategoryUnclassified}

// Escribir un producto canónico y volver a leerlo conserva nome, codigo, preco, quantidade y categoria.
func TestProperty_ProductWriteRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("ProductWrite → JSON → Product conserva los campos clave", prop.ForAll(
		func(name, code string, cents int64, quantity, cat int) bool {
			in := entity.Product{
				Name:     name,
				Code:     code,
				Price:    decimal.New(cents, -2),
				Quantity: quantity,
				Category: categories[cat],
				Active:   true,
			}
			raw, err := json.Marshal(normalize.ProductWrite(in, 564))
			if err != nil {
				t.Logf("FAIL: marshal: %v", err)
				return false
			}
			out := normalize.Product(raw)
			return out.Name == in.Name &&
				out.Code == in.Code &&
				out.Price.Equal(in.Price) &&
				out.Quantity == in.Quantity &&
				out.Category == in.Category
		},
		gen.AlphaString(),
		gen.Identifier(),
		gen.Int64Range(0, 100_000_000),
		gen.IntRange(0, 1_000_000),
		gen.IntRange(0, len(categories)-1),
	))

	properties.TestingRun(t)
}

// totalPages nunca es menor que 1 ni depende de una división por cero.
func TestProperty_TotalPagesSiemprePositivo(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("TotalPages >= 1 y cubre todos los registros", prop.ForAll(
		func(total, pageSize int) bool {
			pages := normalize.TotalPages(total, pageSize)
			if pages < 1 {
				return false
			}
			if total > 0 && pageSize > 0 {
				return pages*pageSize >= total && (pages-1)*pageSize < total
			}
			return pages == 1
		},
		gen.IntRange(-10, 10_000),
		gen.IntRange(-10, 500),
	))

	properties.Property("las cuatro formas con la misma carga producen el mismo envelope", prop.ForAll(
		func(n, pageSize int) bool {
			items := make([]string, 0, n)
			for i := 0; i < n; i++ {
				items = append(items, fmt.Sprintf(`{"_id":"%d","nome_produto":"P%d","estoque":%d}`, i, i, i))
			}
			arr := "[" + strings.Join(items, ",") + "]"
			pages := normalize.TotalPages(n, pageSize)
			bodies := []string{
				fmt.Sprintf(`{"data":{"docs":%s,"total":%d,"totalPages":%d}}`, arr, n, pages),
				fmt.Sprintf(`{"docs":%s,"total":%d}`, arr, n),
				arr,
				`{"data":` + arr + `}`,
			}
			req := normalize.PageRequest{Page: 1, PageSize: pageSize}
			first := normalize.Products([]byte(bodies[0]), req, normalize.Hints{})
			for _, b := range bodies[1:] {
				got := normalize.Products([]byte(b), req, normalize.Hints{})
				if got.Total != first.Total || got.TotalPages != first.TotalPages || len(got.Docs) != len(first.Docs) {
					return false
				}
				for i := range got.Docs {
					a, b := got.Docs[i], first.Docs[i]
					if a.ID != b.ID || a.Name != b.Name || a.Quantity != b.Quantity {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}
