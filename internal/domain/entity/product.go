package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// El navegador espera preco/custo como números JSON, no como strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultMinStock estoque mínimo cuando la API no envía estoque_min.
// Se usa el mismo valor en lectura y escritura.
const DefaultMinStock = 0

// Category clasificación del producto. Vacía = no clasificado.
type Category string

// Categorías válidas.
const (
	CategoryA            Category = "A"
	CategoryB            Category = "B"
	CategoryC            Category = "C"
	CategoryUnclassified Category = ""
)

// Valid indica si la categoría pertenece al conjunto conocido.
func (c Category) Valid() bool {
	switch c {
	case CategoryA, CategoryB, CategoryC, CategoryUnclassified:
		return true
	}
	return false
}

// Product forma canónica de un producto, independiente de la forma en que lo envió la API.
// Es una instantánea inmutable: se crea al normalizar una respuesta y se descarta en el siguiente fetch.
type Product struct {
	ID             string          `json:"_id"`
	Name           string          `json:"nome"`
	Code           string          `json:"codigo"`
	Description    string          `json:"descricao"`
	Price          decimal.Decimal `json:"preco"`
	Cost           decimal.Decimal `json:"custo"`
	Quantity       int             `json:"quantidade"`
	MinStock       int             `json:"estoqueMinimo"`
	Category       Category        `json:"categoria"`
	Manufacturer   string          `json:"fabricante"`
	Active         bool            `json:"status"`
	ExpirationDate *time.Time      `json:"dataValidade"`
}

// IsLowStock true cuando la cantidad no supera el estoque mínimo.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}

// StockValue precio × cantidad.
func (p Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
