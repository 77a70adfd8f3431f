package dto

import "github.com/shopspring/decimal"

// ProductListQuery filtros de GET /api/products.
type ProductListQuery struct {
	PageQuery
	Name     string `query:"nome"`
	Code     string `query:"codigo"`
	Category string `query:"categoria"`
}

// ProductForm entrada de alta y edición de productos.
// preco y custo se validan como números vía el tipo personalizado registrado en validation.
type ProductForm struct {
	Name           string          `json:"nome" validate:"required"`
	Code           string          `json:"codigo" validate:"required"`
	Description    string          `json:"descricao"`
	Price          decimal.Decimal `json:"preco" validate:"gt=0"`
	Cost           decimal.Decimal `json:"custo" validate:"gte=0"`
	Quantity       int             `json:"quantidade" validate:"gte=0"`
	MinStock       int             `json:"estoqueMinimo" validate:"gte=0"`
	Category       string          `json:"categoria" validate:"omitempty,oneof=A B C"`
	Manufacturer   string          `json:"fabricante"`
	Active         *bool           `json:"status"`
	ExpirationDate string          `json:"dataValidade" validate:"omitempty,datetime=2006-01-02"`
}
