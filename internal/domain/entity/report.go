package entity

import "github.com/shopspring/decimal"

// StockReport situación del estoque (/relatorios/estoque).
type StockReport struct {
	TotalProducts   int             `json:"totalProdutos"`
	TotalStockValue decimal.Decimal `json:"valorTotalEstoque"`
	OutOfStock      int             `json:"produtosSemEstoque"`
	LowStock        int             `json:"produtosEstoqueBaixo"`
	Categories      []CategoryShare `json:"categorias"`
}

// CategoryShare distribución del estoque por categoría.
type CategoryShare struct {
	Name     string          `json:"nome"`
	Quantity int             `json:"quantidade"`
	Value    decimal.Decimal `json:"valor"`
	Percent  decimal.Decimal `json:"percentual"`
}

// MovementReport resumen de movimentações en un período.
type MovementReport struct {
	TotalEntries    int             `json:"totalEntradas"`
	TotalExits      int             `json:"totalSaidas"`
	EntriesValue    decimal.Decimal `json:"valorTotalEntradas"`
	ExitsValue      decimal.Decimal `json:"valorTotalSaidas"`
	LatestMovements []Movement      `json:"ultimasMovimentacoes"`
}

// PopularProduct producto con su volumen de movimentações.
type PopularProduct struct {
	ID        string `json:"_id"`
	Name      string `json:"nome"`
	Code      string `json:"codigo"`
	Entries   int    `json:"totalEntradas"`
	Exits     int    `json:"totalSaidas"`
	Movements int    `json:"totalMovimentacoes"`
}

// PopularProductsReport productos más movimentados.
type PopularProductsReport struct {
	Products []PopularProduct `json:"produtos"`
}

// Dashboard resumen de la pantalla inicial.
type Dashboard struct {
	TotalProducts   int             `json:"totalProdutos"`
	TotalStock      int             `json:"totalEstoque"`
	LowStockCount   int             `json:"produtosEstoqueBaixo"`
	TotalStockValue decimal.Decimal `json:"valorTotalEstoque"`
	LowStock        []Product       `json:"produtosBaixoEstoque"`
	LatestMovements []Movement      `json:"ultimasMovimentacoes"`
}
