package normalize

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// StockReport normaliza /relatorios/estoque. Si una categoría no trae percentual se
// calcula sobre valorTotalEstoque.
func StockReport(body []byte) entity.StockReport {
	r := single(body)
	rep := entity.StockReport{
		TotalProducts:   r.count("totalProdutos"),
		TotalStockValue: r.money("valorTotalEstoque"),
		OutOfStock:      r.count("produtosSemEstoque"),
		LowStock:        r.count("produtosEstoqueBaixo"),
		Categories:      []entity.CategoryShare{},
	}
	items, _ := r.array("categorias")
	for _, c := range records(items) {
		share := entity.CategoryShare{
			Name:     c.str("nome"),
			Quantity: c.count("quantidade"),
			Value:    c.money("valor"),
			Percent:  c.money("percentual"),
		}
		if !c.has("percentual") && rep.TotalStockValue.IsPositive() {
			share.Percent = share.Value.Div(rep.TotalStockValue).Mul(hundred).Round(2)
		}
		rep.Categories = append(rep.Categories, share)
	}
	return rep
}

// MovementReport normaliza /relatorios/movimentacoes.
func MovementReport(body []byte, now time.Time) entity.MovementReport {
	r := single(body)
	rep := entity.MovementReport{
		TotalEntries:    r.count("totalEntradas"),
		TotalExits:      r.count("totalSaidas"),
		EntriesValue:    r.money("valorTotalEntradas"),
		ExitsValue:      r.money("valorTotalSaidas"),
		LatestMovements: []entity.Movement{},
	}
	items, _ := r.array("ultimasMovimentacoes")
	for _, m := range records(items) {
		rep.LatestMovements = append(rep.LatestMovements, movementFrom(m, now))
	}
	return rep
}

// PopularProducts normaliza /relatorios/produtos-populares. Acepta {produtos: [...]},
// {data: [...]} o un arreglo.
func PopularProducts(body []byte) entity.PopularProductsReport {
	d := decode(body)
	if d.shape == ShapeUnknown {
		if items, ok := single(body).array("produtos"); ok {
			d.records = records(items)
		}
	}
	rep := entity.PopularProductsReport{Products: make([]entity.PopularProduct, 0, len(d.records))}
	for _, r := range d.records {
		p := entity.PopularProduct{
			ID:      r.str("_id", "id"),
			Name:    r.str("nome_produto", "nome"),
			Code:    r.str("codigo_produto", "codigo"),
			Entries: r.count("totalEntradas"),
			Exits:   r.count("totalSaidas"),
		}
		p.Movements = p.Entries + p.Exits
		if r.has("totalMovimentacoes") {
			p.Movements = r.count("totalMovimentacoes")
		}
		rep.Products = append(rep.Products, p)
	}
	return rep
}
