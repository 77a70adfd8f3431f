package normalize

import (
	"strings"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// Product normaliza la respuesta de GET /produtos/{id}.
func Product(body []byte) entity.Product {
	return productFrom(single(body))
}

// productFrom mapea un registro crudo. Cuando coexisten el nombre de la API y el legado
// (nome_produto y nome), gana el de la API; el legado solo se usa si el otro falta.
func productFrom(r record) entity.Product {
	p := entity.Product{
		ID:           r.str("_id", "id"),
		Name:         r.str("nome_produto", "nome"),
		Code:         r.str("codigo_produto", "codigo"),
		Description:  r.str("descricao"),
		Price:        r.money("preco"),
		Cost:         r.money("custo"),
		Quantity:     r.count("estoque", "quantidade"),
		MinStock:     entity.DefaultMinStock,
		Category:     category(r.str("categoria")),
		Manufacturer: r.str("marca", "fabricante"),
		Active:       r.flag(true, "status"),
	}
	if r.has("estoque_min", "estoqueMinimo") {
		p.MinStock = r.count("estoque_min", "estoqueMinimo")
	}
	if t, ok := r.date("data_validade", "dataValidade"); ok {
		p.ExpirationDate = &t
	}
	return p
}

func category(s string) entity.Category {
	c := entity.Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return entity.CategoryUnclassified
	}
	return c
}
