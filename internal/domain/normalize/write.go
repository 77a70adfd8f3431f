package normalize

import (
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// DateLayout formato de fecha que la API espera en escrituras.
const DateLayout = "2006-01-02"

// ProductWrite construye el cuerpo de POST/PATCH /produtos a partir de la forma canónica.
// Es el inverso de productFrom: ProductWrite → JSON → Product conserva nome, codigo,
// preco, quantidade y categoria.
func ProductWrite(p entity.Product, supplierID int) map[string]any {
	body := map[string]any{
		"nome_produto":   p.Name,
		"codigo_produto": p.Code,
		"descricao":      p.Description,
		"preco":          p.Price,
		"custo":          p.Cost,
		"marca":          p.Manufacturer,
		"categoria":      string(p.Category),
		"estoque":        p.Quantity,
		"estoque_min":    p.MinStock,
		"id_fornecedor":  supplierID,
		"status":         p.Active,
	}
	if p.ExpirationDate != nil {
		body["data_validade"] = p.ExpirationDate.Format(DateLayout)
	}
	return body
}

// MovementWrite construye el cuerpo de POST/PUT /movimentacoes.
func MovementWrite(m entity.Movement) map[string]any {
	date := m.Timestamp
	if date.IsZero() {
		date = time.Now()
	}
	return map[string]any{
		"tipo":          m.Direction.APIType(),
		"produtoId":     m.Product.ID,
		"quantidade":    m.Quantity,
		"data":          date.Format(DateLayout),
		"responsavelId": m.Responsible.ID,
		"observacao":    m.Note,
	}
}
