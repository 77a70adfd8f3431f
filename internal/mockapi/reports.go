package mockapi

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const (
	latestMovements = 10
	popularLimit    = 10
)

func (s *Server) stockReport(c *fiber.Ctx) error {
	products := s.store.listProducts(productFilter{})
	type bucket struct {
		qty   int
		value decimal.Decimal
	}
	byCategory := map[string]*bucket{}
	total := decimal.Zero
	out, low := 0, 0
	for _, p := range products {
		value := p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
		total = total.Add(value)
		if p.Stock == 0 {
			out++
		}
		if p.Stock <= p.MinStock {
			low++
		}
		name := p.Category
		if name == "" {
			name = "Sem categoria"
		}
		b, ok := byCategory[name]
		if !ok {
			b = &bucket{}
			byCategory[name] = b
		}
		b.qty += p.Stock
		b.value = b.value.Add(value)
	}

	names := make([]string, 0, len(byCategory))
	for name := range byCategory {
		names = append(names, name)
	}
	sort.Strings(names)
	categories := make([]fiber.Map, 0, len(names))
	for _, name := range names {
		b := byCategory[name]
		categories = append(categories, fiber.Map{"nome": name, "quantidade": b.qty, "valor": b.value.InexactFloat64()})
	}

	return c.JSON(fiber.Map{"data": fiber.Map{
		"totalProdutos":        len(products),
		"valorTotalEstoque":    total.InexactFloat64(),
		"produtosSemEstoque":   out,
		"produtosEstoqueBaixo": low,
		"categorias":           categories,
	}})
}

func (s *Server) movementReport(c *fiber.Ctx) error {
	from, errFrom := time.Parse(dateLayout, c.Query("dataInicio"))
	to, errTo := time.Parse(dateLayout, c.Query("dataFim"))
	if errFrom != nil || errTo != nil {
		return fail(c, fiber.StatusBadRequest, "dataInicio e dataFim são obrigatórias (YYYY-MM-DD)")
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	entries, exits := 0, 0
	entriesValue, exitsValue := decimal.Zero, decimal.Zero
	latest := []fiber.Map{}
	for _, m := range s.store.listMovements() {
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		value := decimal.Zero
		if p, err := s.store.product(m.ProductID); err == nil {
			value = p.Price.Mul(decimal.NewFromInt(int64(m.Quantity)))
		}
		if m.Type == "SAIDA" {
			exits += m.Quantity
			exitsValue = exitsValue.Add(value)
		} else {
			entries += m.Quantity
			entriesValue = entriesValue.Add(value)
		}
		if len(latest) < latestMovements {
			latest = append(latest, s.movementJSON(m))
		}
	}
	return c.JSON(fiber.Map{
		"totalEntradas":        entries,
		"totalSaidas":          exits,
		"valorTotalEntradas":   entriesValue.InexactFloat64(),
		"valorTotalSaidas":     exitsValue.InexactFloat64(),
		"ultimasMovimentacoes": latest,
	})
}

func (s *Server) popularProducts(c *fiber.Ctx) error {
	type counter struct {
		product        product
		entries, exits int
	}
	counts := map[string]*counter{}
	for _, m := range s.store.listMovements() {
		cnt, ok := counts[m.ProductID]
		if !ok {
			p, err := s.store.product(m.ProductID)
			if err != nil {
				continue
			}
			cnt = &counter{product: p}
			counts[m.ProductID] = cnt
		}
		if m.Type == "SAIDA" {
			cnt.exits++
		} else {
			cnt.entries++
		}
	}

	ranked := make([]*counter, 0, len(counts))
	for _, cnt := range counts {
		ranked = append(ranked, cnt)
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i].entries+ranked[i].exits, ranked[j].entries+ranked[j].exits
		if a != b {
			return a > b
		}
		return ranked[i].product.Name < ranked[j].product.Name
	})
	if len(ranked) > popularLimit {
		ranked = ranked[:popularLimit]
	}

	items := make([]fiber.Map, 0, len(ranked))
	for _, cnt := range ranked {
		items = append(items, fiber.Map{
			"_id":                cnt.product.ID,
			"nome_produto":       cnt.product.Name,
			"codigo_produto":     cnt.product.Code,
			"totalEntradas":      cnt.entries,
			"totalSaidas":        cnt.exits,
			"totalMovimentacoes": cnt.entries + cnt.exits,
		})
	}
	return c.JSON(fiber.Map{"produtos": items})
}
