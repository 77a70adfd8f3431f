package normalize

import (
	"strings"
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// Movement normaliza la respuesta de GET /movimentacoes/{id}.
func Movement(body []byte, now time.Time) entity.Movement {
	return movementFrom(single(body), now)
}

func movementFrom(r record, now time.Time) entity.Movement {
	m := entity.Movement{
		ID:          r.str("_id", "id"),
		Direction:   Direction(r.str("tipo")),
		Quantity:    r.count("quantidade"),
		Timestamp:   now,
		Product:     productRef(r),
		Responsible: userRef(r),
		Note:        r.str("observacao"),
	}
	if t, ok := r.date("data", "createdAt", "created_at"); ok {
		m.Timestamp = t
	}
	return m
}

// Direction traduce el tipo de la API (ENTRADA/SAIDA) a la dirección interna.
func Direction(tipo string) entity.Direction {
	switch strings.ToUpper(strings.TrimSpace(tipo)) {
	case "ENTRADA", "ENTRY", "IN":
		return entity.DirectionEntry
	case "SAIDA", "SAÍDA", "EXIT", "OUT":
		return entity.DirectionExit
	}
	return entity.DirectionUnknown
}

// productRef acepta produto poblado (objeto), sin poblar (id) o ausente.
func productRef(r record) entity.ProductRef {
	ref := entity.PlaceholderProduct()
	if obj, ok := r.object("produto"); ok {
		ref.ID = obj.str("_id", "id")
		if name := obj.str("nome_produto", "nome"); name != "" {
			ref.Name = name
		}
		if code := obj.str("codigo_produto", "codigo"); code != "" {
			ref.Code = code
		}
		return ref
	}
	ref.ID = r.str("produto", "produtoId")
	return ref
}

func userRef(r record) entity.UserRef {
	ref := entity.PlaceholderUser()
	if obj, ok := r.object("responsavel"); ok {
		ref.ID = obj.str("_id", "id")
		ref.Registration = obj.str("matricula")
		if name := obj.str("nome"); name != "" {
			ref.Name = name
		}
		return ref
	}
	ref.ID = r.str("responsavel", "responsavelId")
	return ref
}
