package normalize

import (
	"bytes"
	"encoding/json"
)

// Shape forma de contenedor reconocida en una respuesta de colección.
type Shape int

// Formas en orden de prioridad de detección.
const (
	ShapeUnknown Shape = iota
	ShapeNestedDocs
	ShapeDocs
	ShapeBareArray
	ShapeNestedArray
	ShapeProdutosKey
)

func (s Shape) String() string {
	switch s {
	case ShapeNestedDocs:
		return "nestedDocs"
	case ShapeDocs:
		return "docs"
	case ShapeBareArray:
		return "bareArray"
	case ShapeNestedArray:
		return "nestedArray"
	case ShapeProdutosKey:
		return "produtosKey"
	}
	return "unknown"
}

// decoded resultado de la detección: registros crudos más la metadata que traía el cuerpo.
type decoded struct {
	shape      Shape
	records    []record
	total      int
	totalPages int
}

// Detect devuelve la forma reconocida de body (útil para logs y métricas).
func Detect(body []byte) Shape {
	return decode(body).shape
}

func decode(body []byte) decoded {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return decoded{}
	}

	if body[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return decoded{}
		}
		return decoded{shape: ShapeBareArray, records: records(items)}
	}

	top, ok := asRecord(body)
	if !ok {
		return decoded{}
	}

	if data, ok := top.object("data"); ok {
		if docs, ok := data.array("docs"); ok {
			return decoded{
				shape:      ShapeNestedDocs,
				records:    records(docs),
				total:      data.count("total"),
				totalPages: data.count("totalPages"),
			}
		}
	}
	if docs, ok := top.array("docs"); ok {
		return decoded{
			shape:      ShapeDocs,
			records:    records(docs),
			total:      top.count("total"),
			totalPages: top.count("totalPages"),
		}
	}
	if items, ok := top.array("data"); ok {
		return decoded{shape: ShapeNestedArray, records: records(items)}
	}
	if items, ok := top.array("produtos"); ok {
		return decoded{shape: ShapeProdutosKey, records: records(items)}
	}
	return decoded{}
}

// records descarta los elementos que no son objetos JSON.
func records(items []json.RawMessage) []record {
	out := make([]record, 0, len(items))
	for _, raw := range items {
		if r, ok := asRecord(raw); ok {
			out = append(out, r)
		}
	}
	return out
}

// single extrae el registro de una respuesta de entidad: {"data": {...}} o el objeto de nivel superior.
func single(body []byte) record {
	top, ok := asRecord(bytes.TrimSpace(body))
	if !ok {
		return record{}
	}
	if data, ok := top.object("data"); ok {
		return data
	}
	return top
}
