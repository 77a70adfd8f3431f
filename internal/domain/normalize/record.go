package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// record objeto JSON crudo con los valores aún sin decodificar.
type record map[string]json.RawMessage

func asRecord(raw []byte) (record, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false
	}
	return r, true
}

// lookup devuelve el valor de la primera clave presente y no nula.
// El orden de keys define la precedencia: campo mapeado primero, nombre legado después.
func (r record) lookup(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || bytes.Equal(v, []byte("null")) {
			continue
		}
		return v, true
	}
	return nil, false
}

func (r record) has(keys ...string) bool {
	_, ok := r.lookup(keys...)
	return ok
}

func (r record) object(key string) (record, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return nil, false
	}
	return asRecord(v)
}

func (r record) array(key string) ([]json.RawMessage, bool) {
	v, ok := r.lookup(key)
	if !ok || v[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, false
	}
	return items, true
}

// str acepta strings y números (ids numéricos, códigos numéricos).
func (r record) str(keys ...string) string {
	v, ok := r.lookup(keys...)
	if !ok {
		return ""
	}
	switch v[0] {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	}
	return string(v)
}

// money acepta números JSON y strings numéricos. Ausente, inválido o negativo → 0.
func (r record) money(keys ...string) decimal.Decimal {
	v, ok := r.lookup(keys...)
	if !ok {
		return decimal.Zero
	}
	s := string(v)
	if v[0] == '"' {
		if err := json.Unmarshal(v, &s); err != nil {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// maxCount mayor cantidad aceptada; deja margen para sumar estoques y calcular páginas sin desbordar.
var maxCount = decimal.NewFromInt(math.MaxInt32)

// count como money, truncado. Ausente, inválido, negativo o mayor que maxCount → 0.
func (r record) count(keys ...string) int {
	d := r.money(keys...)
	if d.GreaterThan(maxCount) {
		return 0
	}
	return int(d.IntPart())
}

// flag acepta true/false, "true"/"false", "ativo"/"inativo" y 1/0; cualquier otro valor → def.
func (r record) flag(def bool, keys ...string) bool {
	v, ok := r.lookup(keys...)
	if !ok {
		return def
	}
	switch strings.ToLower(strings.Trim(string(v), `"`)) {
	case "true", "ativo", "active", "1":
		return true
	case "false", "inativo", "inactive", "0":
		return false
	}
	return def
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (r record) date(keys ...string) (time.Time, bool) {
	s := strings.TrimSpace(r.str(keys...))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
