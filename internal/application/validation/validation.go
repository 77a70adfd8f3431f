// Package validation valida los formularios de productos, movimentações y login
// con go-playground/validator y traduce los fallos a mensajes en pt-BR por campo.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-estoque/internal/domain"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre JSON del campo (nome, preco, ...).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como número (gt=0, gte=0).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// FieldErrors errores de formulario: campo JSON → mensaje.
// Cumple errors.Is(err, domain.ErrInvalidInput).
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error { return domain.ErrInvalidInput }

// Struct valida v. Devuelve nil o FieldErrors.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

// messages textos por campo.regla; el resto cae en genericMessage.
var messages = map[string]string{
	"nome.required":          "Nome é obrigatório",
	"codigo.required":        "Código é obrigatório",
	"preco.gt":               "Preço deve ser maior que zero",
	"custo.gte":              "Custo não pode ser negativo",
	"quantidade.gte":         "Quantidade não pode ser negativa",
	"quantidade.gt":          "Quantidade deve ser maior que zero",
	"estoqueMinimo.gte":      "Estoque mínimo não pode ser negativo",
	"categoria.oneof":        "Categoria deve ser A, B ou C",
	"dataValidade.datetime":  "Data de validade inválida (use AAAA-MM-DD)",
	"tipo.required":          "Tipo é obrigatório",
	"tipo.oneof":             "Tipo deve ser ENTRADA ou SAIDA",
	"produtoId.required":     "Produto é obrigatório",
	"data.required":          "Data é obrigatória",
	"data.datetime":          "Data inválida (use AAAA-MM-DD)",
	"responsavelId.required": "Responsável é obrigatório",
	"matricula.required":     "Matrícula é obrigatória",
	"senha.required":         "Senha é obrigatória",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return m
	}
	return genericMessage(fe)
}

func genericMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Campo obrigatório"
	case "gt":
		return "Deve ser maior que " + fe.Param()
	case "gte":
		return "Deve ser maior ou igual a " + fe.Param()
	case "oneof":
		return "Valor deve ser um de: " + fe.Param()
	default:
		return "Valor inválido"
	}
}
