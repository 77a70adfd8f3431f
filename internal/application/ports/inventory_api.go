package ports

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

// APIRequest petición a la API de inventario.
type APIRequest struct {
	Method string
	Path   string     // relativo a la base URL, ej. "/produtos"
	Query  url.Values // opcional
	Body   any        // se serializa a JSON si no es nil
}

// APIResponse respuesta exitosa (status < 400) de la API de inventario.
type APIResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// HeaderInt lee un header entero; 0 si falta o no es numérico.
func (r *APIResponse) HeaderInt(names ...string) int {
	for _, name := range names {
		if v := r.Header.Get(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return 0
}

// PageHints metadata de paginación enviada en headers por la API.
func (r *APIResponse) PageHints() normalize.Hints {
	return normalize.Hints{
		TotalCount: r.HeaderInt("X-Total-Count", "Total-Count"),
		TotalPages: r.HeaderInt("X-Total-Pages"),
	}
}

// InventoryAPI puerto de salida hacia la API REST de inventario.
// Toda operación de datos del BFF pasa por aquí; el token viene de la sesión explícita.
//
// Errores:
//   - fallo de red: envuelve domain.ErrUpstreamUnavailable
//   - status >= 400: *domain.UpstreamError
type InventoryAPI interface {
	Do(ctx context.Context, token string, req APIRequest) (*APIResponse, error)
}
