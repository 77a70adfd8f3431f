package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrUpstreamUnavailable = errors.New("API de inventario no disponible")
	ErrSuperseded          = errors.New("petición reemplazada por una más reciente")
	ErrSessionNotFound     = errors.New("sesión no encontrada")
)

// UpstreamError respuesta HTTP de error (status >= 400) devuelta por la API de inventario.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API de inventario respondió %d", e.Status)
	}
	return fmt.Sprintf("API de inventario respondió %d: %s", e.Status, e.Message)
}

// Is permite errors.Is(err, domain.ErrUnauthorized) y errors.Is(err, domain.ErrNotFound)
// sobre errores del upstream.
func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
