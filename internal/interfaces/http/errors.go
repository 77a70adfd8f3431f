package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
)

// Códigos de error de la API del BFF.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION"
	CodeInvalidBody         = "INVALID_BODY"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeSuperseded          = "SUPERSEDED"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamError       = "UPSTREAM_ERROR"
	CodeInternal            = "INTERNAL"
)

// errorMapper traduce errores de aplicación a dto.ErrorResponse con su status HTTP.
type errorMapper struct {
	log zerolog.Logger
}

func (m errorMapper) write(c *fiber.Ctx, err error) error {
	status, body := m.resolve(err)
	if status >= fiber.StatusInternalServerError {
		m.log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("error en petición")
	}
	return c.Status(status).JSON(body)
}

func (m errorMapper) resolve(err error) (int, dto.ErrorResponse) {
	var (
		fields validation.FieldErrors
		upErr  *domain.UpstreamError
	)
	upstreamMsg := func(def string) string {
		if errors.As(err, &upErr) && upErr.Message != "" {
			return upErr.Message
		}
		return def
	}

	switch {
	case errors.As(err, &fields):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: "Dados inválidos", Fields: fields}
	case errors.Is(err, domain.ErrSuperseded):
		return fiber.StatusConflict, dto.ErrorResponse{Code: CodeSuperseded, Message: "Requisição substituída por uma mais recente"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    CodeInsufficientStock,
			Message: movement.InsufficientStockMessage,
			Fields:  map[string]string{"quantidade": movement.InsufficientStockMessage},
		}
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: CodeUnauthorized, Message: upstreamMsg("Não autorizado")}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: CodeForbidden, Message: upstreamMsg("Acesso negado")}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: CodeNotFound, Message: upstreamMsg("Registro não encontrado")}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeValidation, Message: "Dados inválidos"}
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: CodeUpstreamUnavailable, Message: "API de estoque indisponível"}
	case errors.As(err, &upErr):
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: CodeUpstreamError, Message: upstreamMsg("Erro na API de estoque")}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeInternal, Message: "Erro interno"}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "Corpo da requisição inválido"})
}
