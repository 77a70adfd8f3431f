package dto

import (
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// LoginRequest credenciales de la API de inventario.
type LoginRequest struct {
	Registration string `json:"matricula" validate:"required"`
	Password     string `json:"senha" validate:"required"`
}

// LoginResponse token de sesión del BFF + usuario autenticado.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      entity.User `json:"user"`
}
