package entity

import "time"

// Session contexto de sesión explícito: token de la API de inventario + usuario.
// Se crea en el login y se elimina en el logout; se inyecta en la capa de acceso a datos.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
