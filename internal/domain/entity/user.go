package entity

// User usuario del sistema tal como lo devuelve la API (login y /usuarios).
type User struct {
	ID           string `json:"_id"`
	Name         string `json:"nome"`
	Registration string `json:"matricula"`
	Email        string `json:"email,omitempty"`
	Role         string `json:"tipoUsuario"`
	Active       bool   `json:"status"`
}
