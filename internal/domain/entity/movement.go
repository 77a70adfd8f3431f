package entity

import "time"

// Direction sentido de una movimentação.
type Direction string

// Direcciones internas. ENTRADA/SAIDA son el formato de la API.
const (
	DirectionEntry   Direction = "ENTRY"
	DirectionExit    Direction = "EXIT"
	DirectionUnknown Direction = ""
)

// Nombres mostrados cuando la API no trae la relación.
const (
	ProductUnavailableName = "product unavailable"
	ProductUnavailableCode = "N/A"
	UserUnavailableName    = "user unavailable"
)

// ProductRef referencia al producto de una movimentação.
type ProductRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"nome"`
	Code string `json:"codigo,omitempty"`
}

// UserRef referencia al responsável de una movimentação.
type UserRef struct {
	ID           string `json:"_id,omitempty"`
	Name         string `json:"nome"`
	Registration string `json:"matricula,omitempty"`
}

// PlaceholderProduct sustituto cuando la movimentação no trae produto.
func PlaceholderProduct() ProductRef {
	return ProductRef{Name: ProductUnavailableName, Code: ProductUnavailableCode}
}

// PlaceholderUser sustituto cuando la movimentação no trae responsável.
func PlaceholderUser() UserRef {
	return UserRef{Name: UserUnavailableName}
}

// Movement forma canónica de una entrada o salida de estoque.
// Product y Responsible nunca quedan vacíos: se rellenan con los placeholders.
type Movement struct {
	ID          string     `json:"_id"`
	Direction   Direction  `json:"tipo"`
	Quantity    int        `json:"quantidade"`
	Timestamp   time.Time  `json:"data"`
	Product     ProductRef `json:"produto"`
	Responsible UserRef    `json:"responsavel"`
	Note        string     `json:"observacao"`
}

// APIType valor de tipo en el formato de la API (ENTRADA / SAIDA).
func (d Direction) APIType() string {
	switch d {
	case DirectionEntry:
		return "ENTRADA"
	case DirectionExit:
		return "SAIDA"
	}
	return ""
}
