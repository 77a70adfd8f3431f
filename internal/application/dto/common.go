package dto

// PageQuery paginación de listados (?page=&limite=).
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limite"`
}

// Defaults aplica página 1 y el tamaño por defecto si vienen vacíos o fuera de rango.
func (p *PageQuery) Defaults(defaultLimit int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
