package entity

// Page envelope canónico de paginación {docs, totalPages, page, total}.
// TotalPages y Page siempre >= 1; Docs nunca es nil.
type Page[T any] struct {
	Docs       []T `json:"docs"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Total      int `json:"total"`
}
