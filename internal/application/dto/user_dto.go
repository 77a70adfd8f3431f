package dto

// UserListQuery filtros de GET /api/users.
type UserListQuery struct {
	PageQuery
	Name string `query:"nome"`
}
