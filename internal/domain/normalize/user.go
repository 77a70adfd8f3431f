package normalize

import "github.com/jhoicas/gestao-estoque/internal/domain/entity"

// User normaliza un usuario (GET /usuarios/{id} o el user del login).
func User(body []byte) entity.User {
	return userFrom(single(body))
}

func userFrom(r record) entity.User {
	return entity.User{
		ID:           r.str("_id", "id"),
		Name:         r.str("nome", "name"),
		Registration: r.str("matricula"),
		Email:        r.str("email"),
		Role:         r.str("tipoUsuario", "role"),
		Active:       r.flag(true, "status", "ativo"),
	}
}
