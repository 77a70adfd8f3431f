package normalize

import "github.com/jhoicas/gestao-estoque/internal/domain/entity"

// Login extrae token y usuario de POST /auth/login: {token, user} plano o bajo "data".
// Token vacío significa que la respuesta no trae credenciales.
func Login(body []byte) (string, entity.User) {
	r := single(body)
	token := r.str("token", "accessToken", "access_token")
	u, ok := r.object("user")
	if !ok {
		u, _ = r.object("usuario")
	}
	if u == nil {
		u = record{}
	}
	return token, userFrom(u)
}
