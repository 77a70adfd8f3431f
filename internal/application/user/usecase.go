package user

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

// UseCase consulta de usuarios (responsáveis de movimentações).
type UseCase struct {
	api      ports.InventoryAPI
	pageSize int
}

// NewUseCase construye el caso de uso.
func NewUseCase(api ports.InventoryAPI, pageSize int) *UseCase {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &UseCase{api: api, pageSize: pageSize}
}

// List devuelve una página de usuarios, opcionalmente filtrada por nombre.
func (uc *UseCase) List(ctx context.Context, sess *entity.Session, q dto.UserListQuery) (entity.Page[entity.User], error) {
	q.Defaults(uc.pageSize)
	query := url.Values{}
	if v := strings.TrimSpace(q.Name); v != "" {
		query.Set("nome", v)
	}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limite", strconv.Itoa(q.Limit))

	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/usuarios", Query: query})
	if err != nil {
		return entity.Page[entity.User]{}, err
	}
	return normalize.Users(resp.Body, normalize.PageRequest{Page: q.Page, PageSize: q.Limit}, resp.PageHints()), nil
}

// Get devuelve un usuario por ID.
func (uc *UseCase) Get(ctx context.Context, sess *entity.Session, id string) (entity.User, error) {
	if strings.TrimSpace(id) == "" {
		return entity.User{}, domain.ErrInvalidInput
	}
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/usuarios/" + url.PathEscape(id)})
	if err != nil {
		return entity.User{}, err
	}
	u := normalize.User(resp.Body)
	if u.ID == "" {
		u.ID = id
	}
	return u, nil
}
