// Package movement casos de uso de movimentações (entradas y salidas de estoque).
package movement

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
)

// InsufficientStockMessage mensaje de campo para una salida mayor que el estoque.
const InsufficientStockMessage = "Quantidade maior que disponível em estoque"

// UseCase CRUD de movimentações. Las salidas se comprueban contra el estoque actual del producto.
type UseCase struct {
	api      ports.InventoryAPI
	pageSize int
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. now nil usa time.Now.
func NewUseCase(api ports.InventoryAPI, pageSize int, log zerolog.Logger, now func() time.Time) *UseCase {
	if pageSize <= 0 {
		pageSize = 10
	}
	if now == nil {
		now = time.Now
	}
	return &UseCase{api: api, pageSize: pageSize, log: log, now: now}
}

// List devuelve una página de movimentações.
func (uc *UseCase) List(ctx context.Context, sess *entity.Session, q dto.PageQuery) (entity.Page[entity.Movement], error) {
	q.Defaults(uc.pageSize)
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("limite", strconv.Itoa(q.Limit))

	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: "/movimentacoes", Query: query})
	if err != nil {
		return entity.Page[entity.Movement]{}, err
	}
	return normalize.Movements(resp.Body, normalize.PageRequest{Page: q.Page, PageSize: q.Limit}, resp.PageHints(), uc.now()), nil
}

// Get devuelve una movimentação por ID.
func (uc *UseCase) Get(ctx context.Context, sess *entity.Session, id string) (entity.Movement, error) {
	if strings.TrimSpace(id) == "" {
		return entity.Movement{}, domain.ErrInvalidInput
	}
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodGet, Path: movementPath(id)})
	if err != nil {
		return entity.Movement{}, err
	}
	m := normalize.Movement(resp.Body, uc.now())
	if m.ID == "" {
		m.ID = id
	}
	return m, nil
}

// Create registra una movimentação. responsavelId vacío toma el usuario de la sesión.
func (uc *UseCase) Create(ctx context.Context, sess *entity.Session, in dto.MovementForm) (entity.Movement, error) {
	m, err := uc.prepare(ctx, sess, in)
	if err != nil {
		return entity.Movement{}, err
	}
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/movimentacoes",
		Body:   normalize.MovementWrite(m),
	})
	if err != nil {
		return entity.Movement{}, err
	}
	uc.log.Info().
		Str("tipo", m.Direction.APIType()).
		Str("produto", m.Product.ID).
		Int("quantidade", m.Quantity).
		Msg("movimentação registrada")
	return uc.merge(resp.Body, m), nil
}

// Update reemplaza una movimentação (PUT).
func (uc *UseCase) Update(ctx context.Context, sess *entity.Session, id string, in dto.MovementForm) (entity.Movement, error) {
	if strings.TrimSpace(id) == "" {
		return entity.Movement{}, domain.ErrInvalidInput
	}
	m, err := uc.prepare(ctx, sess, in)
	if err != nil {
		return entity.Movement{}, err
	}
	m.ID = id
	resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{
		Method: http.MethodPut,
		Path:   movementPath(id),
		Body:   normalize.MovementWrite(m),
	})
	if err != nil {
		return entity.Movement{}, err
	}
	return uc.merge(resp.Body, m), nil
}

// Delete elimina una movimentação.
func (uc *UseCase) Delete(ctx context.Context, sess *entity.Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrInvalidInput
	}
	_, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodDelete, Path: movementPath(id)})
	return err
}

// prepare normaliza y valida el formulario; para salidas consulta el producto y compara el estoque.
func (uc *UseCase) prepare(ctx context.Context, sess *entity.Session, in dto.MovementForm) (entity.Movement, error) {
	if d := normalize.Direction(in.Type); d != entity.DirectionUnknown {
		in.Type = d.APIType()
	}
	in.ProductID = strings.TrimSpace(in.ProductID)
	if strings.TrimSpace(in.ResponsibleID) == "" {
		in.ResponsibleID = sess.User.ID
	}
	if err := validation.Struct(in); err != nil {
		return entity.Movement{}, err
	}

	date, _ := time.Parse(normalize.DateLayout, in.Date)
	m := entity.Movement{
		Direction:   normalize.Direction(in.Type),
		Quantity:    in.Quantity,
		Timestamp:   date,
		Product:     entity.ProductRef{ID: in.ProductID, Name: entity.ProductUnavailableName},
		Responsible: entity.UserRef{ID: in.ResponsibleID, Name: entity.UserUnavailableName},
		Note:        in.Note,
	}
	if in.ResponsibleID == sess.User.ID {
		m.Responsible = entity.UserRef{ID: sess.User.ID, Name: sess.User.Name, Registration: sess.User.Registration}
	}

	if m.Direction == entity.DirectionExit {
		resp, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{
			Method: http.MethodGet,
			Path:   "/produtos/" + url.PathEscape(in.ProductID),
		})
		if err != nil {
			return entity.Movement{}, err
		}
		p := normalize.Product(resp.Body)
		if p.Name != "" {
			m.Product = entity.ProductRef{ID: in.ProductID, Name: p.Name, Code: p.Code}
		}
		if in.Quantity > p.Quantity {
			return entity.Movement{}, fmt.Errorf("%w: disponível %d, solicitado %d",
				domain.ErrInsufficientStock, p.Quantity, in.Quantity)
		}
	}
	return m, nil
}

// merge usa la movimentação devuelta por la API si la trae; si solo confirma, la enviada.
func (uc *UseCase) merge(body []byte, sent entity.Movement) entity.Movement {
	got := normalize.Movement(body, uc.now())
	if got.ID == "" {
		return sent
	}
	return got
}

func movementPath(id string) string {
	return "/movimentacoes/" + url.PathEscape(id)
}
