package movement_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
	"github.com/jhoicas/gestao-estoque/internal/application/ports/portstest"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var (
	fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	sess     = &entity.Session{
		ID:    "s1",
		Token: "upstream-token",
		User:  entity.User{ID: "u1", Name: "Ana", Registration: "123"},
	}
)

func newUseCase(api *portstest.FakeAPI) *movement.UseCase {
	return movement.NewUseCase(api, 10, zerolog.Nop(), func() time.Time { return fixedNow })
}

func exitForm(qty int) dto.MovementForm {
	return dto.MovementForm{Type: "saida", ProductID: "p1", Quantity: qty, Date: "2024-05-09"}
}

func TestList_Normaliza(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/movimentacoes", portstest.Reply{
		Body: `{"data":{"docs":[{"_id":"m1","tipo":"ENTRADA","quantidade":4,"produto":null}],"total":1,"totalPages":1}}`,
	})
	page, err := newUseCase(api).List(context.Background(), sess, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	m := page.Docs[0]
	assert.Equal(t, entity.DirectionEntry, m.Direction)
	assert.Equal(t, entity.PlaceholderProduct(), m.Product)
	assert.Equal(t, fixedNow, m.Timestamp)

	call, _ := api.Last(http.MethodGet, "/movimentacoes")
	assert.Equal(t, "1", call.Req.Query.Get("page"))
	assert.Equal(t, "10", call.Req.Query.Get("limite"))
}

func TestCreate_EntradaUsaUsuarioDeSesion(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodPost, "/movimentacoes", portstest.Reply{Status: http.StatusCreated, Body: `{}`})
	m, err := newUseCase(api).Create(context.Background(), sess, dto.MovementForm{
		Type: "ENTRADA", ProductID: "p1", Quantity: 3, Date: "2024-05-09", Note: "compra",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionEntry, m.Direction)
	assert.Equal(t, "Ana", m.Responsible.Name)

	// las entradas no consultan el producto
	_, fetched := api.Last(http.MethodGet, "/produtos/p1")
	assert.False(t, fetched)

	call, _ := api.Last(http.MethodPost, "/movimentacoes")
	body := call.BodyJSON()
	assert.Equal(t, "ENTRADA", body["tipo"])
	assert.Equal(t, "p1", body["produtoId"])
	assert.Equal(t, "u1", body["responsavelId"])
	assert.Equal(t, "2024-05-09", body["data"])
	assert.EqualValues(t, 3, body["quantidade"])
}

func TestCreate_SalidaMayorQueEstoque(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos/p1", portstest.Reply{
		Body: `{"_id":"p1","nome_produto":"Widget","estoque":2}`,
	})
	_, err := newUseCase(api).Create(context.Background(), sess, exitForm(3))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, posted := api.Last(http.MethodPost, "/movimentacoes")
	assert.False(t, posted)
}

func TestCreate_SalidaDentroDelEstoque(t *testing.T) {
	api := portstest.NewFakeAPI().
		On(http.MethodGet, "/produtos/p1", portstest.Reply{Body: `{"_id":"p1","nome_produto":"Widget","codigo_produto":"W1","estoque":3}`}).
		On(http.MethodPost, "/movimentacoes", portstest.Reply{Body: `{"message":"ok"}`})

	m, err := newUseCase(api).Create(context.Background(), sess, exitForm(3))
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionExit, m.Direction)
	assert.Equal(t, "Widget", m.Product.Name)
	assert.Equal(t, "W1", m.Product.Code)

	call, _ := api.Last(http.MethodPost, "/movimentacoes")
	assert.Equal(t, "SAIDA", call.BodyJSON()["tipo"])
}

func TestCreate_FormularioInvalido(t *testing.T) {
	api := portstest.NewFakeAPI()
	anon := &entity.Session{ID: "s2", Token: "t"}
	_, err := newUseCase(api).Create(context.Background(), anon, dto.MovementForm{Type: "TROCA"})

	var fields validation.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "tipo")
	assert.Contains(t, fields, "produtoId")
	assert.Contains(t, fields, "quantidade")
	assert.Contains(t, fields, "data")
	assert.Contains(t, fields, "responsavelId")
	assert.Empty(t, api.Calls())
}

func TestUpdate_RespuestaDeLaAPIGana(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodPut, "/movimentacoes/m1", portstest.Reply{
		Body: `{"_id":"m1","tipo":"ENTRADA","quantidade":8,"data":"2024-05-09T10:00:00Z","produto":{"_id":"p1","nome_produto":"Widget"},"responsavel":{"_id":"u1","nome":"Ana"}}`,
	})
	m, err := newUseCase(api).Update(context.Background(), sess, "m1", dto.MovementForm{
		Type: "ENTRADA", ProductID: "p1", Quantity: 8, Date: "2024-05-09",
	})
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "Widget", m.Product.Name)
	assert.Equal(t, 8, m.Quantity)
}

func TestGetYDelete(t *testing.T) {
	api := portstest.NewFakeAPI().
		On(http.MethodGet, "/movimentacoes/m1", portstest.Reply{Body: `{"_id":"m1","tipo":"SAIDA","quantidade":1,"produto":"p1"}`}).
		On(http.MethodDelete, "/movimentacoes/m1", portstest.Reply{Status: http.StatusNoContent, Body: ``})
	uc := newUseCase(api)

	m, err := uc.Get(context.Background(), sess, "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionExit, m.Direction)
	assert.Equal(t, "p1", m.Product.ID)
	assert.Equal(t, entity.ProductUnavailableName, m.Product.Name)

	require.NoError(t, uc.Delete(context.Background(), sess, "m1"))
	assert.ErrorIs(t, uc.Delete(context.Background(), sess, ""), domain.ErrInvalidInput)
}
