package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-estoque/internal/application/catalog"
	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports/portstest"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var sess = &entity.Session{ID: "s1", Token: "upstream-token"}

func newUseCase(api *portstest.FakeAPI) *catalog.UseCase {
	return catalog.NewUseCase(api, catalog.Config{PageSize: 10, SupplierID: 564}, zerolog.Nop())
}

func TestList_FiltrosYPaginacion(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos", portstest.Reply{
		Header: http.Header{"X-Total-Count": {"23"}},
		Body:   `[{"_id":"1","nome_produto":"Widget","estoque":3}]`,
	})
	uc := newUseCase(api)

	page, err := uc.List(context.Background(), sess, dto.ProductListQuery{
		PageQuery: dto.PageQuery{Page: 2},
		Name:      " Wid ",
		Category:  "a",
	})
	require.NoError(t, err)

	call, ok := api.Last(http.MethodGet, "/produtos")
	require.True(t, ok)
	assert.Equal(t, "upstream-token", call.Token)
	assert.Equal(t, "Wid", call.Req.Query.Get("nome_produto"))
	assert.Equal(t, "A", call.Req.Query.Get("categoria"))
	assert.Equal(t, "2", call.Req.Query.Get("page"))
	assert.Equal(t, "10", call.Req.Query.Get("limite"))
	assert.False(t, call.Req.Query.Has("codigo_produto"))

	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 23, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Docs, 1)
	assert.Equal(t, "Widget", page.Docs[0].Name)
}

func TestList_ErrorDelGatewaySePropaga(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos", portstest.Reply{Err: domain.ErrUpstreamUnavailable})
	_, err := newUseCase(api).List(context.Background(), sess, dto.ProductListQuery{})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGet_Normaliza(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos/abc", portstest.Reply{
		Body: `{"data":{"_id":"abc","nome_produto":"Porca","estoque":"7"}}`,
	})
	p, err := newUseCase(api).Get(context.Background(), sess, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Porca", p.Name)
	assert.Equal(t, 7, p.Quantity)

	_, err = newUseCase(api).Get(context.Background(), sess, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_EnviaFormaDeEscritura(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodPost, "/produtos", portstest.Reply{
		Status: http.StatusCreated,
		Body:   `{"_id":"new","nome_produto":"Widget","codigo_produto":"W1","preco":9.9,"estoque":5,"categoria":"B"}`,
	})
	p, err := newUseCase(api).Create(context.Background(), sess, dto.ProductForm{
		Name:           "Widget",
		Code:           "W1",
		Price:          decimal.RequireFromString("9.90"),
		Quantity:       5,
		Category:       "b",
		ExpirationDate: "2027-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
	assert.Equal(t, entity.CategoryB, p.Category)

	call, _ := api.Last(http.MethodPost, "/produtos")
	body := call.BodyJSON()
	assert.Equal(t, "Widget", body["nome_produto"])
	assert.Equal(t, "W1", body["codigo_produto"])
	assert.Equal(t, "B", body["categoria"])
	assert.EqualValues(t, 5, body["estoque"])
	assert.EqualValues(t, 564, body["id_fornecedor"])
	assert.Equal(t, true, body["status"])
	assert.Equal(t, "2027-01-31", body["data_validade"])
}

func TestCreate_FormularioInvalidoNoLlamaALaAPI(t *testing.T) {
	api := portstest.NewFakeAPI()
	_, err := newUseCase(api).Create(context.Background(), sess, dto.ProductForm{Name: "  "})

	var fields validation.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "nome")
	assert.Contains(t, fields, "preco")
	assert.Empty(t, api.Calls())
}

func TestUpdate_PatchYRespuestaVacia(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodPatch, "/produtos/p1", portstest.Reply{Body: `{"message":"ok"}`})
	inactive := false
	p, err := newUseCase(api).Update(context.Background(), sess, "p1", dto.ProductForm{
		Name:   "Widget",
		Code:   "W1",
		Price:  decimal.NewFromInt(1),
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.False(t, p.Active)

	call, ok := api.Last(http.MethodPatch, "/produtos/p1")
	require.True(t, ok)
	assert.Equal(t, false, call.BodyJSON()["status"])
}

func TestDelete(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodDelete, "/produtos/p1", portstest.Reply{
		Err: &domain.UpstreamError{Status: http.StatusNotFound},
	})
	err := newUseCase(api).Delete(context.Background(), sess, "p1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock_FormaProdutos(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos/estoque-baixo", portstest.Reply{
		Body: `{"produtos":[{"_id":"1","nome":"Cabo","quantidade":1,"estoqueMinimo":5}]}`,
	})
	out, err := newUseCase(api).LowStock(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].IsLowStock())
}

func TestList_LogDeFormaSoloConDebug(t *testing.T) {
	api := portstest.NewFakeAPI().On(http.MethodGet, "/produtos", portstest.Reply{
		Body: `[{"_id":"1","nome_produto":"Widget","estoque":3}]`,
	})

	var buf bytes.Buffer
	uc := catalog.NewUseCase(api, catalog.Config{PageSize: 10}, zerolog.New(&buf).Level(zerolog.DebugLevel))
	_, err := uc.List(context.Background(), sess, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"shape":"bareArray"`)

	buf.Reset()
	uc = catalog.NewUseCase(api, catalog.Config{PageSize: 10}, zerolog.New(&buf).Level(zerolog.InfoLevel))
	_, err = uc.List(context.Background(), sess, dto.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}
