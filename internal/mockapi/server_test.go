package mockapi_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-estoque/internal/application/auth"
	"github.com/jhoicas/gestao-estoque/internal/application/catalog"
	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/movement"
	"github.com/jhoicas/gestao-estoque/internal/application/report"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/infrastructure/remoteapi"
	"github.com/jhoicas/gestao-estoque/internal/infrastructure/session"
	"github.com/jhoicas/gestao-estoque/internal/mockapi"
)

type pdfStub struct{}

func (pdfStub) GenerateStockReportPDF(context.Context, entity.StockReport, time.Time) ([]byte, error) {
	return []byte("%PDF"), nil
}

// startMock levanta la API simulada en un puerto libre y devuelve su URL.
func startMock(t *testing.T, shape string) string {
	t.Helper()
	store, err := mockapi.NewStore()
	require.NoError(t, err)
	app := mockapi.New(store, mockapi.Config{Secret: "mock-secret", Shape: shape}, zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func loginSession(t *testing.T, client *remoteapi.Client) *entity.Session {
	t.Helper()
	store := session.NewMemoryStore()
	uc := auth.NewAuthUseCase(client, store, auth.JWTConfig{Secret: "bff", TTL: time.Hour, Issuer: "bff"}, zerolog.Nop())
	out, err := uc.Login(context.Background(), dto.LoginRequest{Registration: "1001", Password: mockapi.SeedPassword})
	require.NoError(t, err)
	sess, err := uc.Authenticate(context.Background(), out.Token)
	require.NoError(t, err)
	return sess
}

// El mismo catálogo se normaliza igual sea cual sea la forma de la colección.
func TestCatalog_TodasLasFormas(t *testing.T) {
	shapes := []string{mockapi.ShapeNestedDocs, mockapi.ShapeDocs, mockapi.ShapeBareArray, mockapi.ShapeNestedArray, mockapi.ShapeProdutosKey}
	for _, shape := range shapes {
		t.Run(shape, func(t *testing.T) {
			client := remoteapi.NewClient(startMock(t, shape), 5*time.Second, zerolog.Nop())
			sess := loginSession(t, client)
			uc := catalog.NewUseCase(client, catalog.Config{PageSize: 2, SupplierID: 564}, zerolog.Nop())

			page, err := uc.List(context.Background(), sess, dto.ProductListQuery{PageQuery: dto.PageQuery{Page: 2}})
			require.NoError(t, err)
			assert.Len(t, page.Docs, 2)
			assert.Equal(t, 5, page.Total)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 2, page.Page)
			for _, p := range page.Docs {
				assert.NotEmpty(t, p.ID)
				assert.NotEmpty(t, p.Name)
			}
		})
	}
}

func TestCatalog_CrudContraMock(t *testing.T) {
	client := remoteapi.NewClient(startMock(t, ""), 5*time.Second, zerolog.Nop())
	sess := loginSession(t, client)
	uc := catalog.NewUseCase(client, catalog.Config{PageSize: 10, SupplierID: 564}, zerolog.Nop())
	ctx := context.Background()

	created, err := uc.Create(ctx, sess, dto.ProductForm{Name: "Régua 30cm", Code: "REG-30", Price: decimal.RequireFromString("4.90"), Quantity: 12, Category: "c"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, entity.CategoryC, created.Category)

	got, err := uc.Get(ctx, sess, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Régua 30cm", got.Name)
	assert.Equal(t, 12, got.Quantity)

	page, err := uc.List(ctx, sess, dto.ProductListQuery{Name: "régua"})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)

	require.NoError(t, uc.Delete(ctx, sess, created.ID))
	_, err = uc.Get(ctx, sess, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovements_AjustanEstoque(t *testing.T) {
	client := remoteapi.NewClient(startMock(t, ""), 5*time.Second, zerolog.Nop())
	sess := loginSession(t, client)
	ctx := context.Background()
	products := catalog.NewUseCase(client, catalog.Config{PageSize: 10}, zerolog.Nop())
	movements := movement.NewUseCase(client, 10, zerolog.Nop(), nil)

	page, err := products.List(ctx, sess, dto.ProductListQuery{Code: "GRA-010"})
	require.NoError(t, err)
	require.Len(t, page.Docs, 1)
	p := page.Docs[0]

	_, err = movements.Create(ctx, sess, dto.MovementForm{Type: "ENTRADA", ProductID: p.ID, Quantity: 5, Date: "2024-05-30"})
	require.NoError(t, err)
	_, err = movements.Create(ctx, sess, dto.MovementForm{Type: "SAIDA", ProductID: p.ID, Quantity: 100, Date: "2024-05-31"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	after, err := products.Get(ctx, sess, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Quantity+5, after.Quantity)

	list, err := movements.List(ctx, sess, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, list.Docs, 1)
	assert.Equal(t, "Grampeador", list.Docs[0].Product.Name)
	assert.Equal(t, "Administrador", list.Docs[0].Responsible.Name)
}

func TestReportsYDashboard(t *testing.T) {
	client := remoteapi.NewClient(startMock(t, mockapi.ShapeNestedDocs), 5*time.Second, zerolog.Nop())
	sess := loginSession(t, client)
	ctx := context.Background()
	products := catalog.NewUseCase(client, catalog.Config{PageSize: 10}, zerolog.Nop())
	movements := movement.NewUseCase(client, 10, zerolog.Nop(), nil)
	uc := report.NewUseCase(client, products, movements, pdfStub{}, zerolog.Nop(), nil)

	stock, err := uc.Stock(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 5, stock.TotalProducts)
	assert.Equal(t, 1, stock.OutOfStock)
	assert.NotEmpty(t, stock.Categories)

	d, err := uc.Dashboard(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 5, d.TotalProducts)
	assert.Equal(t, 120+8+15+0+300, d.TotalStock)
	assert.Equal(t, 2, d.LowStockCount)
	assert.True(t, d.TotalStockValue.Equal(stock.TotalStockValue))

	pop, err := uc.PopularProducts(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, pop.Products)
}

func TestLoginYToken(t *testing.T) {
	store, err := mockapi.NewStore()
	require.NoError(t, err)
	app := mockapi.New(store, mockapi.Config{Secret: "mock-secret"}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"matricula":"1001","senha":"errada"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/produtos", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
