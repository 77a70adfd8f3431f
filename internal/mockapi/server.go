// Package mockapi API REST de inventario simulada para desarrollo local.
// Los listados responden en cualquiera de las formas de colección que el BFF normaliza.
package mockapi

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-estoque/pkg/jwt"
)

// Formas de colección soportadas (parámetro ?shape= o Config.Shape).
const (
	ShapeNestedDocs  = "nestedDocs"
	ShapeDocs        = "docs"
	ShapeBareArray   = "bareArray"
	ShapeNestedArray = "nestedArray"
	ShapeProdutosKey = "produtosKey"
)

const (
	issuer     = "mockapi"
	dateLayout = "2006-01-02"
)

// Config configuración de la API simulada.
type Config struct {
	Secret   string
	Shape    string
	TokenTTL time.Duration
}

// Server handlers de la API simulada.
type Server struct {
	store *Store
	cfg   Config
	log   zerolog.Logger
}

// New construye la aplicación Fiber con todas las rutas; middleware se registra antes que ellas.
func New(store *Store, cfg Config, log zerolog.Logger, middleware ...fiber.Handler) *fiber.App {
	if cfg.Shape == "" {
		cfg.Shape = ShapeDocs
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 8 * time.Hour
	}
	s := &Server{store: store, cfg: cfg, log: log}

	app := fiber.New(fiber.Config{AppName: "mockapi"})
	for _, h := range middleware {
		app.Use(h)
	}
	app.Post("/auth/login", s.login)

	api := app.Group("/", s.requireToken)
	api.Post("/auth/logout", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	api.Get("/produtos", s.listProducts)
	api.Get("/produtos/estoque-baixo", s.lowStock)
	api.Get("/produtos/:id", s.getProduct)
	api.Post("/produtos", s.createProduct)
	api.Patch("/produtos/:id", s.updateProduct)
	api.Delete("/produtos/:id", s.deleteProduct)

	api.Get("/movimentacoes", s.listMovements)
	api.Get("/movimentacoes/:id", s.getMovement)
	api.Post("/movimentacoes", s.createMovement)
	api.Put("/movimentacoes/:id", s.updateMovement)
	api.Delete("/movimentacoes/:id", s.deleteMovement)

	api.Get("/usuarios", s.listUsers)
	api.Get("/usuarios/:id", s.getUser)

	api.Get("/relatorios/estoque", s.stockReport)
	api.Get("/relatorios/movimentacoes", s.movementReport)
	api.Get("/relatorios/produtos-populares", s.popularProducts)
	return app
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}

func (s *Server) storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errNotFound):
		return fail(c, fiber.StatusNotFound, "Registro não encontrado")
	case errors.Is(err, errInsufficientStock):
		return fail(c, fiber.StatusBadRequest, "Estoque insuficiente")
	}
	s.log.Error().Err(err).Str("path", c.Path()).Msg("mockapi")
	return fail(c, fiber.StatusInternalServerError, "Erro interno")
}

// ── Auth ──

func (s *Server) login(c *fiber.Ctx) error {
	var in struct {
		Registration string `json:"matricula"`
		Password     string `json:"senha"`
	}
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	u, ok := s.store.authenticate(in.Registration, in.Password)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Matrícula ou senha inválidos")
	}
	token, _, err := jwt.Generate(s.cfg.Secret, issuer, uuid.NewString(), u.ID, u.Role, s.cfg.TokenTTL)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(fiber.Map{"token": token, "user": userJSON(*u)})
}

func (s *Server) requireToken(c *fiber.Ctx) error {
	token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Token não informado")
	}
	if _, err := jwt.Parse(s.cfg.Secret, issuer, token); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Token inválido")
	}
	return c.Next()
}

// ── Colecciones ──

// collection pagina items y los envuelve en la forma pedida.
// Las formas sin metadata de paginación la envían en cabeceras.
func (s *Server) collection(c *fiber.Ctx, items []fiber.Map) error {
	page := max(c.QueryInt("page", 1), 1)
	limit := c.QueryInt("limite", c.QueryInt("limit", 10))
	if limit < 1 {
		limit = 10
	}
	total := len(items)
	totalPages := max(int(math.Ceil(float64(total)/float64(limit))), 1)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	docs := items[start:end]

	shape := c.Query("shape", s.cfg.Shape)
	switch shape {
	case ShapeNestedDocs:
		return c.JSON(fiber.Map{"data": fiber.Map{"docs": docs, "total": total, "totalPages": totalPages, "page": page}})
	case ShapeDocs:
		return c.JSON(fiber.Map{"docs": docs, "total": total, "totalPages": totalPages, "page": page})
	}
	c.Set("X-Total-Count", strconv.Itoa(total))
	c.Set("X-Total-Pages", strconv.Itoa(totalPages))
	switch shape {
	case ShapeNestedArray:
		return c.JSON(fiber.Map{"data": docs})
	case ShapeProdutosKey:
		return c.JSON(fiber.Map{"produtos": docs})
	}
	return c.JSON(docs)
}

// ── Productos ──

func productJSON(p product) fiber.Map {
	out := fiber.Map{
		"_id":            p.ID,
		"nome_produto":   p.Name,
		"codigo_produto": p.Code,
		"descricao":      p.Description,
		"preco":          p.Price.InexactFloat64(),
		"custo":          p.Cost.InexactFloat64(),
		"estoque":        p.Stock,
		"estoque_min":    p.MinStock,
		"categoria":      p.Category,
		"marca":          p.Brand,
		"id_fornecedor":  p.SupplierID,
		"status":         p.Active,
	}
	if p.Expiration != "" {
		out["data_validade"] = p.Expiration
	}
	return out
}

type productBody struct {
	Name        *string          `json:"nome_produto"`
	Code        *string          `json:"codigo_produto"`
	Description *string          `json:"descricao"`
	Price       *decimal.Decimal `json:"preco"`
	Cost        *decimal.Decimal `json:"custo"`
	Stock       *int             `json:"estoque"`
	MinStock    *int             `json:"estoque_min"`
	Category    *string          `json:"categoria"`
	Brand       *string          `json:"marca"`
	SupplierID  *int             `json:"id_fornecedor"`
	Active      *bool            `json:"status"`
	Expiration  *string          `json:"data_validade"`
}

func (b productBody) apply(p *product) {
	set(&p.Name, b.Name)
	set(&p.Code, b.Code)
	set(&p.Description, b.Description)
	set(&p.Price, b.Price)
	set(&p.Cost, b.Cost)
	set(&p.Stock, b.Stock)
	set(&p.MinStock, b.MinStock)
	set(&p.Category, b.Category)
	set(&p.Brand, b.Brand)
	set(&p.SupplierID, b.SupplierID)
	set(&p.Active, b.Active)
	set(&p.Expiration, b.Expiration)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *Server) listProducts(c *fiber.Ctx) error {
	products := s.store.listProducts(productFilter{
		Name:     c.Query("nome_produto"),
		Code:     c.Query("codigo_produto"),
		Category: c.Query("categoria"),
	})
	items := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		items = append(items, productJSON(p))
	}
	return s.collection(c, items)
}

func (s *Server) lowStock(c *fiber.Ctx) error {
	items := []fiber.Map{}
	for _, p := range s.store.lowStock() {
		items = append(items, productJSON(p))
	}
	return c.JSON(fiber.Map{"produtos": items})
}

func (s *Server) getProduct(c *fiber.Ctx) error {
	p, err := s.store.product(c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(productJSON(p))
}

func (s *Server) createProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		return fail(c, fiber.StatusBadRequest, "nome_produto é obrigatório")
	}
	p := product{Active: true}
	body.apply(&p)
	return c.Status(fiber.StatusCreated).JSON(productJSON(s.store.createProduct(p)))
}

func (s *Server) updateProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	p, err := s.store.updateProduct(c.Params("id"), body.apply)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(productJSON(p))
}

func (s *Server) deleteProduct(c *fiber.Ctx) error {
	if err := s.store.deleteProduct(c.Params("id")); err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Produto removido"})
}

// ── Movimentações ──

// movementJSON devuelve la movimentação con produto y responsavel poblados.
func (s *Server) movementJSON(m movement) fiber.Map {
	out := fiber.Map{
		"_id":        m.ID,
		"tipo":       m.Type,
		"quantidade": m.Quantity,
		"data":       m.Date.Format(time.RFC3339),
		"observacao": m.Note,
		"produto":    m.ProductID,
	}
	if p, err := s.store.product(m.ProductID); err == nil {
		out["produto"] = fiber.Map{"_id": p.ID, "nome_produto": p.Name, "codigo_produto": p.Code}
	}
	out["responsavel"] = m.ResponsibleID
	if u, err := s.store.user(m.ResponsibleID); err == nil {
		out["responsavel"] = userJSON(u)
	}
	return out
}

type movementBody struct {
	Type          string `json:"tipo"`
	ProductID     string `json:"produtoId"`
	Quantity      int    `json:"quantidade"`
	Date          string `json:"data"`
	ResponsibleID string `json:"responsavelId"`
	Note          string `json:"observacao"`
}

func (b movementBody) toMovement() (movement, error) {
	tipo := strings.ToUpper(strings.TrimSpace(b.Type))
	if tipo != "ENTRADA" && tipo != "SAIDA" {
		return movement{}, errors.New("tipo deve ser ENTRADA ou SAIDA")
	}
	if b.ProductID == "" || b.Quantity <= 0 {
		return movement{}, errors.New("produtoId e quantidade são obrigatórios")
	}
	date := time.Now()
	if b.Date != "" {
		d, err := time.Parse(dateLayout, b.Date)
		if err != nil {
			return movement{}, errors.New("data inválida")
		}
		date = d
	}
	return movement{
		Type:          tipo,
		ProductID:     b.ProductID,
		Quantity:      b.Quantity,
		Date:          date,
		ResponsibleID: b.ResponsibleID,
		Note:          b.Note,
	}, nil
}

func (s *Server) listMovements(c *fiber.Ctx) error {
	movements := s.store.listMovements()
	items := make([]fiber.Map, 0, len(movements))
	for _, m := range movements {
		items = append(items, s.movementJSON(m))
	}
	return s.collection(c, items)
}

func (s *Server) getMovement(c *fiber.Ctx) error {
	m, err := s.store.movement(c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(s.movementJSON(m))
}

func (s *Server) createMovement(c *fiber.Ctx) error {
	var body movementBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	m, err := body.toMovement()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	m, err = s.store.createMovement(m)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s.movementJSON(m))
}

func (s *Server) updateMovement(c *fiber.Ctx) error {
	var body movementBody
	if err := c.BodyParser(&body); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo inválido")
	}
	m, err := body.toMovement()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	m, err = s.store.updateMovement(c.Params("id"), m)
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(s.movementJSON(m))
}

func (s *Server) deleteMovement(c *fiber.Ctx) error {
	if err := s.store.deleteMovement(c.Params("id")); err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Movimentação removida"})
}

// ── Usuarios ──

func userJSON(u user) fiber.Map {
	return fiber.Map{
		"_id":         u.ID,
		"nome":        u.Name,
		"matricula":   u.Registration,
		"email":       u.Email,
		"tipoUsuario": u.Role,
		"status":      true,
	}
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users := s.store.listUsers(c.Query("nome"))
	items := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		items = append(items, userJSON(u))
	}
	return s.collection(c, items)
}

func (s *Server) getUser(c *fiber.Ctx) error {
	u, err := s.store.user(c.Params("id"))
	if err != nil {
		return s.storeError(c, err)
	}
	return c.JSON(userJSON(u))
}
