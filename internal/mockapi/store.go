package mockapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Errores del store; el servidor los traduce a status HTTP.
var (
	errNotFound          = errors.New("registro não encontrado")
	errInsufficientStock = errors.New("estoque insuficiente")
)

type product struct {
	ID          string
	Name        string
	Code        string
	Description string
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Stock       int
	MinStock    int
	Category    string
	Brand       string
	SupplierID  int
	Active      bool
	Expiration  string
}

type movement struct {
	ID            string
	Type          string // ENTRADA | SAIDA
	ProductID     string
	Quantity      int
	Date          time.Time
	ResponsibleID string
	Note          string
}

type user struct {
	ID           string
	Name         string
	Registration string
	Email        string
	Role         string
	PasswordHash []byte
}

// Store datos en memoria de la API simulada.
type Store struct {
	mu        sync.RWMutex
	products  []*product
	movements []*movement
	users     []*user
}

// SeedPassword contraseña de todos los usuarios sembrados.
const SeedPassword = "123456"

// NewStore crea el store con datos de ejemplo.
func NewStore() (*Store, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s := &Store{
		users: []*user{
			{ID: "u1", Name: "Administrador", Registration: "1001", Email: "admin@estoque.local", Role: "admin", PasswordHash: hash},
			{ID: "u2", Name: "Operador", Registration: "1002", Email: "operador@estoque.local", Role: "estoquista", PasswordHash: hash},
		},
	}
	seed := []product{
		{Name: "Caneta azul", Code: "CAN-001", Price: decimal.RequireFromString("2.50"), Cost: decimal.RequireFromString("1.10"), Stock: 120, MinStock: 20, Category: "C", Brand: "Bic"},
		{Name: "Caderno 96 folhas", Code: "CAD-096", Price: decimal.RequireFromString("18.90"), Cost: decimal.RequireFromString("9.40"), Stock: 8, MinStock: 10, Category: "B", Brand: "Tilibra"},
		{Name: "Grampeador", Code: "GRA-010", Price: decimal.RequireFromString("45.00"), Cost: decimal.RequireFromString("22.00"), Stock: 15, MinStock: 5, Category: "A", Brand: "Jocar"},
		{Name: "Papel A4 500 fls", Code: "PAP-A4", Price: decimal.RequireFromString("32.00"), Cost: decimal.RequireFromString("21.50"), Stock: 0, MinStock: 30, Category: "A", Brand: "Chamex"},
		{Name: "Borracha", Code: "BOR-002", Price: decimal.RequireFromString("1.50"), Cost: decimal.RequireFromString("0.40"), Stock: 300, MinStock: 50, Brand: "Faber"},
	}
	for i := range seed {
		p := seed[i]
		p.ID = uuid.NewString()
		p.SupplierID = 564
		p.Active = true
		s.products = append(s.products, &p)
	}
	return s, nil
}

// ── Usuarios ──

func (s *Store) authenticate(registration, password string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Registration == registration {
			if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
				return nil, false
			}
			return u, true
		}
	}
	return nil, false
}

func (s *Store) listUsers(name string) []user {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []user{}
	for _, u := range s.users {
		if containsFold(u.Name, name) {
			out = append(out, *u)
		}
	}
	return out
}

func (s *Store) user(id string) (user, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return *u, nil
		}
	}
	return user{}, errNotFound
}

// ── Productos ──

type productFilter struct {
	Name     string
	Code     string
	Category string
}

func (s *Store) listProducts(f productFilter) []product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []product{}
	for _, p := range s.products {
		if !containsFold(p.Name, f.Name) || !containsFold(p.Code, f.Code) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

func (s *Store) lowStock() []product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []product{}
	for _, p := range s.products {
		if p.Stock <= p.MinStock {
			out = append(out, *p)
		}
	}
	return out
}

func (s *Store) product(id string) (product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findProduct(id); p != nil {
		return *p, nil
	}
	return product{}, errNotFound
}

func (s *Store) createProduct(p product) product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.products = append(s.products, &p)
	return p
}

func (s *Store) updateProduct(id string, apply func(*product)) (product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.findProduct(id)
	if p == nil {
		return product{}, errNotFound
	}
	apply(p)
	p.ID = id
	return *p, nil
}

func (s *Store) deleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *Store) findProduct(id string) *product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ── Movimentações ──

// listMovements devuelve las movimentações más recientes primero.
func (s *Store) listMovements() []movement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *Store) movement(id string) (movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.movements {
		if m.ID == id {
			return *m, nil
		}
	}
	return movement{}, errNotFound
}

// createMovement registra la movimentação y ajusta el estoque del producto.
func (s *Store) createMovement(m movement) (movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.apply(m, 1); err != nil {
		return movement{}, err
	}
	m.ID = uuid.NewString()
	s.movements = append(s.movements, &m)
	return m, nil
}

// updateMovement revierte el efecto anterior y aplica el nuevo; si falla deja todo como estaba.
func (s *Store) updateMovement(id string, next movement) (movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur *movement
	for _, m := range s.movements {
		if m.ID == id {
			cur = m
			break
		}
	}
	if cur == nil {
		return movement{}, errNotFound
	}
	if err := s.apply(*cur, -1); err != nil {
		return movement{}, err
	}
	if err := s.apply(next, 1); err != nil {
		_ = s.apply(*cur, 1)
		return movement{}, err
	}
	next.ID = id
	*cur = next
	return next, nil
}

func (s *Store) deleteMovement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.movements {
		if m.ID == id {
			if err := s.apply(*m, -1); err != nil {
				return err
			}
			s.movements = append(s.movements[:i], s.movements[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

// apply suma (sign=1) o revierte (sign=-1) el efecto de m sobre el estoque.
func (s *Store) apply(m movement, sign int) error {
	p := s.findProduct(m.ProductID)
	if p == nil {
		return errNotFound
	}
	delta := m.Quantity
	if m.Type == "SAIDA" {
		delta = -delta
	}
	delta *= sign
	if p.Stock+delta < 0 {
		return errInsufficientStock
	}
	p.Stock += delta
	return nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
