package session

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var _ ports.SessionStore = (*MemoryStore)(nil)

// MemoryStore almacén de sesiones en memoria del proceso (una sola instancia del BFF).
// Las sesiones expiradas se eliminan en el bucle de Start aunque nadie vuelva a leerlas.
type MemoryStore struct {
	cache *ttlcache.Cache[string, entity.Session]
}

// NewMemoryStore crea un almacén vacío. Leer una sesión no renueva su TTL.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: ttlcache.New[string, entity.Session](
			ttlcache.WithDisableTouchOnHit[string, entity.Session](),
		),
	}
}

// Start ejecuta el bucle de expiración; bloquea hasta Stop.
func (s *MemoryStore) Start() { s.cache.Start() }

// Stop detiene el bucle de expiración.
func (s *MemoryStore) Stop() { s.cache.Stop() }

// DeleteExpired elimina ahora todas las sesiones expiradas.
func (s *MemoryStore) DeleteExpired() { s.cache.DeleteExpired() }

// OnExpire registra fn para cada sesión eliminada por expiración; devuelve la función que la desregistra.
func (s *MemoryStore) OnExpire(fn func(id string)) func() {
	return s.cache.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, entity.Session]) {
		if reason == ttlcache.EvictionReasonExpired {
			fn(item.Key())
		}
	})
}

// Save guarda una copia de la sesión. ttl <= 0 significa sin expiración.
func (s *MemoryStore) Save(_ context.Context, sess *entity.Session, ttl time.Duration) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	if ttl <= 0 {
		ttl = ttlcache.NoTTL
	}
	s.cache.Set(sess.ID, *sess, ttl)
	return nil
}

// Get devuelve la sesión; las expiradas se tratan como inexistentes.
func (s *MemoryStore) Get(_ context.Context, id string) (*entity.Session, error) {
	item := s.cache.Get(id)
	if item == nil || item.IsExpired() {
		return nil, domain.ErrSessionNotFound
	}
	sess := item.Value()
	return &sess, nil
}

// Delete es idempotente.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
