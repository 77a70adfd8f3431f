package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

var _ ports.SessionStore = (*RedisStore)(nil)

// KeyPrefix prefijo de las claves de sesión en Redis.
const KeyPrefix = "gestao:session:"

// RedisStore almacén de sesiones compartido entre instancias del BFF.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore usa un cliente ya configurado; el llamador es dueño de su ciclo de vida.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(id string) string { return KeyPrefix + id }

func (s *RedisStore) Save(ctx context.Context, sess *entity.Session, ttl time.Duration) error {
	if sess == nil || sess.ID == "" {
		return domain.ErrInvalidInput
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(sess.ID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}
	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: deserializar: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del: %w", err)
	}
	return nil
}
