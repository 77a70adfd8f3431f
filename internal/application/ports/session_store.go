package ports

import (
	"context"
	"time"

	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
)

// SessionStore persiste las sesiones del BFF entre login y logout.
// Get devuelve domain.ErrSessionNotFound si la sesión no existe o expiró.
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
