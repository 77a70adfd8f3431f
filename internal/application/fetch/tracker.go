// Package fetch controla las peticiones de listado en vuelo por sesión y vista.
// Una petición nueva para la misma (sesión, vista) cancela la anterior con causa
// domain.ErrSuperseded: gana la última.
package fetch

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/gestao-estoque/internal/domain"
)

// Vistas con listados reemplazables.
const (
	ViewProducts  = "products"
	ViewMovements = "movements"
	ViewUsers     = "users"
)

// Key identifica una vista de una sesión.
type Key struct {
	SessionID string
	View      string
}

type flight struct {
	gen    uint64
	cancel context.CancelCauseFunc
}

// Tracker registra la petición vigente por Key.
type Tracker struct {
	mu       sync.Mutex
	seq      uint64
	inflight map[Key]flight
}

// NewTracker crea un tracker vacío.
func NewTracker() *Tracker {
	return &Tracker{inflight: make(map[Key]flight)}
}

// Begin cancela la petición en vuelo de key (si la hay) y registra una nueva.
// Devuelve el contexto derivado, su generación (creciente en todo el tracker) y end,
// que debe llamarse al terminar la petición.
func (t *Tracker) Begin(ctx context.Context, key Key) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	t.mu.Lock()
	if prev, ok := t.inflight[key]; ok {
		prev.cancel(domain.ErrSuperseded)
	}
	t.seq++
	gen := t.seq
	t.inflight[key] = flight{gen: gen, cancel: cancel}
	t.mu.Unlock()

	end := func() {
		t.mu.Lock()
		if cur, ok := t.inflight[key]; ok && cur.gen == gen {
			delete(t.inflight, key)
		}
		t.mu.Unlock()
		cancel(nil)
	}
	return ctx, gen, end
}

// Current devuelve la generación en vuelo de key, 0 si no hay ninguna.
func (t *Tracker) Current(key Key) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight[key].gen
}

// Superseded indica si ctx fue cancelado por una petición más reciente.
func Superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), domain.ErrSuperseded)
}
