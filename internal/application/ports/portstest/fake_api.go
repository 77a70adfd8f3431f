// Package portstest ofrece dobles de prueba de los puertos de aplicación.
package portstest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
)

// Call petición registrada por FakeAPI.
type Call struct {
	Token string
	Req   ports.APIRequest
}

// BodyJSON devuelve el body enviado como mapa genérico.
func (c Call) BodyJSON() map[string]any {
	raw, _ := json.Marshal(c.Req.Body)
	var out map[string]any
	_ = json.Unmarshal(raw, &out)
	return out
}

// Reply respuesta programada: Err tiene prioridad sobre Body.
type Reply struct {
	Status int
	Header http.Header
	Body   string
	Err    error
}

// FakeAPI implementa ports.InventoryAPI con respuestas por "METHOD /path".
// Las rutas sin respuesta programada devuelven 200 con {}.
type FakeAPI struct {
	mu      sync.Mutex
	replies map[string]Reply
	calls   []Call
	// Hook opcional ejecutado antes de responder (p.ej. para bloquear hasta cancelación).
	Hook func(ctx context.Context, req ports.APIRequest) error
}

var _ ports.InventoryAPI = (*FakeAPI)(nil)

// NewFakeAPI crea un fake sin respuestas programadas.
func NewFakeAPI() *FakeAPI {
	return &FakeAPI{replies: make(map[string]Reply)}
}

// On programa la respuesta de method+path.
func (f *FakeAPI) On(method, path string, r Reply) *FakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[method+" "+path] = r
	return f
}

// Calls devuelve una copia de las peticiones recibidas.
func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Last devuelve la última petición a method+path.
func (f *FakeAPI) Last(method, path string) (Call, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		c := f.calls[i]
		if c.Req.Method == method && c.Req.Path == path {
			return c, true
		}
	}
	return Call{}, false
}

func (f *FakeAPI) Do(ctx context.Context, token string, req ports.APIRequest) (*ports.APIResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Token: token, Req: req})
	r, ok := f.replies[req.Method+" "+req.Path]
	hook := f.Hook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, req); err != nil {
			return nil, err
		}
	}
	if !ok {
		r = Reply{Body: "{}"}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	header := r.Header
	if header == nil {
		header = http.Header{}
	}
	return &ports.APIResponse{Status: status, Header: header, Body: []byte(strings.TrimSpace(r.Body))}, nil
}
