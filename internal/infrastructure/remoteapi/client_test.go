package remoteapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/infrastructure/remoteapi"
)

func TestClient_EnviaTokenQueryYBody(t *testing.T) {
	var gotAuth, gotQuery, gotMethod, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotMethod = r.Method
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("X-Total-Count", "42")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := remoteapi.NewClient(srv.URL+"/", time.Second, zerolog.Nop())
	resp, err := c.Do(context.Background(), "tok-123", ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/produtos",
		Query:  url.Values{"page": {"2"}},
		Body:   map[string]any{"nome_produto": "Widget"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/produtos", gotPath)
	assert.Equal(t, "Widget", gotBody["nome_produto"])
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, 42, resp.HeaderInt("X-Total-Count"))
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_SinTokenNoEnviaAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := remoteapi.NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Do(context.Background(), "", ports.APIRequest{Method: http.MethodGet, Path: "produtos"})
	require.NoError(t, err)
}

func TestClient_StatusDeErrorEsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Matrícula ou senha inválidos"}`))
		case "/produtos/x":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Produto não encontrado"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<html>boom</html>`))
		}
	}))
	defer srv.Close()

	c := remoteapi.NewClient(srv.URL, time.Second, zerolog.Nop())

	_, err := c.Do(context.Background(), "", ports.APIRequest{Method: http.MethodPost, Path: "/auth/login"})
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusUnauthorized, upErr.Status)
	assert.Equal(t, "Matrícula ou senha inválidos", upErr.Message)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = c.Do(context.Background(), "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos/x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "Produto não encontrado")

	_, err = c.Do(context.Background(), "t", ports.APIRequest{Method: http.MethodGet, Path: "/relatorios/estoque"})
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusInternalServerError, upErr.Status)
	assert.Empty(t, upErr.Message)
}

func TestClient_FalloDeRedEsUpstreamUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := remoteapi.NewClient(addr, time.Second, zerolog.Nop())
	_, err := c.Do(context.Background(), "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_ContextoCanceladoDevuelveErrorDelContexto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := remoteapi.NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Do(ctx, "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_PropagaCausaDeCancelacion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(domain.ErrSuperseded)

	c := remoteapi.NewClient(srv.URL, time.Second, zerolog.Nop())
	_, err := c.Do(ctx, "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	assert.ErrorIs(t, err, domain.ErrSuperseded)
}

// Cancelar mientras se lee el cuerpo también devuelve la causa.
func TestClient_CancelacionDuranteLecturaDelCuerpo(t *testing.T) {
	headersSent := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"_id":"1"}`))
		w.(http.Flusher).Flush()
		close(headersSent)
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() {
		<-headersSent
		time.Sleep(20 * time.Millisecond)
		cancel(domain.ErrSuperseded)
	}()

	c := remoteapi.NewClient(srv.URL, 10*time.Second, zerolog.Nop())
	_, err := c.Do(ctx, "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	assert.ErrorIs(t, err, domain.ErrSuperseded)
	assert.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_CuerpoQueExcedeElLimite(t *testing.T) {
	body := `[{"_id":"1"},{"_id":"2"}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := remoteapi.NewClient(srv.URL, time.Second, zerolog.Nop())
	c.SetMaxBody(int64(len(body)))
	resp, err := c.Do(context.Background(), "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	require.NoError(t, err, "un cuerpo del tamaño exacto del límite se acepta")
	assert.Equal(t, body, string(resp.Body))

	c.SetMaxBody(int64(len(body)) - 1)
	_, err = c.Do(context.Background(), "t", ports.APIRequest{Method: http.MethodGet, Path: "/produtos"})
	var upErr *domain.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusOK, upErr.Status)
	assert.NotEmpty(t, upErr.Message)
}
