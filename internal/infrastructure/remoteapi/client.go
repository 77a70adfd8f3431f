package remoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/domain"
)

// Verificar en tiempo de compilación que Client implementa InventoryAPI.
var _ ports.InventoryAPI = (*Client)(nil)

// maxBodyBytes límite de lectura de una respuesta (los listados de 100 productos caben de sobra).
const maxBodyBytes = 8 << 20

// Client adaptador HTTP hacia la API REST de inventario.
// Usa net/http de la librería estándar. Sin reintentos: cada fallo es terminal para esa petición.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxBody    int64
	log        zerolog.Logger
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxBody:    maxBodyBytes,
		log:        log.With().Str("component", "remoteapi").Logger(),
	}
}

// Do ejecuta la petición. El token, si no está vacío, va como Authorization: Bearer.
func (c *Client) Do(ctx context.Context, token string, in ports.APIRequest) (*ports.APIResponse, error) {
	target := c.baseURL + "/" + strings.TrimLeft(in.Path, "/")
	if len(in.Query) > 0 {
		target += "?" + in.Query.Encode()
	}

	var body io.Reader
	if in.Body != nil {
		raw, err := json.Marshal(in.Body)
		if err != nil {
			return nil, fmt.Errorf("remoteapi: serializar body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, in.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("remoteapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		// contexto cancelado: se propaga la causa (p.ej. domain.ErrSuperseded)
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		c.log.Warn().Err(err).Str("method", in.Method).Str("path", in.Path).Msg("API de inventario sin respuesta")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, context.Cause(ctx)
		}
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstreamUnavailable, err)
	}
	if int64(len(raw)) > c.maxBody {
		c.log.Warn().Str("method", in.Method).Str("path", in.Path).Int64("limit", c.maxBody).Msg("respuesta de la API excede el límite")
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: "Resposta da API de estoque excede o tamanho máximo"}
	}

	c.log.Debug().
		Str("method", in.Method).
		Str("path", in.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("respuesta recibida")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	return &ports.APIResponse{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   raw,
	}, nil
}

// errorMessage extrae message/error/mensagem del cuerpo de error, si es JSON.
func errorMessage(raw []byte) string {
	var body struct {
		Message  string `json:"message"`
		Error    string `json:"error"`
		Mensagem string `json:"mensagem"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Mensagem != "":
		return body.Mensagem
	}
	return body.Error
}
