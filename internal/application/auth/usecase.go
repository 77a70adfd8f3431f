package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestao-estoque/internal/application/dto"
	"github.com/jhoicas/gestao-estoque/internal/application/ports"
	"github.com/jhoicas/gestao-estoque/internal/application/validation"
	"github.com/jhoicas/gestao-estoque/internal/domain"
	"github.com/jhoicas/gestao-estoque/internal/domain/entity"
	"github.com/jhoicas/gestao-estoque/internal/domain/normalize"
	"github.com/jhoicas/gestao-estoque/pkg/jwt"
)

// JWTConfig configuración del token de sesión del BFF.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase login, logout y resolución de sesiones.
type AuthUseCase struct {
	api    ports.InventoryAPI
	store  ports.SessionStore
	jwtCfg JWTConfig
	log    zerolog.Logger
	now    func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(api ports.InventoryAPI, store ports.SessionStore, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{api: api, store: store, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// Login valida matrícula/senha contra la API de inventario, crea la sesión y emite el token del BFF.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Registration = strings.TrimSpace(in.Registration)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	resp, err := uc.api.Do(ctx, "", ports.APIRequest{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   map[string]string{"matricula": in.Registration, "senha": in.Password},
	})
	if err != nil {
		return nil, err
	}
	token, user := normalize.Login(resp.Body)
	if token == "" {
		return nil, fmt.Errorf("%w: resposta de login sem token", domain.ErrUnauthorized)
	}
	if user.Registration == "" {
		user.Registration = in.Registration
	}

	sess := &entity.Session{
		ID:        uuid.New().String(),
		Token:     token,
		User:      user,
		CreatedAt: uc.now(),
	}
	if err := uc.store.Save(ctx, sess, uc.jwtCfg.TTL); err != nil {
		return nil, err
	}

	signed, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, sess.ID, user.ID, user.Role, uc.jwtCfg.TTL)
	if err != nil {
		_ = uc.store.Delete(ctx, sess.ID)
		return nil, err
	}
	uc.log.Info().Str("session_id", sess.ID).Str("matricula", user.Registration).Msg("login")
	return &dto.LoginResponse{Token: signed, ExpiresAt: exp, User: user}, nil
}

// Authenticate resuelve el token del BFF a su sesión. Token inválido o sesión inexistente → ErrUnauthorized.
func (uc *AuthUseCase) Authenticate(ctx context.Context, bearer string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	sess, err := uc.store.Get(ctx, claims.SessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: sessão expirada", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout avisa a la API (best effort) y elimina la sesión.
func (uc *AuthUseCase) Logout(ctx context.Context, sess *entity.Session) error {
	if _, err := uc.api.Do(ctx, sess.Token, ports.APIRequest{Method: http.MethodPost, Path: "/auth/logout"}); err != nil {
		uc.log.Warn().Err(err).Str("session_id", sess.ID).Msg("logout na API falhou; sessão removida mesmo assim")
	}
	return uc.store.Delete(ctx, sess.ID)
}
