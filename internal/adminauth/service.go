// Package adminauth signs the single configured admin into the dashboard.
package adminauth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/angelmondragon/voltmart-backend/pkg/auth"
	"github.com/angelmondragon/voltmart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token for the admin API.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
}

// Service authenticates the admin.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type service struct {
	cfg config.AdminConfig
	now func() time.Time
}

// NewService checks the configured hash up front so a bad deployment fails at boot.
func NewService(cfg config.AdminConfig) (Service, error) {
	if strings.TrimSpace(cfg.Username) == "" {
		return nil, fmt.Errorf("admin username is required")
	}
	if _, _, _, err := security.DecodeHash(cfg.PasswordHash); err != nil {
		return nil, fmt.Errorf("admin password hash: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	return &service{cfg: cfg, now: time.Now}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.Username)) == 1
	ok, err := security.VerifyPassword(req.Password, s.cfg.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !userMatch || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, expiresAt, err := pkgAuth.MintAdminToken(s.cfg, s.now().UTC(), username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Username:    username,
	}, nil
}
