package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/angelmondragon/voltmart-backend/internal/adminauth"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

type stubAdminAuthService struct {
	resp    *adminauth.LoginResponse
	err     error
	lastReq adminauth.LoginRequest
	calls   int
}

func (s *stubAdminAuthService) Login(ctx context.Context, req adminauth.LoginRequest) (*adminauth.LoginResponse, error) {
	s.calls++
	s.lastReq = req
	return s.resp, s.err
}

func TestAdminAuthLoginSuccess(t *testing.T) {
	svc := &stubAdminAuthService{resp: &adminauth.LoginResponse{
		AccessToken: "access-token",
		TokenType:   "Bearer",
		ExpiresAt:   time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
		Username:    "ops",
	}}
	body, _ := json.Marshal(map[string]string{"username": "ops", "password": "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader(body))
	resp := httptest.NewRecorder()

	AdminAuthLogin(svc, logger.Nop()).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if got := resp.Header().Get(AdminTokenHeader); got != "access-token" {
		t.Fatalf("expected token header, got %q", got)
	}
	if svc.lastReq.Username != "ops" || svc.lastReq.Password != "s3cret" {
		t.Fatalf("unexpected request %+v", svc.lastReq)
	}

	var envelope struct {
		Data adminauth.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TokenType != "Bearer" || envelope.Data.Username != "ops" {
		t.Fatalf("unexpected response %+v", envelope.Data)
	}
}

func TestAdminAuthLoginMissingFields(t *testing.T) {
	svc := &stubAdminAuthService{}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"username":"ops"}`)))
	resp := httptest.NewRecorder()

	AdminAuthLogin(svc, logger.Nop()).ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.calls != 0 {
		t.Fatal("service should not be called")
	}
}

func TestAdminAuthLoginInvalidCredentials(t *testing.T) {
	svc := &stubAdminAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"username":"ops","password":"nope"}`)))
	resp := httptest.NewRecorder()

	AdminAuthLogin(svc, logger.Nop()).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if resp.Header().Get(AdminTokenHeader) != "" {
		t.Fatal("token header must not be set on failure")
	}
}

func TestAdminAuthLoginUnavailable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{}`)))
	resp := httptest.NewRecorder()

	AdminAuthLogin(nil, nil).ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
