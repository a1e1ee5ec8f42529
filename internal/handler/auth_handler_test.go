package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nakliye/internal/middleware"
	"nakliye/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	service.AuthService

	loginFn   func(req service.LoginRequest) (*service.AuthResponse, error)
	refreshFn func(raw string) (*service.AuthResponse, error)
}

func (s *stubAuthService) Login(_ context.Context, req service.LoginRequest) (*service.AuthResponse, error) {
	return s.loginFn(req)
}

func (s *stubAuthService) Refresh(_ context.Context, raw string) (*service.AuthResponse, error) {
	return s.refreshFn(raw)
}

func newAuthRouter(t *testing.T, svc service.AuthService) *gin.Engine {
	r, _ := newTestRouter(t, func(api *gin.RouterGroup, auth *middleware.Auth) {
		NewAuthHandler(svc, auth).RegisterRoutes(api)
	})
	return r
}

func cookieValue(rec *httptest.ResponseRecorder, name string) (string, bool) {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

func TestLoginSetsCookies(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(req service.LoginRequest) (*service.AuthResponse, error) {
			require.Equal(t, "ops@firma.com.tr", req.Email)
			return &service.AuthResponse{AccessToken: "access-1", RefreshToken: "refresh-1"}, nil
		},
	}
	r := newAuthRouter(t, svc)

	rec, _ := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "ops@firma.com.tr", "password": "gizli-sifre"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	access, ok := cookieValue(rec, middleware.AccessCookie)
	require.True(t, ok)
	require.Equal(t, "access-1", access)
	refresh, ok := cookieValue(rec, middleware.RefreshCookie)
	require.True(t, ok)
	require.Equal(t, "refresh-1", refresh)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &stubAuthService{
		loginFn: func(service.LoginRequest) (*service.AuthResponse, error) { return nil, service.ErrInvalidCredentials },
	}
	r := newAuthRouter(t, svc)

	rec, env := do(t, r, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@b.co", "password": "x"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, service.ErrInvalidCredentials.Error(), env.Error)
}

func TestRefreshPrefersCookie(t *testing.T) {
	var got string
	svc := &stubAuthService{
		refreshFn: func(raw string) (*service.AuthResponse, error) {
			got = raw
			return &service.AuthResponse{AccessToken: "a", RefreshToken: "r"}, nil
		},
	}
	r := newAuthRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", strings.NewReader(`{"refresh_token":"from-body"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: "from-cookie"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "from-cookie", got)

	rec, _ = do(t, r, http.MethodPost, "/api/auth/refresh", map[string]string{"refresh_token": "from-body"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "from-body", got)
}

func TestRefreshFailureClearsCookies(t *testing.T) {
	svc := &stubAuthService{
		refreshFn: func(string) (*service.AuthResponse, error) { return nil, service.ErrInvalidRefreshToken },
	}
	r := newAuthRouter(t, svc)

	rec, _ := do(t, r, http.MethodPost, "/api/auth/refresh", map[string]string{"refresh_token": "stale"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	for _, c := range rec.Result().Cookies() {
		require.Empty(t, c.Value)
		require.Negative(t, c.MaxAge)
	}
}
