package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookswap/internal/domain/entity"
	"bookswap/pkg/errors"
)

type stubVerifier map[string]*entity.Identity

func (s stubVerifier) Verify(ctx context.Context, credential string) (*entity.Identity, error) {
	if credential == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}
	identity, ok := s[credential]
	if !ok {
		return nil, errors.Unauthenticated("Invalid or expired session cookie", fmt.Errorf("revoked"))
	}
	return identity, nil
}

func serve(mw echo.MiddlewareFunc, req *http.Request) (*httptest.ResponseRecorder, *entity.Identity) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *entity.Identity
	handler := mw(func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, seen
}

func requestWithCookie(value string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: value})
	}
	return req
}

func TestAuthenticateWithoutCookie(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{}, "session")

	rec, seen := serve(m.Authenticate, requestWithCookie(""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"No session cookie provided"}`, rec.Body.String())
	assert.Nil(t, seen)
}

func TestAuthenticateWithRevokedCookie(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{}, "session")

	rec, _ := serve(m.Authenticate, requestWithCookie("stale"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired session cookie"}`, rec.Body.String())
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": {UID: "u1", Email: "a@b.c"}}, "session")

	rec, seen := serve(m.Authenticate, requestWithCookie("good"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UID)
}

func TestOptionalLetsAnonymousThrough(t *testing.T) {
	m := NewAuthMiddleware(stubVerifier{"good": {UID: "u1"}}, "session")

	rec, seen := serve(m.Optional, requestWithCookie(""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, seen)

	rec, seen = serve(m.Optional, requestWithCookie("stale"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired session cookie"}`, rec.Body.String())
	assert.Nil(t, seen)

	_, seen = serve(m.Optional, requestWithCookie("good"))
	require.NotNil(t, seen)
	assert.Equal(t, "u1", seen.UID)
}

type countdownLimiter struct{ remaining int }

func (l *countdownLimiter) Allow(key string) (bool, time.Duration) {
	if l.remaining <= 0 {
		return false, 1500 * time.Millisecond
	}
	l.remaining--
	return true, 0
}

func TestRateLimitRejectsWith429(t *testing.T) {
	mw := RateLimit(&countdownLimiter{remaining: 1})

	rec, _ := serve(mw, httptest.NewRequest(http.MethodPost, "/sessionLogin", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(mw, httptest.NewRequest(http.MethodPost, "/sessionLogin", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests, try again later"}`, rec.Body.String())
}
