package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"bookswap/internal/domain/entity"
	"bookswap/pkg/response"
)

const identityKey = "identity"

type SessionVerifier interface {
	Verify(ctx context.Context, credential string) (*entity.Identity, error)
}

type AuthMiddleware struct {
	sessions   SessionVerifier
	cookieName string
}

func NewAuthMiddleware(sessions SessionVerifier, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// Authenticate rejects the request unless the session cookie verifies.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.sessions.Verify(c.Request().Context(), m.cookieValue(c))
		if err != nil {
			return response.Error(c, err)
		}

		setIdentity(c, identity)
		return next(c)
	}
}

// Optional lets requests without a session cookie through anonymously. A
// cookie that is present must verify.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		credential := m.cookieValue(c)
		if credential == "" {
			return next(c)
		}

		identity, err := m.sessions.Verify(c.Request().Context(), credential)
		if err != nil {
			return response.Error(c, err)
		}

		setIdentity(c, identity)
		return next(c)
	}
}

func (m *AuthMiddleware) cookieValue(c echo.Context) string {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func setIdentity(c echo.Context, identity *entity.Identity) {
	c.Set(identityKey, identity)
	c.Set("uid", identity.UID)
}

// IdentityFrom returns the verified caller, or nil for anonymous requests.
func IdentityFrom(c echo.Context) *entity.Identity {
	identity, _ := c.Get(identityKey).(*entity.Identity)
	return identity
}
