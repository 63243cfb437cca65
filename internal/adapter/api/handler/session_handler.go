package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/middleware"
	"bookswap/internal/usecase"
	"bookswap/pkg/response"
)

type SessionHandler struct {
	sessionUseCase *usecase.SessionUseCase
	cookieName     string
	secure         bool
}

func NewSessionHandler(sessionUseCase *usecase.SessionUseCase, cookieName string, secure bool) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		cookieName:     cookieName,
		secure:         secure,
	}
}

type sessionLoginRequest struct {
	IDToken string `json:"idToken"`
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req sessionLoginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	cookie, err := h.sessionUseCase.Login(c.Request().Context(), req.IDToken)
	if err != nil {
		return response.Error(c, err)
	}

	c.SetCookie(h.cookie(cookie, int(h.sessionUseCase.Expiry()/time.Second)))
	return response.Status(c, "success")
}

// Logout revokes the caller's sessions and expires the cookie in the browser.
func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.sessionUseCase.Logout(c.Request().Context(), middleware.IdentityFrom(c)); err != nil {
		return response.Error(c, err)
	}

	c.SetCookie(h.cookie("", -1))
	return response.Status(c, "success")
}

func (h *SessionHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
