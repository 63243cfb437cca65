package handler

import (
	"github.com/labstack/echo/v4"

	"bookswap/internal/adapter/api/middleware"
	"bookswap/internal/domain/entity"
	"bookswap/internal/usecase"
	"bookswap/pkg/response"
)

type AccountHandler struct {
	accountUseCase *usecase.AccountUseCase
}

func NewAccountHandler(accountUseCase *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
	}
}

type profileResponse struct {
	Message     string `json:"message"`
	Email       string `json:"email"`
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
}

type updateAccountRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password" validate:"omitempty,min=6"`
}

type updateAccountResponse struct {
	Message string           `json:"message"`
	User    *entity.Identity `json:"user"`
}

func (h *AccountHandler) GetProfile(c echo.Context) error {
	identity, err := h.accountUseCase.Profile(middleware.IdentityFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profileResponse{
		Message:     "Protected data",
		Email:       identity.Email,
		UID:         identity.UID,
		DisplayName: identity.DisplayName,
	})
}

func (h *AccountHandler) GetSessionUser(c echo.Context) error {
	user, err := h.accountUseCase.SessionUser(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.accountUseCase.UpdateAccount(c.Request().Context(), middleware.IdentityFrom(c), entity.IdentityUpdate{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, updateAccountResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	if err := h.accountUseCase.DeleteAccount(c.Request().Context(), middleware.IdentityFrom(c)); err != nil {
		return response.Error(c, err)
	}

	return response.Message(c, "User deleted successfully")
}
