package handler

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/adapter/api/middleware"
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type loginRequest struct {
	ID     string `json:"id" form:"id" validate:"required"`
	Secret string `json:"secret" form:"secret" validate:"required"`
}

type sessionResponse struct {
	Authenticated bool `json:"authenticated"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid login payload", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	flags, err := middleware.LoadSessionFlags(c)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to load session", err))
	}
	if err := h.authUseCase.Login(flags, req.ID, req.Secret); err != nil {
		return response.Error(c, err)
	}
	if err := flags.Save(); err != nil {
		return response.Error(c, errors.Internal("Failed to save session", err))
	}

	return response.Success(c, sessionResponse{Authenticated: true})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	flags, err := middleware.LoadSessionFlags(c)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to load session", err))
	}
	h.authUseCase.Logout(flags)
	if err := flags.Save(); err != nil {
		return response.Error(c, errors.Internal("Failed to save session", err))
	}

	return response.Success(c, sessionResponse{Authenticated: false})
}

func (h *AuthHandler) Session(c echo.Context) error {
	flags, err := middleware.LoadSessionFlags(c)
	if err != nil {
		return response.Success(c, sessionResponse{Authenticated: false})
	}

	return response.Success(c, sessionResponse{Authenticated: h.authUseCase.IsAuthenticated(flags)})
}
