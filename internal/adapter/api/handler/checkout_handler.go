package handler

import (
	"github.com/labstack/echo/v4"

	"oumybeauty/internal/domain/entity"
	"oumybeauty/internal/usecase"
	"oumybeauty/pkg/errors"
	"oumybeauty/pkg/response"
)

type CheckoutHandler struct {
	checkoutUseCase *usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase *usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	var order entity.Order
	if err := c.Bind(&order); err != nil {
		return response.Error(c, errors.BadRequest("Invalid order payload", err))
	}

	link, err := h.checkoutUseCase.Compose(c.Request().Context(), &order)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, link)
}
