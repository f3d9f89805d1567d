package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/service"
)

// PaymentHandler starts hosted checkouts and reports their outcome.
type PaymentHandler struct {
    payments *service.Payments
}

func NewPaymentHandler(payments *service.Payments) *PaymentHandler {
    if payments == nil {
        panic("nil payments service passed to NewPaymentHandler")
    }
    return &PaymentHandler{payments: payments}
}

// Checkout returns 503 while Stripe has no credentials.
func (h *PaymentHandler) Checkout(c echo.Context) error {
    var req service.CheckoutRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    session, err := h.payments.Checkout(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, session)
}

func (h *PaymentHandler) Status(c echo.Context) error {
    st, err := h.payments.Status(c.Request().Context(), c.Param("session_id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, st)
}
