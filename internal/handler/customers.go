package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/model"
    "github.com/iliyamo/storage-booking/internal/service"
)

// CustomerHandler serves the CRM and loyalty endpoints.
type CustomerHandler struct {
    customers *service.Customers
    loyalty   *service.Loyalty
}

func NewCustomerHandler(customers *service.Customers, loyalty *service.Loyalty) *CustomerHandler {
    if customers == nil || loyalty == nil {
        panic("nil dependency passed to NewCustomerHandler")
    }
    return &CustomerHandler{customers: customers, loyalty: loyalty}
}

func (h *CustomerHandler) Create(c echo.Context) error {
    var req service.CustomerRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    cust, err := h.customers.Create(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, cust)
}

// List accepts search, customer_type and loyalty_tier.
func (h *CustomerHandler) List(c echo.Context) error {
    q := service.CustomerQuery{
        Search:       c.QueryParam("search"),
        CustomerType: c.QueryParam("customer_type"),
        LoyaltyTier:  model.LoyaltyTier(c.QueryParam("loyalty_tier")),
    }
    list, err := h.customers.List(c.Request().Context(), q)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) Get(c echo.Context) error {
    cust, err := h.customers.Get(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) Bookings(c echo.Context) error {
    list, err := h.customers.Bookings(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, list)
}

func (h *CustomerHandler) Loyalty(c echo.Context) error {
    sum, err := h.loyalty.Summary(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, sum)
}

func (h *CustomerHandler) AwardPoints(c echo.Context) error {
    return h.points(c, h.loyalty.Award)
}

// RedeemPoints answers 400 when the balance is too small.
func (h *CustomerHandler) RedeemPoints(c echo.Context) error {
    return h.points(c, h.loyalty.Redeem)
}

func (h *CustomerHandler) points(c echo.Context, op func(context.Context, service.PointsRequest) (*model.Customer, error)) error {
    var req service.PointsRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    cust, err := op(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "customer_id":    cust.ID,
        "loyalty_points": cust.LoyaltyPoints,
        "loyalty_tier":   cust.LoyaltyTier,
    })
}
