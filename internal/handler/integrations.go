package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/service"
)

// IntegrationHandler administers third-party credentials.  Key values are
// never returned unmasked.
type IntegrationHandler struct {
    integrations *service.Integrations
}

func NewIntegrationHandler(integrations *service.Integrations) *IntegrationHandler {
    if integrations == nil {
        panic("nil integrations service passed to NewIntegrationHandler")
    }
    return &IntegrationHandler{integrations: integrations}
}

func (h *IntegrationHandler) ListKeys(c echo.Context) error {
    keys, err := h.integrations.ListKeys(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, keys)
}

func (h *IntegrationHandler) SaveKey(c echo.Context) error {
    var req service.APIKeyRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    k, err := h.integrations.SaveKey(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, k)
}

func (h *IntegrationHandler) DeleteKey(c echo.Context) error {
    if err := h.integrations.DeleteKey(c.Request().Context(), c.Param("id")); err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "API key deleted successfully"})
}

func (h *IntegrationHandler) Status(c echo.Context) error {
    return c.JSON(http.StatusOK, h.integrations.Status())
}

// Reload re-reads stored keys and rebuilds provider clients.
func (h *IntegrationHandler) Reload(c echo.Context) error {
    st, err := h.integrations.Reload(c.Request().Context())
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, st)
}
