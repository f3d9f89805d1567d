package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/middleware"
    "github.com/iliyamo/storage-booking/internal/service"
)

// AnalyticsHandler records storefront events and reports funnel stages.
type AnalyticsHandler struct {
    analytics *service.Analytics
}

func NewAnalyticsHandler(analytics *service.Analytics) *AnalyticsHandler {
    if analytics == nil {
        panic("nil analytics service passed to NewAnalyticsHandler")
    }
    return &AnalyticsHandler{analytics: analytics}
}

// Track falls back to the X-Session-ID header when the body carries no
// session_id.
func (h *AnalyticsHandler) Track(c echo.Context) error {
    var req service.EventRequest
    if err := c.Bind(&req); err != nil {
        return respond(c, bindError(err))
    }
    if req.SessionID == "" {
        req.SessionID = middleware.SessionID(c)
    }
    ev, err := h.analytics.Track(c.Request().Context(), req)
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, ev)
}

func (h *AnalyticsHandler) Funnel(c echo.Context) error {
    r, err := h.analytics.Funnel(c.Request().Context(), c.Param("session_id"))
    if err != nil {
        return respond(c, err)
    }
    return c.JSON(http.StatusOK, r)
}
