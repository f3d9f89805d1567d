package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// Health is used by load balancers and monitoring to check the process is
// up.  It does not touch the store.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Root identifies the API.
func Root(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"message": "RV & Boat Storage Management API"})
}
