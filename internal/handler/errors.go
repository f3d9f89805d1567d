package handler

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/storage-booking/internal/integration"
    "github.com/iliyamo/storage-booking/internal/middleware"
    "github.com/iliyamo/storage-booking/internal/repository"
    "github.com/iliyamo/storage-booking/internal/service"
    "github.com/iliyamo/storage-booking/internal/utils"
)

// respond writes err as a JSON body under "detail" with the matching
// status code.  Unknown errors are logged and reported as 500 without
// their text.
func respond(c echo.Context, err error) error {
    var (
        verr        *service.ValidationError
        nf          *service.NotFoundError
        conflict    *service.ConflictError
        unavailable *integration.UnavailableError
        he          *echo.HTTPError
    )
    switch {
    case errors.As(err, &verr):
        body := echo.Map{"detail": verr.Message}
        if len(verr.Fields) > 0 {
            body["fields"] = verr.Fields
        }
        return c.JSON(http.StatusBadRequest, body)
    case errors.As(err, &nf):
        return c.JSON(http.StatusNotFound, echo.Map{"detail": nf.Error()})
    case errors.As(err, &conflict):
        return c.JSON(http.StatusConflict, echo.Map{"detail": conflict.Error()})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"detail": "not found"})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"detail": "conflict"})
    case errors.As(err, &unavailable):
        c.Set(middleware.ErrorKey, err)
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"detail": unavailable.Error()})
    case errors.Is(err, integration.ErrExternalService):
        utils.Logger.WithError(err).Warn("external service call failed")
        c.Set(middleware.ErrorKey, err)
        return c.JSON(http.StatusBadGateway, echo.Map{"detail": "external service error"})
    case errors.As(err, &he):
        return c.JSON(he.Code, echo.Map{"detail": fmt.Sprint(he.Message)})
    }
    utils.Logger.WithError(err).WithField("path", c.Request().URL.Path).Error("unhandled error")
    c.Set(middleware.ErrorKey, err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
}

// ErrorHandler is installed as echo's HTTPErrorHandler so that routing
// and binding failures share the same body shape.
func ErrorHandler(err error, c echo.Context) {
    if c.Response().Committed {
        return
    }
    if c.Request().Method == http.MethodHead {
        var he *echo.HTTPError
        code := http.StatusInternalServerError
        if errors.As(err, &he) {
            code = he.Code
        }
        _ = c.NoContent(code)
        return
    }
    _ = respond(c, err)
}

// badQuery is a 400 for one malformed query parameter.
func badQuery(name, reason string) error {
    return &service.ValidationError{
        Message: "invalid query parameter",
        Fields:  map[string]string{name: reason},
    }
}

// bindError reports a body that could not be decoded.
func bindError(err error) error {
    var he *echo.HTTPError
    if errors.As(err, &he) {
        return &service.ValidationError{Message: fmt.Sprint(he.Message)}
    }
    return &service.ValidationError{Message: "malformed request body"}
}
