package middleware

import (
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/storage-booking/internal/utils"
)

// ErrorKey holds an error a handler already turned into a response, so
// the request log can still report its cause.
const ErrorKey = "request_error"

// RequestLogger writes one logrus entry per request.  Server errors log at
// error level, client errors at warn.
func RequestLogger() echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRequestID: true,
        LogRemoteIP:  true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            entry := utils.Logger.WithFields(logrus.Fields{
                "method":     v.Method,
                "path":       v.URI,
                "status":     v.Status,
                "latency":    v.Latency.String(),
                "request_id": v.RequestID,
                "remote_ip":  v.RemoteIP,
            })
            switch {
            case v.Status >= 500:
                err := v.Error
                if err == nil {
                    err, _ = c.Get(ErrorKey).(error)
                }
                if err != nil {
                    entry = entry.WithError(err)
                }
                entry.Error("request failed")
            case v.Status >= 400:
                entry.Warn("request rejected")
            default:
                entry.Info("request")
            }
            return nil
        },
    })
}
