package middleware

// identity.go resolves who is calling.  The storefront is anonymous; it
// tags every request with a random session id in the X-Session-ID header.
// Requests without one are "anon".

import (
    "strings"

    "github.com/labstack/echo/v4"
)

// SessionHeader identifies an anonymous storefront visitor.
const SessionHeader = "X-Session-ID"

// SessionKey is the echo context key holding the caller's session id.
const SessionKey = "session_id"

const maxSessionIDLen = 128

// SessionIdentity copies a well-formed X-Session-ID into the context.
// Oversized values are ignored.
func SessionIdentity() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if s := strings.TrimSpace(c.Request().Header.Get(SessionHeader)); s != "" && len(s) <= maxSessionIDLen {
                c.Set(SessionKey, s)
            }
            return next(c)
        }
    }
}

// SessionID returns the caller's session id, or "" when there is none.
func SessionID(c echo.Context) string {
    if s, ok := c.Get(SessionKey).(string); ok {
        return s
    }
    return ""
}

// clientID is the rate-limit identity: the session id or "anon".
func clientID(c echo.Context) string {
    if s := SessionID(c); s != "" {
        return s
    }
    return "anon"
}
