package middleware

import (
    "bytes"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/storage-booking/internal/config"
    "github.com/iliyamo/storage-booking/internal/utils"
)

func newCtx(method, target string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(method, target, nil)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestCacheKeyIsGroupScoped(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
    c1, _ := newCtx(http.MethodGet, "/api/images?category=hero")
    c2, _ := newCtx(http.MethodGet, "/api/images?category=unit")

    k1 := cacheKeyFrom(cfg, "/api/images", c1)
    k2 := cacheKeyFrom(cfg, "/api/images", c2)
    assert.True(t, strings.HasPrefix(k1, "cache:api_images:"))
    assert.NotEqual(t, k1, k2)

    cfg.KeyStrategy = "route"
    assert.Equal(t, cacheKeyFrom(cfg, "/api/images", c1), cacheKeyFrom(cfg, "/api/images", c2))
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": []string{"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
    require.NoError(t, err)

    status, got, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", got.Get("Content-Type"))
    assert.Equal(t, `{"ok":true}`, string(body))

    _, _, _, ok = decodePayload([]byte{0, 1})
    assert.False(t, ok)
}

func TestCaptureWriterLimit(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
    _, _ = cw.Write([]byte("abc"))
    assert.False(t, cw.truncated())
    _, _ = cw.Write([]byte("defg"))
    assert.True(t, cw.truncated())
    assert.Equal(t, "abcd", cw.buf.String())
    assert.Equal(t, "abcdefg", rec.Body.String())
}

func TestMiddlewaresPassThroughWithoutRedis(t *testing.T) {
    handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
    cache := NewRedisCache(config.CacheConfig{Enabled: true, Paths: []string{"/api/images"}}, nil)
    limit := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)

    c, rec := newCtx(http.MethodGet, "/api/images")
    require.NoError(t, limit(cache(handler))(c))
    assert.Equal(t, "ok", rec.Body.String())
    assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestBuildRateKey(t *testing.T) {
    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "client"}
    c, _ := newCtx(http.MethodPost, "/api/bookings")
    assert.Equal(t, "rl:client:anon", buildRateKey(cfg, c))

    c.Request().Header.Set(SessionHeader, "sess-42")
    require.NoError(t, SessionIdentity()(func(c echo.Context) error { return nil })(c))
    assert.Equal(t, "sess-42", SessionID(c))
    assert.Equal(t, "rl:client:sess-42", buildRateKey(cfg, c))
}

func TestSessionIdentityIgnoresOversizedIDs(t *testing.T) {
    c, _ := newCtx(http.MethodGet, "/api/")
    c.Request().Header.Set(SessionHeader, strings.Repeat("x", maxSessionIDLen+1))
    require.NoError(t, SessionIdentity()(func(c echo.Context) error { return nil })(c))
    assert.Empty(t, SessionID(c))
}

func TestRequestLoggerReportsHandledError(t *testing.T) {
    var buf bytes.Buffer
    out := utils.Logger.Out
    utils.Logger.SetOutput(&buf)
    t.Cleanup(func() { utils.Logger.SetOutput(out) })

    e := echo.New()
    e.Use(RequestLogger())
    e.GET("/handled", func(c echo.Context) error {
        c.Set(ErrorKey, errors.New("store offline"))
        return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
    })
    e.GET("/bare", func(c echo.Context) error {
        return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "internal error"})
    })

    e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/handled", nil))
    assert.Contains(t, buf.String(), "store offline")

    buf.Reset()
    e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bare", nil))
    assert.Contains(t, buf.String(), "request failed")
    assert.NotContains(t, buf.String(), "<nil>")
}
