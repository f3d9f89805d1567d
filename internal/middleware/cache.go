package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/storage-booking/internal/config"
    "github.com/iliyamo/storage-booking/internal/utils"
)

// captureWriter keeps a bounded copy of the body while forwarding it.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }
func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 {
        cw.buf.Write(b)
    } else if remain := cw.limit - cw.size; remain > 0 {
        if int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// truncated reports whether the body outgrew the capture limit; such
// responses are not cached.
func (cw *captureWriter) truncated() bool { return cw.limit > 0 && cw.size > cw.limit }

// cacheKeyFrom builds "<prefix>:<group>:<sha1>" so that a whole group can
// be dropped with one SCAN pattern.
func cacheKeyFrom(cfg config.CacheConfig, group string, c echo.Context) string {
    r := c.Request()
    var tail string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        tail = "route:" + r.URL.Path
    case "method_route_query":
        tail = "method:" + r.Method + ":route:" + r.URL.Path + ":q:" + r.URL.RawQuery
    default: // "route_query"
        tail = "route:" + r.URL.Path + ":q:" + r.URL.RawQuery
    }
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%s:%x", cfg.Prefix, groupSlug(group), sum[:])
}

func groupSlug(group string) string {
    return strings.ReplaceAll(strings.Trim(group, "/"), "/", "_")
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    out := make([]byte, 8+len(hdrJSON)+len(body))
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if hlen < 0 || 8+hlen > len(bs) {
        return 0, nil, nil, false
    }
    header = make(http.Header)
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
            return 0, nil, nil, false
        }
    }
    return status, header, bs[8+hlen:], true
}

// invalidateGroup deletes every cached entry of group.
func invalidateGroup(ctx context.Context, rdb *redis.Client, cfg config.CacheConfig, group string) {
    pattern := fmt.Sprintf("%s:%s:*", cfg.Prefix, groupSlug(group))
    iter := rdb.Scan(ctx, 0, pattern, 200).Iterator()
    var keys []string
    for iter.Next(ctx) {
        keys = append(keys, iter.Val())
    }
    if err := iter.Err(); err != nil {
        utils.Logger.WithError(err).Warnf("cache invalidation scan failed for %s", group)
        return
    }
    if len(keys) > 0 {
        _ = rdb.Del(ctx, keys...).Err()
    }
}

// NewRedisCache caches successful reads under the configured path groups
// and drops a group after any successful write to it, or to a path listed
// as invalidating it.  Requests outside the
// groups, and everything when Redis is absent, pass straight through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 { ttl = 30 * time.Second }
    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            req := c.Request()
            if !cfg.Methods[strings.ToUpper(req.Method)] {
                groups := cfg.InvalidatedGroups(req.URL.Path)
                if len(groups) == 0 {
                    return next(c)
                }
                if err := next(c); err != nil {
                    return err
                }
                if st := c.Response().Status; st >= 200 && st < 300 {
                    for _, g := range groups {
                        invalidateGroup(context.Background(), rdb, cfg, g)
                    }
                }
                return nil
            }

            group := cfg.CachedGroup(req.URL.Path)
            if group == "" {
                return next(c)
            }

            ctx := req.Context()
            key := cacheKeyFrom(cfg, group, c)

            if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        if strings.EqualFold(k, "Content-Length") || strings.EqualFold(k, echo.HeaderXRequestID) { continue }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status != http.StatusOK || cw.truncated() {
                return nil
            }
            hdr := c.Response().Header().Clone()
            hdr.Del("X-Cache")
            hdr.Del(echo.HeaderXRequestID)
            if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
                _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
            }
            return nil
        }
    }
}
