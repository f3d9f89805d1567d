package config

import (
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestInvalidatedGroups(t *testing.T) {
    cfg := CacheConfig{
        Paths:       []string{"/api/images", "/api/banners"},
        Invalidates: parseInvalidates("/api/initialize-sample-data=/api/images, /api/initialize-sample-data=/api/banners, bad, =x"),
    }

    assert.Equal(t, []string{"/api/images"}, cfg.InvalidatedGroups("/api/images/42"))
    assert.Equal(t, []string{"/api/images", "/api/banners"}, cfg.InvalidatedGroups("/api/initialize-sample-data"))
    assert.Empty(t, cfg.InvalidatedGroups("/api/bookings"))
    assert.Len(t, cfg.Invalidates, 1)
}
