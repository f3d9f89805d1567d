package config

import (
    "strings"
    "time"
)

// CacheConfig defines settings for the response cache middleware.
// Only requests whose path starts with one of Paths are cached; catalog
// and booking reads are never listed there because availability must be
// computed live.  A successful write under a cached path drops every
// entry cached for that path group.  Invalidates lists writes outside the
// groups that still change them, such as the sample-data reset.
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    Paths        []string
    Invalidates  map[string][]string
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables.  Methods are upper-cased.
func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
        Paths:        splitList(envStr("CACHE_PATHS", "/api/images,/api/content,/api/banners")),
        Invalidates:  parseInvalidates(envStr("CACHE_INVALIDATE", "/api/initialize-sample-data=/api/images")),
        TTL:          envDur("CACHE_TTL", 30*time.Second),
        KeyStrategy:  envStr("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       envStr("CACHE_PREFIX", "cache"),
        MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1048576),
    }
}

// CachedGroup returns the configured path prefix that covers path, or ""
// when the path is not cacheable.
func (c CacheConfig) CachedGroup(path string) string {
    for _, p := range c.Paths {
        if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
            return p
        }
    }
    return ""
}

// InvalidatedGroups returns every group a successful write to path must
// drop: its own group, if any, followed by the groups listed for it in
// Invalidates.
func (c CacheConfig) InvalidatedGroups(path string) []string {
    var groups []string
    if g := c.CachedGroup(path); g != "" {
        groups = append(groups, g)
    }
    for _, g := range c.Invalidates[path] {
        if g != "" && !contains(groups, g) {
            groups = append(groups, g)
        }
    }
    return groups
}

// parseInvalidates reads "path=group" pairs separated by commas.  A path
// may appear more than once to name several groups.
func parseInvalidates(s string) map[string][]string {
    m := map[string][]string{}
    for _, pair := range splitList(s) {
        path, group, ok := strings.Cut(pair, "=")
        path, group = strings.TrimSpace(path), strings.TrimSpace(group)
        if !ok || path == "" || group == "" {
            continue
        }
        m[path] = append(m[path], group)
    }
    return m
}

func contains(list []string, s string) bool {
    for _, v := range list {
        if v == s {
            return true
        }
    }
    return false
}

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}
