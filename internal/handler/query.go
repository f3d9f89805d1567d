package handler

import (
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
)

// queryFloat parses an optional float query parameter.
func queryFloat(c echo.Context, name string) (*float64, error) {
    raw := strings.TrimSpace(c.QueryParam(name))
    if raw == "" {
        return nil, nil
    }
    v, err := strconv.ParseFloat(raw, 64)
    if err != nil {
        return nil, badQuery(name, "must be a number")
    }
    return &v, nil
}

// queryBool parses an optional boolean query parameter, returning def when
// it is absent.
func queryBool(c echo.Context, name string, def bool) (bool, error) {
    raw := strings.TrimSpace(c.QueryParam(name))
    if raw == "" {
        return def, nil
    }
    v, err := strconv.ParseBool(raw)
    if err != nil {
        return def, badQuery(name, "must be true or false")
    }
    return v, nil
}

// queryList splits a comma-separated query parameter.
func queryList(c echo.Context, name string) []string {
    var out []string
    for _, p := range strings.Split(c.QueryParam(name), ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
