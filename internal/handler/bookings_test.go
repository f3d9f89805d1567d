package handler

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/storage-booking/internal/service"
)

func TestParseDate(t *testing.T) {
    want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
    for _, raw := range []string{"2025-03-01", "2025-03-01T00:00:00", "2025-03-01T00:00", "2025-03-01T00:00:00Z", "2025-03-01T02:00:00+02:00"} {
        got, err := parseDate("start_date", raw)
        require.NoError(t, err, raw)
        assert.True(t, want.Equal(*got), raw)
    }

    got, err := parseDate("end_date", "  ")
    assert.NoError(t, err)
    assert.Nil(t, got)

    _, err = parseDate("end_date", "03/01/2025")
    var verr *service.ValidationError
    require.ErrorAs(t, err, &verr)
    assert.Contains(t, verr.Fields, "end_date")
}

func TestBookingBodyRequest(t *testing.T) {
    req, err := bookingBody{
        VirtualUnitID: "v1",
        PricingPeriod: "daily",
        StartDate:     "2025-03-01",
        EndDate:       "2025-03-05",
    }.request()
    require.NoError(t, err)
    assert.Equal(t, 2025, req.StartDate.Year())
    require.NotNil(t, req.EndDate)
    assert.Equal(t, 5, req.EndDate.Day())
    assert.Nil(t, req.MoveInDate)
}
