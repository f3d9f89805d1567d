package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
)

func events(start time.Time, types ...string) []model.AnalyticsEvent {
	out := make([]model.AnalyticsEvent, 0, len(types))
	for i, typ := range types {
		out = append(out, model.AnalyticsEvent{EventType: typ, CreatedAt: start.Add(time.Duration(i) * time.Minute)})
	}
	return out
}

func TestFunnelStage(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	soon := start.Add(5 * time.Minute)
	later := start.Add(2 * time.Hour)

	assert.Equal(t, StageVisitor, FunnelStage(nil, soon))
	assert.Equal(t, StageVisitor, FunnelStage(events(start, "page_view"), soon))
	assert.Equal(t, StageViewingUnits, FunnelStage(events(start, "page_view", "unit_view"), soon))
	assert.Equal(t, StageFiltering, FunnelStage(events(start, "unit_view", "filter_applied"), soon))
	assert.Equal(t, StageBookingStarted, FunnelStage(events(start, "unit_view", "booking_started"), soon))
	assert.Equal(t, StageBookingAbandoned, FunnelStage(events(start, "unit_view", "booking_started"), later))
	assert.Equal(t, StageBookingCompleted, FunnelStage(events(start, "booking_started", "booking_completed"), later))

	returning := []model.AnalyticsEvent{
		{EventType: "page_view", CreatedAt: start},
		{EventType: "page_view", CreatedAt: start.Add(48 * time.Hour)},
	}
	assert.Equal(t, StageReturningVisitor, FunnelStage(returning, start.Add(48*time.Hour)))
}

func TestTrackAndFunnel(t *testing.T) {
	ctx := context.Background()
	a := NewAnalytics(memstore.New())

	_, err := a.Track(ctx, EventRequest{SessionID: "s1", EventType: "Unit_View", Page: "/units"})
	require.NoError(t, err)
	_, err = a.Track(ctx, EventRequest{SessionID: "s1", EventType: "filter_applied", Metadata: map[string]string{"size": "large"}})
	require.NoError(t, err)

	r, err := a.Funnel(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, StageFiltering, r.Stage)
	assert.Equal(t, 2, r.EventCount)
	assert.NotNil(t, r.FirstSeen)

	empty, err := a.Funnel(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, StageVisitor, empty.Stage)

	_, err = a.Track(ctx, EventRequest{EventType: "x"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
