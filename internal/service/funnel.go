package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// Funnel stages, in order of progress.
const (
	StageVisitor          = "visitor"
	StageViewingUnits     = "viewing_units"
	StageFiltering        = "filtering"
	StageBookingStarted   = "booking_started"
	StageBookingAbandoned = "booking_abandoned"
	StageBookingCompleted = "booking_completed"
	StageReturningVisitor = "returning_visitor"
)

// abandonAfter is how long a started booking may sit idle before the
// session counts as abandoned.
const abandonAfter = 30 * time.Minute

// EventRequest is one tracked interaction.
type EventRequest struct {
	SessionID string            `json:"session_id" validate:"required"`
	EventType string            `json:"event_type" validate:"required"`
	Page      string            `json:"page"`
	UnitID    *string           `json:"unit_id"`
	Metadata  map[string]string `json:"metadata"`
}

// FunnelReport is the inferred stage of one session.
type FunnelReport struct {
	SessionID  string     `json:"session_id"`
	Stage      string     `json:"stage"`
	EventCount int        `json:"event_count"`
	FirstSeen  *time.Time `json:"first_seen"`
	LastSeen   *time.Time `json:"last_seen"`
}

// Analytics records storefront events and derives funnel stages.
type Analytics struct {
	store repository.Store
	now   func() time.Time
}

func NewAnalytics(store repository.Store) *Analytics {
	return &Analytics{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func (a *Analytics) Track(ctx context.Context, req EventRequest) (*model.AnalyticsEvent, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	ev := &model.AnalyticsEvent{
		ID:        uuid.NewString(),
		SessionID: req.SessionID,
		EventType: strings.ToLower(strings.TrimSpace(req.EventType)),
		Page:      req.Page,
		UnitID:    req.UnitID,
		Metadata:  req.Metadata,
		CreatedAt: a.now(),
	}
	if err := a.store.AppendEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (a *Analytics) Funnel(ctx context.Context, sessionID string) (*FunnelReport, error) {
	events, err := a.store.ListSessionEvents(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	r := &FunnelReport{SessionID: sessionID, EventCount: len(events), Stage: FunnelStage(events, a.now())}
	if len(events) > 0 {
		first, last := events[0].CreatedAt, events[len(events)-1].CreatedAt
		r.FirstSeen, r.LastSeen = &first, &last
	}
	return r, nil
}

// FunnelStage infers a session's stage from its events, oldest first.
// A completed booking wins; a started booking with no activity for
// abandonAfter is abandoned; a session seen again after a day is
// returning unless it has progressed past filtering.
func FunnelStage(events []model.AnalyticsEvent, now time.Time) string {
	if len(events) == 0 {
		return StageVisitor
	}
	var viewed, filtered, started, completed bool
	for _, e := range events {
		switch e.EventType {
		case "booking_completed", "payment_completed":
			completed = true
		case "booking_started", "booking_form_opened":
			started = true
		case "filter_applied", "filter":
			filtered = true
		case "unit_view", "view_units", "page_view":
			if e.EventType != "page_view" || strings.Contains(e.Page, "unit") {
				viewed = true
			}
		}
	}
	last := events[len(events)-1].CreatedAt
	returning := last.Sub(events[0].CreatedAt) >= 24*time.Hour

	switch {
	case completed:
		return StageBookingCompleted
	case started && now.Sub(last) >= abandonAfter:
		return StageBookingAbandoned
	case started:
		return StageBookingStarted
	case returning:
		return StageReturningVisitor
	case filtered:
		return StageFiltering
	case viewed:
		return StageViewingUnits
	}
	return StageVisitor
}
