package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/storage-booking/internal/model"
)

func (s *SQLStore) AppendEvent(ctx context.Context, e *model.AnalyticsEvent) error {
	const q = `INSERT INTO analytics_events (id, session_id, event_type, page, unit_id, metadata, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, e.ID, e.SessionID, e.EventType, e.Page, nullString(e.UnitID),
		encodeMap(e.Metadata), e.CreatedAt.UTC())
	return err
}

func (s *SQLStore) ListSessionEvents(ctx context.Context, sessionID string) ([]model.AnalyticsEvent, error) {
	const q = `SELECT id, session_id, event_type, page, unit_id, metadata, created_at
               FROM analytics_events WHERE session_id = ? ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AnalyticsEvent{}
	for rows.Next() {
		var e model.AnalyticsEvent
		var unitID sql.NullString
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.SessionID, &e.EventType, &e.Page, &unitID, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UnitID = stringPtr(unitID)
		e.Metadata = decodeMap(metadata)
		out = append(out, e)
	}
	return out, rows.Err()
}
