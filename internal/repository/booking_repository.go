package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/storage-booking/internal/model"
)

const bookingColumns = `id, virtual_unit_id, physical_unit_id, customer_name, customer_email, customer_phone,
       payment_option, pricing_period, start_date, end_date, total_price, status,
       move_in_date, special_requests, created_at`

func scanBooking(row rowScanner) (*model.Booking, error) {
	var b model.Booking
	var endDate, moveIn sql.NullTime
	var requests sql.NullString
	if err := row.Scan(&b.ID, &b.VirtualUnitID, &b.PhysicalUnitID, &b.CustomerName, &b.CustomerEmail,
		&b.CustomerPhone, &b.PaymentOption, &b.PricingPeriod, &b.StartDate, &endDate, &b.TotalPrice,
		&b.Status, &moveIn, &requests, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.StartDate = b.StartDate.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.EndDate = timePtr(endDate)
	b.MoveInDate = timePtr(moveIn)
	b.SpecialRequests = stringPtr(requests)
	return &b, nil
}

// InsertBookingIfUnblocked runs the availability check and the insert in
// one transaction.  The physical unit row is locked FOR UPDATE so
// concurrent bookings for the same unit queue behind each other, and the
// unique index on the generated blocking_unit_id column rejects a second
// blocking row even if that lock is bypassed.
func (s *SQLStore) InsertBookingIfUnblocked(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var locked string
	err = tx.QueryRowContext(ctx, `SELECT id FROM physical_units WHERE id = ? FOR UPDATE`, b.PhysicalUnitID).Scan(&locked)
	if err != nil {
		return notFound(err)
	}

	if b.Status.Blocking() {
		var n int
		const chk = `SELECT COUNT(*) FROM bookings WHERE physical_unit_id = ? AND status IN (?, ?)`
		if err := tx.QueryRowContext(ctx, chk, b.PhysicalUnitID, model.BookingBooked, model.BookingMaintenance).Scan(&n); err != nil {
			return err
		}
		if n > 0 {
			return ErrConflict
		}
	}

	const ins = `INSERT INTO bookings (` + bookingColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, ins, b.ID, b.VirtualUnitID, b.PhysicalUnitID, b.CustomerName, b.CustomerEmail,
		b.CustomerPhone, b.PaymentOption, b.PricingPeriod, b.StartDate.UTC(), nullTime(b.EndDate), b.TotalPrice,
		b.Status, nullTime(b.MoveInDate), nullString(b.SpecialRequests), b.CreatedAt.UTC())
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetBooking returns ErrNotFound when no row has the id.
func (s *SQLStore) GetBooking(ctx context.Context, id string) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// ListBookings returns every booking, oldest first.
func (s *SQLStore) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return s.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at, id`)
}

// ListBookingsByEmail matches customer_email case-insensitively (the
// column uses the default _ci collation).
func (s *SQLStore) ListBookingsByEmail(ctx context.Context, email string) ([]model.Booking, error) {
	return s.queryBookings(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE customer_email = ? ORDER BY created_at, id`, email)
}

func (s *SQLStore) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// BlockingPhysicalUnitIDs reads the generated column, which is only set
// for booked and maintenance rows.
func (s *SQLStore) BlockingPhysicalUnitIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT blocking_unit_id FROM bookings WHERE blocking_unit_id IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}
