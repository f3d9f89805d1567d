package repository

import (
	"context"
	"time"

	"github.com/iliyamo/storage-booking/internal/model"
)

const paymentColumns = `id, session_id, booking_id, customer_email, amount, currency, status, payment_status,
       points_awarded, created_at, updated_at`

func (s *SQLStore) CreatePayment(ctx context.Context, p *model.PaymentTransaction) error {
	const q = `INSERT INTO payment_transactions (` + paymentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, p.ID, p.SessionID, p.BookingID, p.CustomerEmail, p.Amount, p.Currency,
		p.Status, p.PaymentStatus, p.PointsAwarded, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) GetPaymentBySession(ctx context.Context, sessionID string) (*model.PaymentTransaction, error) {
	var p model.PaymentTransaction
	err := s.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payment_transactions WHERE session_id = ?`, sessionID).
		Scan(&p.ID, &p.SessionID, &p.BookingID, &p.CustomerEmail, &p.Amount, &p.Currency, &p.Status,
			&p.PaymentStatus, &p.PointsAwarded, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *SQLStore) UpdatePaymentStatus(ctx context.Context, sessionID, status, paymentStatus string) error {
	const q = `UPDATE payment_transactions SET status = ?, payment_status = ?, updated_at = ? WHERE session_id = ?`
	res, err := s.db.ExecContext(ctx, q, status, paymentStatus, time.Now().UTC(), sessionID)
	if err != nil {
		return err
	}
	// updated_at always changes, so zero rows means no such session
	return requireAffected(res)
}

// MarkPointsAwarded only matches rows still at points_awarded = 0, so
// exactly one caller observes the flip.
func (s *SQLStore) MarkPointsAwarded(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE payment_transactions SET points_awarded = 1 WHERE session_id = ? AND points_awarded = 0`, sessionID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	if _, err := s.GetPaymentBySession(ctx, sessionID); err != nil {
		return false, err
	}
	return false, nil
}
