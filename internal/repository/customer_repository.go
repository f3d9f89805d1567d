package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/storage-booking/internal/model"
)

const customerColumns = `id, first_name, last_name, email, phone, company, customer_type, acquisition_source,
       loyalty_points, lifetime_points, total_bookings, lifetime_value, created_at`

func scanCustomer(row rowScanner) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Company, &c.CustomerType,
		&c.AcquisitionSource, &c.LoyaltyPoints, &c.LifetimePoints, &c.TotalBookings, &c.LifetimeValue,
		&c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCustomer returns ErrConflict if the e-mail is already registered.
func (s *SQLStore) CreateCustomer(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (` + customerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Company,
		c.CustomerType, c.AcquisitionSource, c.LoyaltyPoints, c.LifetimePoints, c.TotalBookings,
		c.LifetimeValue, c.CreatedAt.UTC())
	if isDuplicateKey(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *SQLStore) GetCustomerByEmail(ctx context.Context, email string) (*model.Customer, error) {
	c, err := scanCustomer(s.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = ?`, email))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListCustomers builds its WHERE clause from the non-empty filter fields.
func (s *SQLStore) ListCustomers(ctx context.Context, f CustomerFilter) ([]model.Customer, error) {
	var where []string
	var args []any
	if f.CustomerType != "" {
		where = append(where, "customer_type = ?")
		args = append(args, f.CustomerType)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + term + "%"
		where = append(where, "(first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR company LIKE ?)")
		args = append(args, like, like, like, like)
	}
	q := `SELECT ` + customerColumns + ` FROM customers`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id"
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// ApplyCustomerDelta increments the counters in one guarded UPDATE so a
// redemption can never overdraw the balance.
func (s *SQLStore) ApplyCustomerDelta(ctx context.Context, id string, d CustomerDelta) (*model.Customer, error) {
	const q = `UPDATE customers
               SET loyalty_points = loyalty_points + ?, lifetime_points = lifetime_points + ?,
                   lifetime_value = lifetime_value + ?, total_bookings = total_bookings + ?
               WHERE id = ? AND loyalty_points + ? >= 0`
	res, err := s.db.ExecContext(ctx, q, d.Points, d.Lifetime, d.Value, d.Bookings, id, d.Points)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	c, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	// zero rows with an existing customer: either an all-zero delta or an
	// overdraw attempt
	if n == 0 && c.LoyaltyPoints+d.Points < 0 {
		return nil, ErrInsufficientPoints
	}
	return c, nil
}

func (s *SQLStore) AddLoyaltyTransaction(ctx context.Context, t *model.LoyaltyTransaction) error {
	const q = `INSERT INTO loyalty_transactions (id, customer_id, points, kind, description, booking_id, created_at)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, t.ID, t.CustomerID, t.Points, t.Kind, t.Description,
		nullString(t.BookingID), t.CreatedAt.UTC())
	return err
}

func (s *SQLStore) ListLoyaltyTransactions(ctx context.Context, customerID string) ([]model.LoyaltyTransaction, error) {
	const q = `SELECT id, customer_id, points, kind, description, booking_id, created_at
               FROM loyalty_transactions WHERE customer_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.LoyaltyTransaction{}
	for rows.Next() {
		var t model.LoyaltyTransaction
		var bookingID sql.NullString
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Points, &t.Kind, &t.Description, &bookingID, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.BookingID = stringPtr(bookingID)
		out = append(out, t)
	}
	return out, rows.Err()
}
