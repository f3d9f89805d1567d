package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/storage-booking/internal/model"
)

const physicalUnitColumns = `id, unit_number, actual_size, location, amenities, base_price, status, created_at`

const virtualUnitColumns = `id, physical_unit_id, unit_type, display_size, display_name,
       daily_price, weekly_price, monthly_price, amenities, image_url, description, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhysicalUnit(row rowScanner) (*model.PhysicalUnit, error) {
	var u model.PhysicalUnit
	var amenities []byte
	if err := row.Scan(&u.ID, &u.UnitNumber, &u.ActualSize, &u.Location, &amenities,
		&u.BasePrice, &u.Status, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Amenities = decodeList(amenities)
	return &u, nil
}

func scanVirtualUnit(row rowScanner) (*model.VirtualUnit, error) {
	var u model.VirtualUnit
	var amenities []byte
	var imageURL, description sql.NullString
	if err := row.Scan(&u.ID, &u.PhysicalUnitID, &u.UnitType, &u.DisplaySize, &u.DisplayName,
		&u.DailyPrice, &u.WeeklyPrice, &u.MonthlyPrice, &amenities, &imageURL, &description,
		&u.CreatedAt); err != nil {
		return nil, err
	}
	u.Amenities = decodeList(amenities)
	u.ImageURL = stringPtr(imageURL)
	u.Description = stringPtr(description)
	return &u, nil
}

// CreatePhysicalUnit inserts a physical unit row.
func (s *SQLStore) CreatePhysicalUnit(ctx context.Context, u *model.PhysicalUnit) error {
	const q = `INSERT INTO physical_units (` + physicalUnitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, u.ID, u.UnitNumber, u.ActualSize, u.Location,
		encodeList(u.Amenities), u.BasePrice, u.Status, u.CreatedAt.UTC())
	return err
}

// GetPhysicalUnit returns ErrNotFound when no row has the id.
func (s *SQLStore) GetPhysicalUnit(ctx context.Context, id string) (*model.PhysicalUnit, error) {
	const q = `SELECT ` + physicalUnitColumns + ` FROM physical_units WHERE id = ?`
	u, err := scanPhysicalUnit(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListPhysicalUnits returns every physical unit in creation order.
func (s *SQLStore) ListPhysicalUnits(ctx context.Context) ([]model.PhysicalUnit, error) {
	const q = `SELECT ` + physicalUnitColumns + ` FROM physical_units ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PhysicalUnit{}
	for rows.Next() {
		u, err := scanPhysicalUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// CreateVirtualUnit inserts a virtual unit row.  The foreign key on
// physical_unit_id backs up the existence check done by the service.
func (s *SQLStore) CreateVirtualUnit(ctx context.Context, u *model.VirtualUnit) error {
	const q = `INSERT INTO virtual_units (` + virtualUnitColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, u.ID, u.PhysicalUnitID, u.UnitType, u.DisplaySize, u.DisplayName,
		u.DailyPrice, u.WeeklyPrice, u.MonthlyPrice, encodeList(u.Amenities),
		nullString(u.ImageURL), nullString(u.Description), u.CreatedAt.UTC())
	return err
}

// GetVirtualUnit returns ErrNotFound when no row has the id.
func (s *SQLStore) GetVirtualUnit(ctx context.Context, id string) (*model.VirtualUnit, error) {
	const q = `SELECT ` + virtualUnitColumns + ` FROM virtual_units WHERE id = ?`
	u, err := scanVirtualUnit(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// ListVirtualUnits filters on unit_type in SQL when one is given.
func (s *SQLStore) ListVirtualUnits(ctx context.Context, unitType model.UnitType) ([]model.VirtualUnit, error) {
	q := `SELECT ` + virtualUnitColumns + ` FROM virtual_units`
	args := []any{}
	if unitType != "" {
		q += ` WHERE unit_type = ?`
		args = append(args, unitType)
	}
	q += ` ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.VirtualUnit{}
	for rows.Next() {
		u, err := scanVirtualUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// SetVirtualUnitImage updates image_url.  RowsAffected cannot tell "same
// value" from "no row", so existence is checked separately.
func (s *SQLStore) SetVirtualUnitImage(ctx context.Context, id, imageURL string) error {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM virtual_units WHERE id = ?`, id).Scan(&exists); err != nil {
		return notFound(err)
	}
	_, err := s.db.ExecContext(ctx, `UPDATE virtual_units SET image_url = ? WHERE id = ?`, imageURL, id)
	return err
}
