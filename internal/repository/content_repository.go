package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/storage-booking/internal/model"
)

const imageColumns = `id, name, url, category, tags, description, created_at`

func scanImage(row rowScanner) (*model.ImageAsset, error) {
	var img model.ImageAsset
	var tags []byte
	var description sql.NullString
	if err := row.Scan(&img.ID, &img.Name, &img.URL, &img.Category, &tags, &description, &img.CreatedAt); err != nil {
		return nil, err
	}
	img.Tags = decodeList(tags)
	img.Description = stringPtr(description)
	return &img, nil
}

// ListImages returns all images, or only those in category when non-empty.
func (s *SQLStore) ListImages(ctx context.Context, category string) ([]model.ImageAsset, error) {
	q := `SELECT ` + imageColumns + ` FROM image_assets`
	args := []any{}
	if category != "" {
		q += ` WHERE category = ?`
		args = append(args, category)
	}
	q += ` ORDER BY created_at, id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ImageAsset{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateImage(ctx context.Context, img *model.ImageAsset) error {
	const q = `INSERT INTO image_assets (` + imageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, img.ID, img.Name, img.URL, img.Category,
		encodeList(img.Tags), nullString(img.Description), img.CreatedAt.UTC())
	return err
}

// ReplaceImage overwrites every column of the row with img.ID.
func (s *SQLStore) ReplaceImage(ctx context.Context, img *model.ImageAsset) error {
	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM image_assets WHERE id = ?`, img.ID).Scan(&exists); err != nil {
		return notFound(err)
	}
	const q = `UPDATE image_assets SET name = ?, url = ?, category = ?, tags = ?, description = ?, created_at = ? WHERE id = ?`
	_, err := s.db.ExecContext(ctx, q, img.Name, img.URL, img.Category, encodeList(img.Tags),
		nullString(img.Description), img.CreatedAt.UTC(), img.ID)
	return err
}

func (s *SQLStore) DeleteImage(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM image_assets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListContent returns every block ordered by key.
func (s *SQLStore) ListContent(ctx context.Context) ([]model.ContentBlock, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content_key, title, body, updated_at FROM content_blocks ORDER BY content_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContentBlock{}
	for rows.Next() {
		var b model.ContentBlock
		if err := rows.Scan(&b.Key, &b.Title, &b.Body, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetContent(ctx context.Context, key string) (*model.ContentBlock, error) {
	var b model.ContentBlock
	err := s.db.QueryRowContext(ctx, `SELECT content_key, title, body, updated_at FROM content_blocks WHERE content_key = ?`, key).
		Scan(&b.Key, &b.Title, &b.Body, &b.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// PutContent inserts or replaces the block with the same key.
func (s *SQLStore) PutContent(ctx context.Context, block *model.ContentBlock) error {
	const q = `INSERT INTO content_blocks (content_key, title, body, updated_at) VALUES (?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE title = VALUES(title), body = VALUES(body), updated_at = VALUES(updated_at)`
	_, err := s.db.ExecContext(ctx, q, block.Key, block.Title, block.Body, block.UpdatedAt.UTC())
	return err
}

const bannerColumns = `id, title, message, link_url, is_active, starts_at, ends_at, created_at`

func (s *SQLStore) ListBanners(ctx context.Context) ([]model.Banner, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bannerColumns+` FROM banners ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Banner{}
	for rows.Next() {
		var b model.Banner
		var link sql.NullString
		var starts, ends sql.NullTime
		if err := rows.Scan(&b.ID, &b.Title, &b.Message, &link, &b.IsActive, &starts, &ends, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.LinkURL = stringPtr(link)
		b.StartsAt = timePtr(starts)
		b.EndsAt = timePtr(ends)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLStore) CreateBanner(ctx context.Context, b *model.Banner) error {
	const q = `INSERT INTO banners (` + bannerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, b.ID, b.Title, b.Message, nullString(b.LinkURL), b.IsActive,
		nullTime(b.StartsAt), nullTime(b.EndsAt), b.CreatedAt.UTC())
	return err
}

func (s *SQLStore) DeleteBanner(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM banners WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
