package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/storage-booking/internal/model"
	"github.com/iliyamo/storage-booking/internal/repository"
)

// ImageCategories are the accepted image categories.
var ImageCategories = []string{"hero", "unit", "feature", "gallery"}

// ImageRequest is the body of image create and replace.
type ImageRequest struct {
	Name        string   `json:"name" validate:"required"`
	URL         string   `json:"url" validate:"required,url"`
	Category    string   `json:"category" validate:"required,oneof=hero unit feature gallery"`
	Tags        []string `json:"tags"`
	Description *string  `json:"description"`
}

// ContentRequest is the body of PUT /content/{key}.
type ContentRequest struct {
	Title string `json:"title"`
	Body  string `json:"body" validate:"required"`
}

// BannerRequest is the body of POST /banners.
type BannerRequest struct {
	Title    string     `json:"title" validate:"required"`
	Message  string     `json:"message"`
	LinkURL  *string    `json:"link_url" validate:"omitempty,url"`
	IsActive *bool      `json:"is_active"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// Content manages image assets, text blocks and banners.
type Content struct {
	store repository.Store
	now   func() time.Time
}

func NewContent(store repository.Store) *Content {
	return &Content{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// ListImages filters by category in the store and by tags (any match)
// here.
func (c *Content) ListImages(ctx context.Context, category string, tags []string) ([]model.ImageAsset, error) {
	imgs, err := c.store.ListImages(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return imgs, nil
	}
	out := imgs[:0]
	for _, img := range imgs {
		if hasAny(img.Tags, tags) {
			out = append(out, img)
		}
	}
	return out, nil
}

func (c *Content) CreateImage(ctx context.Context, req ImageRequest) (*model.ImageAsset, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	img := imageFrom(req)
	img.ID = uuid.NewString()
	img.CreatedAt = c.now()
	if err := c.store.CreateImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

// ReplaceImage overwrites every field of image id.
func (c *Content) ReplaceImage(ctx context.Context, id string, req ImageRequest) (*model.ImageAsset, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	img := imageFrom(req)
	img.ID = id
	img.CreatedAt = c.now()
	if err := c.store.ReplaceImage(ctx, img); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Image")
		}
		return nil, err
	}
	return img, nil
}

func (c *Content) DeleteImage(ctx context.Context, id string) error {
	err := c.store.DeleteImage(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Image")
	}
	return err
}

func imageFrom(req ImageRequest) *model.ImageAsset {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return &model.ImageAsset{
		Name:        req.Name,
		URL:         req.URL,
		Category:    req.Category,
		Tags:        tags,
		Description: req.Description,
	}
}

func (c *Content) ListBlocks(ctx context.Context) ([]model.ContentBlock, error) {
	return c.store.ListContent(ctx)
}

func (c *Content) GetBlock(ctx context.Context, key string) (*model.ContentBlock, error) {
	b, err := c.store.GetContent(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, notFound("Content")
	}
	return b, err
}

// PutBlock creates or replaces the text block under key.
func (c *Content) PutBlock(ctx context.Context, key string, req ContentRequest) (*model.ContentBlock, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, invalid("key", "required")
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	b := &model.ContentBlock{Key: key, Title: req.Title, Body: req.Body, UpdatedAt: c.now()}
	if err := c.store.PutContent(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBanners returns every banner, or only those live now.
func (c *Content) ListBanners(ctx context.Context, activeOnly bool) ([]model.Banner, error) {
	all, err := c.store.ListBanners(ctx)
	if err != nil || !activeOnly {
		return all, err
	}
	now := c.now()
	out := all[:0]
	for i := range all {
		if all[i].LiveAt(now) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (c *Content) CreateBanner(ctx context.Context, req BannerRequest) (*model.Banner, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		return nil, invalid("ends_at", "must not be before starts_at")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	b := &model.Banner{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Message:   req.Message,
		LinkURL:   req.LinkURL,
		IsActive:  active,
		StartsAt:  utcPtr(req.StartsAt),
		EndsAt:    utcPtr(req.EndsAt),
		CreatedAt: c.now(),
	}
	if err := c.store.CreateBanner(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (c *Content) DeleteBanner(ctx context.Context, id string) error {
	err := c.store.DeleteBanner(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound("Banner")
	}
	return err
}

func hasAny(have, wanted []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
