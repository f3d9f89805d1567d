package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storage-booking/internal/repository"
	"github.com/iliyamo/storage-booking/internal/repository/memstore"
)

func TestImagesCRUD(t *testing.T) {
	ctx := context.Background()
	c := NewContent(memstore.New())

	img, err := c.CreateImage(ctx, ImageRequest{Name: "Hero", URL: "https://img.example/h.png", Category: "hero", Tags: []string{"rv", "outdoor"}})
	require.NoError(t, err)
	_, err = c.CreateImage(ctx, ImageRequest{Name: "Boat", URL: "https://img.example/b.png", Category: "gallery", Tags: []string{"boat"}})
	require.NoError(t, err)

	got, err := c.ListImages(ctx, "", []string{"boat", "nothing"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Boat", got[0].Name)

	got, err = c.ListImages(ctx, "hero", nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	replaced, err := c.ReplaceImage(ctx, img.ID, ImageRequest{Name: "Hero 2", URL: "https://img.example/h2.png", Category: "hero"})
	require.NoError(t, err)
	assert.Equal(t, img.ID, replaced.ID)
	assert.Equal(t, []string{}, replaced.Tags)

	_, err = c.ReplaceImage(ctx, "nope", ImageRequest{Name: "x", URL: "https://img.example/x.png", Category: "hero"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, c.DeleteImage(ctx, img.ID))
	assert.EqualError(t, c.DeleteImage(ctx, img.ID), "Image not found")

	_, err = c.CreateImage(ctx, ImageRequest{Name: "bad", URL: "https://img.example/x.png", Category: "poster"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestContentBlocks(t *testing.T) {
	ctx := context.Background()
	c := NewContent(memstore.New())

	_, err := c.GetBlock(ctx, "hero_title")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = c.PutBlock(ctx, "hero_title", ContentRequest{Title: "Hero", Body: "Store your RV"})
	require.NoError(t, err)
	_, err = c.PutBlock(ctx, "hero_title", ContentRequest{Title: "Hero", Body: "Store your boat"})
	require.NoError(t, err)

	b, err := c.GetBlock(ctx, "hero_title")
	require.NoError(t, err)
	assert.Equal(t, "Store your boat", b.Body)

	all, err := c.ListBlocks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBannersActiveWindow(t *testing.T) {
	ctx := context.Background()
	c := NewContent(memstore.New())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	off := false

	_, err := c.CreateBanner(ctx, BannerRequest{Title: "live", StartsAt: &yesterday, EndsAt: &tomorrow})
	require.NoError(t, err)
	_, err = c.CreateBanner(ctx, BannerRequest{Title: "expired", StartsAt: &past, EndsAt: &yesterday})
	require.NoError(t, err)
	_, err = c.CreateBanner(ctx, BannerRequest{Title: "disabled", IsActive: &off})
	require.NoError(t, err)
	b, err := c.CreateBanner(ctx, BannerRequest{Title: "open ended"})
	require.NoError(t, err)

	all, err := c.ListBanners(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	live, err := c.ListBanners(ctx, true)
	require.NoError(t, err)
	titles := []string{}
	for _, l := range live {
		titles = append(titles, l.Title)
	}
	assert.ElementsMatch(t, []string{"live", "open ended"}, titles)

	require.NoError(t, c.DeleteBanner(ctx, b.ID))
	assert.ErrorIs(t, c.DeleteBanner(ctx, b.ID), repository.ErrNotFound)

	_, err = c.CreateBanner(ctx, BannerRequest{Title: "backwards", StartsAt: &tomorrow, EndsAt: &yesterday})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
