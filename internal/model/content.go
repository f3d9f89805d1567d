package model

import "time"

// ImageAsset is a reusable picture for the marketing site and listings.
// Category is one of hero, unit, feature or gallery.
type ImageAsset struct {
	ID          string    `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	URL         string    `json:"url" bson:"url"`
	Category    string    `json:"category" bson:"category"`
	Tags        []string  `json:"tags" bson:"tags"`
	Description *string   `json:"description" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ContentBlock is a keyed text block managed from the admin screens.
type ContentBlock struct {
	Key       string    `json:"key" bson:"key"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Banner is a promotional banner.  StartsAt and EndsAt bound the display
// window when set.
type Banner struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Message   string     `json:"message" bson:"message"`
	LinkURL   *string    `json:"link_url" bson:"link_url,omitempty"`
	IsActive  bool       `json:"is_active" bson:"is_active"`
	StartsAt  *time.Time `json:"starts_at" bson:"starts_at,omitempty"`
	EndsAt    *time.Time `json:"ends_at" bson:"ends_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// LiveAt reports whether the banner should be shown at t.
func (b *Banner) LiveAt(t time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && t.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && t.After(*b.EndsAt) {
		return false
	}
	return true
}
