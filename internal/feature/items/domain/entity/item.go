// Package entity defines the domain entities for the items feature.
package entity

import "time"

// Item represents a marketplace listing.
// The JSON shape matches the public API: `_id` is the store-assigned
// internal key, `id` the application-assigned sequential string id.
type Item struct {
	// ID is the store's internal record identifier.
	ID uint `gorm:"primaryKey" json:"_id"`

	// ItemID is the application id: a sequential numeric string
	// ("1", "2", ...) allocated at creation.
	ItemID string `gorm:"uniqueIndex;size:32;not null" json:"id"`

	Category    string `gorm:"size:255" json:"category"`
	Condition   string `gorm:"size:255" json:"condition"`
	AgeDays     int    `json:"age_days"`
	AgeYears    float64 `json:"age_years"`
	Description string `gorm:"size:1024" json:"description"`

	// DateAdded is the creation time in epoch seconds.
	DateAdded int64 `json:"date_added"`

	UpdatedAt time.Time `json:"updatedAt"`

	// ImageURL is the public path of the uploaded image, if any.
	ImageURL string `gorm:"size:512" json:"imageUrl,omitempty"`
}
