package db_models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type DiscoveredEvent struct {
	BaseModel
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	SourceURL   string         `gorm:"uniqueIndex;not null" json:"source_url"`
	Venue       string         `json:"venue"`
	StartsAt    time.Time      `gorm:"index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at,omitempty"`
	Category    string         `json:"category"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Metadata    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"metadata"`
	Moderation
}

type CommunityEvent struct {
	BaseModel
	AccountID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Venue       string         `json:"venue"`
	StartsAt    time.Time      `gorm:"index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at,omitempty"`
	Category    string         `json:"category"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Latitude    *float64       `json:"latitude,omitempty"`
	Longitude   *float64       `json:"longitude,omitempty"`
	Moderation
}
