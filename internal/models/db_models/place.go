package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"time"

	"github.com/google/uuid"
)

type Place struct {
	BaseModel
	Name        string         `gorm:"not null" json:"name"`
	Category    string         `gorm:"index;not null" json:"category"`
	Latitude    float64        `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude   float64        `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Rating      float64        `gorm:"type:decimal(2,1);default:0" json:"rating"`
	PriceLevel  int            `gorm:"type:smallint;default:0" json:"price_level"`
	Visited     bool           `gorm:"index;default:false" json:"visited"`
	Address     string         `json:"address"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `json:"image_url"`
	MoodTags    pq.StringArray `gorm:"type:text[]" json:"mood_tags"`

	HasAC             bool `gorm:"column:has_ac;default:false" json:"has_ac"`
	HasOutdoorSeating bool `gorm:"default:false" json:"has_outdoor_seating"`
	IsIndoor          bool `gorm:"default:false" json:"is_indoor"`
	HasWifi           bool `gorm:"default:false" json:"has_wifi"`
}

type CompanionActivity struct {
	BaseModel
	PlaceID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_companion_pair" json:"place_id"`
	CompanionPlaceID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_companion_pair" json:"companion_place_id"`
	ActivityType       string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_companion_pair" json:"activity_type"`
	CompatibilityScore float64   `gorm:"not null" json:"compatibility_score"`
	DistanceMeters     int       `json:"distance_meters"`
	TimeGapMinutes     int       `json:"time_gap_minutes"`
	Reason             string    `json:"reason"`
	ComputedAt         time.Time `gorm:"not null" json:"computed_at"`

	CompanionPlace Place `gorm:"foreignKey:CompanionPlaceID" json:"companion_place"`
}

type PlaceEmbedding struct {
	PlaceID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"place_id"`
	Content   string          `gorm:"type:text" json:"content"`
	Embedding pgvector.Vector `gorm:"type:vector" json:"-"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
