package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Journey struct {
	BaseModel
	Title               string         `gorm:"not null" json:"title"`
	Description         string         `gorm:"type:text" json:"description"`
	VibeTags            pq.StringArray `gorm:"type:text[]" json:"vibe_tags"`
	EstimatedMinutes    int            `json:"estimated_minutes"`
	TotalDistanceMeters int            `json:"total_distance_meters"`
	Published           bool           `gorm:"index;default:false" json:"published"`

	Stops []JourneyStop `gorm:"foreignKey:JourneyID;constraint:OnDelete:CASCADE" json:"stops"`
}

type JourneyStop struct {
	BaseModel
	JourneyID uuid.UUID `gorm:"type:uuid;not null;index" json:"journey_id"`
	PlaceID   uuid.UUID `gorm:"type:uuid;not null" json:"place_id"`
	Position  int       `gorm:"not null" json:"position"`
	Notes     string    `json:"notes"`

	Place Place `gorm:"foreignKey:PlaceID" json:"place"`
}

func (JourneyStop) TableName() string {
	return "journey_places"
}

type SavedJourney struct {
	BaseModel
	AccountID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_journey" json:"account_id"`
	JourneyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_journey" json:"journey_id"`

	Journey Journey `gorm:"foreignKey:JourneyID" json:"journey"`
}
