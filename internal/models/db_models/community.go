package db_models

import "github.com/google/uuid"

type Comment struct {
	BaseModel
	AccountID  uuid.UUID `gorm:"type:uuid;not null" json:"account_id"`
	TargetType string    `gorm:"type:varchar(16);not null;index:idx_comment_target" json:"target_type"`
	TargetID   uuid.UUID `gorm:"type:uuid;not null;index:idx_comment_target" json:"target_id"`
	Body       string    `gorm:"type:text;not null" json:"body"`
	Hidden     bool      `gorm:"default:false" json:"hidden"`

	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

type CommunitySuggestion struct {
	BaseModel
	AccountID      uuid.UUID `gorm:"type:uuid;not null" json:"account_id"`
	Name           string    `gorm:"not null" json:"name"`
	Category       string    `json:"category"`
	Address        string    `json:"address"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	Reason         string    `gorm:"type:text" json:"reason"`
	SubmitterEmail string    `json:"-"`
	Moderation
}
