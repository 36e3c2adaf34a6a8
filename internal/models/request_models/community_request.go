package request_models

type EventQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Category string `form:"category"`
}

type CommunityEventRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=5000"`
	Venue       string   `json:"venue" binding:"required"`
	StartsAt    string   `json:"starts_at" binding:"required"`
	EndsAt      string   `json:"ends_at"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Latitude    *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" binding:"omitempty,longitude"`
}

type CommentQuery struct {
	TargetType string `form:"target_type" binding:"required,oneof=place journey event"`
	TargetID   string `form:"target_id" binding:"required,uuid"`
}

type CommentRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=place journey event"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	Body       string `json:"body" binding:"required,max=2000"`
}

type SuggestionRequest struct {
	Name      string   `json:"name" binding:"required"`
	Category  string   `json:"category"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	Reason    string   `json:"reason" binding:"max=2000"`
	Email     string   `json:"email" binding:"omitempty,email"`
}

type ModerationRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type HideCommentRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}
