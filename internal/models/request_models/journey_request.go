package request_models

type JourneyStopRequest struct {
	PlaceID string `json:"place_id" binding:"required,uuid"`
	Notes   string `json:"notes"`
}

type JourneyRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	VibeTags    []string             `json:"vibe_tags"`
	Published   bool                 `json:"published"`
	Stops       []JourneyStopRequest `json:"stops" binding:"required,min=1,dive"`
}
