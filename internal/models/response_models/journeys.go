package response_models

import "nearby/pkg/geo"

type JourneySummary struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	VibeTags            []string `json:"vibe_tags"`
	EstimatedMinutes    int      `json:"estimated_minutes"`
	TotalDistanceMeters int      `json:"total_distance_meters"`
	Published           bool     `json:"published"`
}

type JourneyStop struct {
	Position int    `json:"position"`
	Notes    string `json:"notes,omitempty"`
	Place    Place  `json:"place"`
}

type JourneyDetailResponse struct {
	JourneySummary
	Stops       []JourneyStop    `json:"stops"`
	Connections []geo.Connection `json:"connections"`
}
