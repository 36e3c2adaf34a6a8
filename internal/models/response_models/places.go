package response_models

import "nearby/pkg/geo"

type Place struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Category          string   `json:"category"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	Rating            float64  `json:"rating"`
	PriceLevel        int      `json:"price_level"`
	Visited           bool     `json:"visited"`
	Address           string   `json:"address"`
	Description       string   `json:"description,omitempty"`
	ImageURL          string   `json:"image_url,omitempty"`
	MoodTags          []string `json:"mood_tags"`
	HasAC             bool     `json:"has_ac"`
	HasOutdoorSeating bool     `json:"has_outdoor_seating"`
	IsIndoor          bool     `json:"is_indoor"`
	HasWifi           bool     `json:"has_wifi"`
}

func (p Place) Location() geo.LatLng {
	return geo.LatLng{Lat: p.Latitude, Lng: p.Longitude}
}

type CompanionSuggestion struct {
	Place              Place   `json:"place"`
	ActivityType       string  `json:"activity_type"`
	CompatibilityScore float64 `json:"compatibility_score"`
	DistanceMeters     int     `json:"distance_meters"`
	TimeGapMinutes     int     `json:"time_gap_minutes"`
	Reason             string  `json:"reason"`
}

type CompanionResult struct {
	Before []CompanionSuggestion `json:"before"`
	After  []CompanionSuggestion `json:"after"`
	Source string                `json:"source"`
}

type PlaceRecommendation struct {
	Place   Place    `json:"place"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

type JourneyRecommendation struct {
	Journey     JourneySummary `json:"journey"`
	Score       float64        `json:"score"`
	WeatherTags []string       `json:"weather_tags"`
	Reasons     []string       `json:"reasons"`
}

type SearchHit struct {
	Place      Place   `json:"place"`
	Similarity float64 `json:"similarity"`
}
