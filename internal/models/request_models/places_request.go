package request_models

type PlaceRequest struct {
	Name              string   `json:"name" binding:"required"`
	Category          string   `json:"category" binding:"required"`
	Latitude          float64  `json:"latitude" binding:"required,latitude"`
	Longitude         float64  `json:"longitude" binding:"required,longitude"`
	Rating            float64  `json:"rating" binding:"gte=0,lte=5"`
	PriceLevel        int      `json:"price_level" binding:"gte=0,lte=4"`
	Visited           bool     `json:"visited"`
	Address           string   `json:"address"`
	Description       string   `json:"description"`
	ImageURL          string   `json:"image_url" binding:"omitempty,url"`
	MoodTags          []string `json:"mood_tags"`
	HasAC             bool     `json:"has_ac"`
	HasOutdoorSeating bool     `json:"has_outdoor_seating"`
	IsIndoor          bool     `json:"is_indoor"`
	HasWifi           bool     `json:"has_wifi"`
}

type VisitedRequest struct {
	Visited *bool `json:"visited" binding:"required"`
}

// CompanionQuery holds the optional filters of a companion lookup.
type CompanionQuery struct {
	TimeAvailable int    `form:"time_available" binding:"gte=0"`
	Mood          string `form:"mood"`
	Budget        int    `form:"budget" binding:"gte=0,lte=4"`
}

type WeatherQuery struct {
	Temperature *float64 `form:"temp" binding:"required"`
	RainChance  float64  `form:"rain_chance" binding:"gte=0,lte=100"`
	Humidity    float64  `form:"humidity" binding:"gte=0,lte=100"`
	TimeOfDay   string   `form:"time_of_day" binding:"omitempty,oneof=morning afternoon evening night"`
}

type DistanceQuery struct {
	FromLat *float64 `form:"from_lat" binding:"required,latitude"`
	FromLng *float64 `form:"from_lng" binding:"required,longitude"`
	ToLat   *float64 `form:"to_lat" binding:"required,latitude"`
	ToLng   *float64 `form:"to_lng" binding:"required,longitude"`
}

type SearchQuery struct {
	Query string `form:"q" binding:"required,min=2"`
	Limit int    `form:"limit" binding:"omitempty,gte=1,lte=50"`
}
