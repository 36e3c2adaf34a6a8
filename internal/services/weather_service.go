package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"nearby/internal/models/db_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	"nearby/pkg/utils"
)

type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"

	maxPlaceRecommendations   = 10
	maxJourneyRecommendations = 5
)

const (
	hotThreshold      = 30.0
	rainyThreshold    = 50.0
	pleasantMin       = 20.0
	pleasantMax       = 28.0
	coolThreshold     = 20.0
	humidityThreshold = 70.0
)

type WeatherConditions struct {
	Temperature float64
	RainChance  float64
	Humidity    float64
}

func (w WeatherConditions) hot() bool      { return w.Temperature > hotThreshold }
func (w WeatherConditions) rainy() bool    { return w.RainChance > rainyThreshold }
func (w WeatherConditions) cool() bool     { return w.Temperature < coolThreshold }
func (w WeatherConditions) humid() bool    { return w.Humidity > humidityThreshold }
func (w WeatherConditions) pleasant() bool { return w.Temperature >= pleasantMin && w.Temperature <= pleasantMax }

// TimeOfDayAt buckets the hour of t.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

type WeatherServiceInterface interface {
	ResolveTimeOfDay(raw string) (TimeOfDay, error)
	GetRecommendations(ctx context.Context, weather WeatherConditions, timeOfDay TimeOfDay) ([]response_models.PlaceRecommendation, error)
	GetJourneyRecommendations(ctx context.Context, weather WeatherConditions, timeOfDay TimeOfDay) ([]response_models.JourneyRecommendation, error)
}

type WeatherService struct {
	placeRepo   repositories.PlaceRepository
	journeyRepo repositories.JourneyRepository
	now         func() time.Time
}

func NewWeatherService(placeRepo repositories.PlaceRepository, journeyRepo repositories.JourneyRepository) WeatherServiceInterface {
	return &WeatherService{
		placeRepo:   placeRepo,
		journeyRepo: journeyRepo,
		now:         time.Now,
	}
}

// ResolveTimeOfDay validates raw and falls back to the current clock when it is empty.
func (w *WeatherService) ResolveTimeOfDay(raw string) (TimeOfDay, error) {
	switch tod := TimeOfDay(strings.ToLower(strings.TrimSpace(raw))); tod {
	case "":
		return TimeOfDayAt(w.now()), nil
	case Morning, Afternoon, Evening, Night:
		return tod, nil
	default:
		return "", utils.ErrInvalidTimeOfDay
	}
}

func (w *WeatherService) GetRecommendations(ctx context.Context, weather WeatherConditions, timeOfDay TimeOfDay) ([]response_models.PlaceRecommendation, error) {
	places, err := w.placeRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	month := w.now().Month()
	recs := make([]response_models.PlaceRecommendation, 0, len(places))
	for _, p := range places {
		score, reasons := scorePlace(p, weather, timeOfDay, month)
		recs = append(recs, response_models.PlaceRecommendation{
			Place:   toPlaceResponse(p),
			Score:   score,
			Reasons: reasons,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > maxPlaceRecommendations {
		recs = recs[:maxPlaceRecommendations]
	}
	return recs, nil
}

type adjuster struct {
	score   float64
	reasons []string
}

func (a *adjuster) add(delta float64, reason string) {
	a.score += delta
	if reason != "" && delta > 0 {
		a.reasons = append(a.reasons, reason)
	}
}

func scorePlace(p db_models.Place, weather WeatherConditions, timeOfDay TimeOfDay, month time.Month) (float64, []string) {
	a := &adjuster{score: 0.5, reasons: []string{}}
	if p.Rating > 0 {
		a.add((p.Rating-3)*0.05, "Highly rated")
	}

	outdoorPark := p.Category == "park"

	if weather.hot() {
		if p.HasAC {
			a.add(0.25, "Air-conditioned escape from the heat")
		} else if p.IsIndoor {
			a.add(0.1, "Indoors and out of the sun")
		}
		if p.HasOutdoorSeating {
			a.add(-0.15, "")
		}
		if outdoorPark {
			a.add(-0.2, "")
		}
	}

	if weather.rainy() {
		if p.IsIndoor {
			a.add(0.2, "Stay dry indoors")
		}
		if p.HasOutdoorSeating {
			a.add(-0.2, "")
		}
		if outdoorPark {
			a.add(-0.3, "")
		}
	}

	if weather.pleasant() && !weather.rainy() {
		if p.HasOutdoorSeating {
			a.add(0.2, "Great weather for sitting outside")
		}
		if outdoorPark {
			a.add(0.25, "Perfect park weather")
		}
	}

	if weather.cool() {
		if p.IsIndoor {
			a.add(0.1, "Cozy indoor spot")
		}
		if p.Category == "cafe" || p.Category == "bakery" {
			a.add(0.1, "Warm up with something hot")
		}
		if p.HasOutdoorSeating {
			a.add(-0.1, "")
		}
	}

	if weather.humid() {
		if p.HasAC {
			a.add(0.1, "Escape the humidity")
		}
		if p.HasOutdoorSeating {
			a.add(-0.05, "")
		}
	}

	switch timeOfDay {
	case Morning:
		if p.Category == "cafe" || p.Category == "bakery" || outdoorPark {
			a.add(0.1, "Great morning spot")
		}
	case Afternoon:
		switch p.Category {
		case "cafe", "museum", "gallery", "bookstore":
			a.add(0.05, "Nice afternoon stop")
		}
		if p.HasWifi {
			a.add(0.02, "")
		}
	case Evening:
		switch p.Category {
		case "restaurant", "bar", "music_venue", "dessert":
			a.add(0.15, "Perfect for the evening")
		}
	case Night:
		switch p.Category {
		case "bar", "pub", "nightclub", "music_venue":
			a.add(0.2, "Open late")
		}
		if outdoorPark {
			a.add(-0.2, "")
		}
	}

	switch month {
	case time.June, time.July, time.August:
		if p.HasOutdoorSeating {
			a.add(0.05, "Summer terrace season")
		}
	case time.December, time.January, time.February:
		if p.IsIndoor {
			a.add(0.05, "Winter warmer")
		}
	case time.March, time.April, time.May:
		if outdoorPark {
			a.add(0.05, "Spring is in bloom")
		}
	default:
		if p.Category == "cafe" {
			a.add(0.05, "Autumn cafe season")
		}
	}

	return clamp01(a.score), a.reasons
}

// weather suitability tags inferred from free-text vibe tags
var (
	outdoorVibes = []string{"outdoor", "nature", "park", "walk", "scenic", "waterfront", "garden", "picnic", "sunny"}
	indoorVibes  = []string{"indoor", "museum", "art", "culture", "shopping", "cozy", "cafe", "rainy"}
	eveningVibes = []string{"night", "evening", "bar", "sunset", "live music", "dinner", "date"}
)

const (
	WeatherTagOutdoor    = "outdoor"
	WeatherTagIndoor     = "indoor"
	WeatherTagEvening    = "evening"
	WeatherTagAllWeather = "all_weather"
)

// InferWeatherTags maps a journey's vibe tags to weather suitability tags.
func InferWeatherTags(vibeTags []string) []string {
	var outdoor, indoor, evening bool
	for _, raw := range vibeTags {
		v := strings.ToLower(raw)
		outdoor = outdoor || containsAny(v, outdoorVibes)
		indoor = indoor || containsAny(v, indoorVibes)
		evening = evening || containsAny(v, eveningVibes)
	}

	tags := []string{}
	if outdoor {
		tags = append(tags, WeatherTagOutdoor)
	}
	if indoor {
		tags = append(tags, WeatherTagIndoor)
	}
	if evening {
		tags = append(tags, WeatherTagEvening)
	}
	if len(tags) == 0 {
		tags = append(tags, WeatherTagAllWeather)
	}
	return tags
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func (w *WeatherService) GetJourneyRecommendations(ctx context.Context, weather WeatherConditions, timeOfDay TimeOfDay) ([]response_models.JourneyRecommendation, error) {
	journeys, err := w.journeyRepo.ListAllPublished(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	recs := make([]response_models.JourneyRecommendation, 0, len(journeys))
	for _, j := range journeys {
		tags := InferWeatherTags(j.VibeTags)
		score, reasons := scoreJourney(tags, weather, timeOfDay)
		recs = append(recs, response_models.JourneyRecommendation{
			Journey:     toJourneySummary(j),
			Score:       score,
			WeatherTags: tags,
			Reasons:     reasons,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > maxJourneyRecommendations {
		recs = recs[:maxJourneyRecommendations]
	}
	return recs, nil
}

func scoreJourney(tags []string, weather WeatherConditions, timeOfDay TimeOfDay) (float64, []string) {
	a := &adjuster{score: 0.5, reasons: []string{}}
	badWeather := weather.rainy() || weather.hot() || weather.cool()

	for _, tag := range tags {
		switch tag {
		case WeatherTagOutdoor:
			if weather.pleasant() && !weather.rainy() {
				a.add(0.3, "Ideal walking weather")
			}
			if weather.rainy() {
				a.add(-0.3, "")
			}
			if weather.hot() {
				a.add(-0.2, "")
			}
			if weather.cool() {
				a.add(-0.1, "")
			}
			if timeOfDay == Morning {
				a.add(0.1, "Beat the crowds this morning")
			}
		case WeatherTagIndoor:
			if badWeather {
				a.add(0.2, "Mostly indoors")
			}
		case WeatherTagEvening:
			switch timeOfDay {
			case Evening, Night:
				a.add(0.2, "Made for the evening")
			case Morning:
				a.add(-0.1, "")
			}
		}
	}
	return clamp01(a.score), a.reasons
}
