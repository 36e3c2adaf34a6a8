// Package geo holds the distance and ordering helpers shared by journeys,
// companions and the distance calculator. Everything here is pure.
package geo

import "math"

const (
	earthRadiusMeters = 6371000.0

	// WalkingSpeedKmh is the assumed pedestrian pace.
	WalkingSpeedKmh = 5.0

	// NavigationBufferMinutes is added to every non-empty leg.
	NavigationBufferMinutes = 2

	walkingMetersPerHour = WalkingSpeedKmh * 1000
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stop is a place that can be ordered inside a journey.
type Stop struct {
	ID       string
	Name     string
	Location LatLng
}

// Connection describes the walking leg between two consecutive stops.
type Connection struct {
	FromID             string   `json:"from_id"`
	ToID               string   `json:"to_id"`
	DistanceMeters     int      `json:"distance_meters"`
	WalkingTimeMinutes int      `json:"walking_time_minutes"`
	Path               []LatLng `json:"path"`
}

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// HaversineDistance returns the great-circle distance between a and b in meters.
func HaversineDistance(a, b LatLng) float64 {
	if a == b {
		return 0
	}
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	la1 := toRad(a.Lat)
	la2 := toRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(la1)*math.Cos(la2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// CalculateWalkingTime converts a distance into walking minutes, rounded up,
// plus the navigation buffer.
func CalculateWalkingTime(distanceMeters float64) int {
	if distanceMeters <= 0 {
		return 0
	}
	return int(math.Ceil(distanceMeters*60/walkingMetersPerHour)) + NavigationBufferMinutes
}

// WalkingDurationSeconds is the raw walking duration without any buffer.
func WalkingDurationSeconds(distanceMeters float64) int {
	if distanceMeters <= 0 {
		return 0
	}
	return int(math.Round(distanceMeters * 3600 / walkingMetersPerHour))
}

// OptimizeJourneyOrder reorders stops with a greedy nearest neighbor pass.
// The first stop stays first. This is not an optimal tour.
func OptimizeJourneyOrder(stops []Stop) []Stop {
	if len(stops) <= 2 {
		out := make([]Stop, len(stops))
		copy(out, stops)
		return out
	}

	visited := make([]bool, len(stops))
	out := make([]Stop, 0, len(stops))

	current := 0
	visited[0] = true
	out = append(out, stops[0])

	for len(out) < len(stops) {
		next := -1
		best := math.MaxFloat64
		for i := range stops {
			if visited[i] {
				continue
			}
			// strict less keeps the earliest candidate on ties
			if d := HaversineDistance(stops[current].Location, stops[i].Location); d < best {
				best = d
				next = i
			}
		}
		visited[next] = true
		out = append(out, stops[next])
		current = next
	}

	return out
}

// TotalPathDistance sums the leg distances of stops in the given order.
func TotalPathDistance(stops []Stop) float64 {
	total := 0.0
	for i := 1; i < len(stops); i++ {
		total += HaversineDistance(stops[i-1].Location, stops[i].Location)
	}
	return total
}

// CreatePlaceConnections builds one Connection per consecutive pair. The path
// bends through a slightly offset midpoint so legs render as curves; it is
// not a real route.
func CreatePlaceConnections(stops []Stop) []Connection {
	if len(stops) < 2 {
		return []Connection{}
	}

	out := make([]Connection, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		d := HaversineDistance(from.Location, to.Location)
		out = append(out, Connection{
			FromID:             from.ID,
			ToID:               to.ID,
			DistanceMeters:     int(math.Round(d)),
			WalkingTimeMinutes: CalculateWalkingTime(d),
			Path:               []LatLng{from.Location, offsetMidpoint(from.Location, to.Location), to.Location},
		})
	}
	return out
}

func offsetMidpoint(a, b LatLng) LatLng {
	mid := LatLng{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
	// push the midpoint perpendicular to the leg by 10% of its length
	dLat := b.Lat - a.Lat
	dLng := b.Lng - a.Lng
	return LatLng{Lat: mid.Lat - dLng*0.1, Lng: mid.Lng + dLat*0.1}
}
