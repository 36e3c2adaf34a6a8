package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hoanKiem = LatLng{Lat: 21.0285, Lng: 105.8542}
	westLake = LatLng{Lat: 21.0545, Lng: 105.8267}
	oldQuart = LatLng{Lat: 21.0340, Lng: 105.8500}
)

func TestHaversineDistance(t *testing.T) {
	pairs := [][2]LatLng{
		{hoanKiem, westLake},
		{westLake, oldQuart},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 51.5074, Lng: -0.1278}},
		{{Lat: 0, Lng: 179.9}, {Lat: 0, Lng: -179.9}},
	}

	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1])
		ba := HaversineDistance(p[1], p[0])
		assert.InDelta(t, ab, ba, 1e-6, "distance must be symmetric")
		assert.Greater(t, ab, 0.0)
	}

	assert.Equal(t, 0.0, HaversineDistance(hoanKiem, hoanKiem))

	// one degree of latitude is ~111.2 km
	d := HaversineDistance(LatLng{Lat: 0, Lng: 0}, LatLng{Lat: 1, Lng: 0})
	assert.InDelta(t, 111195, d, 50)
}

func TestCalculateWalkingTime(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     int
	}{
		{"zero", 0, 0},
		{"one meter", 1, 3},
		{"exactly one km", 1000, 12 + NavigationBufferMinutes},
		{"five km", 5000, 60 + NavigationBufferMinutes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateWalkingTime(tt.distance))
		})
	}
}

func TestOptimizeJourneyOrder_IsPermutation(t *testing.T) {
	stops := []Stop{
		{ID: "a", Location: hoanKiem},
		{ID: "b", Location: westLake},
		{ID: "c", Location: oldQuart},
		{ID: "d", Location: LatLng{Lat: 21.0200, Lng: 105.8600}},
	}

	got := OptimizeJourneyOrder(stops)
	require.Len(t, got, len(stops))
	assert.Equal(t, "a", got[0].ID, "start is fixed")

	seen := map[string]int{}
	for _, s := range got {
		seen[s.ID]++
	}
	for _, s := range stops {
		assert.Equal(t, 1, seen[s.ID])
	}

	// input untouched
	assert.Equal(t, "b", stops[1].ID)
}

func TestOptimizeJourneyOrder_Colinear(t *testing.T) {
	p1 := Stop{ID: "p1", Location: LatLng{Lat: 10, Lng: 100.00}}
	p2 := Stop{ID: "p2", Location: LatLng{Lat: 10, Lng: 100.02}}
	p3 := Stop{ID: "p3", Location: LatLng{Lat: 10, Lng: 100.01}}

	input := []Stop{p1, p2, p3}
	got := OptimizeJourneyOrder(input)

	assert.Equal(t, []string{"p1", "p3", "p2"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Less(t, TotalPathDistance(got), TotalPathDistance(input))
}

func TestOptimizeJourneyOrder_Small(t *testing.T) {
	assert.Empty(t, OptimizeJourneyOrder(nil))
	one := []Stop{{ID: "x"}}
	assert.Equal(t, one, OptimizeJourneyOrder(one))
}

func TestCreatePlaceConnections(t *testing.T) {
	stops := []Stop{
		{ID: "a", Location: hoanKiem},
		{ID: "b", Location: oldQuart},
		{ID: "c", Location: westLake},
	}

	conns := CreatePlaceConnections(stops)
	require.Len(t, conns, 2)

	assert.Equal(t, "a", conns[0].FromID)
	assert.Equal(t, "b", conns[0].ToID)
	assert.Len(t, conns[0].Path, 3)
	assert.Equal(t, hoanKiem, conns[0].Path[0])
	assert.Equal(t, oldQuart, conns[0].Path[2])
	assert.Equal(t, CalculateWalkingTime(float64(conns[0].DistanceMeters)), conns[0].WalkingTimeMinutes)

	assert.Empty(t, CreatePlaceConnections(stops[:1]))
}
