package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"nearby/pkg/geo"
	mem "nearby/pkg/memcache"
)

const (
	DistanceSourceAPI      = "api"
	DistanceSourceEstimate = "estimate"
)

type DistanceResult struct {
	DistanceMeters     int    `json:"distance_meters"`
	DurationSeconds    int    `json:"duration_seconds"`
	WalkingTimeMinutes int    `json:"walking_time_minutes"`
	Source             string `json:"source"`
}

// --------- cache ---------

type DistanceCache interface {
	Get(ctx context.Context, key string) (DistanceResult, bool)
	Set(ctx context.Context, key string, v DistanceResult)
}

type inMemoryDistanceCache struct {
	lru *mem.TTLCache[DistanceResult]
}

func NewInMemoryDistanceCache(maxEntries int, ttl time.Duration) DistanceCache {
	return &inMemoryDistanceCache{lru: mem.NewTTLCache[DistanceResult](maxEntries, ttl)}
}

func (c *inMemoryDistanceCache) Get(_ context.Context, key string) (DistanceResult, bool) {
	return c.lru.Get(key)
}

func (c *inMemoryDistanceCache) Set(_ context.Context, key string, v DistanceResult) {
	c.lru.Set(key, v)
}

// redisDistanceCache shares entries across instances. Redis errors count as
// misses so the calculator keeps working when Redis is down.
type redisDistanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) DistanceCache {
	return &redisDistanceCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisDistanceCache) Get(ctx context.Context, key string) (DistanceResult, bool) {
	raw, err := c.client.Get(ctx, "distance:"+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis distance cache get failed", zap.Error(err))
		}
		return DistanceResult{}, false
	}
	var v DistanceResult
	if err := json.Unmarshal(raw, &v); err != nil {
		return DistanceResult{}, false
	}
	return v, true
}

func (c *redisDistanceCache) Set(ctx context.Context, key string, v DistanceResult) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, "distance:"+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("redis distance cache set failed", zap.Error(err))
	}
}

func distanceCacheKey(from, to geo.LatLng) string {
	return fmt.Sprintf("%.6f,%.6f;%.6f,%.6f", from.Lat, from.Lng, to.Lat, to.Lng)
}

// -------------- directions (walking) ---------------

type WalkingRoute struct {
	DistanceMeters  float64
	DurationSeconds float64
}

type DirectionsClient interface {
	WalkingRoute(ctx context.Context, from, to geo.LatLng) (WalkingRoute, error)
}

type MapboxDirectionsClient struct {
	HTTP        *http.Client
	AccessToken string
	BaseURL     string
}

func NewMapboxDirectionsClient(token string) *MapboxDirectionsClient {
	return &MapboxDirectionsClient{
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		AccessToken: token,
		BaseURL:     "https://api.mapbox.com",
	}
}

func (c *MapboxDirectionsClient) WalkingRoute(ctx context.Context, from, to geo.LatLng) (WalkingRoute, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return WalkingRoute{}, fmt.Errorf("mapbox base url: %w", err)
	}
	u.Path = fmt.Sprintf("/directions/v5/mapbox/walking/%f,%f;%f,%f", from.Lng, from.Lat, to.Lng, to.Lat)
	q := url.Values{}
	q.Set("overview", "false")
	q.Set("access_token", c.AccessToken)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return WalkingRoute{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return WalkingRoute{}, fmt.Errorf("mapbox directions http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return WalkingRoute{}, fmt.Errorf("mapbox directions bad status: %s", resp.Status)
	}

	var payload struct {
		Routes []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return WalkingRoute{}, fmt.Errorf("mapbox decode: %w", err)
	}
	if len(payload.Routes) == 0 {
		return WalkingRoute{}, errors.New("mapbox directions: no route")
	}
	return WalkingRoute{DistanceMeters: payload.Routes[0].Distance, DurationSeconds: payload.Routes[0].Duration}, nil
}

// -------------- calculator ---------------

type DistanceCalculatorInterface interface {
	CalculateDistance(ctx context.Context, from, to geo.LatLng) (DistanceResult, error)
}

// DistanceCalculator asks the directions API for walking distances when it
// has a client and falls back to a haversine estimate otherwise.
type DistanceCalculator struct {
	directions DirectionsClient
	cache      DistanceCache
	logger     *zap.Logger
}

// NewDistanceCalculator accepts a nil directions client, which means estimates only.
func NewDistanceCalculator(directions DirectionsClient, cache DistanceCache, logger *zap.Logger) *DistanceCalculator {
	return &DistanceCalculator{directions: directions, cache: cache, logger: logger}
}

func (d *DistanceCalculator) CalculateDistance(ctx context.Context, from, to geo.LatLng) (DistanceResult, error) {
	key := distanceCacheKey(from, to)
	if v, ok := d.cache.Get(ctx, key); ok {
		return v, nil
	}

	result := estimateDistance(from, to)
	if d.directions != nil {
		route, err := d.directions.WalkingRoute(ctx, from, to)
		if err != nil {
			if ctx.Err() != nil {
				return DistanceResult{}, ctx.Err()
			}
			d.logger.Warn("directions lookup failed, using estimate", zap.Error(err))
		} else {
			result = DistanceResult{
				DistanceMeters:     int(math.Round(route.DistanceMeters)),
				DurationSeconds:    int(math.Round(route.DurationSeconds)),
				WalkingTimeMinutes: int(math.Ceil(route.DurationSeconds / 60)),
				Source:             DistanceSourceAPI,
			}
		}
	}

	d.cache.Set(ctx, key, result)
	return result, nil
}

func estimateDistance(from, to geo.LatLng) DistanceResult {
	meters := geo.HaversineDistance(from, to)
	return DistanceResult{
		DistanceMeters:     int(math.Round(meters)),
		DurationSeconds:    geo.WalkingDurationSeconds(meters),
		WalkingTimeMinutes: geo.CalculateWalkingTime(meters),
		Source:             DistanceSourceEstimate,
	}
}
