package response_models

import "time"

const (
	EventSourceDiscovered = "discovered"
	EventSourceCommunity  = "community"
)

type Event struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	URL         string     `json:"url,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
}

type Comment struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
	CreatedAt  string `json:"created_at"`
}
