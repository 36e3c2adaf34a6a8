// Package discovery pulls public event listings into the moderation queue.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	dbm "nearby/internal/models/db_models"
)

// Scraper extracts events from listing pages. A listing marks each event with
// a data-event attribute; inside it the scraper reads the title, the first
// time[datetime] as start and an optional second one as end, the venue and the
// first link.
type Scraper struct {
	HTTP      *http.Client
	UserAgent string
	logger    *zap.Logger
}

func NewScraper(logger *zap.Logger) *Scraper {
	return &Scraper{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		UserAgent: "nearby-discovery/1.0",
		logger:    logger,
	}
}

func (s *Scraper) FetchEvents(ctx context.Context, source string) ([]dbm.DiscoveredEvent, error) {
	base, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", source, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("fetch %s: bad status %s", source, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}

	var events []dbm.DiscoveredEvent
	doc.Find("[data-event]").Each(func(_ int, card *goquery.Selection) {
		ev, ok := parseCard(card, base)
		if !ok {
			s.logger.Debug("skipping incomplete event card", zap.String("source", source))
			return
		}
		events = append(events, ev)
	})
	return events, nil
}

func parseCard(card *goquery.Selection, base *url.URL) (dbm.DiscoveredEvent, bool) {
	title := firstText(card, "[data-title]", ".title", "h2", "h3")
	if title == "" {
		return dbm.DiscoveredEvent{}, false
	}

	times := card.Find("time[datetime]")
	startsAt, err := parseTime(times.First().AttrOr("datetime", ""))
	if err != nil {
		return dbm.DiscoveredEvent{}, false
	}

	href, ok := card.Find("a[href]").First().Attr("href")
	if !ok {
		return dbm.DiscoveredEvent{}, false
	}
	link, err := base.Parse(strings.TrimSpace(href))
	if err != nil {
		return dbm.DiscoveredEvent{}, false
	}
	link.Fragment = ""

	ev := dbm.DiscoveredEvent{
		Title:       title,
		Description: firstText(card, "[data-description]", ".description", "p"),
		SourceURL:   link.String(),
		Venue:       firstText(card, "[data-venue]", ".venue"),
		StartsAt:    startsAt,
		Category:    strings.ToLower(strings.TrimSpace(card.AttrOr("data-category", ""))),
		Tags:        pq.StringArray(splitTags(card.AttrOr("data-tags", ""))),
		Metadata:    cardMetadata(card, base),
		Moderation:  dbm.Moderation{ModerationStatus: dbm.ModerationPending},
	}

	if times.Length() > 1 {
		if endsAt, err := parseTime(times.Eq(1).AttrOr("datetime", "")); err == nil && endsAt.After(startsAt) {
			ev.EndsAt = &endsAt
		}
	}

	lat, latErr := strconv.ParseFloat(card.AttrOr("data-lat", ""), 64)
	lng, lngErr := strconv.ParseFloat(card.AttrOr("data-lng", ""), 64)
	if latErr == nil && lngErr == nil {
		ev.Latitude, ev.Longitude = &lat, &lng
	}

	return ev, true
}

// cardMetadata keeps the listing URL and the card's data-* attributes so a
// moderator can see what the scraper saw.
func cardMetadata(card *goquery.Selection, listing *url.URL) datatypes.JSON {
	meta := map[string]string{"listing_url": listing.String()}
	if node := card.Get(0); node != nil {
		for _, attr := range node.Attr {
			if strings.HasPrefix(attr.Key, "data-") && attr.Key != "data-event" {
				meta[strings.TrimPrefix(attr.Key, "data-")] = attr.Val
			}
		}
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(raw)
}

func firstText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := strings.Join(strings.Fields(card.Find(sel).First().Text()), " "); text != "" {
			return text
		}
	}
	return ""
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", raw)
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
