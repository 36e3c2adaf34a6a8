package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseOptionalRFC3339 returns nil for an empty string.
func ParseOptionalRFC3339(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatUnixRFC3339 formats a unix seconds timestamp as used by BaseModel.
func FormatUnixRFC3339(sec int64) string {
	if sec == 0 {
		return ""
	}
	return FormatRFC3339(time.Unix(sec, 0))
}

// ParsePagination reads page/pageSize query params with the given default size.
func ParsePagination(c *gin.Context, defaultSize int) (int, int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, ErrInvalidPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, ErrInvalidPageSize
	}

	return page, pageSize, nil
}
