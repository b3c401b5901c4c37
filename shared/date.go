package shared

import (
	"fmt"
	"time"
)

// dateLayouts are the date format layouts accepted for range boundaries.
var dateLayouts = []string{
	"2006:01:02",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	time.RFC3339,
}

// ParseDate parses the provided date string, trying each supported layout in
// turn. Parsed dates are interpreted as UTC.
func ParseDate(date string) (time.Time, error) {
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, date)
		if err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date format: %s", date)
}
