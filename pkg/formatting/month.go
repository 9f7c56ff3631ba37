package formatting

import (
	"fmt"
	"strings"
	"time"
)

// Month label layouts accepted by the spreadsheet headers, tried in order.
var monthLayouts = []string{
	"Jan 06",
	"Jan 2006",
	"January 2006",
	"2006-01",
}

// ParseMonthLabel parses a spreadsheet month header such as "Jun 24" into the
// first day of that month (UTC).
func ParseMonthLabel(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty month label")
	}

	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return MonthStart(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid month label: %q", s)
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthLabel formats a month as a full human-readable label, e.g. "September 2024".
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}
