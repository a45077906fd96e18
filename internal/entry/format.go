package entry

import (
	"fmt"
	"strings"
	"time"
)

// starterBody is the template offered when the user supplies no content.
var starterBody = []string{"- ", "- ", "- "}

// ParseDate parses a YYYY-MM-DD CLI argument. Impossible calendar dates
// (2025-02-29) are rejected by time.Parse.
func ParseDate(arg string) (time.Time, error) {
	t, err := time.Parse(DateArgLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", arg, err)
	}
	return t, nil
}

// Format assembles a DiaryEntry for the given date. An empty body becomes
// the starter bullet template.
func Format(date time.Time, location, weatherLine string, body []string) (*DiaryEntry, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}

	if len(body) == 0 {
		body = append([]string(nil), starterBody...)
	}

	return &DiaryEntry{
		Date:        date,
		Title:       date.Format(TitleLayout),
		WeatherLine: strings.TrimSpace(weatherLine),
		DayOfWeek:   date.Weekday().String(),
		Location:    strings.TrimSpace(location),
		Body:        body,
	}, nil
}

// Render produces the note body: date line, blank, weather, day name,
// location, blank, then the bullet lines.
func (e *DiaryEntry) Render() string {
	var sb strings.Builder
	sb.WriteString(e.Title)
	sb.WriteString("\n\n")
	sb.WriteString(e.WeatherLine)
	sb.WriteString("\n")
	sb.WriteString(e.DayOfWeek)
	sb.WriteString("\n")
	sb.WriteString(e.Location)
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(e.Body, "\n"))
	return sb.String()
}
