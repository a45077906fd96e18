package entry

import (
	"time"
)

const (
	// TitleLayout is the note title and first-line date format.
	TitleLayout = "2006/01/02"
	// DateArgLayout is the accepted CLI date format.
	DateArgLayout = "2006-01-02"
)

// DiaryEntry is a fully assembled diary note. Built by Format and not
// modified afterwards.
type DiaryEntry struct {
	Date        time.Time
	Title       string
	WeatherLine string
	DayOfWeek   string
	Location    string
	Body        []string
}

type ValidationKind string

const (
	KindBadTitle        ValidationKind = "bad_title"
	KindMissingWeather  ValidationKind = "missing_weather"
	KindMissingLocation ValidationKind = "missing_location"
	KindWrongDay        ValidationKind = "wrong_day"
	KindBadIndent       ValidationKind = "bad_indent"
	KindTooShort        ValidationKind = "too_short"
)

type ValidationError struct {
	Kind   ValidationKind
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Detail
}
