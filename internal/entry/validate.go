package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var titlePattern = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)

// Validate checks a built entry before it is written anywhere.
func Validate(e *DiaryEntry) error {
	if !titlePattern.MatchString(e.Title) {
		return &ValidationError{Kind: KindBadTitle, Detail: e.Title}
	}
	parsed, err := time.Parse(TitleLayout, e.Title)
	if err != nil {
		return &ValidationError{Kind: KindBadTitle, Detail: e.Title}
	}
	if e.WeatherLine == "" {
		return &ValidationError{Kind: KindMissingWeather}
	}
	if e.Location == "" {
		return &ValidationError{Kind: KindMissingLocation}
	}
	if e.DayOfWeek != parsed.Weekday().String() {
		return &ValidationError{
			Kind:   KindWrongDay,
			Detail: fmt.Sprintf("%s is a %s, not %s", e.Title, parsed.Weekday(), e.DayOfWeek),
		}
	}
	for _, line := range e.Body {
		if err := checkBulletLine(line); err != nil {
			return err
		}
	}
	return nil
}

// checkBulletLine enforces the body layout: top-level bullets are "- "
// prefixed, sub-bullets are tab-indented bullets. Space indentation is
// rejected. Unindented free text is allowed.
func checkBulletLine(line string) error {
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, " ") {
		return &ValidationError{Kind: KindBadIndent, Detail: "space-indented line, sub-bullets must use tabs: " + line}
	}
	if strings.HasPrefix(line, "\t") {
		rest := strings.TrimLeft(line, "\t")
		if !isBullet(rest) {
			return &ValidationError{Kind: KindBadIndent, Detail: "tab-indented line is not a bullet: " + line}
		}
	}
	return nil
}

func isBullet(s string) bool {
	return s == "-" || strings.HasPrefix(s, "- ")
}

// ValidateRendered checks a rendered note body against its date. Used to
// verify what the notes service actually stored.
func ValidateRendered(body string, date time.Time) error {
	lines := strings.Split(body, "\n")
	if len(lines) < 6 {
		return &ValidationError{Kind: KindTooShort, Detail: fmt.Sprintf("%d lines", len(lines))}
	}
	if lines[0] != date.Format(TitleLayout) {
		return &ValidationError{Kind: KindBadTitle, Detail: lines[0]}
	}
	if lines[1] != "" {
		return &ValidationError{Kind: KindBadTitle, Detail: "missing blank line after date"}
	}
	if strings.TrimSpace(lines[2]) == "" {
		return &ValidationError{Kind: KindMissingWeather}
	}
	if lines[3] != date.Weekday().String() {
		return &ValidationError{Kind: KindWrongDay, Detail: lines[3]}
	}
	if strings.TrimSpace(lines[4]) == "" {
		return &ValidationError{Kind: KindMissingLocation}
	}
	return nil
}
