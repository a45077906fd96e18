package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://wttr.in"
	primaryTimeout  = 10 * time.Second
	fallbackTimeout = 5 * time.Second
	userAgent       = "joplin-diary-tool/1.0"

	maxResponseLen = 100
)

var invalidIndicators = []string{"error", "unknown", "not found", "404"}

// tempPattern matches a trailing temperature token such as "+11°C",
// "-3C" or "23°C".
var tempPattern = regexp.MustCompile(`^([+-]?\d+)°?C$`)

type Config struct {
	BaseURL string
}

// Fetcher pulls a one-line weather report from the wttr.in text service.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
}

type attempt struct {
	format  string
	timeout time.Duration
	source  Source
}

// The primary format returns "<condition> <temp>"; the fallback format=3
// returns "<location>: <icon> <temp>" and is stripped of its location
// prefix before parsing.
var attempts = []attempt{
	{format: "%C+%t", timeout: primaryTimeout, source: SourcePrimary},
	{format: "3", timeout: fallbackTimeout, source: SourceFallback},
}

func NewFetcher(cfg Config) *Fetcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Fetcher{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// Fetch tries each endpoint format in order and returns the first report
// that parses. All attempts failing returns an error; the caller decides
// whether to fall back to manual input.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*Result, error) {
	var lastErr error

	for _, a := range attempts {
		line, err := f.fetchLine(ctx, location, a.format, a.timeout)
		if err != nil {
			lastErr = err
			continue
		}

		if a.source == SourceFallback {
			// Strip the "<location>:" prefix of format=3.
			if _, rest, found := strings.Cut(line, ":"); found {
				line = strings.TrimSpace(rest)
			}
		}

		if !plausible(line) {
			lastErr = fmt.Errorf("implausible weather response: %q", line)
			continue
		}

		desc, temp, hasTemp := parseLine(line)
		return &Result{
			Description: desc,
			TempC:       temp,
			HasTemp:     hasTemp,
			Source:      a.source,
		}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no weather endpoints configured")
	}
	return nil, fmt.Errorf("all weather attempts failed: %w", lastErr)
}

func (f *Fetcher) fetchLine(ctx context.Context, location, format string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := fmt.Sprintf("%s/%s?format=%s", f.baseURL, url.PathEscape(location), url.QueryEscape(format))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("weather service status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return strings.TrimSpace(string(body)), nil
}

// plausible filters the error strings wttr.in returns with status 200.
func plausible(line string) bool {
	if line == "" || len(line) > maxResponseLen {
		return false
	}
	lower := strings.ToLower(line)
	for _, indicator := range invalidIndicators {
		if strings.Contains(lower, indicator) {
			return false
		}
	}
	return true
}

// parseLine splits a report into description and trailing temperature.
func parseLine(line string) (string, int, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", 0, false
	}

	last := fields[len(fields)-1]
	m := tempPattern.FindStringSubmatch(last)
	if m == nil {
		return line, 0, false
	}

	temp, err := strconv.Atoi(m[1])
	if err != nil {
		return line, 0, false
	}

	return strings.Join(fields[:len(fields)-1], " "), temp, true
}

// ParseManual turns free-form user input like "Mild, rainy. 11C" into a
// Result with SourceManual. Input without a recognizable temperature
// keeps the whole text as the description.
func ParseManual(input string) Result {
	desc, temp, hasTemp := parseLine(strings.TrimSpace(input))
	return Result{
		Description: desc,
		TempC:       temp,
		HasTemp:     hasTemp,
		Source:      SourceManual,
	}
}
