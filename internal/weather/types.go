package weather

import "fmt"

type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceManual   Source = "manual"
)

type Result struct {
	Description string
	TempC       int
	HasTemp     bool
	Source      Source
}

// Line renders the entry weather line, e.g. "Sunny +23°C". Without a
// temperature only the description is emitted.
func (r Result) Line() string {
	if !r.HasTemp {
		return r.Description
	}
	if r.Description == "" {
		return fmt.Sprintf("%+d°C", r.TempC)
	}
	return fmt.Sprintf("%s %+d°C", r.Description, r.TempC)
}
