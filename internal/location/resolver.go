package location

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

type Source string

const (
	SourceGPS     Source = "gps"
	SourceDefault Source = "default"
	SourceManual  Source = "manual"
)

type Result struct {
	Value  string
	Source Source
}

const defaultHelperTimeout = 15 * time.Second

type Config struct {
	// Helper is the location helper command line, e.g.
	// "CoreLocationCLI -once -format %locality". Split on whitespace.
	Helper   string
	Timeout  time.Duration
	Fallback string
}

// Resolver detects the current location through an external helper process
// and degrades to a configured fallback when detection fails.
type Resolver struct {
	helper   []string
	timeout  time.Duration
	fallback string
}

func NewResolver(cfg Config) *Resolver {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultHelperTimeout
	}

	return &Resolver{
		helper:   strings.Fields(cfg.Helper),
		timeout:  timeout,
		fallback: cfg.Fallback,
	}
}

// Resolve returns the location to use for an entry. A non-empty override
// wins outright. Helper failures of any kind (missing binary, non-zero
// exit, timeout, empty output) fall back to the configured default;
// Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, override string) Result {
	if v := strings.TrimSpace(override); v != "" {
		return Result{Value: v, Source: SourceManual}
	}

	if v, ok := r.runHelper(ctx); ok {
		return Result{Value: v, Source: SourceGPS}
	}

	return Result{Value: r.fallback, Source: SourceDefault}
}

func (r *Resolver) runHelper(ctx context.Context) (string, bool) {
	if len(r.helper) == 0 {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.helper[0], r.helper[1:]...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", false
	}

	// Helpers may print trailing noise; only the first line matters.
	out, _, _ := strings.Cut(strings.TrimSpace(stdout.String()), "\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return "", false
	}

	return out, true
}
