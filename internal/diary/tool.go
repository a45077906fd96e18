package diary

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/SimonGDunne/joplin-diary-tool/internal/entry"
	"github.com/SimonGDunne/joplin-diary-tool/internal/joplin"
	"github.com/SimonGDunne/joplin-diary-tool/internal/location"
	"github.com/SimonGDunne/joplin-diary-tool/internal/weather"
)

// NotesAPI is the slice of the Joplin client the orchestrator needs.
type NotesAPI interface {
	Ping(ctx context.Context) error
	FindFolderByTitle(ctx context.Context, title string) (string, error)
	FindNoteByTitle(ctx context.Context, folderID, title string) (*joplin.Note, error)
	CreateNote(ctx context.Context, folderID, title, body string) (*joplin.Note, error)
	UpdateNote(ctx context.Context, noteID, body string) error
	DeleteNote(ctx context.Context, noteID string) error
	GetNote(ctx context.Context, noteID string) (*joplin.Note, error)
}

type WeatherSource interface {
	Fetch(ctx context.Context, location string) (*weather.Result, error)
}

type LocationSource interface {
	Resolve(ctx context.Context, override string) location.Result
}

type Config struct {
	Notes       NotesAPI
	Weather     WeatherSource
	Location    LocationSource
	Prompter    Prompter
	FolderID    string
	FolderTitle string
	Out         io.Writer
}

// Tool wires location, weather, formatting and the notes API into the
// create-entry flow.
type Tool struct {
	notes       NotesAPI
	weather     WeatherSource
	location    LocationSource
	prompt      Prompter
	folderID    string
	folderTitle string
	out         io.Writer
}

func NewTool(cfg Config) *Tool {
	return &Tool{
		notes:       cfg.Notes,
		weather:     cfg.Weather,
		location:    cfg.Location,
		prompt:      cfg.Prompter,
		folderID:    cfg.FolderID,
		folderTitle: cfg.FolderTitle,
		out:         cfg.Out,
	}
}

type Options struct {
	Date             time.Time
	DryRun           bool
	LocationOverride string
}

// Run executes one create-entry pass: resolve location, fetch weather,
// gather content, format, validate, then either print (dry-run) or write.
// No partial note is ever written; any error before the final API call
// leaves the remote store untouched.
func (t *Tool) Run(ctx context.Context, opts Options) error {
	fmt.Fprintf(t.out, "Creating diary entry for %s\n", opts.Date.Format("Monday, January 2, 2006"))
	fmt.Fprintln(t.out, "Gathering automatic information...")

	var body []string
	if !opts.DryRun {
		lines, err := t.prompt.Body()
		if err != nil {
			return fmt.Errorf("failed to read diary content: %w", err)
		}
		body = lines
	}

	e, err := t.compose(ctx, opts.Date, opts.LocationOverride, body)
	if err != nil {
		return err
	}

	if opts.DryRun {
		printPreview(t.out, e)
		return nil
	}

	folderID, err := t.resolveFolder(ctx)
	if err != nil {
		return err
	}

	existing, err := t.notes.FindNoteByTitle(ctx, folderID, e.Title)
	if err != nil {
		return fmt.Errorf("failed to check for existing entry: %w", err)
	}

	if existing != nil {
		fmt.Fprintf(t.out, "Diary entry for %s already exists (ID: %s)\n", e.Title, existing.ID)
		overwrite, err := t.prompt.Confirm("Overwrite? (y/N): ")
		if err != nil {
			return fmt.Errorf("failed to read answer: %w", err)
		}
		if !overwrite {
			fmt.Fprintln(t.out, "Cancelled.")
			return nil
		}

		if err := t.notes.UpdateNote(ctx, existing.ID, e.Render()); err != nil {
			return err
		}
		fmt.Fprintf(t.out, "\n%s Diary entry updated\n", okMark())
		fmt.Fprintf(t.out, "Title: %s\n", e.Title)
		fmt.Fprintf(t.out, "Note ID: %s\n", existing.ID)
		fmt.Fprintf(t.out, "Location: %s\n", e.Location)
		return nil
	}

	created, err := t.notes.CreateNote(ctx, folderID, e.Title, e.Render())
	if err != nil {
		return err
	}

	fmt.Fprintf(t.out, "\n%s Diary entry created successfully!\n", okMark())
	fmt.Fprintf(t.out, "Title: %s\n", e.Title)
	fmt.Fprintf(t.out, "Note ID: %s\n", created.ID)
	fmt.Fprintf(t.out, "Location: %s\n", e.Location)
	return nil
}

// compose builds and validates an entry for the date, running the
// location and weather fallback chains.
func (t *Tool) compose(ctx context.Context, date time.Time, override string, body []string) (*entry.DiaryEntry, error) {
	loc := t.location.Resolve(ctx, override)
	fmt.Fprintf(t.out, "Location: %s (%s)\n", loc.Value, loc.Source)

	fmt.Fprintln(t.out, "Fetching weather...")
	w, err := t.weather.Fetch(ctx, loc.Value)
	if err != nil {
		// Last resort is the user.
		input, perr := t.prompt.Line("Enter weather description (e.g., 'Mild, rainy. 11C'): ")
		if perr != nil {
			return nil, fmt.Errorf("weather unavailable and no manual input: %w", perr)
		}
		manual := weather.ParseManual(input)
		w = &manual
	}

	e, err := entry.Format(date, loc.Value, w.Line(), body)
	if err != nil {
		return nil, err
	}

	if err := entry.Validate(e); err != nil {
		return nil, fmt.Errorf("generated diary entry is invalid: %w", err)
	}

	return e, nil
}

func (t *Tool) resolveFolder(ctx context.Context) (string, error) {
	if t.folderID != "" {
		return t.folderID, nil
	}

	id, err := t.notes.FindFolderByTitle(ctx, t.folderTitle)
	if err != nil {
		return "", fmt.Errorf("failed to resolve diary folder: %w", err)
	}
	return id, nil
}
