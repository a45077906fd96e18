package diary

import (
	"context"
	"fmt"
	"time"

	"github.com/SimonGDunne/joplin-diary-tool/internal/entry"
	"github.com/SimonGDunne/joplin-diary-tool/internal/joplin"
)

var testContent = []string{
	"- Integration test entry",
	"- Testing automatic weather fetch",
	"- This will be deleted",
}

// edgeDates are formatted dry-run only; leap day included.
var edgeDates = []time.Time{
	time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
	time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
}

// RunIntegrationTest exercises the full pipeline against a live Joplin
// instance: create a future-dated entry, verify the stored body, check
// edge-case dates, then delete the entry again.
func (t *Tool) RunIntegrationTest(ctx context.Context) error {
	fmt.Fprintln(t.out, "Running integration test...")

	if err := t.notes.Ping(ctx); err != nil {
		return fmt.Errorf("joplin is not reachable: %w", err)
	}

	folderID, err := t.resolveFolder(ctx)
	if err != nil {
		return err
	}

	testDate := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	title := testDate.Format(entry.TitleLayout)

	existing, err := t.notes.FindNoteByTitle(ctx, folderID, title)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Fprintln(t.out, "Test entry already exists, deleting first...")
		if err := t.notes.DeleteNote(ctx, existing.ID); err != nil {
			return err
		}
	}

	fmt.Fprintln(t.out, "Creating test entry...")
	e, err := t.compose(ctx, testDate, "", testContent)
	if err != nil {
		return err
	}

	created, err := t.notes.CreateNote(ctx, folderID, e.Title, e.Render())
	if err != nil {
		return err
	}

	fmt.Fprintln(t.out, "Verifying entry format...")
	stored, err := t.notes.GetNote(ctx, created.ID)
	if err != nil {
		return err
	}
	if err := entry.ValidateRendered(stored.Body, testDate); err != nil {
		return fmt.Errorf("stored entry failed validation: %w", err)
	}
	fmt.Fprintf(t.out, "%s Entry format validation passed\n", okMark())

	for _, d := range edgeDates {
		edge, err := entry.Format(d, e.Location, e.WeatherLine, []string{"- Edge case test"})
		if err == nil {
			err = entry.Validate(edge)
		}
		if err != nil {
			fmt.Fprintf(t.out, "%s Edge case validation failed for %s: %v\n", failMark(), d.Format(entry.DateArgLayout), err)
		} else {
			fmt.Fprintf(t.out, "%s Edge case validation passed for %s\n", okMark(), d.Format(entry.DateArgLayout))
		}
	}

	fmt.Fprintln(t.out, "Cleaning up test entry...")
	if err := t.notes.DeleteNote(ctx, created.ID); err != nil {
		return err
	}

	if _, err := t.notes.GetNote(ctx, created.ID); err == nil {
		fmt.Fprintf(t.out, "%s Test entry was not properly deleted\n", failMark())
		return fmt.Errorf("test entry %s still present after delete", created.ID)
	} else if !joplin.IsNotFound(err) {
		return fmt.Errorf("failed to verify deletion: %w", err)
	}
	fmt.Fprintf(t.out, "%s Test entry successfully deleted\n", okMark())

	fmt.Fprintf(t.out, "%s Integration test passed!\n", okMark())
	return nil
}
