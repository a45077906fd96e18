package diary

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SimonGDunne/joplin-diary-tool/internal/entry"
)

var (
	previewHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))

	previewTitleStyle = lipgloss.NewStyle().
				Bold(true)

	previewBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				PaddingLeft(2)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func okMark() string   { return okStyle.Render("✓") }
func failMark() string { return failStyle.Render("✗") }

// printPreview renders the dry-run view of an entry without writing
// anything remotely.
func printPreview(w io.Writer, e *entry.DiaryEntry) {
	fmt.Fprintln(w, previewHeaderStyle.Render("DRY RUN - would create entry:"))
	fmt.Fprintln(w, previewTitleStyle.Render("Title: "+e.Title))
	fmt.Fprintln(w, "Body:")
	for _, line := range strings.Split(e.Render(), "\n") {
		fmt.Fprintln(w, previewBodyStyle.Render(line))
	}
}
