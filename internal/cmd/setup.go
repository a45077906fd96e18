package cmd

import (
	"fmt"
	"io"

	"github.com/SimonGDunne/joplin-diary-tool/internal/config"
	"github.com/SimonGDunne/joplin-diary-tool/internal/diary"
)

// runSetup collects the settings interactively and writes the config
// file. Empty answers keep the current (or default) value.
func runSetup(cfg *config.Config, prompter diary.Prompter, out io.Writer) error {
	fmt.Fprintln(out, "Setting up joplin-diary. Press Enter to keep the shown value.")

	questions := []struct {
		prompt string
		target *string
	}{
		{"Joplin API token", &cfg.Token},
		{"Joplin base URL", &cfg.BaseURL},
		{"Diary folder id (leave empty to look up by title)", &cfg.FolderID},
		{"Diary folder title", &cfg.FolderTitle},
		{"Default location", &cfg.DefaultLocation},
		{"Location helper command", &cfg.LocationHelper},
	}

	for _, q := range questions {
		answer, err := prompter.Line(fmt.Sprintf("%s [%s]: ", q.prompt, *q.target))
		if err != nil {
			return fmt.Errorf("setup aborted: %w", err)
		}
		if answer != "" {
			*q.target = answer
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Config written to %s\n", path)
	return nil
}
