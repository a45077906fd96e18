package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SimonGDunne/joplin-diary-tool/internal/config"
	"github.com/SimonGDunne/joplin-diary-tool/internal/diary"
	"github.com/SimonGDunne/joplin-diary-tool/internal/entry"
	"github.com/SimonGDunne/joplin-diary-tool/internal/joplin"
	"github.com/SimonGDunne/joplin-diary-tool/internal/location"
	"github.com/SimonGDunne/joplin-diary-tool/internal/weather"
)

var (
	flagDryRun   bool
	flagLocation string
	flagTest     bool
	flagSetup    bool
)

var rootCmd = &cobra.Command{
	Use:   "joplin-diary [date]",
	Short: "Create dated diary entries in Joplin",
	Long: `joplin-diary creates a dated diary entry in a local Joplin instance,
enriched with auto-detected location and current weather. The date argument
uses YYYY-MM-DD and defaults to today.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runRoot,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Show what would be created without writing it")
	rootCmd.Flags().StringVar(&flagLocation, "location", "", "Override the detected location")
	rootCmd.Flags().BoolVar(&flagTest, "test", false, "Run the integration test against a live Joplin")
	rootCmd.Flags().BoolVar(&flagSetup, "setup", false, "Interactively write the config file")
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	prompter := diary.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())

	if flagSetup {
		return runSetup(cfg, prompter, cmd.OutOrStdout())
	}

	if err := cfg.RequireToken(); err != nil {
		return err
	}

	date := time.Now()
	if len(args) == 1 {
		parsed, err := entry.ParseDate(args[0])
		if err != nil {
			return err
		}
		date = parsed
	}

	notes, err := joplin.NewClient(joplin.Config{
		Token:   cfg.Token,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	tool := diary.NewTool(diary.Config{
		Notes:   notes,
		Weather: weather.NewFetcher(weather.Config{BaseURL: cfg.WeatherBaseURL}),
		Location: location.NewResolver(location.Config{
			Helper:   cfg.LocationHelper,
			Fallback: cfg.DefaultLocation,
		}),
		Prompter:    prompter,
		FolderID:    cfg.FolderID,
		FolderTitle: cfg.FolderTitle,
		Out:         cmd.OutOrStdout(),
	})

	if flagTest {
		return tool.RunIntegrationTest(cmd.Context())
	}

	return tool.Run(cmd.Context(), diary.Options{
		Date:             date,
		DryRun:           flagDryRun,
		LocationOverride: flagLocation,
	})
}
