package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingToken is the fatal configuration error for any mode that talks
// to the notes API.
var ErrMissingToken = errors.New("JOPLIN_TOKEN is not set, run with --setup or export it")

const (
	defaultBaseURL     = "http://localhost:41184"
	defaultFolderTitle = "Diary"
	defaultLocation    = "Garrynacurry"
	defaultHelper      = "CoreLocationCLI"
	defaultWeatherURL  = "https://wttr.in"
)

type Config struct {
	Token           string `yaml:"token"`
	BaseURL         string `yaml:"base_url"`
	FolderID        string `yaml:"folder_id"`
	FolderTitle     string `yaml:"folder_title"`
	DefaultLocation string `yaml:"default_location"`
	LocationHelper  string `yaml:"location_helper"`
	WeatherBaseURL  string `yaml:"weather_base_url"`
}

// Load resolves configuration with priority: environment > config file >
// defaults. A .env in the working directory is loaded first and never
// overrides real environment variables. CLI flags are applied by the
// caller on top of the result.
func Load() (*Config, error) {
	// Best effort; a missing .env is the normal case.
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:         defaultBaseURL,
		FolderTitle:     defaultFolderTitle,
		DefaultLocation: defaultLocation,
		LocationHelper:  defaultHelper,
		WeatherBaseURL:  defaultWeatherURL,
	}

	if path, err := Path(); err == nil {
		if fileCfg, err := loadFile(path); err == nil {
			cfg.apply(fileCfg)
		}
	}

	cfg.apply(&Config{
		Token:           os.Getenv("JOPLIN_TOKEN"),
		BaseURL:         os.Getenv("JOPLIN_BASE_URL"),
		FolderID:        os.Getenv("DIARY_FOLDER_ID"),
		FolderTitle:     os.Getenv("DIARY_FOLDER_TITLE"),
		DefaultLocation: os.Getenv("DIARY_DEFAULT_LOCATION"),
		LocationHelper:  os.Getenv("DIARY_LOCATION_HELPER"),
		WeatherBaseURL:  os.Getenv("WTTR_BASE_URL"),
	})

	return cfg, nil
}

// RequireToken gates the modes that write to or read from the notes API.
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	return nil
}

func (c *Config) apply(overlay *Config) {
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.FolderID != "" {
		c.FolderID = overlay.FolderID
	}
	if overlay.FolderTitle != "" {
		c.FolderTitle = overlay.FolderTitle
	}
	if overlay.DefaultLocation != "" {
		c.DefaultLocation = overlay.DefaultLocation
	}
	if overlay.LocationHelper != "" {
		c.LocationHelper = overlay.LocationHelper
	}
	if overlay.WeatherBaseURL != "" {
		c.WeatherBaseURL = overlay.WeatherBaseURL
	}
}

// Path returns the config file location, ~/.config/joplin-diary/config.yaml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "joplin-diary", "config.yaml"), nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config file, creating the directory if needed.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
