package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pranavmehta-git/fault-line/internal/event"
)

// Config carries the run parameters that used to live as module-level
// constants in the scoring scripts: the tracked labs with their
// founding dates, the decay window, and the artifact paths.
type Config struct {
	ScoringVersion  string      `yaml:"scoring_version"`
	DecayWindowDays int         `yaml:"decay_window_days"`
	Labs            []LabConfig `yaml:"labs"`
	Paths           PathsConfig `yaml:"paths"`
}

// LabConfig identifies one tracked organization. Founded gates score
// computation: snapshots dated before it carry no score for the lab.
type LabConfig struct {
	ID      string `yaml:"id"`
	Founded string `yaml:"founded"`
}

// PathsConfig holds the fixed logical paths the engine reads and
// writes.
type PathsConfig struct {
	Events     string `yaml:"events"`
	Checklist  string `yaml:"checklist"`
	Historical string `yaml:"historical"`
	Current    string `yaml:"current"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the production configuration: the five tracked labs
// and the 180-day decay window.
func Default() *Config {
	return &Config{
		ScoringVersion:  "1.0.0",
		DecayWindowDays: 180,
		Labs: []LabConfig{
			{ID: "deepmind", Founded: "2010-11-01"},
			{ID: "meta", Founded: "2013-12-01"},
			{ID: "openai", Founded: "2015-12-01"},
			{ID: "anthropic", Founded: "2021-01-01"},
			{ID: "xai", Founded: "2023-07-01"},
		},
		Paths: PathsConfig{
			Events:     "data/events.json",
			Checklist:  "data/checklist.json",
			Historical: "data/historical_scores.json",
			Current:    "data/scores.json",
		},
	}
}

// Validate checks structural consistency before a run starts.
func (c *Config) Validate() error {
	if c.DecayWindowDays <= 0 {
		return fmt.Errorf("decay_window_days must be positive, got %d", c.DecayWindowDays)
	}
	if len(c.Labs) == 0 {
		return fmt.Errorf("no labs configured")
	}
	seen := make(map[string]bool, len(c.Labs))
	for _, lab := range c.Labs {
		if lab.ID == "" {
			return fmt.Errorf("lab with empty id")
		}
		if seen[lab.ID] {
			return fmt.Errorf("duplicate lab id %q", lab.ID)
		}
		seen[lab.ID] = true
		if lab.Founded != "" {
			if _, err := time.ParseInLocation(event.DateLayout, lab.Founded, time.UTC); err != nil {
				return fmt.Errorf("lab %q has unparseable founding date %q", lab.ID, lab.Founded)
			}
		}
	}
	return nil
}

// LabIDs returns the configured lab identifiers in declaration order.
func (c *Config) LabIDs() []string {
	ids := make([]string, 0, len(c.Labs))
	for _, lab := range c.Labs {
		ids = append(ids, lab.ID)
	}
	return ids
}

// Founded reports whether the lab existed on day. Labs with no founding
// date configured are treated as always founded.
func (c *Config) Founded(labID string, day time.Time) bool {
	for _, lab := range c.Labs {
		if lab.ID != labID || lab.Founded == "" {
			continue
		}
		founded, err := time.ParseInLocation(event.DateLayout, lab.Founded, time.UTC)
		if err != nil {
			return true
		}
		return !day.Before(founded)
	}
	return true
}

// KnownLab reports whether labID is one of the configured labs.
func (c *Config) KnownLab(labID string) bool {
	for _, lab := range c.Labs {
		if lab.ID == labID {
			return true
		}
	}
	return false
}
