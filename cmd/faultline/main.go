package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pranavmehta-git/fault-line/internal/catalog"
	"github.com/pranavmehta-git/fault-line/internal/config"
	"github.com/pranavmehta-git/fault-line/internal/event"
	fio "github.com/pranavmehta-git/fault-line/internal/io"
	"github.com/pranavmehta-git/fault-line/internal/metrics"
	"github.com/pranavmehta-git/fault-line/internal/pipeline"
)

const (
	appName = "faultline"
	version = "v1.0.0"
)

var (
	flagConfig string
	flagAsOf   string
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	log.Logger = log.With().Str("run_id", uuid.NewString()).Logger()

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Fault Line fragility scoring engine",
		Version: version,
		Long: `Fault Line tracks a time-varying fragility score for a fixed set of
AI labs by aggregating classified events into decay-windowed dimension
and total scores.

The engine is batch and idempotent per run: it reads events.json and
checklist.json, recomputes scores, and atomically replaces the output
artifacts. Flags are automation shims; the default invocation reads and
writes the paths in the configuration.`,
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to scoring config YAML (default: built-in configuration)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Reference date YYYY-MM-DD (default: today)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "score",
			Short: "Recompute the historical series and the current snapshot",
			RunE:  runScore,
		},
		&cobra.Command{
			Use:   "history",
			Short: "Rebuild the monthly historical score series",
			RunE:  runHistory,
		},
		&cobra.Command{
			Use:   "current",
			Short: "Recompute the current snapshot with trend against the last run",
			RunE:  runCurrent,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func runScore(cmd *cobra.Command, args []string) error {
	if err := runHistory(cmd, args); err != nil {
		return err
	}
	return runCurrent(cmd, args)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, store, cat, now, err := setup()
	if err != nil {
		metrics.Get().RunsTotal.WithLabelValues("history", "error").Inc()
		return err
	}

	hist := pipeline.BuildHistory(store, cat, cfg, now)
	if err := fio.WriteJSONAtomic(cfg.Paths.Historical, hist); err != nil {
		metrics.Get().RunsTotal.WithLabelValues("history", "error").Inc()
		return err
	}

	metrics.Get().RunsTotal.WithLabelValues("history", "success").Inc()
	log.Info().Str("path", cfg.Paths.Historical).Msg("Historical scores written")
	return nil
}

func runCurrent(cmd *cobra.Command, args []string) error {
	cfg, store, cat, now, err := setup()
	if err != nil {
		metrics.Get().RunsTotal.WithLabelValues("current", "error").Inc()
		return err
	}

	prev, err := pipeline.LoadPreviousScores(cfg.Paths.Current)
	if err != nil {
		log.Warn().Err(err).Msg("Previous scores unreadable, trends reset to stable")
	}

	cur := pipeline.UpdateCurrent(store, cat, cfg, prev, now)
	if err := fio.WriteJSONAtomic(cfg.Paths.Current, cur); err != nil {
		metrics.Get().RunsTotal.WithLabelValues("current", "error").Inc()
		return err
	}

	metrics.Get().RunsTotal.WithLabelValues("current", "success").Inc()
	log.Info().Str("path", cfg.Paths.Current).Int("labs", len(cur.Scores)).Msg("Current scores written")
	return nil
}

// setup loads config and both inputs. Missing inputs abort the run
// before anything is written, so a bad deploy never replaces good
// artifacts with partial ones.
func setup() (*config.Config, *event.Store, *catalog.Catalog, time.Time, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}

	now := time.Now().UTC()
	if flagAsOf != "" {
		now, err = time.ParseInLocation(event.DateLayout, flagAsOf, time.UTC)
		if err != nil {
			return nil, nil, nil, time.Time{}, fmt.Errorf("invalid --as-of date %q: %w", flagAsOf, err)
		}
	}

	store, err := event.LoadStore(cfg.Paths.Events)
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}
	cat, err := catalog.Load(cfg.Paths.Checklist)
	if err != nil {
		return nil, nil, nil, time.Time{}, err
	}

	log.Info().Int("events", store.Len()).Int("checklist_items", cat.Len()).
		Int("decay_window_days", cfg.DecayWindowDays).
		Str("as_of", now.Format(event.DateLayout)).
		Msg("Inputs loaded")
	return cfg, store, cat, now, nil
}

func resolveConfig() (*config.Config, error) {
	if flagConfig == "" {
		return config.Default(), nil
	}
	return config.Load(flagConfig)
}
