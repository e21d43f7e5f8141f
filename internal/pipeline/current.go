package pipeline

import (
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pranavmehta-git/fault-line/internal/config"
	"github.com/pranavmehta-git/fault-line/internal/event"
	fio "github.com/pranavmehta-git/fault-line/internal/io"
	"github.com/pranavmehta-git/fault-line/internal/metrics"
	"github.com/pranavmehta-git/fault-line/internal/scoring"
)

// CurrentScores is the persisted "now" snapshot artifact, sorted by
// rank ascending.
type CurrentScores struct {
	LastUpdated    string     `json:"last_updated"`
	ScoringVersion string     `json:"scoring_version"`
	Scores         []LabEntry `json:"scores"`
}

// LabEntry is one lab's row in the current snapshot.
type LabEntry struct {
	LabID string `json:"lab_id"`
	scoring.LabScore
}

// LoadPreviousScores reads the previously persisted current snapshot,
// which supplies the trend baseline. A missing file is a first run, not
// an error.
func LoadPreviousScores(path string) (*CurrentScores, error) {
	var prev CurrentScores
	if err := fio.ReadJSON(path, &prev); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &prev, nil
}

// UpdateCurrent recomputes every configured lab's score as of now,
// deriving trend from the previously persisted snapshot. It shares
// scoring.ScoreLab with BuildHistory, so for the same reference date
// and events the two paths agree on every score; only the trend
// baseline source differs. Labs not yet founded are omitted.
func UpdateCurrent(store *event.Store, cat scoring.Catalog, cfg *config.Config, prev *CurrentScores, now time.Time) *CurrentScores {
	start := time.Now()
	ref := truncateToDay(now)

	prevTotals := make(map[string]int)
	if prev != nil {
		for _, entry := range prev.Scores {
			prevTotals[entry.LabID] = entry.TotalScore
		}
	}

	m := metrics.Get()
	scores := make(map[string]*scoring.LabScore, len(cfg.Labs))
	for _, labID := range cfg.LabIDs() {
		if !cfg.Founded(labID, ref) {
			log.Info().Str("lab", labID).Msg("Lab not yet founded, skipping")
			continue
		}
		evs := store.InWindow(ref, labID, cfg.DecayWindowDays)
		ls := scoring.ScoreLab(evs, cat)
		if prevTotal, ok := prevTotals[labID]; ok {
			ls.Trend = scoring.TrendAgainstPrevious(ls.TotalScore, prevTotal)
		}
		scores[labID] = ls

		m.EventsScored.Add(float64(len(evs)))
		m.LabTotalScore.WithLabelValues(labID).Set(float64(ls.TotalScore))

		log.Info().Str("lab", labID).
			Int("score", ls.TotalScore).
			Str("trend", string(ls.Trend)).
			Int("events_in_window", len(evs)).
			Msg("Lab scored")
	}

	scoring.Rank(scores)

	out := &CurrentScores{
		LastUpdated:    time.Now().UTC().Format(time.RFC3339),
		ScoringVersion: cfg.ScoringVersion,
		Scores:         make([]LabEntry, 0, len(scores)),
	}
	for _, labID := range scoring.RankedLabIDs(scores) {
		out.Scores = append(out.Scores, LabEntry{LabID: labID, LabScore: *scores[labID]})
	}

	m.RunDuration.WithLabelValues("current").Observe(time.Since(start).Seconds())
	return out
}
