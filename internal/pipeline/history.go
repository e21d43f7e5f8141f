package pipeline

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pranavmehta-git/fault-line/internal/config"
	"github.com/pranavmehta-git/fault-line/internal/event"
	"github.com/pranavmehta-git/fault-line/internal/metrics"
	"github.com/pranavmehta-git/fault-line/internal/scoring"
)

// HistoricalScores is the persisted monthly series artifact.
type HistoricalScores struct {
	Version         string     `json:"version"`
	GeneratedAt     string     `json:"generated_at"`
	DecayWindowDays int        `json:"decay_window_days"`
	Snapshots       []Snapshot `json:"snapshots"`
}

// Snapshot is the complete set of per-lab scores as of one month-end
// date. A nil score marks a lab not yet founded at that date and
// serializes as an explicit null.
type Snapshot struct {
	Date   string                       `json:"date"`
	Scores map[string]*scoring.LabScore `json:"scores"`
}

// trendLookback is how many preceding snapshots feed the historical
// trend baseline.
const trendLookback = 3

// BuildHistory computes one snapshot per calendar month-end from the
// earliest event through max(latest event, now), then derives trends
// and ranks across the finished series. Given the same events, catalog,
// and now, the output is reproducible byte-for-byte except for
// GeneratedAt.
func BuildHistory(store *event.Store, cat scoring.Catalog, cfg *config.Config, now time.Time) *HistoricalScores {
	start := time.Now()
	out := &HistoricalScores{
		Version:         cfg.ScoringVersion,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
		DecayWindowDays: cfg.DecayWindowDays,
		Snapshots:       []Snapshot{},
	}

	first, last, ok := store.Bounds()
	if !ok {
		log.Warn().Msg("No events loaded, historical series is empty")
		return out
	}
	end := truncateToDay(now)
	if last.After(end) {
		end = last
	}

	dates := monthEnds(first, end)
	log.Info().Int("snapshots", len(dates)).
		Str("from", first.Format(event.DateLayout)).
		Str("to", end.Format(event.DateLayout)).
		Msg("Computing monthly snapshots")

	for _, date := range dates {
		scores := make(map[string]*scoring.LabScore, len(cfg.Labs))
		for _, labID := range cfg.LabIDs() {
			if !cfg.Founded(labID, date) {
				scores[labID] = nil
				continue
			}
			evs := store.InWindow(date, labID, cfg.DecayWindowDays)
			scores[labID] = scoring.ScoreLab(evs, cat)
		}
		out.Snapshots = append(out.Snapshots, Snapshot{
			Date:   date.Format(event.DateLayout),
			Scores: scores,
		})
	}

	applyTrends(out.Snapshots, cfg.LabIDs())
	for _, snap := range out.Snapshots {
		scoring.Rank(snap.Scores)
	}

	m := metrics.Get()
	m.SnapshotsBuilt.Add(float64(len(out.Snapshots)))
	m.RunDuration.WithLabelValues("history").Observe(time.Since(start).Seconds())

	log.Info().Int("snapshots", len(out.Snapshots)).Msg("Historical series complete")
	return out
}

// applyTrends classifies each lab's momentum against the average of its
// up-to-3 preceding defined totals. The first snapshots of the series
// have no meaningful baseline and read as stable.
func applyTrends(snapshots []Snapshot, labIDs []string) {
	for i, snap := range snapshots {
		for _, labID := range labIDs {
			ls := snap.Scores[labID]
			if ls == nil {
				continue
			}
			if i < trendLookback {
				ls.Trend = scoring.TrendStable
				continue
			}
			var sum, n int
			for j := i - trendLookback; j < i; j++ {
				if prev := snapshots[j].Scores[labID]; prev != nil {
					sum += prev.TotalScore
					n++
				}
			}
			if n == 0 {
				ls.Trend = scoring.TrendStable
				continue
			}
			baseline := float64(sum) / float64(n)
			ls.Trend = scoring.TrendAgainstBaseline(ls.TotalScore, baseline)
		}
	}
}

// monthEnds lists every month-end day between start and end inclusive.
// A final partial month contributes its month-end only when that day
// still falls inside the range.
func monthEnds(start, end time.Time) []time.Time {
	var out []time.Time
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		me := cur.AddDate(0, 1, -1)
		if !me.After(end) {
			out = append(out, me)
		}
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
