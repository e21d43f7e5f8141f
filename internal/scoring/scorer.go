package scoring

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pranavmehta-git/fault-line/internal/event"
)

// ScoreDimension reduces a lab's in-window events to one dimension's
// capped score. Only events filed under dim are considered, and only
// the referenced checklist items that belong to dim count toward it; an
// item triggered by several events counts once. References that do not
// resolve in the catalog are a data-quality defect upstream, surfaced
// as a warning and ignored.
func ScoreDimension(events []event.Event, dim Dimension, cat Catalog) *DimensionScore {
	triggered := make(map[string]int)
	for _, ev := range events {
		if Dimension(ev.Dimension) != dim {
			continue
		}
		for _, id := range ev.ChecklistItemsAffected {
			item, ok := cat.Item(id)
			if !ok {
				log.Warn().Str("event_id", ev.ID).Str("item_id", id).
					Msg("Event references unknown checklist item")
				continue
			}
			if item.Dimension != dim {
				continue
			}
			triggered[id] = abs(item.Points)
		}
	}

	score := 0
	ids := make([]string, 0, len(triggered))
	for id, pts := range triggered {
		score += pts
		ids = append(ids, id)
	}
	if score > DimensionMax {
		score = DimensionMax
	}
	sort.Strings(ids)

	return &DimensionScore{Score: score, Max: DimensionMax, ItemsTriggered: ids}
}

// AggregateTotal folds the five dimension scores into the composite.
// Resilience is subtractive: resilience-building actions reduce
// fragility. The clamp absorbs residual drift from the per-dimension
// caps.
func AggregateTotal(breakdown map[Dimension]*DimensionScore) int {
	total := breakdown[DimComputeChips].Score +
		breakdown[DimCloud].Score +
		breakdown[DimPolicy].Score +
		breakdown[DimDemand].Score -
		breakdown[DimResilience].Score
	if total < 0 {
		total = 0
	}
	if total > TotalMax {
		total = TotalMax
	}
	return total
}

// ScoreLab computes a lab's full score from its in-window events. The
// same function backs both the historical series and the current
// recompute, so the two paths cannot diverge on scoring rules. Trend
// and Rank are left for the driver.
func ScoreLab(events []event.Event, cat Catalog) *LabScore {
	breakdown := make(map[Dimension]*DimensionScore, len(Dimensions()))
	for _, dim := range Dimensions() {
		breakdown[dim] = ScoreDimension(events, dim, cat)
	}

	var lastDate *string
	if len(events) > 0 {
		// Store order is date ascending.
		d := events[len(events)-1].Date
		lastDate = &d
	}

	return &LabScore{
		TotalScore:    AggregateTotal(breakdown),
		Breakdown:     breakdown,
		EventsCount:   len(events),
		LastEventDate: lastDate,
		Trend:         TrendStable,
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
