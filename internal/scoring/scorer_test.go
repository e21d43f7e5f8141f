package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranavmehta-git/fault-line/internal/event"
)

type fakeCatalog map[string]ChecklistItem

func (f fakeCatalog) Item(id string) (ChecklistItem, bool) {
	it, ok := f[id]
	return it, ok
}

func testCatalog() fakeCatalog {
	return fakeCatalog{
		"A1": {ID: "A1", Dimension: DimComputeChips, Points: 1},
		"A2": {ID: "A2", Dimension: DimComputeChips, Points: 1},
		"A3": {ID: "A3", Dimension: DimComputeChips, Points: 2},
		"B1": {ID: "B1", Dimension: DimCloud, Points: 1},
		"E1": {ID: "E1", Dimension: DimResilience, Points: -1},
		"E2": {ID: "E2", Dimension: DimResilience, Points: -1},
	}
}

func ev(dim Dimension, date string, items ...string) event.Event {
	return event.Event{
		ID:                     "ev-" + date,
		Date:                   date,
		Lab:                    "openai",
		Dimension:              string(dim),
		ChecklistItemsAffected: items,
	}
}

func TestScoreDimension_SumsAbsolutePoints(t *testing.T) {
	events := []event.Event{
		ev(DimResilience, "2024-01-10", "E1"),
		ev(DimResilience, "2024-02-10", "E2"),
	}

	ds := ScoreDimension(events, DimResilience, testCatalog())
	assert.Equal(t, 2, ds.Score, "negative points count by magnitude")
	assert.Equal(t, DimensionMax, ds.Max)
	assert.Equal(t, []string{"E1", "E2"}, ds.ItemsTriggered)
}

func TestScoreDimension_CapsAtTwo(t *testing.T) {
	events := []event.Event{
		ev(DimComputeChips, "2024-01-10", "A1", "A2"),
		ev(DimComputeChips, "2024-02-10", "A3"),
	}

	ds := ScoreDimension(events, DimComputeChips, testCatalog())
	assert.Equal(t, DimensionMax, ds.Score, "4 raw points cap at 2")
	assert.Equal(t, []string{"A1", "A2", "A3"}, ds.ItemsTriggered)
}

func TestScoreDimension_DeduplicatesAcrossEvents(t *testing.T) {
	events := []event.Event{
		ev(DimComputeChips, "2024-01-10", "A1"),
		ev(DimComputeChips, "2024-02-10", "A1"),
	}

	ds := ScoreDimension(events, DimComputeChips, testCatalog())
	assert.Equal(t, 1, ds.Score, "an item triggered twice counts once")
	assert.Equal(t, []string{"A1"}, ds.ItemsTriggered)
}

func TestScoreDimension_IgnoresOtherDimensions(t *testing.T) {
	events := []event.Event{
		// Event filed under cloud referencing a compute item: counts in
		// neither dimension.
		ev(DimCloud, "2024-01-10", "A1"),
	}

	cat := testCatalog()
	assert.Equal(t, 0, ScoreDimension(events, DimComputeChips, cat).Score)
	assert.Equal(t, 0, ScoreDimension(events, DimCloud, cat).Score)
}

func TestScoreDimension_IgnoresUnknownItems(t *testing.T) {
	events := []event.Event{
		ev(DimComputeChips, "2024-01-10", "ZZ9", "A1"),
	}

	ds := ScoreDimension(events, DimComputeChips, testCatalog())
	assert.Equal(t, 1, ds.Score)
	assert.Equal(t, []string{"A1"}, ds.ItemsTriggered)
}

func TestScoreDimension_NoEvents(t *testing.T) {
	ds := ScoreDimension(nil, DimComputeChips, testCatalog())
	assert.Equal(t, 0, ds.Score)
	assert.Empty(t, ds.ItemsTriggered)
}

func TestAggregateTotal_ResilienceSubtracts(t *testing.T) {
	breakdown := map[Dimension]*DimensionScore{
		DimComputeChips: {Score: 2},
		DimCloud:        {Score: 2},
		DimPolicy:       {Score: 1},
		DimDemand:       {Score: 1},
		DimResilience:   {Score: 2},
	}
	assert.Equal(t, 4, AggregateTotal(breakdown))
}

func TestAggregateTotal_ClampsAtZero(t *testing.T) {
	breakdown := map[Dimension]*DimensionScore{
		DimComputeChips: {Score: 0},
		DimCloud:        {Score: 0},
		DimPolicy:       {Score: 0},
		DimDemand:       {Score: 0},
		DimResilience:   {Score: 2},
	}
	assert.Equal(t, 0, AggregateTotal(breakdown))
}

func TestScoreLab_FullBreakdown(t *testing.T) {
	events := []event.Event{
		ev(DimComputeChips, "2024-01-10", "A1"),
		ev(DimCloud, "2024-01-15", "B1"),
		ev(DimResilience, "2024-01-20", "E1"),
	}

	ls := ScoreLab(events, testCatalog())
	require.Len(t, ls.Breakdown, 5, "exactly the five tracked dimensions")
	assert.Equal(t, 1, ls.Breakdown[DimComputeChips].Score)
	assert.Equal(t, 1, ls.Breakdown[DimCloud].Score)
	assert.Equal(t, 0, ls.Breakdown[DimPolicy].Score)
	assert.Equal(t, 0, ls.Breakdown[DimDemand].Score)
	assert.Equal(t, 1, ls.Breakdown[DimResilience].Score)
	assert.Equal(t, 1, ls.TotalScore)
	assert.Equal(t, 3, ls.EventsCount)
	require.NotNil(t, ls.LastEventDate)
	assert.Equal(t, "2024-01-20", *ls.LastEventDate)
	assert.Equal(t, TrendStable, ls.Trend)
	assert.GreaterOrEqual(t, ls.TotalScore, 0)
	assert.LessOrEqual(t, ls.TotalScore, TotalMax)
}

func TestScoreLab_NoEvents(t *testing.T) {
	ls := ScoreLab(nil, testCatalog())
	assert.Equal(t, 0, ls.TotalScore)
	assert.Equal(t, 0, ls.EventsCount)
	assert.Nil(t, ls.LastEventDate)
	for _, dim := range Dimensions() {
		assert.Equal(t, 0, ls.Breakdown[dim].Score)
		assert.Empty(t, ls.Breakdown[dim].ItemsTriggered)
	}
}
