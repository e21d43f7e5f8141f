package scoring

// Dimension is one of the five fragility categories every event and
// checklist item is filed under.
type Dimension string

const (
	DimComputeChips Dimension = "compute_chips"
	DimCloud        Dimension = "cloud"
	DimPolicy       Dimension = "policy"
	DimDemand       Dimension = "demand"
	DimResilience   Dimension = "resilience"
)

const (
	// DimensionMax caps any single dimension's contribution so no one
	// category can dominate the 0-10 composite.
	DimensionMax = 2

	// TotalMax bounds the composite fragility score.
	TotalMax = 10
)

// Dimensions returns the five tracked dimensions in canonical order.
func Dimensions() []Dimension {
	return []Dimension{DimComputeChips, DimCloud, DimPolicy, DimDemand, DimResilience}
}

// ValidDimension reports whether d names a tracked dimension.
func ValidDimension(d Dimension) bool {
	switch d {
	case DimComputeChips, DimCloud, DimPolicy, DimDemand, DimResilience:
		return true
	}
	return false
}

// Trend classifies score momentum. Lower fragility is better, so
// "improving" always means the score went down.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendStable    Trend = "stable"
)

// ChecklistItem is one weighted condition from the checklist catalog.
// The sign of Points marks fragility-increasing vs fragility-decreasing
// items; scoring uses the magnitude.
type ChecklistItem struct {
	ID        string
	Dimension Dimension
	Points    int
}

// Catalog resolves checklist item identifiers. Implemented by
// internal/catalog; scorers only need lookup.
type Catalog interface {
	Item(id string) (ChecklistItem, bool)
}

// DimensionScore is the capped score for one dimension plus the
// checklist items that produced it.
type DimensionScore struct {
	Score          int      `json:"score"`
	Max            int      `json:"max"`
	ItemsTriggered []string `json:"items_triggered"`
}

// LabScore is a single lab's computed fragility state at one reference
// date. Trend and Rank are filled in by the drivers after all labs for
// the snapshot are scored.
type LabScore struct {
	TotalScore    int                           `json:"total_score"`
	Breakdown     map[Dimension]*DimensionScore `json:"breakdown"`
	EventsCount   int                           `json:"events_count"`
	LastEventDate *string                       `json:"last_event_date"`
	Trend         Trend                         `json:"trend"`
	Rank          int                           `json:"rank"`
}
