package scoring

// trendBand is the dead zone around the historical baseline inside
// which movement reads as stable.
const trendBand = 0.5

// TrendAgainstBaseline classifies momentum against a trailing-average
// baseline from preceding snapshots.
func TrendAgainstBaseline(current int, baseline float64) Trend {
	switch {
	case float64(current) > baseline+trendBand:
		return TrendWorsening
	case float64(current) < baseline-trendBand:
		return TrendImproving
	default:
		return TrendStable
	}
}

// TrendAgainstPrevious classifies momentum against a single previously
// persisted total, used when no trailing series exists.
func TrendAgainstPrevious(current, previous int) Trend {
	switch {
	case current < previous:
		return TrendImproving
	case current > previous:
		return TrendWorsening
	default:
		return TrendStable
	}
}
