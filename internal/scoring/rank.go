package scoring

import "sort"

// RankedLabIDs orders labs with a defined score by total score
// descending, breaking ties by lab identifier ascending so the order is
// reproducible regardless of map iteration.
func RankedLabIDs(scores map[string]*LabScore) []string {
	ids := make([]string, 0, len(scores))
	for id, ls := range scores {
		if ls == nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		si, sj := scores[ids[i]], scores[ids[j]]
		if si.TotalScore != sj.TotalScore {
			return si.TotalScore > sj.TotalScore
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Rank assigns dense ranks 1..K across the labs with a defined score.
// Labs without a score (not yet founded at the snapshot date) carry no
// rank.
func Rank(scores map[string]*LabScore) {
	for i, id := range RankedLabIDs(scores) {
		scores[id].Rank = i + 1
	}
}
