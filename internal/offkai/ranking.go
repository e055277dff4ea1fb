package offkai

import "sort"

// DrinkCount is one row of a drink-popularity tally.
type DrinkCount struct {
	Drink string
	Count int
}

// DrinkRanking tallies drink requests across both the confirmed list
// and the waitlist of a bucket, sorted by descending count then by
// name for determinism. Recovered from original_source's ranking
// helper (spec_full §8.3) — pure and read-only, used by organizers to
// plan drink quantities.
func DrinkRanking(b EventBucket) []DrinkCount {
	counts := make(map[string]int)
	tally := func(regs []*Registration) {
		for _, r := range regs {
			for _, d := range r.Drinks {
				counts[d]++
			}
		}
	}
	tally(b.Confirmed)
	tally(b.Waitlist)

	out := make([]DrinkCount, 0, len(counts))
	for d, c := range counts {
		out = append(out, DrinkCount{Drink: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Drink < out[j].Drink
	})
	return out
}
