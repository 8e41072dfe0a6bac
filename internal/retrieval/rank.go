package retrieval

import (
	"sort"

	"github.com/latticehq/lattice/internal/model"
)

// rankDecisions orders by confidence descending, then timestamp descending.
func rankDecisions(decisions []model.Decision) []model.Decision {
	sort.SliceStable(decisions, func(i, j int) bool {
		if decisions[i].Confidence != decisions[j].Confidence {
			return decisions[i].Confidence > decisions[j].Confidence
		}
		return decisions[i].Timestamp.After(decisions[j].Timestamp)
	})
	return decisions
}

// rankCorrections orders by priority rank descending, then recency.
func rankCorrections(corrections []model.Correction) []model.Correction {
	sort.SliceStable(corrections, func(i, j int) bool {
		ri, rj := corrections[i].Priority.Rank(), corrections[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return corrections[i].AddedAt.After(corrections[j].AddedAt)
	})
	return corrections
}

// rankConventions orders by confidence descending, then frequency descending.
func rankConventions(conventions []model.Convention) []model.Convention {
	sort.SliceStable(conventions, func(i, j int) bool {
		if conventions[i].Confidence != conventions[j].Confidence {
			return conventions[i].Confidence > conventions[j].Confidence
		}
		return conventions[i].Frequency > conventions[j].Frequency
	})
	return conventions
}
