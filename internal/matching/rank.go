package matching

import "sort"

// scored is a candidate that has been through factor scoring and aggregation
type scored struct {
	candidate Candidate
	factors   FactorVector
	score     int
}

// filterByThreshold drops every entry scoring below minimum
func filterByThreshold(in []scored, minimum int) []scored {
	out := make([]scored, 0, len(in))
	for _, s := range in {
		if s.score >= minimum {
			out = append(out, s)
		}
	}
	return out
}

// rank sorts by score descending, then skill match descending, then
// candidate ID ascending, and keeps the first maxResults entries
func rank(in []scored, maxResults int) []scored {
	sort.SliceStable(in, func(i, j int) bool {
		a, b := in[i], in[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.factors.SkillMatch != b.factors.SkillMatch {
			return a.factors.SkillMatch > b.factors.SkillMatch
		}
		return a.candidate.ID < b.candidate.ID
	})

	if maxResults >= 0 && len(in) > maxResults {
		in = in[:maxResults]
	}
	return in
}
