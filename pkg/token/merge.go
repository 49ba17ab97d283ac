package token

import "strings"

// MergeCandidates reduces lookup answers from multiple sources to a
// single record. Candidates must be ordered by source priority, highest
// first. Addresses are compared case-insensitively; the group with the
// most agreeing sources wins, ties going to the group seen first. A
// lone candidate wins by default but stays unverified.
func MergeCandidates(candidates []Record) (*Record, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	type group struct {
		first int // index of the highest-priority member
		votes []int
	}
	groups := make(map[string]*group)
	order := make([]string, 0, len(candidates))

	for i, c := range candidates {
		key := strings.ToLower(c.Address)
		g, ok := groups[key]
		if !ok {
			g = &group{first: i}
			groups[key] = g
			order = append(order, key)
		}
		g.votes = append(g.votes, i)
	}

	best := groups[order[0]]
	for _, key := range order[1:] {
		if g := groups[key]; len(g.votes) > len(best.votes) {
			best = g
		}
	}

	merged := candidates[best.first]
	// Backfill details the winning source left blank from the other
	// members of the agreeing group.
	for _, i := range best.votes[1:] {
		c := candidates[i]
		if merged.Name == "" {
			merged.Name = c.Name
		}
		if merged.Decimals == DecimalsUnknown && c.Decimals != DecimalsUnknown {
			merged.Decimals = c.Decimals
		}
	}
	merged.Verified = len(best.votes) >= 2

	return &merged, true
}
