// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/danielhkuo/quickly-count/ballots"

// Schulze ranks candidates by the strongest paths of pairwise victories and
// returns the first winnerThreshold of them. A threshold of zero or one larger
// than the candidate set returns the full ranking.
func Schulze(bs RankedBallots, candidates []ballots.Candidate, winnerThreshold int) ([]ballots.Candidate, error) {
	collected, candidates, err := prepareRanked(bs, candidates)
	if err != nil {
		return nil, err
	}

	d := pairwise(collected, candidates)
	links := make([][]ratio, len(d))
	for i := range d {
		links[i] = make([]ratio, len(d))
		for j := range d {
			links[i][j] = whole(d[i][j])
		}
	}

	p := strongestPaths(links)
	order := rankLevels(len(candidates), func(i, j int) bool {
		return p[i][j].cmp(p[j][i]) > 0
	})

	return pick(candidates, order[:limit(winnerThreshold, len(order))]), nil
}

// strongestPaths solves the widest-path problem over the links where d[i][j]
// is greater than d[j][i]. The strength of a path is its weakest link.
func strongestPaths(d [][]ratio) [][]ratio {
	n := len(d)
	p := make([][]ratio, n)
	for i := range n {
		p[i] = make([]ratio, n)
		for j := range n {
			if i != j && d[i][j].cmp(d[j][i]) > 0 {
				p[i][j] = d[i][j]
			}
		}
	}

	// With the intermediate node in the outer loop a single sweep reaches the
	// fixed point
	for k := range n {
		for i := range n {
			if i == k {
				continue
			}
			for j := range n {
				if j == i || j == k {
					continue
				}
				p[i][j] = maxRatio(p[i][j], minRatio(p[i][k], p[k][j]))
			}
		}
	}
	return p
}

// rankLevels orders 0..n-1 by repeatedly taking every remaining index that no
// other remaining index beats. Indexes within a level keep ascending order.
func rankLevels(n int, beats func(i, j int) bool) []int {
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	order := make([]int, 0, n)
	for len(remaining) > 0 {
		var level, rest []int
		for _, i := range remaining {
			beaten := false
			for _, j := range remaining {
				if j != i && beats(j, i) {
					beaten = true
					break
				}
			}
			if beaten {
				rest = append(rest, i)
			} else {
				level = append(level, i)
			}
		}

		// Only reachable with a cyclic beat relation
		if len(level) == 0 {
			level, rest = remaining, nil
		}

		order = append(order, level...)
		remaining = rest
	}
	return order
}
