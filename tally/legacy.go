// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"cmp"
	"slices"

	"github.com/danielhkuo/quickly-count/ballots"
)

// LegacySchulze is the original Schulze count. It reads raw ballots directly,
// computes strongest paths on integer vote counts, and orders candidates by
// how many others they defeat. It is kept as the authoritative result while
// Schulze is canaried against it.
func LegacySchulze(c ballots.Collection, winnerThreshold int) ([]ballots.Candidate, error) {
	candidates := c.Candidates()
	if len(c) == 0 || len(candidates) == 0 {
		return nil, ErrEmptyBallots
	}

	preference := rankVotes(c, candidates)
	paths := legacyStrongestPaths(preference)

	type standing struct {
		candidate ballots.Candidate
		wins      int
	}
	standings := make([]standing, len(candidates))
	for i, candidate := range candidates {
		standings[i].candidate = candidate
		for j := range candidates {
			if i != j && paths[i][j] > paths[j][i] {
				standings[i].wins++
			}
		}
	}

	slices.SortStableFunc(standings, func(a, b standing) int {
		if a.wins != b.wins {
			return cmp.Compare(b.wins, a.wins)
		}
		return cmp.Compare(a.candidate, b.candidate)
	})

	ordered := make([]ballots.Candidate, 0, len(standings))
	for _, s := range standings[:limit(winnerThreshold, len(standings))] {
		ordered = append(ordered, s.candidate)
	}
	return ordered, nil
}

// rankVotes counts, for every pair, the ballots ranking the first candidate
// strictly above the second. Unranked candidates sit below every ranked one.
func rankVotes(c ballots.Collection, candidates []ballots.Candidate) [][]int {
	index := make(map[ballots.Candidate]int, len(candidates))
	for i, candidate := range candidates {
		index[candidate] = i
	}

	n := len(candidates)
	preference := make([][]int, n)
	for i := range preference {
		preference[i] = make([]int, n)
	}

	unranked := make([]bool, n)
	for _, ballot := range c {
		sorted := ballot.Sorted()
		for i := range unranked {
			unranked[i] = true
		}
		for _, entry := range sorted {
			unranked[index[entry.Candidate]] = false
		}

		for x, better := range sorted {
			bi := index[better.Candidate]
			for _, worse := range sorted[x+1:] {
				if worse.Rank > better.Rank {
					preference[bi][index[worse.Candidate]]++
				}
			}
			for wi, missing := range unranked {
				if missing {
					preference[bi][wi]++
				}
			}
		}
	}
	return preference
}

func legacyStrongestPaths(preference [][]int) [][]int {
	n := len(preference)
	paths := make([][]int, n)
	for i := range n {
		paths[i] = make([]int, n)
		for j := range n {
			if i != j && preference[i][j] > preference[j][i] {
				paths[i][j] = preference[i][j]
			}
		}
	}

	for i := range n {
		for j := range n {
			if i == j {
				continue
			}
			for k := range n {
				if i != k && j != k {
					paths[j][k] = max(paths[j][k], min(paths[j][i], paths[i][k]))
				}
			}
		}
	}
	return paths
}
