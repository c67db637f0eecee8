// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"iter"
	"slices"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/normalize"
)

var (
	ErrEmptyBallots   = errors.New("no ballots or candidates to count")
	ErrTooManySubsets = errors.New("too many candidate subsets for Schulze STV")
)

// RankedBallots is the weighted ranking-map view consumed by the Condorcet
// and Schulze rules
type RankedBallots = iter.Seq[normalize.Weighted[normalize.Ranking]]

// OrderedBallots is the weighted preference-list view consumed by STV
type OrderedBallots = iter.Seq[normalize.Weighted[[]ballots.Candidate]]

// prefers reports whether the ranking places a strictly above b
func prefers(r normalize.Ranking, a, b ballots.Candidate) bool {
	ra, rankedA := r[a]
	if !rankedA {
		return false
	}
	rb, rankedB := r[b]
	if !rankedB {
		return true
	}
	return ra < rb
}

// canonical returns the candidates deduplicated and sorted by identifier
func canonical(candidates []ballots.Candidate) []ballots.Candidate {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

// collectRanked materializes the weighted ballots, dropping non-positive counts
func collectRanked(bs RankedBallots) []normalize.Weighted[normalize.Ranking] {
	var collected []normalize.Weighted[normalize.Ranking]
	for b := range bs {
		if b.Count > 0 {
			collected = append(collected, b)
		}
	}
	return collected
}

// pairwise returns d where d[i][j] is the weight of ballots preferring
// candidates[i] to candidates[j]
func pairwise(bs []normalize.Weighted[normalize.Ranking], candidates []ballots.Candidate) [][]int {
	n := len(candidates)
	d := make([][]int, n)
	for i := range d {
		d[i] = make([]int, n)
	}

	for _, b := range bs {
		for i, a := range candidates {
			for j, c := range candidates {
				if i != j && prefers(b.Ballot, a, c) {
					d[i][j] += b.Count
				}
			}
		}
	}
	return d
}

// prepareRanked is the shared entry check for rules over ranking maps
func prepareRanked(bs RankedBallots, candidates []ballots.Candidate) ([]normalize.Weighted[normalize.Ranking], []ballots.Candidate, error) {
	collected := collectRanked(bs)
	candidates = canonical(candidates)
	if len(collected) == 0 || len(candidates) == 0 {
		return nil, nil, ErrEmptyBallots
	}
	return collected, candidates, nil
}

// pick maps candidate indexes back to identifiers
func pick(candidates []ballots.Candidate, indexes []int) []ballots.Candidate {
	picked := make([]ballots.Candidate, len(indexes))
	for i, idx := range indexes {
		picked[i] = candidates[idx]
	}
	return picked
}

// limit clamps a requested result size to [1, n], treating n as the default
func limit(requested, n int) int {
	if requested <= 0 || requested > n {
		return n
	}
	return requested
}
