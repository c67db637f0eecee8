// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/danielhkuo/quickly-count/ballots"

// Condorcet returns the candidate who pairwise-beats every other candidate,
// or an empty slice when there is none
func Condorcet(bs RankedBallots, candidates []ballots.Candidate) ([]ballots.Candidate, error) {
	collected, candidates, err := prepareRanked(bs, candidates)
	if err != nil {
		return nil, err
	}

	d := pairwise(collected, candidates)
	for i := range candidates {
		if beatsAll(d, i) {
			return []ballots.Candidate{candidates[i]}, nil
		}
	}
	return []ballots.Candidate{}, nil
}

func beatsAll(d [][]int, i int) bool {
	for j := range d {
		if j != i && d[i][j] <= d[j][i] {
			return false
		}
	}
	return true
}
