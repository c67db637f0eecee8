// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"math/bits"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/normalize"
)

// MaxSchulzeSTVSubsets bounds the number of same-size candidate subsets
// SchulzeSTV will compare
const MaxSchulzeSTVSubsets = 1000

// MaxSchulzeSTVWork bounds the support computations SchulzeSTV performs: each
// link between subsets examines every non-empty group of the subset's members
const MaxSchulzeSTVWork = 1 << 22

// SchulzeSTV elects requiredWinners candidates proportionally. Every subset of
// that size is a node; subsets differing in one member are linked, and the
// subset that is not beaten by any other through strongest paths wins.
// Winners are returned sorted by identifier.
//
// The link from S to T, where T swaps a in S for b, is the largest support
// every member of S can be guaranteed when each voter splits their weight
// among the members of S they prefer to b.
func SchulzeSTV(bs RankedBallots, candidates []ballots.Candidate, requiredWinners int) ([]ballots.Candidate, error) {
	collected, candidates, err := prepareRanked(bs, candidates)
	if err != nil {
		return nil, err
	}

	n := len(candidates)
	seats := requiredWinners
	if seats <= 0 {
		seats = 1
	}
	if seats >= n {
		return candidates, nil
	}

	if n > 64 || binomial(n, seats) > MaxSchulzeSTVSubsets || schulzeSTVWork(n, seats) > MaxSchulzeSTVWork {
		return nil, fmt.Errorf("%d candidates, %d seats: %w", n, seats, ErrTooManySubsets)
	}

	subsets := combinations(n, seats)
	position := make(map[uint64]int, len(subsets))
	for i, s := range subsets {
		position[s] = i
	}

	links := make([][]ratio, len(subsets))
	for i := range links {
		links[i] = make([]ratio, len(subsets))
	}
	for i, s := range subsets {
		for a := range n {
			if s&(1<<a) == 0 {
				continue
			}
			for b := range n {
				if s&(1<<b) != 0 {
					continue
				}
				t := s&^(1<<a) | 1<<b
				links[i][position[t]] = setSupport(collected, candidates, s, b)
			}
		}
	}

	winner, err := unbeatenSubset(strongestPaths(links))
	if err != nil {
		return nil, err
	}

	var elected []int
	for c := range n {
		if subsets[winner]&(1<<c) != 0 {
			elected = append(elected, c)
		}
	}
	return pick(candidates, elected), nil
}

// unbeatenSubset returns the first node no other node beats through
// strongest paths
func unbeatenSubset(p [][]ratio) (int, error) {
	for i := range p {
		if unbeaten(p, i) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no unbeaten subset among %d", len(p))
}

func unbeaten(p [][]ratio, i int) bool {
	for j := range p {
		if j != i && p[j][i].cmp(p[i][j]) > 0 {
			return false
		}
	}
	return true
}

// setSupport is min over non-empty X of W(X)/|X|, where W(X) is the weight of
// the voters who prefer some member of X to b. By the supply-demand theorem
// this is the best guaranteed share for every member of s.
func setSupport(bs []normalize.Weighted[normalize.Ranking], candidates []ballots.Candidate, s uint64, b int) ratio {
	members := make([]int, 0, bits.OnesCount64(s))
	for c := range candidates {
		if s&(1<<c) != 0 {
			members = append(members, c)
		}
	}

	// Voter weight keyed by the members (as bit positions within members)
	// each voter prefers to b
	byMask := make(map[uint]int)
	total := 0
	for _, ballot := range bs {
		var mask uint
		for k, c := range members {
			if prefers(ballot.Ballot, candidates[c], candidates[b]) {
				mask |= 1 << k
			}
		}
		byMask[mask] += ballot.Count
		total += ballot.Count
	}

	best := ratio{num: int64(total), den: 1}
	for x := uint(1); x < 1<<len(members); x++ {
		reached := total
		for mask, weight := range byMask {
			if mask&x == 0 {
				reached -= weight
			}
		}
		best = minRatio(best, ratio{num: int64(reached), den: int64(bits.OnesCount(x))})
	}
	return best
}

// combinations lists every k-member subset of n as a bitmask, in
// lexicographic order of member indexes
func combinations(n, k int) []uint64 {
	var subsets []uint64
	var walk func(start int, chosen uint64, left int)
	walk = func(start int, chosen uint64, left int) {
		if left == 0 {
			subsets = append(subsets, chosen)
			return
		}
		for c := start; c <= n-left; c++ {
			walk(c+1, chosen|1<<c, left-1)
		}
	}
	walk(0, 0, k)
	return subsets
}

// schulzeSTVWork estimates the support computations for n candidates and seats
// winners: subsets times links per subset times member groups per link. It
// saturates just above MaxSchulzeSTVWork.
func schulzeSTVWork(n, seats int) int {
	if seats >= 62 {
		return MaxSchulzeSTVWork + 1
	}
	work := binomial(n, seats)
	for _, factor := range []int{seats * (n - seats), 1 << seats} {
		if factor != 0 && work > MaxSchulzeSTVWork/factor {
			return MaxSchulzeSTVWork + 1
		}
		work *= factor
	}
	return work
}

// binomial returns n choose k, saturating well above MaxSchulzeSTVSubsets
func binomial(n, k int) int {
	k = min(k, n-k)
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
		if result > 1<<40 {
			return result
		}
	}
	return result
}
