// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"math/big"
	"slices"

	"github.com/danielhkuo/quickly-count/ballots"
)

type stvBallot struct {
	prefs  []int
	weight *big.Rat
}

// DroopQuota is the smallest whole number of votes that no more than seats
// candidates can reach at once
func DroopQuota(totalWeight, seats int) int {
	return totalWeight/(seats+1) + 1
}

// STV elects requiredWinners candidates by single transferable vote. Surplus
// votes are transferred at an exact fractional value; when nobody reaches the quota
// the lowest candidate is excluded. Winners are returned sorted by identifier.
func STV(bs OrderedBallots, candidates []ballots.Candidate, requiredWinners int) ([]ballots.Candidate, error) {
	candidates = canonical(candidates)
	index := make(map[ballots.Candidate]int, len(candidates))
	for i, candidate := range candidates {
		index[candidate] = i
	}

	var pile []stvBallot
	total := 0
	for b := range bs {
		if b.Count <= 0 {
			continue
		}
		var prefs []int
		for _, candidate := range b.Ballot {
			if i, ok := index[candidate]; ok {
				prefs = append(prefs, i)
			}
		}
		if len(prefs) == 0 {
			continue
		}
		pile = append(pile, stvBallot{prefs: prefs, weight: new(big.Rat).SetInt64(int64(b.Count))})
		total += b.Count
	}
	if len(pile) == 0 || len(candidates) == 0 {
		return nil, ErrEmptyBallots
	}

	seats := requiredWinners
	if seats <= 0 {
		seats = 1
	}
	if seats >= len(candidates) {
		return candidates, nil
	}

	quota := new(big.Rat).SetInt64(int64(DroopQuota(total, seats)))
	continuing := make([]bool, len(candidates))
	for i := range continuing {
		continuing[i] = true
	}
	remaining := len(candidates)
	var elected []int

	for len(elected) < seats {
		if remaining+len(elected) <= seats {
			for c, ok := range continuing {
				if ok {
					elected = append(elected, c)
				}
			}
			break
		}

		tops := make([]int, len(pile))
		counts := make([]*big.Rat, len(candidates))
		for c := range counts {
			counts[c] = new(big.Rat)
		}
		for i, b := range pile {
			tops[i] = -1
			for _, c := range b.prefs {
				if continuing[c] {
					tops[i] = c
					counts[c].Add(counts[c], b.weight)
					break
				}
			}
		}

		var reached []int
		for c, ok := range continuing {
			if ok && counts[c].Cmp(quota) >= 0 {
				reached = append(reached, c)
			}
		}

		if len(reached) == 0 {
			loser := lowest(continuing, counts)
			continuing[loser] = false
			remaining--
			continue
		}

		slices.SortStableFunc(reached, func(a, b int) int {
			return counts[b].Cmp(counts[a])
		})
		for _, c := range reached {
			if len(elected) == seats {
				break
			}
			elected = append(elected, c)
			continuing[c] = false
			remaining--

			transfer := new(big.Rat).Sub(counts[c], quota)
			transfer.Quo(transfer, counts[c])
			for i := range pile {
				if tops[i] == c {
					pile[i].weight = new(big.Rat).Mul(pile[i].weight, transfer)
				}
			}
		}
	}

	slices.Sort(elected)
	return pick(candidates, elected), nil
}

// lowest returns the continuing candidate with the smallest tally, preferring
// the one last in identifier order on ties
func lowest(continuing []bool, counts []*big.Rat) int {
	loser := -1
	for c, ok := range continuing {
		if ok && (loser == -1 || counts[c].Cmp(counts[loser]) <= 0) {
			loser = c
		}
	}
	return loser
}
