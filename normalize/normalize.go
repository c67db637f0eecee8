// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package normalize

import (
	"iter"

	"github.com/danielhkuo/quickly-count/ballots"
)

// Ranking maps a candidate to its rank on one ballot
type Ranking map[ballots.Candidate]int

// Weighted is a normalized ballot with a positive multiplier
type Weighted[T any] struct {
	Count  int
	Ballot T
}

// PreferenceLists yields each ballot's candidates ordered by ascending rank
func PreferenceLists(c ballots.Collection) iter.Seq[[]ballots.Candidate] {
	return func(yield func([]ballots.Candidate) bool) {
		for _, ballot := range c {
			sorted := ballot.Sorted()
			prefs := make([]ballots.Candidate, len(sorted))
			for i, entry := range sorted {
				prefs[i] = entry.Candidate
			}
			if !yield(prefs) {
				return
			}
		}
	}
}

// RankingMaps yields each ballot as a candidate to rank mapping
func RankingMaps(c ballots.Collection) iter.Seq[Ranking] {
	return func(yield func(Ranking) bool) {
		for _, ballot := range c {
			ranking := make(Ranking, len(ballot))
			for _, entry := range ballot {
				ranking[entry.Candidate] = entry.Rank
			}
			if !yield(ranking) {
				return
			}
		}
	}
}

// WithCounts wraps each view with a count of 1
func WithCounts[T any](views iter.Seq[T]) iter.Seq[Weighted[T]] {
	return func(yield func(Weighted[T]) bool) {
		for view := range views {
			if !yield(Weighted[T]{Count: 1, Ballot: view}) {
				return
			}
		}
	}
}

// Ranked is shorthand for the weighted ranking-map view of a collection
func Ranked(c ballots.Collection) iter.Seq[Weighted[Ranking]] {
	return WithCounts(RankingMaps(c))
}

// Ordered is shorthand for the weighted preference-list view of a collection
func Ordered(c ballots.Collection) iter.Seq[Weighted[[]ballots.Candidate]] {
	return WithCounts(PreferenceLists(c))
}
