// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballots

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var ErrDuplicateCandidate = errors.New("candidate ranked more than once on a ballot")

// Candidate is an opaque candidate identifier
type Candidate string

// Entry is a single (rank, candidate) pair on a ballot
type Entry struct {
	Rank      int
	Candidate Candidate
}

// Ballot is one voter's ranking. Entry order is not significant.
type Ballot []Entry

// Sorted returns a copy ordered by ascending rank, with tied ranks ordered by
// candidate identifier
func (b Ballot) Sorted() Ballot {
	sorted := slices.Clone(b)
	slices.SortFunc(sorted, compareEntries)
	return sorted
}

// Truncate returns the maxLength most preferred entries of the ballot
func (b Ballot) Truncate(maxLength int) Ballot {
	sorted := b.Sorted()
	if maxLength < 0 {
		maxLength = 0
	}
	if maxLength < len(sorted) {
		sorted = sorted[:maxLength]
	}
	return sorted
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
		return c
	}
	return cmp.Compare(a.Candidate, b.Candidate)
}

// Collection is an ordered batch of ballots
type Collection []Ballot

// Candidates returns every candidate appearing on any ballot, sorted by identifier
func (c Collection) Candidates() []Candidate {
	seen := make(map[Candidate]struct{})
	var candidates []Candidate
	for _, ballot := range c {
		for _, entry := range ballot {
			if _, ok := seen[entry.Candidate]; ok {
				continue
			}
			seen[entry.Candidate] = struct{}{}
			candidates = append(candidates, entry.Candidate)
		}
	}
	slices.Sort(candidates)
	return candidates
}

// Length returns the size of the longest ballot, with a floor of 1
func (c Collection) Length() int {
	longest := 1
	for _, ballot := range c {
		longest = max(longest, len(ballot))
	}
	return longest
}

// Validate checks that no ballot ranks the same candidate twice
func (c Collection) Validate() error {
	for i, ballot := range c {
		seen := make(map[Candidate]struct{}, len(ballot))
		for _, entry := range ballot {
			if _, ok := seen[entry.Candidate]; ok {
				return fmt.Errorf("ballot %d, candidate %q: %w", i, entry.Candidate, ErrDuplicateCandidate)
			}
			seen[entry.Candidate] = struct{}{}
		}
	}
	return nil
}

// Clone returns a deep copy of the collection
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	clone := make(Collection, len(c))
	for i, ballot := range c {
		clone[i] = slices.Clone(ballot)
	}
	return clone
}

// Store holds the ballots of one counting session along with its candidate set
type Store struct {
	ballots    Collection
	candidates []Candidate
}

// NewStore creates a store holding a copy of the given ballots
func NewStore(c Collection) *Store {
	s := &Store{}
	s.Append(c)
	return s
}

// Append adds ballots to the store and recomputes the candidate set
func (s *Store) Append(c Collection) {
	s.ballots = append(s.ballots, c.Clone()...)
	s.candidates = s.ballots.Candidates()
}

// Replace swaps the held ballots for a new collection
func (s *Store) Replace(c Collection) {
	s.ballots = c.Clone()
	s.candidates = s.ballots.Candidates()
}

// Ballots returns a snapshot of the held ballots
func (s *Store) Ballots() Collection {
	return s.ballots.Clone()
}

// Candidates returns the candidate set of the held ballots
func (s *Store) Candidates() []Candidate {
	return slices.Clone(s.candidates)
}

// Len returns the number of held ballots
func (s *Store) Len() int {
	return len(s.ballots)
}
