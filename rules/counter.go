// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/normalize"
	"github.com/danielhkuo/quickly-count/tally"
)

const (
	committeeSize = 5
	deputiesSize  = 5
)

// Counter evaluates rules against one ballot collection. It never modifies
// the collection and is safe for concurrent use.
type Counter struct {
	ballots    ballots.Collection
	candidates []ballots.Candidate

	legacy      SchulzeMethod
	replacement SchulzeMethod
}

// NewCounter creates a counter over a snapshot of the ballots
func NewCounter(c ballots.Collection) *Counter {
	snapshot := c.Clone()
	return &Counter{
		ballots:     snapshot,
		candidates:  snapshot.Candidates(),
		legacy:      LegacySchulze{},
		replacement: ReplacementSchulze{},
	}
}

// Candidates returns the candidate set of the counted ballots
func (c *Counter) Candidates() []ballots.Candidate {
	return slices.Clone(c.candidates)
}

// Dispatch parses a rule identifier and evaluates it
func (c *Counter) Dispatch(id string, winners int) ([]ballots.Candidate, error) {
	rule, err := ParseRule(id)
	if err != nil {
		return nil, err
	}
	return c.Results(rule, winners)
}

// Results evaluates a rule. winners bounds the Schulze rankings; zero means
// the length of the longest ballot.
func (c *Counter) Results(rule Rule, winners int) ([]ballots.Candidate, error) {
	switch rule.Kind {
	case KindCondorcet:
		return c.Condorcet()
	case KindSchulze:
		return c.Schulze(winners)
	case KindSchulzeOld:
		return c.legacy.Rank(c.ballots, 0)
	case KindSchulzeNew:
		return c.replacement.Rank(c.ballots, c.threshold(winners))
	case KindSteeringCommittee:
		return c.SteeringCommittee()
	case KindSTV:
		return c.STV(rule.Winners)
	case KindSchulzeSTV:
		return c.SchulzeSTV(rule.Winners)
	default:
		return nil, &InvalidRuleError{Rule: rule.String()}
	}
}

// threshold applies the default Schulze result size
func (c *Counter) threshold(winners int) int {
	if winners <= 0 {
		winners = c.ballots.Length()
	}
	return min(winners, len(c.candidates))
}

// Condorcet returns the Condorcet winner, or an empty slice
func (c *Counter) Condorcet() ([]ballots.Candidate, error) {
	return tally.Condorcet(normalize.Ranked(c.ballots), c.candidates)
}

// Schulze returns the canaried Schulze ranking
func (c *Counter) Schulze(winners int) ([]ballots.Candidate, error) {
	return Validated{Authoritative: c.legacy, Canary: c.replacement}.Rank(c.ballots, c.threshold(winners))
}

// STV returns the STV winners sorted by identifier
func (c *Counter) STV(winners int) ([]ballots.Candidate, error) {
	if winners <= 0 {
		winners = 1
	}
	return tally.STV(normalize.Ordered(c.ballots), c.candidates, winners)
}

// SchulzeSTV returns the Schulze STV winners sorted by identifier
func (c *Counter) SchulzeSTV(winners int) ([]ballots.Candidate, error) {
	if winners <= 0 {
		winners = 1
	}
	return tally.SchulzeSTV(normalize.Ranked(c.ballots), c.candidates, min(winners, len(c.candidates)))
}

// SteeringCommittee returns the sorted committee, the sorted deputies and
// then the Condorcet winner, if there is one
func (c *Counter) SteeringCommittee() ([]ballots.Candidate, error) {
	var ranking, condorcet []ballots.Candidate

	var g errgroup.Group
	g.Go(func() error {
		var err error
		ranking, err = c.Schulze(committeeSize + deputiesSize)
		return err
	})
	g.Go(func() error {
		var err error
		condorcet, err = c.Condorcet()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to count steering committee: %w", err)
	}

	split := min(committeeSize, len(ranking))
	committee := slices.Sorted(slices.Values(ranking[:split]))
	deputies := slices.Sorted(slices.Values(ranking[split:]))

	result := make([]ballots.Candidate, 0, len(ranking)+len(condorcet))
	result = append(result, committee...)
	result = append(result, deputies...)
	result = append(result, condorcet...)
	return result, nil
}
