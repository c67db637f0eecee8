// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/normalize"
	"github.com/danielhkuo/quickly-count/tally"
)

// SchulzeMethod produces a Schulze ranking of at most threshold candidates
type SchulzeMethod interface {
	Rank(c ballots.Collection, threshold int) ([]ballots.Candidate, error)
}

// LegacySchulze is the original Schulze implementation
type LegacySchulze struct{}

func (LegacySchulze) Rank(c ballots.Collection, threshold int) ([]ballots.Candidate, error) {
	return tally.LegacySchulze(c, threshold)
}

// ReplacementSchulze is the Schulze implementation being canaried
type ReplacementSchulze struct{}

func (ReplacementSchulze) Rank(c ballots.Collection, threshold int) ([]ballots.Candidate, error) {
	return tally.Schulze(normalize.Ranked(c), c.Candidates(), threshold)
}

// Validated runs two Schulze implementations concurrently and returns the
// Authoritative result. Disagreements and failures of Canary are logged only.
type Validated struct {
	Authoritative SchulzeMethod
	Canary        SchulzeMethod
}

func (v Validated) Rank(c ballots.Collection, threshold int) ([]ballots.Candidate, error) {
	var authoritative, canary []ballots.Candidate
	var canaryErr error

	var g errgroup.Group
	g.Go(func() error {
		var err error
		authoritative, err = v.Authoritative.Rank(c, threshold)
		return err
	})
	g.Go(func() error {
		canary, canaryErr = v.Canary.Rank(c, threshold)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch {
	case canaryErr != nil:
		slog.Warn("schulze canary failed", "error", canaryErr)
	case !slices.Equal(authoritative, canary):
		slog.Warn("schulze legacy result does not match replacement",
			"legacy", authoritative,
			"replacement", canary,
		)
	default:
		slog.Debug("schulze legacy and replacement match", "threshold", threshold)
	}

	return authoritative, nil
}
