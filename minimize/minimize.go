// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package minimize

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/rules"
)

// Strategy selects how candidate lengths are searched
type Strategy int

const (
	Binary Strategy = iota
	Exhaustive
)

// ParseStrategy converts "binary" or "exhaustive" into a Strategy
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "binary":
		return Binary, nil
	case "exhaustive":
		return Exhaustive, nil
	default:
		return Binary, fmt.Errorf("unknown minimize strategy %q", s)
	}
}

func (s Strategy) String() string {
	if s == Exhaustive {
		return "exhaustive"
	}
	return "binary"
}

// Result is the outcome of a minimization
type Result struct {
	Ballots        ballots.Collection
	OriginalLength int
	Length         int
	Probes         int
}

// Minimizer searches for the shortest ballot length preserving the top
// Winners results of every rule. Zero Winners means the original ballot length.
type Minimizer struct {
	Rules    []rules.Rule
	Winners  int
	Strategy Strategy
}

// Truncate keeps the maxLength most preferred entries of every ballot and
// returns the new collection with its longest ballot. Ballots already short
// enough are copied unchanged.
func Truncate(c ballots.Collection, maxLength int) (ballots.Collection, int) {
	truncated := make(ballots.Collection, len(c))
	longest := 0
	for i, ballot := range c {
		if len(ballot) <= maxLength {
			truncated[i] = slices.Clone(ballot)
		} else {
			truncated[i] = ballot.Truncate(maxLength)
		}
		longest = max(longest, len(truncated[i]))
	}
	return truncated, longest
}

// MinimizeBallots runs a binary search minimization and returns the truncated
// ballots with their maximum length
func MinimizeBallots(ctx context.Context, c ballots.Collection, rs []rules.Rule, winners int) (ballots.Collection, int, error) {
	res, err := Minimizer{Rules: rs, Winners: winners}.Minimize(ctx, c)
	if err != nil {
		return nil, 0, err
	}
	return res.Ballots, res.Length, nil
}

// Apply minimizes the store's ballots and replaces them with the result
func (m Minimizer) Apply(ctx context.Context, store *ballots.Store) (Result, error) {
	res, err := m.Minimize(ctx, store.Ballots())
	if err != nil {
		return Result{}, err
	}
	store.Replace(res.Ballots)
	return res, nil
}

// Minimize returns the shortest truncation of c found by the strategy
func (m Minimizer) Minimize(ctx context.Context, c ballots.Collection) (Result, error) {
	original := c.Length()
	res := Result{Ballots: c.Clone(), OriginalLength: original, Length: original}
	if original <= 1 {
		return res, nil
	}
	if len(m.Rules) == 0 {
		return Result{}, fmt.Errorf("no rules to preserve")
	}

	winners := m.Winners
	if winners <= 0 {
		winners = original
	}

	baseline, err := evaluate(ctx, c, m.Rules, winners)
	if err != nil {
		return Result{}, fmt.Errorf("failed to count full ballots: %w", err)
	}

	p := &prober{ctx: ctx, ballots: c, rules: m.Rules, winners: winners, baseline: baseline}
	switch m.Strategy {
	case Exhaustive:
		err = p.exhaustive(&res)
	default:
		err = p.binary(&res)
	}
	if err != nil {
		return Result{}, err
	}
	res.Probes = p.probes
	return res, nil
}

type prober struct {
	ctx      context.Context
	ballots  ballots.Collection
	rules    []rules.Rule
	winners  int
	baseline [][]ballots.Candidate
	probes   int
}

// preserves truncates to length and reports whether every rule's top results
// are unchanged
func (p *prober) preserves(length int) (ballots.Collection, bool, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, false, err
	}
	p.probes++

	truncated, _ := Truncate(p.ballots, length)
	results, err := evaluate(p.ctx, truncated, p.rules, p.winners)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count ballots truncated to %d: %w", length, err)
	}

	same := true
	for i := range p.rules {
		if !slices.Equal(top(results[i], p.winners), top(p.baseline[i], p.winners)) {
			same = false
			break
		}
	}
	slog.Debug("probed ballot length", "length", length, "same", same)
	return truncated, same, nil
}

// binary keeps lo as a length assumed to change results and hi as one known
// to preserve them
func (p *prober) binary(res *Result) error {
	lo, hi := 0, res.OriginalLength
	for hi-lo > 2 {
		mid := (lo + hi) / 2
		truncated, same, err := p.preserves(mid)
		if err != nil {
			return err
		}
		if same {
			hi = mid
			res.Ballots = truncated
		} else {
			lo = mid
		}
	}

	for length := lo + 1; length < hi; length++ {
		truncated, same, err := p.preserves(length)
		if err != nil {
			return err
		}
		if same {
			hi = length
			res.Ballots = truncated
			break
		}
	}

	res.Length = hi
	return nil
}

func (p *prober) exhaustive(res *Result) error {
	for length := res.OriginalLength - 1; length >= 1; length-- {
		truncated, same, err := p.preserves(length)
		if err != nil {
			return err
		}
		if !same {
			break
		}
		res.Ballots = truncated
		res.Length = length
	}
	return nil
}

// evaluate counts every rule concurrently against one collection
func evaluate(ctx context.Context, c ballots.Collection, rs []rules.Rule, winners int) ([][]ballots.Candidate, error) {
	counter := rules.NewCounter(c)
	results := make([][]ballots.Candidate, len(rs))

	g, ctx := errgroup.WithContext(ctx)
	for i, rule := range rs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := counter.Results(rule, winners)
			if err != nil {
				return fmt.Errorf("%s: %w", rule, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func top(result []ballots.Candidate, n int) []ballots.Candidate {
	return result[:min(n, len(result))]
}
