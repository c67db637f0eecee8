// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package minimize shortens ballots as far as possible without changing results.

Published ballots reveal less about individual voters when they are short.
Minimize finds the smallest length L such that truncating every ballot to its
L most preferred entries leaves the top results of every requested rule
unchanged:

	m := minimize.Minimizer{Rules: rs, Winners: 5}
	res, err := m.Minimize(ctx, c)
	// res.Ballots holds the truncated copy, res.Length its maximum length

# Strategies

Binary halves the range of candidate lengths, then checks the few lengths left
in the final interval. It assumes that if length L preserves the results, every
longer length does too. That holds for most real elections but is not
guaranteed, particularly for STV, so the returned length is always verified
but longer lengths may not be.

Exhaustive walks down from the full length and stops at the first length that
changes a result. Every length at or above the returned one is verified.

Collections whose longest ballot is already 1 are returned unchanged.
*/
package minimize
