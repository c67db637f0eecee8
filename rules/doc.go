// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules turns rule identifiers into tallies over a ballot collection.

# Rule Identifiers

	condorcet       Condorcet winner, or nothing
	schulze         Schulze ordered list, canaried (see below)
	schulze_old     Schulze ordered list, legacy implementation
	schulze_new     Schulze ordered list, replacement implementation
	stcom           Steering committee election
	stv<N>          Single transferable vote with N winners (stv = stv1)
	schulze_stv<N>  Schulze STV with N winners

ParseRule converts an identifier into a typed Rule once, at the boundary.
ParseSystem additionally accepts a comma separated list with an optional
":winners" suffix, as used on the command line:

	rs, winners, err := rules.ParseSystem("schulze,stv3:5")

# Counting

A Counter holds one ballot collection and evaluates rules against it:

	counter := rules.NewCounter(c)
	result, err := counter.Results(rules.Rule{Kind: rules.KindSTV, Winners: 3}, 0)

When winners is zero the Schulze rules rank as many candidates as the longest
ballot. STV and Schulze STV take their seat count from the rule itself.

# Canarying

The schulze rule runs the legacy and replacement implementations side by side.
A disagreement is logged as a warning and the legacy result is returned; it
never fails the count.

# Steering Committee

stcom ranks ten candidates with schulze. The first five, sorted, are the
committee; the next five, sorted, are the deputies. The Condorcet winner, if
any, is appended even when already elected, so a full result has 11 entries.
*/
package rules
