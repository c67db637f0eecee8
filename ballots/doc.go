// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballots holds ranked ballots and the facts derived from them.

# Ballots

A Ballot is a set of (rank, candidate) entries submitted by one voter. Lower
ranks are more preferred, ranks need not be contiguous, and two candidates may
share a rank. A candidate appears at most once per ballot:

	b := ballots.Ballot{{Rank: 1, Candidate: "alice"}, {Rank: 2, Candidate: "bob"}}

# Collections

A Collection is the ordered batch of ballots for one counting session. Order
carries no meaning but is kept so that counts are reproducible:

	c.Candidates() // union of all candidates, sorted by identifier
	c.Length()     // longest ballot, never less than 1

# File Format

Ballot files are JSON arrays of ballots, each an array of [rank, candidate]
pairs:

	[
	 [[1, "alice"], [2, "bob"]],
	 [[1, "bob"]]
	]

Save shuffles a copy of the collection before writing so that the stored order
cannot be matched against submission order.
*/
package ballots
