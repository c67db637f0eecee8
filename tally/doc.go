// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements the electoral rules used to count ranked ballots.

# Rules

  - Condorcet: the candidate who beats every other candidate head to head,
    or no one
  - Schulze: an ordered list built from strongest paths of pairwise victories
  - LegacySchulze: the original Schulze implementation, kept for canarying
  - SchulzeSTV: proportional multi-winner Schulze over candidate subsets
  - STV: single transferable vote with a Droop quota and Gregory transfers

Every rule is a pure function of its inputs and is safe to run concurrently
with any other.

# Pairwise Preference

A ballot prefers A to B when it ranks A strictly better than B, or ranks A and
leaves B unranked. Unranked candidates are tied for last. Preferences are
weighted by each ballot's count.

# Tie-Breaking

All ties are broken by candidate identifier so that results never depend on
the order in which candidates were first seen:

  - Schulze: candidates of equal standing are listed in identifier order
  - LegacySchulze: candidates with the same number of strongest-path wins are
    listed in identifier order
  - SchulzeSTV: among winning subsets the one listed first in identifier order
  - STV: simultaneous elections proceed from the highest tally, equal tallies
    in identifier order; of the lowest tallies the candidate last in identifier
    order is excluded

# Limits

SchulzeSTV compares every subset of the requested size, so its cost grows with
the binomial coefficient of candidates and seats. Counts needing more than
MaxSchulzeSTVSubsets subsets fail with ErrTooManySubsets. Each link between
subsets also examines every group of the subset's members, which doubles with
each seat, so counts estimated above MaxSchulzeSTVWork support computations
fail the same way. At the limits a count takes a few seconds.

STV keeps ballot weights and tallies as exact fractions, so a transfer that
lands exactly on the quota or on another tally compares equal.
*/
package tally
