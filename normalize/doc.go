// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package normalize converts raw ballots into the views the tallying rules consume.

# Views

PreferenceLists yields each ballot as its candidates in ascending rank order;
tied candidates keep identifier order. RankingMaps yields each ballot as a
candidate to rank mapping, so ties survive exactly:

	for prefs := range normalize.PreferenceLists(c) {
		// prefs[0] is the most preferred candidate
	}

Both are lazy and restartable: ranging twice re-reads the collection.

# Weights

WithCounts wraps every view in a Weighted value with Count 1. Rules accept any
positive count, so pre-aggregated batches can be counted the same way.
*/
package normalize
