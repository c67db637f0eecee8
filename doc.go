// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the quickly-count command.

quickly-count tallies ranked-choice ballots under several counting rules
(Condorcet, Schulze, Schulze STV, STV and a steering committee composite),
shortens ballots without changing results, and serves both over HTTP.

# Counting

	quickly-count count schulze ballots.json more.json
	quickly-count -w 3 count stv3,schulze_stv3 ballots.json

Files are JSON arrays of ballots, each an array of [rank, "candidate"] pairs.
Several files are concatenated in the order given.

# Truncating

	quickly-count -o short.json trunc condorcet,stv2:2 ballots.json

Finds the shortest ballot length that leaves the results of every listed
system unchanged, writes the truncated ballots in random order and reports
the new length on stderr.

# Serving

	DATABASE_URL=file:count.db ADMIN_KEY_SALT=... quickly-count serve

The server keeps counting sessions in sqlite (default) or postgres; see the
handlers package for endpoints.

# Architecture

  - ballots: ballot model and file format
  - normalize: lazy counted views of a collection
  - tally: the counting rules
  - rules: rule identifiers, dispatch and the Schulze cross-check
  - minimize: ballot truncation search
  - db, handlers, router, middleware, models, auth: the HTTP service
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
