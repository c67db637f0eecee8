// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Flags come first, then the command and its arguments:

	quickly-count -w 5 count schulze ballots.json more.json
	quickly-count -o short.json trunc condorcet,stv3 ballots.json
	quickly-count -p 8080 serve

# Config Fields

  - Command: count, trunc or serve
  - System: rule identifier or comma separated list, optional ":winners" suffix
  - Files: ballot files to load and concatenate
  - Winners: results to report or preserve (0 = rule default)
  - Strategy: minimize search strategy (default: binary)
  - Output: where trunc writes ballots (default: stdout)
  - LogLevel: slog level (default: info)
  - Port: Server listen port (default: 3318)
  - DatabaseURL: database connection string (serve only, required)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (serve only, required)

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	ADMIN_KEY_SALT    → --admin-salt
	MINIMIZE_STRATEGY → --strategy
	LOG_LEVEL         → --log-level

CLI flags take precedence over environment variables, and the environment
takes precedence over the .env file named by --env. A missing .env file is
not an error.
*/
package cliparse
