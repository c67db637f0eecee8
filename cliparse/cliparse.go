// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-count/minimize"
)

// Commands
const (
	CommandCount = "count"
	CommandTrunc = "trunc"
	CommandServe = "serve"
)

type Config struct {
	Command string
	System  string
	Files   []string

	Winners  int
	Strategy minimize.Strategy
	Output   string
	LogLevel slog.Level

	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
}

// Usage is printed when the command line cannot be parsed
const Usage = `usage: quickly-count [flags] count <system>[:winners] <ballot files ...>
       quickly-count [flags] trunc <systems>[:winners] <ballot files ...>
       quickly-count [flags] serve`

// ParseFlags reads flags, then positional arguments, then falls back to the
// environment and an optional .env file
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, strategy, logLevel string

	fs := flag.NewFlagSet("quickly-count", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Environment file to load (missing is fine)")

	// Counting
	fs.IntVar(&cfg.Winners, "w", 0, "Number of winners to preserve or report")
	fs.StringVar(&strategy, "strategy", "", "Minimize strategy (binary or exhaustive)")
	fs.StringVar(&cfg.Output, "o", "-", "Output file for truncated ballots, - for stdout")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("command required (count, trunc or serve)")
	}
	cfg.Command = rest[0]

	switch cfg.Command {
	case CommandCount, CommandTrunc:
		if len(rest) < 3 {
			return Config{}, fmt.Errorf("%s requires a system and at least one ballot file", cfg.Command)
		}
		cfg.System = rest[1]
		cfg.Files = rest[2:]
	case CommandServe:
		if len(rest) > 1 {
			return Config{}, errors.New("serve takes no arguments")
		}
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.Winners < 0 {
		return Config{}, errors.New("winners must not be negative")
	}

	if strategy == "" {
		strategy = os.Getenv("MINIMIZE_STRATEGY")
	}
	s, err := minimize.ParseStrategy(strategy)
	if err != nil {
		return Config{}, err
	}
	cfg.Strategy = s

	if logLevel == "" {
		logLevel = os.Getenv("LOG_LEVEL")
	}
	if logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", logLevel)
		}
	}

	if cfg.Command != CommandServe {
		return cfg, nil
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}

// loadEnvFile sets unset variables from path; existing variables win
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
