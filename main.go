// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/cliparse"
	"github.com/danielhkuo/quickly-count/db"
	"github.com/danielhkuo/quickly-count/middleware"
	"github.com/danielhkuo/quickly-count/minimize"
	"github.com/danielhkuo/quickly-count/router"
	"github.com/danielhkuo/quickly-count/rules"
)

func main() {
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, cliparse.Usage)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Command {
	case cliparse.CommandCount:
		err = count(cfg, os.Stdout)
	case cliparse.CommandTrunc:
		err = trunc(ctx, cfg, os.Stderr)
	case cliparse.CommandServe:
		err = serve(ctx, cfg)
	}
	if err != nil {
		slog.Error("command failed", "command", cfg.Command, "error", err)
		os.Exit(1)
	}
}

// newLogger writes text to terminals and JSON everywhere else
func newLogger(w *os.File, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd()) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// load concatenates the ballot files in order
func load(files []string) (*ballots.Store, error) {
	store := ballots.NewStore(nil)
	for _, fn := range files {
		if err := store.LoadFile(fn); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// systemRules parses the system argument; -w wins over a ":winners" suffix
func systemRules(cfg cliparse.Config) ([]rules.Rule, int, error) {
	rs, winners, err := rules.ParseSystem(cfg.System)
	if err != nil {
		return nil, 0, err
	}
	if cfg.Winners > 0 {
		winners = cfg.Winners
	}
	return rs, winners, nil
}

func count(cfg cliparse.Config, out io.Writer) error {
	rs, winners, err := systemRules(cfg)
	if err != nil {
		return err
	}

	store, err := load(cfg.Files)
	if err != nil {
		return err
	}

	counter := rules.NewCounter(store.Ballots())
	lines := make([]string, len(rs))
	for i, rule := range rs {
		result, err := counter.Results(rule, winners)
		if err != nil {
			return fmt.Errorf("%s: %w", rule, err)
		}
		names := make([]string, len(result))
		for j, c := range result {
			names[j] = string(c)
		}
		lines[i] = strings.Join(names, ", ")
	}

	fmt.Fprintln(out, "Voting system:")
	for _, rule := range rs {
		fmt.Fprintf(out, "\t%s (%s)\n", rule.Name(), rule)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Loaded %s ballots from:\n\t%s\n", humanize.Comma(int64(store.Len())), strings.Join(cfg.Files, "\n\t"))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Results:\n\t%s\n", strings.Join(lines, "\n\t"))
	fmt.Fprintln(out)
	return nil
}

// trunc minimizes the loaded ballots and writes them shuffled to cfg.Output
func trunc(ctx context.Context, cfg cliparse.Config, report io.Writer) error {
	rs, winners, err := systemRules(cfg)
	if err != nil {
		return err
	}

	store, err := load(cfg.Files)
	if err != nil {
		return err
	}

	m := minimize.Minimizer{Rules: rs, Winners: winners, Strategy: cfg.Strategy}
	res, err := m.Apply(ctx, store)
	if err != nil {
		return err
	}
	slog.Debug("minimized ballots", "strategy", cfg.Strategy, "probes", res.Probes, "ballots", store.Len())

	if err := store.SaveFile(cfg.Output); err != nil {
		return err
	}

	fmt.Fprintf(report, "Reduced ballots to max length of %d from %d\n", res.Length, res.OriginalLength)
	return nil
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.CreateSchema(ctx, conn); err != nil {
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	server := http.Server{
		Handler:           middleware.CORS(router.NewRouter(conn, cfg)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	slog.Info("Server closed")
	return nil
}
