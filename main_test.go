// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-count/ballots"
	"github.com/danielhkuo/quickly-count/cliparse"
)

const hiddenWinnerFile = `[
 [[1,"A"],[2,"B"],[3,"C"],[4,"D"],[5,"E"]],
 [[1,"A"],[2,"B"],[3,"C"],[4,"D"],[5,"E"]],
 [[1,"A"],[2,"B"],[3,"C"],[4,"D"],[5,"E"]],
 [[1,"A"],[2,"B"],[3,"C"],[4,"D"],[5,"E"]],
 [[1,"C"],[2,"B"],[3,"A"],[4,"D"],[5,"E"]],
 [[1,"C"],[2,"B"],[3,"A"],[4,"D"],[5,"E"]],
 [[1,"C"],[2,"B"],[3,"A"],[4,"D"],[5,"E"]]
]`

const extraFile = `[
 [[1,"D"],[2,"B"],[3,"C"],[4,"A"],[5,"E"]],
 [[1,"D"],[2,"B"],[3,"C"],[4,"A"],[5,"E"]]
]`

func writeBallots(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCount(t *testing.T) {
	first := writeBallots(t, "first.json", hiddenWinnerFile)
	second := writeBallots(t, "second.json", extraFile)

	cfg := cliparse.Config{Command: cliparse.CommandCount, System: "condorcet,schulze:2", Files: []string{first, second}}
	var out bytes.Buffer
	if err := count(cfg, &out); err != nil {
		t.Fatalf("count failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Voting system:\n\tCondorcet (condorcet)\n\tSchulze, Ordered list (schulze)\n",
		"Loaded 9 ballots from:\n\t" + first + "\n\t" + second + "\n",
		"Results:\n\tB\n\tB, C\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestCountErrors(t *testing.T) {
	file := writeBallots(t, "ballots.json", hiddenWinnerFile)

	tests := []struct {
		name string
		cfg  cliparse.Config
	}{
		{"unknown system", cliparse.Config{System: "borda", Files: []string{file}}},
		{"missing file", cliparse.Config{System: "condorcet", Files: []string{filepath.Join(t.TempDir(), "absent.json")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := count(tt.cfg, &bytes.Buffer{}); err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestTrunc(t *testing.T) {
	first := writeBallots(t, "first.json", hiddenWinnerFile)
	second := writeBallots(t, "second.json", extraFile)
	output := filepath.Join(t.TempDir(), "short.json")

	cfg := cliparse.Config{
		Command: cliparse.CommandTrunc,
		System:  "condorcet",
		Files:   []string{first, second},
		Winners: 1,
		Output:  output,
	}
	var report bytes.Buffer
	if err := trunc(context.Background(), cfg, &report); err != nil {
		t.Fatalf("trunc failed: %v", err)
	}

	if got := report.String(); got != "Reduced ballots to max length of 2 from 5\n" {
		t.Errorf("Unexpected report %q", got)
	}

	short, err := ballots.LoadFile(output)
	if err != nil {
		t.Fatalf("Failed to read truncated ballots: %v", err)
	}
	if len(short) != 9 {
		t.Errorf("Expected 9 ballots, got %d", len(short))
	}
	if short.Length() != 2 {
		t.Errorf("Expected ballot length 2, got %d", short.Length())
	}
}
