// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballots

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBallotSorted(t *testing.T) {
	ballot := Ballot{
		{Rank: 3, Candidate: "carol"},
		{Rank: 1, Candidate: "bob"},
		{Rank: 2, Candidate: "dave"},
		{Rank: 1, Candidate: "alice"},
	}

	want := Ballot{
		{Rank: 1, Candidate: "alice"},
		{Rank: 1, Candidate: "bob"},
		{Rank: 2, Candidate: "dave"},
		{Rank: 3, Candidate: "carol"},
	}
	if diff := cmp.Diff(want, ballot.Sorted()); diff != "" {
		t.Errorf("Sorted() mismatch (-want +got):\n%s", diff)
	}

	// Original must be untouched
	if ballot[0].Candidate != "carol" {
		t.Error("Sorted() modified the ballot in place")
	}
}

func TestBallotTruncate(t *testing.T) {
	ballot := Ballot{{Rank: 2, Candidate: "b"}, {Rank: 1, Candidate: "a"}, {Rank: 3, Candidate: "c"}}

	tests := []struct {
		name      string
		maxLength int
		want      Ballot
	}{
		{"shorter", 2, Ballot{{Rank: 1, Candidate: "a"}, {Rank: 2, Candidate: "b"}}},
		{"exact", 3, Ballot{{Rank: 1, Candidate: "a"}, {Rank: 2, Candidate: "b"}, {Rank: 3, Candidate: "c"}}},
		{"longer", 10, Ballot{{Rank: 1, Candidate: "a"}, {Rank: 2, Candidate: "b"}, {Rank: 3, Candidate: "c"}}},
		{"zero", 0, Ballot{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ballot.Truncate(tt.maxLength)); diff != "" {
				t.Errorf("Truncate(%d) mismatch (-want +got):\n%s", tt.maxLength, diff)
			}
		})
	}
}

func TestCollectionFacts(t *testing.T) {
	c := Collection{
		{{Rank: 1, Candidate: "zed"}, {Rank: 2, Candidate: "amy"}},
		{{Rank: 1, Candidate: "kim"}},
		{{Rank: 5, Candidate: "amy"}, {Rank: 7, Candidate: "kim"}, {Rank: 9, Candidate: "zed"}},
	}

	if diff := cmp.Diff([]Candidate{"amy", "kim", "zed"}, c.Candidates()); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Length(); got != 3 {
		t.Errorf("Expected length 3, got %d", got)
	}

	var empty Collection
	if got := empty.Length(); got != 1 {
		t.Errorf("Expected length floor of 1, got %d", got)
	}
	if got := empty.Candidates(); len(got) != 0 {
		t.Errorf("Expected no candidates, got %v", got)
	}
}

func TestValidate(t *testing.T) {
	good := Collection{{{Rank: 1, Candidate: "a"}, {Rank: 1, Candidate: "b"}}}
	if err := good.Validate(); err != nil {
		t.Errorf("Expected tied ranks to be valid, got %v", err)
	}

	bad := Collection{
		{{Rank: 1, Candidate: "a"}},
		{{Rank: 1, Candidate: "a"}, {Rank: 2, Candidate: "a"}},
	}
	err := bad.Validate()
	if !errors.Is(err, ErrDuplicateCandidate) {
		t.Fatalf("Expected ErrDuplicateCandidate, got %v", err)
	}
	if !strings.Contains(err.Error(), "ballot 1") {
		t.Errorf("Expected error to name ballot 1, got %q", err.Error())
	}
}

func TestLoad(t *testing.T) {
	input := `[
	 [[1, "alice"], [2, "bob"]],
	 [[1, "bob"], [1, "carol"]],
	 []
	]`

	c, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Collection{
		{{Rank: 1, Candidate: "alice"}, {Rank: 2, Candidate: "bob"}},
		{{Rank: 1, Candidate: "bob"}, {Rank: 1, Candidate: "carol"}},
		{},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "nope"},
		{"short pair", `[[[1]]]`},
		{"string rank", `[[["1", "a"]]]`},
		{"numeric candidate", `[[[1, 2]]]`},
		{"duplicate candidate", `[[[1, "a"], [2, "a"]]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.input)); err == nil {
				t.Errorf("Expected error for %s", tt.input)
			}
		})
	}
}

func TestSaveShuffles(t *testing.T) {
	var c Collection
	for i := range 50 {
		c = append(c, Ballot{{Rank: 1, Candidate: Candidate(rune('a' + i%26))}, {Rank: i + 2, Candidate: "zz"}})
	}

	var buf bytes.Buffer
	if err := Save(&buf, c, rand.New(rand.NewPCG(1, 2))); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	saved, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load of saved ballots failed: %v", err)
	}
	if len(saved) != len(c) {
		t.Fatalf("Expected %d ballots, got %d", len(c), len(saved))
	}
	if cmp.Equal(c, saved) {
		t.Error("Expected saved ballots to be reordered")
	}

	// Same ballots, different order
	key := func(b Ballot) string {
		var sb strings.Builder
		for _, e := range b.Sorted() {
			sb.WriteString(string(e.Candidate))
			sb.WriteByte(byte('0' + e.Rank%10))
		}
		return sb.String()
	}
	var want, got []string
	for i := range c {
		want = append(want, key(c[i]))
		got = append(got, key(saved[i]))
	}
	slices.Sort(want)
	slices.Sort(got)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Saved ballots differ from input (-want +got):\n%s", diff)
	}
}

func TestStoreLoadFileAppends(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	if err := os.WriteFile(first, []byte(`[[[1, "a"], [2, "b"]]]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`[[[1, "c"]], [[1, "b"]]]`), 0o600); err != nil {
		t.Fatal(err)
	}

	s := NewStore(nil)
	for _, path := range []string{first, second} {
		if err := s.LoadFile(path); err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", path, err)
		}
	}

	if s.Len() != 3 {
		t.Errorf("Expected 3 ballots, got %d", s.Len())
	}
	if diff := cmp.Diff([]Candidate{"a", "b", "c"}, s.Candidates()); diff != "" {
		t.Errorf("Candidates mismatch (-want +got):\n%s", diff)
	}

	if err := s.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestStoreSnapshotsAreCopies(t *testing.T) {
	s := NewStore(Collection{{{Rank: 1, Candidate: "a"}}})
	snapshot := s.Ballots()
	snapshot[0][0].Candidate = "mutated"

	if s.Ballots()[0][0].Candidate != "a" {
		t.Error("Mutating a snapshot changed the store")
	}

	s.Replace(Collection{{{Rank: 1, Candidate: "b"}}})
	if diff := cmp.Diff([]Candidate{"b"}, s.Candidates()); diff != "" {
		t.Errorf("Candidates after Replace mismatch (-want +got):\n%s", diff)
	}
}
