// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballots

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

// MarshalJSON encodes an entry as a [rank, candidate] pair
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Rank, e.Candidate})
}

// UnmarshalJSON decodes a [rank, candidate] pair
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("ballot entry must be a [rank, candidate] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Rank); err != nil {
		return fmt.Errorf("invalid rank %s: %w", pair[0], err)
	}
	if err := json.Unmarshal(pair[1], &e.Candidate); err != nil {
		return fmt.Errorf("invalid candidate %s: %w", pair[1], err)
	}
	return nil
}

// Load parses a JSON ballot file
func Load(r io.Reader) (Collection, error) {
	var c Collection
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode ballots: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile parses the JSON ballot file at path
func LoadFile(path string) (Collection, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ballot file: %w", err)
	}
	defer fd.Close()

	c, err := Load(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadFile appends the ballots in path to the store
func (s *Store) LoadFile(path string) error {
	c, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Append(c)
	return nil
}

// Shuffled returns a copy of the collection in random order. A nil rng uses
// the global source.
func Shuffled(c Collection, rng *rand.Rand) Collection {
	shuffled := c.Clone()
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}
	return shuffled
}

// Save writes a shuffled copy of the collection as indented JSON
func Save(w io.Writer, c Collection, rng *rand.Rand) error {
	shuffled := Shuffled(c, rng)
	if shuffled == nil {
		shuffled = Collection{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(shuffled); err != nil {
		return fmt.Errorf("failed to encode ballots: %w", err)
	}
	return nil
}

// SaveFile writes the store's ballots to path, or to stdout when path is "-"
func (s *Store) SaveFile(path string) error {
	if path == "-" {
		return Save(os.Stdout, s.ballots, nil)
	}

	fd, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ballot file: %w", err)
	}
	if err := Save(fd, s.ballots, nil); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
