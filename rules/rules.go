// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies an electoral rule
type Kind int

const (
	KindCondorcet Kind = iota
	KindSchulze
	KindSchulzeOld
	KindSchulzeNew
	KindSteeringCommittee
	KindSTV
	KindSchulzeSTV
)

// Rule is a parsed rule identifier. Winners is the seat count of the STV
// rules and zero for the rest.
type Rule struct {
	Kind    Kind
	Winners int
}

// InvalidRuleError reports an unrecognized rule identifier
type InvalidRuleError struct {
	Rule string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid voting method: %s", e.Rule)
}

// System is a rule identifier with its display name
type System struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Systems lists the commonly used rule identifiers
var Systems = []System{
	{"condorcet", "Condorcet"},
	{"schulze", "Schulze, Ordered list"},
	{"schulze_old", "Schulze, Ordered list (old)"},
	{"schulze_new", "Schulze, Ordered list (new)"},
	{"stcom", "Steering Committee Election"},
	{"stv1", "STV, Single winner"},
	{"stv2", "STV, Two winners"},
	{"stv3", "STV, Three winners"},
	{"stv4", "STV, Four winners"},
	{"stv5", "STV, Five winners"},
	{"stv10", "STV, Ten winners"},
	{"schulze_stv1", "Schulze STV, Single winner"},
	{"schulze_stv3", "Schulze STV, Three winners"},
	{"schulze_stv5", "Schulze STV, Five winners"},
}

var fixedKinds = map[string]Kind{
	"condorcet":   KindCondorcet,
	"schulze":     KindSchulze,
	"schulze_old": KindSchulzeOld,
	"schulze_new": KindSchulzeNew,
	"stcom":       KindSteeringCommittee,
}

// ParseRule converts a rule identifier into a Rule
func ParseRule(id string) (Rule, error) {
	id = strings.TrimSpace(id)
	if kind, ok := fixedKinds[id]; ok {
		return Rule{Kind: kind}, nil
	}

	// schulze_stv must be tried first since it does not start with "stv"
	for _, prefix := range []struct {
		text string
		kind Kind
	}{
		{"schulze_stv", KindSchulzeSTV},
		{"stv", KindSTV},
	} {
		suffix, ok := strings.CutPrefix(id, prefix.text)
		if !ok {
			continue
		}
		if suffix == "" {
			return Rule{Kind: prefix.kind, Winners: 1}, nil
		}
		winners, err := strconv.Atoi(suffix)
		if err != nil || winners < 1 || strings.HasPrefix(suffix, "+") {
			return Rule{}, &InvalidRuleError{Rule: id}
		}
		return Rule{Kind: prefix.kind, Winners: winners}, nil
	}

	return Rule{}, &InvalidRuleError{Rule: id}
}

// ParseSystem parses a comma separated list of rule identifiers with an
// optional ":winners" suffix. A missing suffix yields zero winners.
func ParseSystem(system string) ([]Rule, int, error) {
	list, winnersText, hasWinners := strings.Cut(system, ":")

	winners := 0
	if hasWinners {
		var err error
		winners, err = strconv.Atoi(winnersText)
		if err != nil || winners < 1 {
			return nil, 0, fmt.Errorf("invalid winner count %q", winnersText)
		}
	}

	var parsed []Rule
	for _, id := range strings.Split(list, ",") {
		rule, err := ParseRule(id)
		if err != nil {
			return nil, 0, err
		}
		parsed = append(parsed, rule)
	}
	return parsed, winners, nil
}

// String returns the rule identifier
func (r Rule) String() string {
	switch r.Kind {
	case KindCondorcet:
		return "condorcet"
	case KindSchulze:
		return "schulze"
	case KindSchulzeOld:
		return "schulze_old"
	case KindSchulzeNew:
		return "schulze_new"
	case KindSteeringCommittee:
		return "stcom"
	case KindSTV:
		return "stv" + strconv.Itoa(r.Winners)
	case KindSchulzeSTV:
		return "schulze_stv" + strconv.Itoa(r.Winners)
	default:
		return fmt.Sprintf("unknown(%d)", int(r.Kind))
	}
}

// Name returns the display name of the rule
func (r Rule) Name() string {
	id := r.String()
	for _, s := range Systems {
		if s.ID == id {
			return s.Name
		}
	}
	switch r.Kind {
	case KindSTV:
		return fmt.Sprintf("STV, %d winners", r.Winners)
	case KindSchulzeSTV:
		return fmt.Sprintf("Schulze STV, %d winners", r.Winners)
	default:
		return id
	}
}

// Ordered reports whether the rule returns a ranking rather than a set
func (r Rule) Ordered() bool {
	switch r.Kind {
	case KindSchulze, KindSchulzeOld, KindSchulzeNew, KindSteeringCommittee:
		return true
	default:
		return false
	}
}
