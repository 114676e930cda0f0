// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"slices"
	"strings"
)

// CountryGroup is a named, ordered set of country identifiers.
// Values are immutable once built.
type CountryGroup struct {
	name    string
	members []string
}

// NewCountryGroup validates and builds a group. Members must be non-empty
// and distinct.
func NewCountryGroup(name string, members ...string) (CountryGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CountryGroup{}, NewConfigError("group", ErrEmptyGroup, "group name is required")
	}
	if len(members) == 0 {
		return CountryGroup{}, NewConfigError("group."+name, ErrEmptyGroup, "no members")
	}

	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		m = strings.TrimSpace(m)
		if m == "" {
			return CountryGroup{}, NewConfigError("group."+name, ErrEmptyGroup, "blank member")
		}
		if seen[m] {
			return CountryGroup{}, NewConfigError("group."+name, ErrEmptyGroup, "duplicate member %q", m)
		}
		seen[m] = true
		out = append(out, m)
	}

	return CountryGroup{name: name, members: out}, nil
}

func (g CountryGroup) Name() string {
	return g.name
}

// Members returns a copy of the member list in configured order
func (g CountryGroup) Members() []string {
	return slices.Clone(g.members)
}

func (g CountryGroup) Size() int {
	return len(g.members)
}

func (g CountryGroup) Contains(country string) bool {
	return slices.Contains(g.members, country)
}

// IsZero reports whether the group was never built
func (g CountryGroup) IsZero() bool {
	return g.name == "" && len(g.members) == 0
}

func (g CountryGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}{g.name, g.members})
}
