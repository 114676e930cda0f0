// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

var ErrDuplicateResolution = errors.New("duplicate resolution key")

// DateLayout is the calendar-date layout used for resolution keys
const DateLayout = "2006-01-02"

// Resolution is one roll-call vote event and the votes cast on it.
// Countries without a vote are absent from the map.
type Resolution struct {
	ID    string
	Date  time.Time
	Year  int
	votes map[string]Vote
}

// NewResolution copies votes, dropping absent entries
func NewResolution(id string, date time.Time, votes map[string]Vote) Resolution {
	cleaned := make(map[string]Vote, len(votes))
	for c, v := range votes {
		if v.Cast() {
			cleaned[c] = v
		}
	}
	return Resolution{ID: id, Date: date, Year: date.Year(), votes: cleaned}
}

// Key is the unique (resolution id, date) key
func (r Resolution) Key() string {
	return r.ID + "@" + r.Date.Format(DateLayout)
}

// Vote returns the country's vote or VoteAbsent
func (r Resolution) Vote(country string) Vote {
	return r.votes[country]
}

// Participants returns the sorted countries that cast a vote
func (r Resolution) Participants() []string {
	return slices.Sorted(maps.Keys(r.votes))
}

// Votes returns every cast vote, ordered by country
func (r Resolution) Votes() []Vote {
	out := make([]Vote, 0, len(r.votes))
	for _, c := range r.Participants() {
		out = append(out, r.votes[c])
	}
	return out
}

func (r Resolution) VoteCount() int {
	return len(r.votes)
}

// ResolutionVoteMatrix maps each resolution to its country votes. Resolutions
// are ordered by date then id and are unique per Key.
type ResolutionVoteMatrix struct {
	resolutions []Resolution
	countries   []string
}

// NewResolutionVoteMatrix orders the resolutions and rejects duplicate keys.
func NewResolutionVoteMatrix(resolutions []Resolution) (ResolutionVoteMatrix, error) {
	sorted := slices.Clone(resolutions)
	slices.SortStableFunc(sorted, func(a, b Resolution) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	seenKeys := make(map[string]bool, len(sorted))
	seenCountries := make(map[string]bool)
	for _, r := range sorted {
		if seenKeys[r.Key()] {
			return ResolutionVoteMatrix{}, fmt.Errorf("%w: %s", ErrDuplicateResolution, r.Key())
		}
		seenKeys[r.Key()] = true
		for c := range r.votes {
			seenCountries[c] = true
		}
	}

	return ResolutionVoteMatrix{
		resolutions: sorted,
		countries:   slices.Sorted(maps.Keys(seenCountries)),
	}, nil
}

func (m ResolutionVoteMatrix) Len() int {
	return len(m.resolutions)
}

func (m ResolutionVoteMatrix) At(i int) Resolution {
	return m.resolutions[i]
}

// Resolutions returns the ordered resolutions. The slice is a copy.
func (m ResolutionVoteMatrix) Resolutions() []Resolution {
	return slices.Clone(m.resolutions)
}

// Countries returns every country with at least one cast vote, sorted
func (m ResolutionVoteMatrix) Countries() []string {
	return slices.Clone(m.countries)
}

func (m ResolutionVoteMatrix) HasCountry(country string) bool {
	_, found := slices.BinarySearch(m.countries, country)
	return found
}
