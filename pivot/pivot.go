// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/bloc-alignment/models"
)

// DuplicatePolicy decides which vote survives when a country appears more
// than once on the same resolution.
type DuplicatePolicy int

const (
	// FirstWins keeps the earliest row in input order
	FirstWins DuplicatePolicy = iota
	// LastWins keeps the latest row in input order
	LastWins
	// RejectConflicts drops the country's vote when the rows disagree
	RejectConflicts
)

func (p DuplicatePolicy) String() string {
	switch p {
	case FirstWins:
		return "first"
	case LastWins:
		return "last"
	case RejectConflicts:
		return "reject"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(p))
}

// ParseDuplicatePolicy accepts "first", "last" or "reject"
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first", "first-wins":
		return FirstWins, nil
	case "last", "last-wins":
		return LastWins, nil
	case "reject":
		return RejectConflicts, nil
	}
	return 0, models.NewConfigError("duplicates", models.ErrInvalidPolicy, "unsupported duplicate policy %q", s)
}

// Validate rejects values outside the defined policies
func (p DuplicatePolicy) Validate() error {
	if p < FirstWins || p > RejectConflicts {
		return models.NewConfigError("duplicates", models.ErrInvalidPolicy, "unsupported duplicate policy %v", p)
	}
	return nil
}

type resolutionKey struct {
	id   string
	date time.Time
}

type bucket struct {
	key      resolutionKey
	votes    map[string]models.Vote
	rejected map[string]bool
}

// Build groups records by (resolution id, date) into a vote matrix. Records
// with an absent vote register the resolution but never count as a vote.
func Build(records []models.VoteRecord, policy DuplicatePolicy) (models.ResolutionVoteMatrix, models.PivotReport, error) {
	var report models.PivotReport
	if err := policy.Validate(); err != nil {
		return models.ResolutionVoteMatrix{}, report, err
	}

	buckets := make(map[resolutionKey]*bucket)
	var order []*bucket

	for _, rec := range records {
		key := resolutionKey{id: rec.ResolutionID, date: rec.Date}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{key: key, votes: make(map[string]models.Vote), rejected: make(map[string]bool)}
			buckets[key] = b
			order = append(order, b)
		}

		if !rec.Vote.Cast() || b.rejected[rec.Country] {
			continue
		}

		existing, seen := b.votes[rec.Country]
		if !seen {
			b.votes[rec.Country] = rec.Vote
			continue
		}

		entry := models.DuplicateEntry{
			ResolutionID: rec.ResolutionID,
			Date:         rec.Date,
			Country:      rec.Country,
			Kept:         existing,
			Discarded:    rec.Vote,
			Conflict:     existing != rec.Vote,
		}
		report.Duplicates++

		if entry.Conflict {
			report.Conflicts++
			switch policy {
			case LastWins:
				b.votes[rec.Country] = rec.Vote
				entry.Kept, entry.Discarded = rec.Vote, existing
			case RejectConflicts:
				delete(b.votes, rec.Country)
				b.rejected[rec.Country] = true
				entry.Kept = models.VoteAbsent
			}
			slog.Warn("conflicting duplicate vote",
				"resolution_id", rec.ResolutionID,
				"date", rec.Date.Format(models.DateLayout),
				"country", rec.Country,
				"kept", entry.Kept.String(),
				"discarded", entry.Discarded.String(),
				"policy", policy.String(),
			)
		}
		report.Entries = append(report.Entries, entry)
	}

	resolutions := make([]models.Resolution, 0, len(order))
	for _, b := range order {
		resolutions = append(resolutions, models.NewResolution(b.key.id, b.key.date, b.votes))
	}

	matrix, err := models.NewResolutionVoteMatrix(resolutions)
	if err != nil {
		return models.ResolutionVoteMatrix{}, report, fmt.Errorf("failed to build vote matrix: %w", err)
	}

	report.Resolutions = matrix.Len()
	report.Countries = len(matrix.Countries())

	return matrix, report, nil
}
