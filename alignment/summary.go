// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import (
	"maps"
	"slices"

	"github.com/danielhkuo/bloc-alignment/models"
)

// Summarize tallies agreement sizes and majority alignment over records.
// Percentages are taken over records with a defined agreement count;
// unanimity is taken over all records.
func Summarize(records []models.CoalitionRecord) models.AgreementTally {
	t := models.AgreementTally{
		TotalResolutions: len(records),
		VotesBySize:      make(map[int]int),
	}

	for _, rec := range records {
		if rec.VotersAgree {
			t.UnanimousVotes++
		}
		n, ok := rec.Agreement()
		if !ok {
			continue
		}
		t.ClassifiedResolutions++
		t.VotesBySize[n]++
		if rec.Aligned() {
			t.VotesWithMajority++
		}
	}

	t.Votes2Way = t.VotesBySize[2]
	t.Votes3Way = t.VotesBySize[3]
	t.Votes4Way = t.VotesBySize[4]
	t.Pct2Way = models.Percentage(t.Votes2Way, t.ClassifiedResolutions)
	t.Pct3Way = models.Percentage(t.Votes3Way, t.ClassifiedResolutions)
	t.Pct4Way = models.Percentage(t.Votes4Way, t.ClassifiedResolutions)
	t.PctMajority = models.Percentage(t.VotesWithMajority, t.ClassifiedResolutions)
	t.PctUnanimous = models.Percentage(t.UnanimousVotes, t.TotalResolutions)

	return t
}

// Yearly summarizes records per year, oldest first
func Yearly(records []models.CoalitionRecord) []models.YearSummary {
	byYear := make(map[int][]models.CoalitionRecord)
	for _, rec := range records {
		byYear[rec.Year] = append(byYear[rec.Year], rec)
	}

	out := make([]models.YearSummary, 0, len(byYear))
	for _, year := range slices.Sorted(maps.Keys(byYear)) {
		out = append(out, models.YearSummary{
			Year:           year,
			AgreementTally: Summarize(byYear[year]),
		})
	}
	return out
}

// Majority summarizes alignment with the body-wide majority. Only records
// where alignment is defined are counted.
func Majority(records []models.CoalitionRecord) models.MajoritySummary {
	var s models.MajoritySummary
	for _, rec := range records {
		if rec.AlignedWithMajority == nil {
			continue
		}
		s.TotalResolutions++
		if *rec.AlignedWithMajority {
			s.AlignedResolutions++
		}
	}
	s.AlignmentPct = models.Percentage(s.AlignedResolutions, s.TotalResolutions)
	return s
}

// CompareGroups counts the resolutions where both groups reached agreement
// and how often their group votes matched.
func CompareGroups(nameA string, a []models.CoalitionRecord, nameB string, b []models.CoalitionRecord) models.GroupComparison {
	c := models.GroupComparison{GroupA: nameA, GroupB: nameB}

	other := make(map[string]models.CoalitionRecord, len(b))
	for _, rec := range b {
		other[recordKey(rec)] = rec
	}

	for _, rec := range a {
		if _, ok := rec.Agreement(); !ok {
			continue
		}
		match, found := other[recordKey(rec)]
		if !found {
			continue
		}
		if _, ok := match.Agreement(); !ok {
			continue
		}
		c.Compared++
		if rec.GroupVote == match.GroupVote {
			c.SameVote++
		}
	}

	c.Agreement = models.Percentage(c.SameVote, c.Compared)
	return c
}

func recordKey(rec models.CoalitionRecord) string {
	return rec.ResolutionID + "@" + rec.Date.Format(models.DateLayout)
}
