// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import (
	"maps"
	"slices"
	"sort"

	"github.com/danielhkuo/bloc-alignment/models"
)

// ByTopic buckets records by the topic of their resolution and summarizes
// each bucket the same way Yearly does. Resolutions without a topic are
// skipped. A nil or empty mapping yields an empty table. Topics are keyed
// by resolution id alone, so every dated vote on that id shares its topic.
func ByTopic(records []models.CoalitionRecord, topics map[string]string) []models.TopicAlignmentRow {
	if len(topics) == 0 {
		return []models.TopicAlignmentRow{}
	}

	byTopic := make(map[string][]models.CoalitionRecord)
	for _, rec := range records {
		if label, ok := topics[rec.ResolutionID]; ok {
			byTopic[label] = append(byTopic[label], rec)
		}
	}

	out := make([]models.TopicAlignmentRow, 0, len(byTopic))
	for label, group := range byTopic {
		t := Summarize(group)
		out = append(out, models.TopicAlignmentRow{
			TopicLabel:            label,
			TotalResolutions:      t.TotalResolutions,
			ClassifiedResolutions: t.ClassifiedResolutions,
			Agreement2Way:         t.Votes2Way,
			Agreement3Way:         t.Votes3Way,
			Agreement4Way:         t.Votes4Way,
			VotesWithMajority:     t.VotesWithMajority,
			Pct2Way:               t.Pct2Way,
			Pct3Way:               t.Pct3Way,
			Pct4Way:               t.Pct4Way,
			PctMajority:           t.PctMajority,
			UnanimousVotes:        t.UnanimousVotes,
			PctUnanimous:          t.PctUnanimous,
			PctAgreement:          models.Percentage(t.ClassifiedResolutions, t.TotalResolutions),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PctAgreement != b.PctAgreement {
			return descending(a.PctAgreement, b.PctAgreement)
		}
		return a.TopicLabel < b.TopicLabel
	})

	return out
}

// DivergenceByTopic measures how far apart the given countries vote within
// each topic: mean, population standard deviation, min and max of their
// pairwise alignment. Topics where no pair has a joint vote are omitted.
// Like ByTopic, the mapping is keyed by resolution id alone.
func DivergenceByTopic(m models.ResolutionVoteMatrix, countries []string, topics map[string]string) []models.TopicDivergenceRow {
	out := []models.TopicDivergenceRow{}
	if len(topics) == 0 {
		return out
	}

	byTopic := make(map[string][]models.Resolution)
	for _, r := range m.Resolutions() {
		if label, ok := topics[r.ID]; ok {
			byTopic[label] = append(byTopic[label], r)
		}
	}

	for _, label := range slices.Sorted(maps.Keys(byTopic)) {
		var values []float64
		for _, p := range pairs(byTopic[label], countries) {
			if v, ok := p.Pct.Value(); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		mean, variance := meanVariance(values)
		out = append(out, models.TopicDivergenceRow{
			TopicLabel:   label,
			Pairs:        len(values),
			AvgAgreement: models.Defined(mean),
			StdAgreement: models.Defined(stddev(variance)),
			MinAgreement: models.Defined(slices.Min(values)),
			MaxAgreement: models.Defined(slices.Max(values)),
		})
	}

	return out
}
