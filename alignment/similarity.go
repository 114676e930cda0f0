// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import "github.com/danielhkuo/bloc-alignment/models"

// Jaccard compares the sets of resolutions on which each country cast vote.
// The similarity is intersection over union as a percentage, undefined when
// neither country ever cast that vote.
func Jaccard(m models.ResolutionVoteMatrix, a, b string, vote models.Vote) models.SetSimilarity {
	return similarity(m, a, b, vote,
		func(r models.Resolution) bool { return r.Vote(a) == vote },
		func(r models.Resolution) bool { return r.Vote(b) == vote },
	)
}

// GroupJaccard is Jaccard for two groups. A group is counted as voting vote
// on a resolution when at least one member voted and every member who voted
// cast that value. It does not depend on the group-vote mode.
func GroupJaccard(m models.ResolutionVoteMatrix, a, b models.CountryGroup, vote models.Vote) models.SetSimilarity {
	return similarity(m, a.Name(), b.Name(), vote,
		func(r models.Resolution) bool { return groupVoted(r, a, vote) },
		func(r models.Resolution) bool { return groupVoted(r, b, vote) },
	)
}

func similarity(m models.ResolutionVoteMatrix, nameA, nameB string, vote models.Vote, inA, inB func(models.Resolution) bool) models.SetSimilarity {
	s := models.SetSimilarity{A: nameA, B: nameB, Vote: vote}
	if !vote.Cast() {
		s.Similarity = models.Undefined()
		return s
	}

	for i := 0; i < m.Len(); i++ {
		r := m.At(i)
		ina, inb := inA(r), inB(r)
		if ina && inb {
			s.Intersection++
		}
		if ina || inb {
			s.Union++
		}
	}

	s.Similarity = models.Percentage(s.Intersection, s.Union)
	return s
}

func groupVoted(r models.Resolution, g models.CountryGroup, vote models.Vote) bool {
	voted := 0
	for _, member := range g.Members() {
		v := r.Vote(member)
		if !v.Cast() {
			continue
		}
		if v != vote {
			return false
		}
		voted++
	}
	return voted > 0
}
