// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/bloc-alignment/models"
)

// TieBreak decides the mode when two vote values are equally frequent.
type TieBreak int

const (
	// TieNoWinner yields no mode on a tie at the top
	TieNoWinner TieBreak = iota
	// TiePriority resolves ties in the order YES > NO > ABSTAIN
	TiePriority
)

func (t TieBreak) String() string {
	switch t {
	case TieNoWinner:
		return "none"
	case TiePriority:
		return "priority"
	}
	return fmt.Sprintf("TieBreak(%d)", int(t))
}

// ParseTieBreak accepts "none" or "priority"
func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "no-winner":
		return TieNoWinner, nil
	case "priority":
		return TiePriority, nil
	}
	return 0, models.NewConfigError("tie-break", models.ErrInvalidPolicy, "unsupported tie-break %q", s)
}

// Tally counts each cast value. Absent votes are ignored.
type Tally [4]int

func NewTally(votes []models.Vote) Tally {
	var t Tally
	for _, v := range votes {
		if v.Cast() {
			t[v]++
		}
	}
	return t
}

// Max returns the highest count
func (t Tally) Max() int {
	best := 0
	for _, v := range models.CastVotes {
		best = max(best, t[v])
	}
	return best
}

// Total returns the number of cast votes
func (t Tally) Total() int {
	return t[models.VoteYes] + t[models.VoteNo] + t[models.VoteAbstain]
}

// Mode returns the most frequent cast value and its count. ok is false when
// nothing was cast, or on a tie under TieNoWinner; count is still the top
// frequency in that case.
func Mode(votes []models.Vote, tb TieBreak) (vote models.Vote, count int, ok bool) {
	return NewTally(votes).Mode(tb)
}

func (t Tally) Mode(tb TieBreak) (vote models.Vote, count int, ok bool) {
	count = t.Max()
	if count == 0 {
		return models.VoteAbsent, 0, false
	}

	winners := 0
	for _, v := range models.CastVotes {
		if t[v] == count {
			if winners == 0 {
				vote = v
			}
			winners++
		}
	}

	if winners > 1 && tb == TieNoWinner {
		return models.VoteAbsent, count, false
	}
	return vote, count, true
}
