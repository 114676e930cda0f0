// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

import (
	"strings"

	"github.com/danielhkuo/bloc-alignment/models"
)

// DefaultMinAgreement is the smallest number of members that counts as
// agreement
const DefaultMinAgreement = 2

type Options struct {
	// MinAgreement defaults to DefaultMinAgreement when zero
	MinAgreement int
	TieBreak     TieBreak
	// Reference is the country the anti-majority unanimity signal is
	// measured against. Empty disables it.
	Reference string
}

// Classifier derives one CoalitionRecord per resolution for a fixed group.
type Classifier struct {
	group   models.CountryGroup
	members []string
	opts    Options
}

// New validates the group and options
func New(group models.CountryGroup, opts Options) (*Classifier, error) {
	if group.Size() == 0 {
		return nil, models.NewConfigError("group", models.ErrEmptyGroup, "group has no members")
	}
	if opts.MinAgreement == 0 {
		opts.MinAgreement = DefaultMinAgreement
	}
	if opts.MinAgreement < DefaultMinAgreement || opts.MinAgreement > group.Size() {
		return nil, models.NewConfigError("min-agreement", models.ErrInvalidThreshold,
			"%d is outside [%d, %d] for group %s", opts.MinAgreement, DefaultMinAgreement, group.Size(), group.Name())
	}
	if opts.TieBreak != TieNoWinner && opts.TieBreak != TiePriority {
		return nil, models.NewConfigError("tie-break", models.ErrInvalidPolicy, "unsupported tie-break %v", opts.TieBreak)
	}
	opts.Reference = strings.TrimSpace(opts.Reference)

	return &Classifier{group: group, members: group.Members(), opts: opts}, nil
}

func (c *Classifier) Group() models.CountryGroup {
	return c.group
}

// Classify returns one record per resolution, in matrix order
func (c *Classifier) Classify(m models.ResolutionVoteMatrix) []models.CoalitionRecord {
	records := make([]models.CoalitionRecord, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		records = append(records, c.ClassifyResolution(m.At(i)))
	}
	return records
}

// ClassifyResolution derives the group vote, agreement count and majority
// alignment for one resolution. Every country with a cast vote on the
// resolution participates in the majority.
func (c *Classifier) ClassifyResolution(r models.Resolution) models.CoalitionRecord {
	rec := models.CoalitionRecord{
		ResolutionID: r.ID,
		Date:         r.Date,
		Year:         r.Year,
	}

	groupVotes := make([]models.Vote, 0, len(c.members))
	for _, member := range c.members {
		if v := r.Vote(member); v.Cast() {
			groupVotes = append(groupVotes, v)
		}
	}
	rec.Participants = len(groupVotes)

	tally := NewTally(groupVotes)
	rec.Cohesion = models.Percentage(tally.Max(), tally.Total())
	rec.VotersAgree = tally.Total() >= 2 && tally.Max() == tally.Total()

	if vote, count, ok := tally.Mode(c.opts.TieBreak); ok && count >= c.opts.MinAgreement {
		rec.GroupVote = vote
		rec.AgreementCount = &count
	}

	if majority, _, ok := Mode(r.Votes(), c.opts.TieBreak); ok {
		rec.MajorityVote = majority
	}

	if rec.GroupVote.Cast() && rec.MajorityVote.Cast() {
		aligned := rec.GroupVote == rec.MajorityVote
		rec.AlignedWithMajority = &aligned
	}

	if n, ok := rec.Agreement(); ok && n == len(c.members) {
		rec.Unanimous = true
	}

	if c.opts.Reference != "" {
		if ref := r.Vote(c.opts.Reference); ref.Cast() {
			opposes := rec.Unanimous && ref != rec.GroupVote
			rec.OpposesReference = &opposes
		}
	}

	return rec
}
