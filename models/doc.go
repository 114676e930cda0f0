// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the data model shared by every pipeline stage.

# Votes

Vote is an enum with a meaningful zero value:

	VoteAbsent  - no vote recorded (not the same as abstaining)
	VoteYes     - "Y"
	VoteNo      - "N"
	VoteAbstain - "A"

ParseVote accepts the single-letter codes and the full words. Absent votes
encode as JSON null.

# Undefined Results

Metric carries a percentage or statistic that may have no data:

	pct := models.Percentage(matches, jointTotal) // undefined when jointTotal == 0

Undefined metrics encode as JSON null. They are never NaN and never 0.

# Stages

  - RawVoteRow: input table row
  - VoteRecord: normalized row (Loader output)
  - ResolutionVoteMatrix: resolution → country → vote (PivotBuilder output)
  - CoalitionRecord: per-resolution group classification
  - DyadicAlignment, AlignmentMatrix, YearSummary, TopicAlignmentRow,
    SetSimilarity, MajoritySummary, GroupComparison: aggregate tables

# Configuration Values

CountryGroup is built with NewCountryGroup and is immutable afterwards.
Invalid configuration is reported as *ConfigError wrapping one of:

	ErrInvalidYearRange
	ErrEmptyGroup
	ErrInvalidThreshold
	ErrInvalidPolicy
*/
package models
