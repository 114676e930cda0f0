// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Group roles used by the API and the run result
const (
	RoleBloc       = "bloc"
	RoleComparison = "comparison"
)

// Input types

// RawVoteRow is one row of the input table, exactly as read.
// Line is the 1-indexed data row (header excluded).
type RawVoteRow struct {
	Line         int    `json:"line"`
	ResolutionID string `json:"resolution_id"`
	Date         string `json:"date"`
	CountryName  string `json:"country_name"`
	VoteCode     string `json:"vote_code"`
	// Malformed holds the parser error when the row could not be split
	// into fields
	Malformed    string `json:"malformed,omitempty"`
}

// VoteRecord is a normalized row
type VoteRecord struct {
	ResolutionID   string    `json:"resolution_id"`
	Date           time.Time `json:"date"`
	Year           int       `json:"year"`
	Country        string    `json:"country"`
	Vote           Vote      `json:"vote"`
	UnknownCountry bool      `json:"unknown_country,omitempty"`
}

// Load report

type IssueKind string

const (
	IssueMalformedRow      IssueKind = "malformed_row"
	IssueMissingResolution IssueKind = "missing_resolution_id"
	IssueMissingCountry    IssueKind = "missing_country"
	IssueMalformedDate     IssueKind = "malformed_date"
	IssueInvalidVote       IssueKind = "invalid_vote_code"
	IssueUnknownCountry    IssueKind = "unknown_country"
	IssueOutOfRange        IssueKind = "out_of_range"
)

type LoadIssue struct {
	Line   int       `json:"line"`
	Kind   IssueKind `json:"kind"`
	Detail string    `json:"detail"`
}

// LoadReport tallies everything the loader absorbed instead of failing.
type LoadReport struct {
	RowsRead           int         `json:"rows_read"`
	RowsAccepted       int         `json:"rows_accepted"`
	MalformedRows      int         `json:"malformed_rows"`
	MissingResolution  int         `json:"missing_resolution_id"`
	MissingCountry     int         `json:"missing_country"`
	MalformedDates     int         `json:"malformed_dates"`
	InvalidVoteCodes   int         `json:"invalid_vote_codes"`
	BlankVotes         int         `json:"blank_votes"`
	UnknownCountryRows int         `json:"unknown_country_rows"`
	UnknownCountries   []string    `json:"unknown_countries"`
	DroppedUnknown     int         `json:"dropped_unknown"`
	AliasedRows        int         `json:"aliased_rows"`
	OutOfRange         int         `json:"out_of_range"`
	Issues             []LoadIssue `json:"issues"`
}

// Malformed returns the number of rows skipped as malformed
func (r LoadReport) Malformed() int {
	return r.MalformedRows + r.MissingResolution + r.MissingCountry + r.MalformedDates
}

// Pivot report

// DuplicateEntry records one country voting more than once on a resolution
type DuplicateEntry struct {
	ResolutionID string    `json:"resolution_id"`
	Date         time.Time `json:"date"`
	Country      string    `json:"country"`
	Kept         Vote      `json:"kept"`
	Discarded    Vote      `json:"discarded"`
	Conflict     bool      `json:"conflict"`
}

type PivotReport struct {
	Resolutions int              `json:"resolutions"`
	Countries   int              `json:"countries"`
	Duplicates  int              `json:"duplicates"`
	Conflicts   int              `json:"conflicts"`
	Entries     []DuplicateEntry `json:"entries"`
}

// Classification

// CoalitionRecord is the per-resolution classification of a group.
// Nil pointers mean "none": no consensus, or nothing to compare.
// Unanimous needs every member to share the group vote; VotersAgree only
// needs at least two members to have voted, all the same way.
type CoalitionRecord struct {
	ResolutionID        string    `json:"resolution_id"`
	Date                time.Time `json:"date"`
	Year                int       `json:"year"`
	Participants        int       `json:"participants"`
	GroupVote           Vote      `json:"group_vote"`
	AgreementCount      *int      `json:"agreement_count"`
	MajorityVote        Vote      `json:"majority_vote"`
	AlignedWithMajority *bool     `json:"aligned_with_majority"`
	Cohesion            Metric    `json:"cohesion"`
	Unanimous           bool      `json:"unanimous"`
	VotersAgree         bool      `json:"voters_agree"`
	OpposesReference    *bool     `json:"opposes_reference,omitempty"`
}

// Agreement returns the agreement count and whether it is defined
func (r CoalitionRecord) Agreement() (int, bool) {
	if r.AgreementCount == nil {
		return 0, false
	}
	return *r.AgreementCount, true
}

// Aligned reports whether the record is explicitly aligned with the majority
func (r CoalitionRecord) Aligned() bool {
	return r.AlignedWithMajority != nil && *r.AlignedWithMajority
}

// Alignment results

type DyadicAlignment struct {
	CountryA   string `json:"country_a"`
	CountryB   string `json:"country_b"`
	Matches    int    `json:"matches"`
	JointTotal int    `json:"joint_total"`
	Pct        Metric `json:"pct"`
}

// AlignmentMatrix is square and symmetric; Cells[i][j] is the dyadic
// percentage of Countries[i] and Countries[j].
type AlignmentMatrix struct {
	Countries []string   `json:"countries"`
	Cells     [][]Metric `json:"cells"`
}

// AgreementTally counts agreement sizes over a set of coalition records.
// Percentages use ClassifiedResolutions as denominator, except
// PctUnanimous which is over TotalResolutions.
type AgreementTally struct {
	TotalResolutions      int         `json:"total_resolutions"`
	ClassifiedResolutions int         `json:"classified_resolutions"`
	Votes2Way             int         `json:"votes_2way"`
	Votes3Way             int         `json:"votes_3way"`
	Votes4Way             int         `json:"votes_4way"`
	VotesBySize           map[int]int `json:"votes_by_size"`
	VotesWithMajority     int         `json:"votes_with_majority"`
	Pct2Way               Metric      `json:"pct_2way"`
	Pct3Way               Metric      `json:"pct_3way"`
	Pct4Way               Metric      `json:"pct_4way"`
	PctMajority           Metric      `json:"pct_majority"`
	UnanimousVotes        int         `json:"unanimous_votes"`
	PctUnanimous          Metric      `json:"unanimity_pct"`
}

type YearSummary struct {
	Year int `json:"year"`
	AgreementTally
}

// TopicAlignmentRow is only produced when a topic mapping is supplied
type TopicAlignmentRow struct {
	TopicLabel            string `json:"topic_label"`
	TotalResolutions      int    `json:"total_resolutions"`
	ClassifiedResolutions int    `json:"classified_resolutions"`
	Agreement2Way         int    `json:"agreement_2way"`
	Agreement3Way         int    `json:"agreement_3way"`
	Agreement4Way         int    `json:"agreement_4way"`
	VotesWithMajority     int    `json:"votes_with_majority"`
	Pct2Way               Metric `json:"pct_2way"`
	Pct3Way               Metric `json:"pct_3way"`
	Pct4Way               Metric `json:"pct_4way"`
	PctMajority           Metric `json:"pct_majority"`
	UnanimousVotes        int    `json:"unanimous_votes"`
	PctUnanimous          Metric `json:"unanimity_pct"`
	PctAgreement          Metric `json:"pct_agreement"`
}

type TopicDivergenceRow struct {
	TopicLabel   string `json:"topic_label"`
	Pairs        int    `json:"pairs"`
	AvgAgreement Metric `json:"avg_agreement"`
	StdAgreement Metric `json:"agreement_std"`
	MinAgreement Metric `json:"min_agreement"`
	MaxAgreement Metric `json:"max_agreement"`
}

// SetSimilarity is the intersection-over-union of two "voted X" resolution
// sets, expressed as a percentage.
type SetSimilarity struct {
	A            string `json:"a"`
	B            string `json:"b"`
	Vote         Vote   `json:"vote"`
	Intersection int    `json:"intersection"`
	Union        int    `json:"union"`
	Similarity   Metric `json:"similarity"`
}

type MajoritySummary struct {
	TotalResolutions   int    `json:"total_resolutions"`
	AlignedResolutions int    `json:"aligned_resolutions"`
	AlignmentPct       Metric `json:"alignment_pct"`
}

// GroupComparison counts resolutions where two groups both reached
// agreement and agreed with each other.
type GroupComparison struct {
	GroupA    string `json:"group_a"`
	GroupB    string `json:"group_b"`
	Compared  int    `json:"compared"`
	SameVote  int    `json:"same_vote"`
	Agreement Metric `json:"agreement_pct"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
