// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/danielhkuo/bloc-alignment/alignment"
	"github.com/danielhkuo/bloc-alignment/coalition"
	"github.com/danielhkuo/bloc-alignment/digest"
	"github.com/danielhkuo/bloc-alignment/loader"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pivot"
	"github.com/dustin/go-humanize"
)

// RunInfo echoes the effective configuration of a run
type RunInfo struct {
	StartYear    int    `json:"start_year,omitempty"`
	EndYear      int    `json:"end_year,omitempty"`
	MinAgreement int    `json:"min_agreement"`
	TieBreak     string `json:"tie_break"`
	Duplicates   string `json:"duplicates"`
	Unknown      string `json:"unknown"`
	Reference    string `json:"reference,omitempty"`
}

// GroupResult holds everything derived from one group's classification
type GroupResult struct {
	Group    models.CountryGroup      `json:"group"`
	Summary  models.AgreementTally    `json:"summary"`
	Majority models.MajoritySummary   `json:"majority"`
	Yearly   []models.YearSummary     `json:"yearly"`
	Records  []models.CoalitionRecord `json:"records"`
}

// Result is the immutable output of one run. Serializing the same inputs
// and settings always produces identical bytes.
type Result struct {
	RunID      string  `json:"run_id"`
	InputsHash string  `json:"inputs_hash"`
	Settings   RunInfo `json:"settings"`

	Load  models.LoadReport  `json:"load"`
	Pivot models.PivotReport `json:"pivot"`

	Bloc       *GroupResult `json:"bloc"`
	Comparison *GroupResult `json:"comparison,omitempty"`

	Alignment  models.AlignmentMatrix      `json:"alignment_matrix"`
	Pairs      []models.DyadicAlignment    `json:"alignment_pairs"`
	Variance   models.Metric               `json:"agreement_variance"`
	Topics     []models.TopicAlignmentRow  `json:"topics"`
	Divergence []models.TopicDivergenceRow `json:"topic_divergence"`

	Similarity []models.SetSimilarity  `json:"similarity,omitempty"`
	Compare    *models.GroupComparison `json:"group_agreement,omitempty"`

	digest    digest.Digest
	matrix    models.ResolutionVoteMatrix
	directory loader.Directory
}

// Run executes Loader, PivotBuilder, CoalitionClassifier and
// AlignmentCalculator over rows. Configuration errors are returned before
// any row is read; data-quality problems only show up in the reports.
func Run(rows []models.RawVoteRow, topics map[string]string, s Settings) (*Result, error) {
	st, err := s.prepare()
	if err != nil {
		return nil, err
	}

	d := digest.Inputs(rows, topics, s.Canonical())
	res := &Result{
		RunID:      d.RunID().String(),
		InputsHash: d.Hex(),
		Settings: RunInfo{
			StartYear:    s.StartYear,
			EndYear:      s.EndYear,
			MinAgreement: max(s.MinAgreement, coalition.DefaultMinAgreement),
			TieBreak:     s.TieBreak.String(),
			Duplicates:   s.Duplicates.String(),
			Unknown:      s.Unknown.String(),
			Reference:    st.reference,
		},
		digest:    d,
		directory: st.directory,
	}

	records, report := st.loader.Load(rows)
	res.Load = report
	slog.Info("votes loaded",
		"rows", humanize.Comma(int64(report.RowsRead)),
		"accepted", humanize.Comma(int64(report.RowsAccepted)),
		"malformed", report.Malformed(),
		"unknown_countries", len(report.UnknownCountries),
	)

	matrix, pivotReport, err := pivot.Build(records, s.Duplicates)
	if err != nil {
		return nil, fmt.Errorf("failed to build vote matrix: %w", err)
	}
	res.Pivot = pivotReport
	res.matrix = matrix
	slog.Info("vote matrix built",
		"resolutions", humanize.Comma(int64(pivotReport.Resolutions)),
		"countries", humanize.Comma(int64(pivotReport.Countries)),
		"duplicates", pivotReport.Duplicates,
		"conflicts", pivotReport.Conflicts,
	)

	res.Bloc = classify(st.bloc, matrix)
	countries := st.bloc.Group().Members()

	if st.comparison != nil {
		res.Comparison = classify(st.comparison, matrix)
		for _, m := range st.comparison.Group().Members() {
			if !slices.Contains(countries, m) {
				countries = append(countries, m)
			}
		}

		agreement := alignment.CompareGroups(
			st.bloc.Group().Name(), res.Bloc.Records,
			st.comparison.Group().Name(), res.Comparison.Records,
		)
		res.Compare = &agreement

		for _, v := range models.CastVotes {
			res.Similarity = append(res.Similarity,
				alignment.GroupJaccard(matrix, st.bloc.Group(), st.comparison.Group(), v))
		}
	}

	res.Alignment = alignment.DyadicMatrix(matrix, countries)
	res.Pairs = alignment.DyadicPairs(matrix, countries)
	res.Variance = alignment.AgreementVariance(matrix, st.bloc.Group().Members())
	res.Topics = alignment.ByTopic(res.Bloc.Records, topics)
	res.Divergence = alignment.DivergenceByTopic(matrix, st.bloc.Group().Members(), topics)

	slog.Info("alignment computed",
		"run_id", res.RunID,
		"classified", humanize.Comma(int64(res.Bloc.Summary.ClassifiedResolutions)),
		"topics", len(res.Topics),
	)

	return res, nil
}

func classify(c *coalition.Classifier, m models.ResolutionVoteMatrix) *GroupResult {
	records := c.Classify(m)
	return &GroupResult{
		Group:    c.Group(),
		Summary:  alignment.Summarize(records),
		Majority: alignment.Majority(records),
		Yearly:   alignment.Yearly(records),
		Records:  records,
	}
}

// Matrix returns the vote matrix the run was computed from
func (r *Result) Matrix() models.ResolutionVoteMatrix {
	return r.matrix
}

// ETag returns the short inputs digest
func (r *Result) ETag() string {
	return r.digest.Short()
}

// Group returns the bloc or comparison result by role
func (r *Result) Group(role string) (*GroupResult, bool) {
	switch role {
	case "", models.RoleBloc:
		return r.Bloc, r.Bloc != nil
	case models.RoleComparison:
		return r.Comparison, r.Comparison != nil
	}
	return nil, false
}

// ResolveCountry maps a user-supplied name onto the id used in the matrix
// and reports whether the country has any votes
func (r *Result) ResolveCountry(name string) (string, bool) {
	id, _, _ := r.directory.Resolve(name)
	return id, r.matrix.HasCountry(id)
}
