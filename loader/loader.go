// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/danielhkuo/bloc-alignment/models"
)

// maxIssues caps the per-row issue sample kept in the report
const maxIssues = 50

// UnknownPolicy decides what happens to rows whose country is not in the
// directory.
type UnknownPolicy int

const (
	// UnknownPassThrough keeps the row and flags it
	UnknownPassThrough UnknownPolicy = iota
	// UnknownDrop removes the row
	UnknownDrop
)

func (p UnknownPolicy) String() string {
	switch p {
	case UnknownPassThrough:
		return "pass"
	case UnknownDrop:
		return "drop"
	}
	return fmt.Sprintf("UnknownPolicy(%d)", int(p))
}

// ParseUnknownPolicy accepts "pass" or "drop"
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pass", "pass-through", "passthrough":
		return UnknownPassThrough, nil
	case "drop":
		return UnknownDrop, nil
	}
	return 0, models.NewConfigError("unknown", models.ErrInvalidPolicy, "unsupported unknown-country policy %q", s)
}

// Options configures a Loader. A zero StartYear or EndYear leaves that side
// of the window open.
type Options struct {
	Directory Directory
	Unknown   UnknownPolicy
	StartYear int
	EndYear   int
}

// Loader normalizes raw rows. It holds only immutable configuration.
type Loader struct {
	opts Options
}

// New validates the options
func New(opts Options) (*Loader, error) {
	if opts.StartYear != 0 && opts.EndYear != 0 && opts.StartYear > opts.EndYear {
		return nil, models.NewConfigError("years", models.ErrInvalidYearRange,
			"start year %d is after end year %d", opts.StartYear, opts.EndYear)
	}
	if opts.Unknown != UnknownPassThrough && opts.Unknown != UnknownDrop {
		return nil, models.NewConfigError("unknown", models.ErrInvalidPolicy, "unsupported policy %v", opts.Unknown)
	}
	return &Loader{opts: opts}, nil
}

var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO-8601 date or timestamp and truncates it to the
// calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// InRange reports whether year falls inside the inclusive window
func (l *Loader) InRange(year int) bool {
	if l.opts.StartYear != 0 && year < l.opts.StartYear {
		return false
	}
	if l.opts.EndYear != 0 && year > l.opts.EndYear {
		return false
	}
	return true
}

// Load normalizes rows. Bad rows are counted in the report and never abort
// the load.
func (l *Loader) Load(rows []models.RawVoteRow) ([]models.VoteRecord, models.LoadReport) {
	report := models.LoadReport{RowsRead: len(rows)}
	records := make([]models.VoteRecord, 0, len(rows))
	unknown := make(map[string]bool)

	issue := func(row models.RawVoteRow, kind models.IssueKind, detail string) {
		if len(report.Issues) < maxIssues {
			report.Issues = append(report.Issues, models.LoadIssue{Line: row.Line, Kind: kind, Detail: detail})
		}
	}

	for _, row := range rows {
		if row.Malformed != "" {
			report.MalformedRows++
			issue(row, models.IssueMalformedRow, row.Malformed)
			continue
		}

		resolutionID := strings.TrimSpace(row.ResolutionID)
		if resolutionID == "" {
			report.MissingResolution++
			issue(row, models.IssueMissingResolution, "resolution id is blank")
			continue
		}

		date, err := ParseDate(row.Date)
		if err != nil {
			report.MalformedDates++
			issue(row, models.IssueMalformedDate, err.Error())
			continue
		}

		if !l.InRange(date.Year()) {
			report.OutOfRange++
			continue
		}

		if strings.TrimSpace(row.CountryName) == "" {
			report.MissingCountry++
			issue(row, models.IssueMissingCountry, "country name is blank")
			continue
		}

		country, aliased, known := l.opts.Directory.Resolve(row.CountryName)
		if aliased {
			report.AliasedRows++
		}
		if !known {
			report.UnknownCountryRows++
			if !unknown[country] {
				unknown[country] = true
				issue(row, models.IssueUnknownCountry, country)
			}
			if l.opts.Unknown == UnknownDrop {
				report.DroppedUnknown++
				continue
			}
		}

		vote, ok := models.ParseVote(row.VoteCode)
		switch {
		case !ok:
			report.InvalidVoteCodes++
			issue(row, models.IssueInvalidVote, fmt.Sprintf("vote code %q", row.VoteCode))
		case vote == models.VoteAbsent:
			report.BlankVotes++
		}

		records = append(records, models.VoteRecord{
			ResolutionID:   resolutionID,
			Date:           date,
			Year:           date.Year(),
			Country:        country,
			Vote:           vote,
			UnknownCountry: !known,
		})
	}

	report.RowsAccepted = len(records)
	report.UnknownCountries = slices.Sorted(maps.Keys(unknown))

	if report.UnknownCountryRows > 0 {
		slog.Debug("unknown countries in input",
			"names", len(report.UnknownCountries),
			"rows", report.UnknownCountryRows,
			"policy", l.opts.Unknown.String(),
		)
	}

	return records, report
}
