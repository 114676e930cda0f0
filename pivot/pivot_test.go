// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pivot

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/bloc-alignment/models"
)

var (
	jan = time.Date(2021, 1, 15, 0, 0, 0, 0, time.UTC)
	feb = time.Date(2021, 2, 15, 0, 0, 0, 0, time.UTC)
)

func rec(id string, date time.Time, country string, vote models.Vote) models.VoteRecord {
	return models.VoteRecord{ResolutionID: id, Date: date, Year: date.Year(), Country: country, Vote: vote}
}

func TestBuildGroupsByResolution(t *testing.T) {
	m, report, err := Build([]models.VoteRecord{
		rec("R2", feb, "A", models.VoteNo),
		rec("R1", jan, "A", models.VoteYes),
		rec("R1", jan, "B", models.VoteAbstain),
		rec("R1", jan, "C", models.VoteAbsent),
		rec("R2", feb, "B", models.VoteYes),
	}, FirstWins)
	if err != nil {
		t.Fatal(err)
	}

	if m.Len() != 2 || report.Resolutions != 2 {
		t.Fatalf("expected 2 resolutions, got %d", m.Len())
	}
	r1 := m.At(0)
	if r1.ID != "R1" || r1.Year != 2021 {
		t.Errorf("first resolution = %s (%d), want R1 (2021)", r1.ID, r1.Year)
	}
	if r1.Vote("A") != models.VoteYes || r1.Vote("B") != models.VoteAbstain {
		t.Errorf("unexpected votes on R1: A=%v B=%v", r1.Vote("A"), r1.Vote("B"))
	}
	if r1.Vote("C") != models.VoteAbsent || r1.VoteCount() != 2 {
		t.Error("absent vote must not be recorded")
	}
	if diff := cmp.Diff([]string{"A", "B"}, m.Countries()); diff != "" {
		t.Errorf("countries mismatch (-want +got):\n%s", diff)
	}
	if report.Duplicates != 0 {
		t.Errorf("Duplicates = %d, want 0", report.Duplicates)
	}
}

func TestBuildSameIDDifferentDates(t *testing.T) {
	m, _, err := Build([]models.VoteRecord{
		rec("R1", jan, "A", models.VoteYes),
		rec("R1", feb, "A", models.VoteNo),
	}, FirstWins)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 {
		t.Errorf("(id, date) is the key: expected 2 resolutions, got %d", m.Len())
	}
}

func TestBuildResolutionWithOnlyAbsentVotes(t *testing.T) {
	m, _, err := Build([]models.VoteRecord{rec("R1", jan, "A", models.VoteAbsent)}, FirstWins)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 1 || m.At(0).VoteCount() != 0 {
		t.Errorf("resolution should exist with no votes, got len=%d", m.Len())
	}
}

func TestBuildDuplicatePolicies(t *testing.T) {
	records := []models.VoteRecord{
		rec("R1", jan, "A", models.VoteYes),
		rec("R1", jan, "A", models.VoteYes),
		rec("R1", jan, "B", models.VoteYes),
		rec("R1", jan, "B", models.VoteNo),
	}

	tests := []struct {
		policy DuplicatePolicy
		wantB  models.Vote
	}{
		{FirstWins, models.VoteYes},
		{LastWins, models.VoteNo},
		{RejectConflicts, models.VoteAbsent},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			m, report, err := Build(records, tt.policy)
			if err != nil {
				t.Fatal(err)
			}
			r := m.At(0)
			if r.Vote("A") != models.VoteYes {
				t.Errorf("identical duplicate changed A to %v", r.Vote("A"))
			}
			if r.Vote("B") != tt.wantB {
				t.Errorf("B = %v, want %v", r.Vote("B"), tt.wantB)
			}
			if report.Duplicates != 2 || report.Conflicts != 1 {
				t.Errorf("duplicates %d conflicts %d, want 2 and 1", report.Duplicates, report.Conflicts)
			}
			if len(report.Entries) != 2 || !report.Entries[1].Conflict {
				t.Fatalf("expected conflict entry, got %+v", report.Entries)
			}
			if report.Entries[1].Kept != tt.wantB {
				t.Errorf("entry kept %v, want %v", report.Entries[1].Kept, tt.wantB)
			}
		})
	}
}

func TestBuildRejectedCountryStaysAbsent(t *testing.T) {
	m, _, err := Build([]models.VoteRecord{
		rec("R1", jan, "B", models.VoteYes),
		rec("R1", jan, "B", models.VoteNo),
		rec("R1", jan, "B", models.VoteYes),
	}, RejectConflicts)
	if err != nil {
		t.Fatal(err)
	}
	if m.At(0).Vote("B") != models.VoteAbsent {
		t.Error("a rejected country must not be re-admitted by a later row")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	records := []models.VoteRecord{
		rec("R3", feb, "C", models.VoteNo),
		rec("R1", jan, "A", models.VoteYes),
		rec("R2", jan, "B", models.VoteYes),
	}
	a, _, _ := Build(records, FirstWins)
	b, _, _ := Build(records, FirstWins)

	for i := 0; i < a.Len(); i++ {
		if a.At(i).Key() != b.At(i).Key() {
			t.Fatalf("order differs at %d: %s vs %s", i, a.At(i).Key(), b.At(i).Key())
		}
	}
	if a.At(0).ID != "R1" || a.At(1).ID != "R2" || a.At(2).ID != "R3" {
		t.Errorf("unexpected order %s %s %s", a.At(0).ID, a.At(1).ID, a.At(2).ID)
	}
}

func TestParseDuplicatePolicy(t *testing.T) {
	for in, want := range map[string]DuplicatePolicy{"": FirstWins, "first": FirstWins, "LAST": LastWins, "reject": RejectConflicts} {
		got, err := ParseDuplicatePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseDuplicatePolicy(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseDuplicatePolicy("merge"); !errors.Is(err, models.ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestBuildRejectsUnknownPolicy(t *testing.T) {
	_, _, err := Build(nil, DuplicatePolicy(7))
	var cfgErr *models.ConfigError
	if !errors.As(err, &cfgErr) || !errors.Is(err, models.ErrInvalidPolicy) {
		t.Errorf("expected ConfigError wrapping ErrInvalidPolicy, got %v", err)
	}
}
