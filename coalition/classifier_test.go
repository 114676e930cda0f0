// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package coalition

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/bloc-alignment/models"
)

const (
	Y = models.VoteYes
	N = models.VoteNo
	A = models.VoteAbstain
	X = models.VoteAbsent
)

var day = time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC)

func group(t *testing.T) models.CountryGroup {
	t.Helper()
	g, err := models.NewCountryGroup("bloc", "A", "B", "C", "D")
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func resolution(id string, votes map[string]models.Vote) models.Resolution {
	return models.NewResolution(id, day, votes)
}

func TestMode(t *testing.T) {
	tests := []struct {
		name      string
		votes     []models.Vote
		tb        TieBreak
		wantVote  models.Vote
		wantCount int
		wantOK    bool
	}{
		{"empty", nil, TieNoWinner, X, 0, false},
		{"only absent", []models.Vote{X, X}, TieNoWinner, X, 0, false},
		{"clear winner", []models.Vote{Y, Y, N}, TieNoWinner, Y, 2, true},
		{"tie no winner", []models.Vote{Y, Y, N, N}, TieNoWinner, X, 2, false},
		{"tie priority yes", []models.Vote{N, N, Y, Y}, TiePriority, Y, 2, true},
		{"tie priority no over abstain", []models.Vote{A, N}, TiePriority, N, 1, true},
		{"single vote", []models.Vote{A}, TieNoWinner, A, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, ok := Mode(tt.votes, tt.tb)
			if v != tt.wantVote || n != tt.wantCount || ok != tt.wantOK {
				t.Errorf("Mode() = %v, %d, %v; want %v, %d, %v", v, n, ok, tt.wantVote, tt.wantCount, tt.wantOK)
			}
		})
	}
}

func TestClassifyScenario(t *testing.T) {
	c, err := New(group(t), Options{})
	if err != nil {
		t.Fatal(err)
	}

	r1 := c.ClassifyResolution(resolution("R1", map[string]models.Vote{"A": Y, "B": Y, "C": Y, "D": N}))
	if n, ok := r1.Agreement(); r1.GroupVote != Y || !ok || n != 3 {
		t.Errorf("R1: group vote %v agreement %v, want YES / 3", r1.GroupVote, r1.AgreementCount)
	}

	r2 := c.ClassifyResolution(resolution("R2", map[string]models.Vote{"A": Y, "B": N, "C": A, "D": N}))
	if n, ok := r2.Agreement(); r2.GroupVote != N || !ok || n != 2 {
		t.Errorf("R2: group vote %v agreement %v, want NO / 2", r2.GroupVote, r2.AgreementCount)
	}
	if v, _ := r2.Cohesion.Value(); v != 50 {
		t.Errorf("R2 cohesion = %v, want 50", r2.Cohesion)
	}
}

func TestClassifyNoConsensus(t *testing.T) {
	tests := []struct {
		name  string
		votes map[string]models.Vote
	}{
		{"single participant", map[string]models.Vote{"A": Y}},
		{"all different", map[string]models.Vote{"A": Y, "B": N, "C": A}},
		{"two-two tie", map[string]models.Vote{"A": Y, "B": Y, "C": N, "D": N}},
		{"nobody voted", map[string]models.Vote{"OTHER": Y}},
	}

	c, _ := New(group(t), Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.ClassifyResolution(resolution("R", tt.votes))
			if rec.GroupVote.Cast() || rec.AgreementCount != nil {
				t.Errorf("expected no consensus, got %v / %v", rec.GroupVote, rec.AgreementCount)
			}
			if rec.AlignedWithMajority != nil {
				t.Errorf("alignment must be undefined without a group vote, got %v", *rec.AlignedWithMajority)
			}
		})
	}
}

func TestClassifyTiePriority(t *testing.T) {
	c, _ := New(group(t), Options{TieBreak: TiePriority})
	rec := c.ClassifyResolution(resolution("R", map[string]models.Vote{"A": N, "B": N, "C": Y, "D": Y}))
	if n, ok := rec.Agreement(); rec.GroupVote != Y || !ok || n != 2 {
		t.Errorf("priority tie-break: got %v / %v, want YES / 2", rec.GroupVote, rec.AgreementCount)
	}
}

func TestClassifyMinAgreement(t *testing.T) {
	c, err := New(group(t), Options{MinAgreement: 3})
	if err != nil {
		t.Fatal(err)
	}
	rec := c.ClassifyResolution(resolution("R", map[string]models.Vote{"A": Y, "B": Y, "C": N}))
	if rec.AgreementCount != nil {
		t.Errorf("2 members below threshold 3 must be none, got %d", *rec.AgreementCount)
	}
}

func TestClassifyMajorityAlignment(t *testing.T) {
	c, _ := New(group(t), Options{})

	votes := map[string]models.Vote{"A": Y, "B": Y, "C": Y, "D": N, "E": N, "F": N, "G": N, "H": N}
	rec := c.ClassifyResolution(resolution("R", votes))
	if rec.MajorityVote != N {
		t.Fatalf("majority = %v, want NO", rec.MajorityVote)
	}
	if rec.AlignedWithMajority == nil || *rec.AlignedWithMajority {
		t.Errorf("bloc voted YES against a NO majority, aligned = %v", rec.AlignedWithMajority)
	}

	votes["E"], votes["F"], votes["G"] = Y, Y, Y
	rec = c.ClassifyResolution(resolution("R", votes))
	if !rec.Aligned() {
		t.Error("bloc vote equals majority, expected aligned")
	}

	// 4 YES vs 4 NO over all participants: no majority under TieNoWinner
	votes["E"], votes["F"] = N, N
	rec = c.ClassifyResolution(resolution("R", votes))
	if rec.MajorityVote.Cast() || rec.AlignedWithMajority != nil {
		t.Errorf("tied majority must be undefined, got %v / %v", rec.MajorityVote, rec.AlignedWithMajority)
	}
}

func TestClassifyReferenceOpposition(t *testing.T) {
	c, _ := New(group(t), Options{Reference: "USA"})

	unanimous := map[string]models.Vote{"A": N, "B": N, "C": N, "D": N, "USA": Y}
	rec := c.ClassifyResolution(resolution("R1", unanimous))
	if !rec.Unanimous || rec.OpposesReference == nil || !*rec.OpposesReference {
		t.Errorf("unanimous NO against USA YES should oppose: %+v", rec)
	}

	split := map[string]models.Vote{"A": N, "B": N, "C": N, "D": Y, "USA": Y}
	rec = c.ClassifyResolution(resolution("R2", split))
	if rec.Unanimous || rec.OpposesReference == nil || *rec.OpposesReference {
		t.Errorf("non-unanimous group must not oppose: %+v", rec)
	}

	noRef := map[string]models.Vote{"A": N, "B": N, "C": N, "D": N}
	rec = c.ClassifyResolution(resolution("R3", noRef))
	if rec.OpposesReference != nil {
		t.Error("opposition is undefined when the reference did not vote")
	}
}

func TestAgreementCountNeverZeroOrOne(t *testing.T) {
	c, _ := New(group(t), Options{})
	values := []models.Vote{X, Y, N, A}
	members := []string{"A", "B", "C", "D"}

	// every combination of four members over {absent, Y, N, A}
	for code := 0; code < 256; code++ {
		votes := map[string]models.Vote{}
		n := code
		for _, m := range members {
			votes[m] = values[n%4]
			n /= 4
		}
		rec := c.ClassifyResolution(resolution("R", votes))
		if count, ok := rec.Agreement(); ok && (count < 2 || count > 4) {
			t.Fatalf("agreement count %d out of range for %v", count, votes)
		}
		if rec.AgreementCount == nil && rec.GroupVote.Cast() {
			t.Fatalf("group vote without agreement count for %v", votes)
		}
		if v, ok := rec.Cohesion.Value(); ok && (v < 0 || v > 100) {
			t.Fatalf("cohesion %v out of range", v)
		}
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	m, err := models.NewResolutionVoteMatrix([]models.Resolution{
		models.NewResolution("R2", day.AddDate(0, 0, 1), nil),
		models.NewResolution("R1", day, nil),
	})
	if err != nil {
		t.Fatal(err)
	}
	c, _ := New(group(t), Options{})
	records := c.Classify(m)
	if len(records) != 2 || records[0].ResolutionID != "R1" || records[1].ResolutionID != "R2" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestNewValidation(t *testing.T) {
	g := group(t)

	if _, err := New(models.CountryGroup{}, Options{}); !errors.Is(err, models.ErrEmptyGroup) {
		t.Errorf("empty group: expected ErrEmptyGroup, got %v", err)
	}
	for _, threshold := range []int{1, 5, -1} {
		if _, err := New(g, Options{MinAgreement: threshold}); !errors.Is(err, models.ErrInvalidThreshold) {
			t.Errorf("MinAgreement %d: expected ErrInvalidThreshold, got %v", threshold, err)
		}
	}
	if _, err := New(g, Options{TieBreak: TieBreak(9)}); !errors.Is(err, models.ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestParseTieBreak(t *testing.T) {
	if tb, err := ParseTieBreak("priority"); err != nil || tb != TiePriority {
		t.Errorf("ParseTieBreak(priority) = %v, %v", tb, err)
	}
	if tb, err := ParseTieBreak(""); err != nil || tb != TieNoWinner {
		t.Errorf("ParseTieBreak('') = %v, %v", tb, err)
	}
	if _, err := ParseTieBreak("coin-flip"); !errors.Is(err, models.ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestClassifyVotersAgree(t *testing.T) {
	c, _ := New(group(t), Options{})

	tests := []struct {
		name      string
		votes     map[string]models.Vote
		agree     bool
		unanimous bool
	}{
		{"all four the same", map[string]models.Vote{"A": Y, "B": Y, "C": Y, "D": Y}, true, true},
		{"three the same, one absent", map[string]models.Vote{"A": Y, "B": Y, "C": Y}, true, false},
		{"two the same, two absent", map[string]models.Vote{"A": A, "B": A}, true, false},
		{"one voter", map[string]models.Vote{"A": Y}, false, false},
		{"split", map[string]models.Vote{"A": Y, "B": Y, "C": Y, "D": N}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := c.ClassifyResolution(resolution("R", tt.votes))
			if rec.VotersAgree != tt.agree || rec.Unanimous != tt.unanimous {
				t.Errorf("VotersAgree = %v, Unanimous = %v, want %v, %v", rec.VotersAgree, rec.Unanimous, tt.agree, tt.unanimous)
			}
		})
	}
}
