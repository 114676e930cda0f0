// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pipeline"
	"github.com/danielhkuo/bloc-alignment/testutil"
)

func TestGetReport(t *testing.T) {
	res := testutil.SetupResult(t)
	handler := NewAnalysisHandler(res)

	w := httptest.NewRecorder()
	handler.GetReport(w, testutil.MakeRequest("GET", "/report", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp ReportResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.RunID != res.RunID || resp.InputsHash != res.InputsHash {
		t.Errorf("Expected run %s / %s, got %s / %s", res.RunID, res.InputsHash, resp.RunID, resp.InputsHash)
	}
	if resp.Load.RowsRead != 24 || resp.Load.RowsAccepted != 24 {
		t.Errorf("Expected 24 rows read and accepted, got %+v", resp.Load)
	}
	if resp.Pivot.Resolutions != 3 || resp.Pivot.Countries != 8 {
		t.Errorf("Expected 3 resolutions over 8 countries, got %+v", resp.Pivot)
	}
	if resp.Settings.Reference != testutil.USA || resp.Settings.TieBreak != "none" {
		t.Errorf("Unexpected settings %+v", resp.Settings)
	}
}

func TestGetSummary(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		checkResponse  func(t *testing.T, resp *SummaryResponse)
	}{
		{
			name:           "default group is the bloc",
			query:          "",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *SummaryResponse) {
				s := resp.Summary
				if s.Votes2Way != 1 || s.Votes3Way != 1 || s.Votes4Way != 1 {
					t.Errorf("Expected 1/1/1 agreement, got %d/%d/%d", s.Votes2Way, s.Votes3Way, s.Votes4Way)
				}
				if resp.Majority.TotalResolutions != 3 || resp.Majority.AlignedResolutions != 1 {
					t.Errorf("Expected 1 of 3 aligned, got %+v", resp.Majority)
				}
			},
		},
		{
			name:           "comparison group",
			query:          "?group=comparison",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, resp *SummaryResponse) {
				s := resp.Summary
				if s.Votes3Way != 2 || s.Votes4Way != 1 || s.VotesWithMajority != 2 {
					t.Errorf("Unexpected comparison summary %+v", s)
				}
			},
		},
		{
			name:           "unknown group",
			query:          "?group=nato",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetSummary(w, testutil.MakeRequest("GET", "/summary"+tt.query, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.checkResponse != nil {
				var resp SummaryResponse
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetYearly(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetYearly(w, testutil.MakeRequest("GET", "/summary/yearly?group=bloc", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Years []models.YearSummary `json:"years"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Years) != 2 {
		t.Fatalf("Expected 2 years, got %d", len(resp.Years))
	}
	y2022, y2023 := resp.Years[0], resp.Years[1]
	if y2022.Year != 2022 || y2022.Votes2Way != 1 || y2022.Votes3Way != 1 || y2022.Votes4Way != 0 {
		t.Errorf("Unexpected 2022 summary %+v", y2022)
	}
	if v, ok := y2022.Pct2Way.Value(); !ok || v != 50 {
		t.Errorf("Expected 2022 pct_2way 50, got %v", y2022.Pct2Way)
	}
	if y2023.Year != 2023 || y2023.Votes4Way != 1 {
		t.Errorf("Unexpected 2023 summary %+v", y2023)
	}
}

func TestGetCoalitions(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedIDs    []string
	}{
		{"all years", "?group=bloc", http.StatusOK, []string{"R1", "R2", "R3"}},
		{"one year", "?group=bloc&year=2023", http.StatusOK, []string{"R3"}},
		{"year without votes", "?year=1999", http.StatusOK, []string{}},
		{"bad year", "?year=soon", http.StatusBadRequest, nil},
		{"bad group", "?group=g77", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetCoalitions(w, testutil.MakeRequest("GET", "/coalitions"+tt.query, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedIDs == nil {
				return
			}

			var resp struct {
				Records []models.CoalitionRecord `json:"records"`
			}
			testutil.AssertJSON(t, w, &resp)

			if len(resp.Records) != len(tt.expectedIDs) {
				t.Fatalf("Expected %d records, got %d", len(tt.expectedIDs), len(resp.Records))
			}
			for i, id := range tt.expectedIDs {
				if resp.Records[i].ResolutionID != id {
					t.Errorf("Record %d: expected %s, got %s", i, id, resp.Records[i].ResolutionID)
				}
			}
		})
	}
}

func TestGetCoalitions_ReferenceOpposition(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetCoalitions(w, testutil.MakeRequest("GET", "/coalitions?year=2023", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Records []models.CoalitionRecord `json:"records"`
	}
	testutil.AssertJSON(t, w, &resp)

	rec := resp.Records[0]
	if !rec.Unanimous || rec.GroupVote != models.VoteNo {
		t.Errorf("Expected a unanimous NO, got %+v", rec)
	}
	if rec.OpposesReference == nil || !*rec.OpposesReference {
		t.Error("Expected the bloc to oppose the United States on R3")
	}
}

func TestGetDyad(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		matches        int
		joint          int
	}{
		{"bloc members", "?a=China&b=Russian%20Federation", http.StatusOK, 2, 3},
		{"across groups", "?a=china&b=united%20states", http.StatusOK, 1, 3},
		{"missing b", "?a=China", http.StatusBadRequest, 0, 0},
		{"unknown country", "?a=China&b=Atlantis", http.StatusNotFound, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetDyad(w, testutil.MakeRequest("GET", "/alignment/dyad"+tt.query, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.DyadicAlignment
			testutil.AssertJSON(t, w, &resp)
			if resp.Matches != tt.matches || resp.JointTotal != tt.joint {
				t.Errorf("Expected %d/%d, got %d/%d", tt.matches, tt.joint, resp.Matches, resp.JointTotal)
			}
		})
	}
}

func TestGetMatrix(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetMatrix(w, testutil.MakeRequest("GET", "/alignment/matrix", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.AlignmentMatrix
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Countries) != 8 || len(resp.Cells) != 8 {
		t.Fatalf("Expected an 8x8 matrix, got %d countries", len(resp.Countries))
	}
	for i := range resp.Cells {
		if v, ok := resp.Cells[i][i].Value(); !ok || v != 100 {
			t.Errorf("Diagonal %d = %v, want 100", i, resp.Cells[i][i])
		}
		for j := range resp.Cells {
			if resp.Cells[i][j] != resp.Cells[j][i] {
				t.Errorf("Matrix not symmetric at %d,%d", i, j)
			}
		}
	}
}

func TestGetPairs(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetPairs(w, testutil.MakeRequest("GET", "/alignment/pairs", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.DyadicAlignment
	testutil.AssertJSON(t, w, &resp)

	if len(resp) != 28 {
		t.Fatalf("Expected 28 pairs for 8 countries, got %d", len(resp))
	}
	for i := 1; i < len(resp); i++ {
		if resp[i-1].Pct.Or(-1) < resp[i].Pct.Or(-1) {
			t.Errorf("Pairs not sorted at %d: %v before %v", i, resp[i-1].Pct, resp[i].Pct)
		}
	}
}

func TestGetSimilarity(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{"yes votes", "?a=China&b=United%20States&vote=Y", http.StatusOK},
		{"missing vote", "?a=China&b=France", http.StatusBadRequest},
		{"bad vote", "?a=China&b=France&vote=maybe", http.StatusBadRequest},
		{"unknown country", "?a=China&b=Atlantis&vote=N", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetSimilarity(w, testutil.MakeRequest("GET", "/similarity"+tt.query, nil))
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := httptest.NewRecorder()
	handler.GetSimilarity(w, testutil.MakeRequest("GET", "/similarity?a=China&b=United%20States&vote=yes", nil))
	var resp models.SetSimilarity
	testutil.AssertJSON(t, w, &resp)

	// China YES on R1, R2; United States YES on R2, R3
	if resp.Intersection != 1 || resp.Union != 3 || resp.Vote != models.VoteYes {
		t.Errorf("Expected 1/3 on YES, got %+v", resp)
	}
}

func TestGetTopics(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetTopics(w, testutil.MakeRequest("GET", "/topics", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp []models.TopicAlignmentRow
	testutil.AssertJSON(t, w, &resp)

	if len(resp) != 2 || resp[0].TopicLabel != "Disarmament" || resp[1].TopicLabel != "Human rights" {
		t.Fatalf("Unexpected topics %+v", resp)
	}
	if resp[0].TotalResolutions != 2 || resp[0].Agreement3Way != 1 || resp[0].Agreement4Way != 1 {
		t.Errorf("Unexpected disarmament row %+v", resp[0])
	}
}

func TestGetTopics_NoMapping(t *testing.T) {
	res, err := pipeline.Run(testutil.ScenarioRows(), nil, testutil.ScenarioSettings(t))
	if err != nil {
		t.Fatal(err)
	}
	handler := NewAnalysisHandler(res)

	for _, path := range []string{"/topics", "/topics/divergence"} {
		w := httptest.NewRecorder()
		if path == "/topics" {
			handler.GetTopics(w, testutil.MakeRequest("GET", path, nil))
		} else {
			handler.GetDivergence(w, testutil.MakeRequest("GET", path, nil))
		}
		testutil.AssertStatus(t, w, http.StatusOK)
		if body := w.Body.String(); body != "[]\n" {
			t.Errorf("%s: expected an empty array, got %q", path, body)
		}
	}
}

func TestGetCompare(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetCompare(w, testutil.MakeRequest("GET", "/compare", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Agreement  models.GroupComparison `json:"agreement"`
		Similarity []models.SetSimilarity `json:"similarity"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Agreement.Compared != 3 || resp.Agreement.SameVote != 0 {
		t.Errorf("Expected 0 of 3 matching, got %+v", resp.Agreement)
	}
	if len(resp.Similarity) != 3 {
		t.Errorf("Expected similarity for 3 vote values, got %d", len(resp.Similarity))
	}
}

func TestGetCompare_NoComparisonGroup(t *testing.T) {
	s := testutil.ScenarioSettings(t)
	s.Comparison = models.CountryGroup{}
	res, err := pipeline.Run(testutil.ScenarioRows(), nil, s)
	if err != nil {
		t.Fatal(err)
	}
	handler := NewAnalysisHandler(res)

	w := httptest.NewRecorder()
	handler.GetCompare(w, testutil.MakeRequest("GET", "/compare", nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = httptest.NewRecorder()
	handler.GetMajority(w, testutil.MakeRequest("GET", "/majority", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp MajorityResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Comparison != nil {
		t.Errorf("Expected no comparison majority, got %+v", resp.Comparison)
	}
}

func TestGetMajority(t *testing.T) {
	handler := NewAnalysisHandler(testutil.SetupResult(t))

	w := httptest.NewRecorder()
	handler.GetMajority(w, testutil.MakeRequest("GET", "/majority", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp MajorityResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.Bloc.AlignedResolutions != 1 || resp.Bloc.TotalResolutions != 3 {
		t.Errorf("Unexpected bloc majority %+v", resp.Bloc)
	}
	if resp.Comparison == nil || resp.Comparison.AlignedResolutions != 2 {
		t.Errorf("Unexpected comparison majority %+v", resp.Comparison)
	}
}
