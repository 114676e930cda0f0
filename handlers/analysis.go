// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/danielhkuo/bloc-alignment/alignment"
	"github.com/danielhkuo/bloc-alignment/middleware"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pipeline"
)

// AnalysisHandler serves one computed, immutable pipeline result
type AnalysisHandler struct {
	res *pipeline.Result
}

func NewAnalysisHandler(res *pipeline.Result) *AnalysisHandler {
	return &AnalysisHandler{res: res}
}

type ReportResponse struct {
	RunID      string             `json:"run_id"`
	InputsHash string             `json:"inputs_hash"`
	Settings   pipeline.RunInfo   `json:"settings"`
	Load       models.LoadReport  `json:"load"`
	Pivot      models.PivotReport `json:"pivot"`
}

type SummaryResponse struct {
	Group    models.CountryGroup    `json:"group"`
	Summary  models.AgreementTally  `json:"summary"`
	Majority models.MajoritySummary `json:"majority"`
}

type YearlyResponse struct {
	Group models.CountryGroup  `json:"group"`
	Years []models.YearSummary `json:"years"`
}

type CoalitionsResponse struct {
	Group   models.CountryGroup      `json:"group"`
	Year    int                      `json:"year,omitempty"`
	Records []models.CoalitionRecord `json:"records"`
}

type MajorityResponse struct {
	Bloc       models.MajoritySummary  `json:"bloc"`
	Comparison *models.MajoritySummary `json:"comparison,omitempty"`
}

// group resolves the ?group= parameter, writing a 400 when it is invalid
func (h *AnalysisHandler) group(w http.ResponseWriter, r *http.Request) (*pipeline.GroupResult, bool) {
	role := r.URL.Query().Get("group")
	g, ok := h.res.Group(role)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown group %q (use bloc or comparison)", role))
		return nil, false
	}
	return g, true
}

// country resolves a country query parameter, writing 400 when it is
// missing and 404 when the country cast no votes
func (h *AnalysisHandler) country(w http.ResponseWriter, r *http.Request, param string) (string, bool) {
	name := r.URL.Query().Get(param)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, param+" is required")
		return "", false
	}
	id, ok := h.res.ResolveCountry(name)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("country %q not found", name))
		return "", false
	}
	return id, true
}

// GetReport handles GET /report
func (h *AnalysisHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, ReportResponse{
		RunID:      h.res.RunID,
		InputsHash: h.res.InputsHash,
		Settings:   h.res.Settings,
		Load:       h.res.Load,
		Pivot:      h.res.Pivot,
	})
}

// GetSummary handles GET /summary?group=
func (h *AnalysisHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	g, ok := h.group(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, SummaryResponse{
		Group:    g.Group,
		Summary:  g.Summary,
		Majority: g.Majority,
	})
}

// GetYearly handles GET /summary/yearly?group=
func (h *AnalysisHandler) GetYearly(w http.ResponseWriter, r *http.Request) {
	g, ok := h.group(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, YearlyResponse{Group: g.Group, Years: g.Yearly})
}

// GetCoalitions handles GET /coalitions?group=&year=
// Without a year every record is returned.
func (h *AnalysisHandler) GetCoalitions(w http.ResponseWriter, r *http.Request) {
	g, ok := h.group(w, r)
	if !ok {
		return
	}

	resp := CoalitionsResponse{Group: g.Group, Records: g.Records}

	if s := r.URL.Query().Get("year"); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil || year <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "year must be a positive integer")
			return
		}
		resp.Year = year
		resp.Records = []models.CoalitionRecord{}
		for _, rec := range g.Records {
			if rec.Year == year {
				resp.Records = append(resp.Records, rec)
			}
		}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetMatrix handles GET /alignment/matrix
func (h *AnalysisHandler) GetMatrix(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.res.Alignment)
}

// GetPairs handles GET /alignment/pairs
func (h *AnalysisHandler) GetPairs(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.res.Pairs)
}

// GetDyad handles GET /alignment/dyad?a=&b=
// Any two countries in the data, not only group members.
func (h *AnalysisHandler) GetDyad(w http.ResponseWriter, r *http.Request) {
	a, ok := h.country(w, r, "a")
	if !ok {
		return
	}
	b, ok := h.country(w, r, "b")
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, alignment.Dyadic(h.res.Matrix(), a, b))
}

// GetSimilarity handles GET /similarity?a=&b=&vote=
func (h *AnalysisHandler) GetSimilarity(w http.ResponseWriter, r *http.Request) {
	vote, ok := models.ParseVote(r.URL.Query().Get("vote"))
	if !ok || !vote.Cast() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "vote must be Y, N or A")
		return
	}
	a, ok := h.country(w, r, "a")
	if !ok {
		return
	}
	b, ok := h.country(w, r, "b")
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, alignment.Jaccard(h.res.Matrix(), a, b, vote))
}

// GetTopics handles GET /topics
func (h *AnalysisHandler) GetTopics(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.res.Topics)
}

// GetDivergence handles GET /topics/divergence
func (h *AnalysisHandler) GetDivergence(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.res.Divergence)
}

// GetCompare handles GET /compare
// Returns 404 when no comparison group is configured.
func (h *AnalysisHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	if h.res.Compare == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "no comparison group configured")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, map[string]any{
		"agreement":  h.res.Compare,
		"similarity": h.res.Similarity,
	})
}

// GetMajority handles GET /majority
func (h *AnalysisHandler) GetMajority(w http.ResponseWriter, r *http.Request) {
	resp := MajorityResponse{Bloc: h.res.Bloc.Majority}
	if h.res.Comparison != nil {
		m := h.res.Comparison.Majority
		resp.Comparison = &m
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}
