// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/bloc-alignment/cliparse"
	"github.com/danielhkuo/bloc-alignment/db"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pipeline"
)

const (
	China   = "CHINA"
	Russia  = "RUSSIAN FEDERATION"
	Iran    = "IRAN (ISLAMIC REPUBLIC OF)"
	DPRK    = "DEMOCRATIC PEOPLE'S REPUBLIC OF KOREA"
	USA     = "UNITED STATES"
	France  = "FRANCE"
	Germany = "GERMANY"
	UK      = "UNITED KINGDOM"
)

// ScenarioRows returns three resolutions voted by the default groups:
//
//	R1 2022: bloc YES (3 agree), western NO (4 agree)
//	R2 2022: bloc NO (2 agree), western YES (3 agree)
//	R3 2023: bloc NO (unanimous, against the US), western YES (3 agree)
//
// R3 spells Russia in lower case to exercise name normalization.
func ScenarioRows() []models.RawVoteRow {
	votes := []struct {
		id, date string
		codes    []string // China, Russia, Iran, DPRK, USA, France, Germany, UK
	}{
		{"R1", "2022-10-01", []string{"Y", "Y", "Y", "N", "N", "N", "N", "N"}},
		{"R2", "2022-11-15", []string{"Y", "N", "A", "N", "Y", "Y", "Y", "A"}},
		{"R3", "2023-03-02", []string{"N", "N", "N", "N", "Y", "Y", "N", "Y"}},
	}
	names := []string{China, Russia, Iran, DPRK, USA, France, Germany, UK}

	var rows []models.RawVoteRow
	for _, v := range votes {
		for i, code := range v.codes {
			name := names[i]
			if v.id == "R3" && name == Russia {
				name = "Russian federation"
			}
			rows = append(rows, models.RawVoteRow{
				Line:         len(rows) + 1,
				ResolutionID: v.id,
				Date:         v.date,
				CountryName:  name,
				VoteCode:     code,
			})
		}
	}
	return rows
}

// ScenarioTopics labels R1 and R3 as disarmament and R2 as human rights
func ScenarioTopics() map[string]string {
	return map[string]string{
		"R1": "Disarmament",
		"R2": "Human rights",
		"R3": "Disarmament",
	}
}

// ScenarioSettings returns the default analysis with default policies
func ScenarioSettings(t *testing.T) pipeline.Settings {
	t.Helper()

	s, err := cliparse.DefaultAnalysis().Settings(cliparse.Config{MinAgreement: 2})
	if err != nil {
		t.Fatalf("Failed to build settings: %v", err)
	}
	return s
}

// SetupResult runs the pipeline over the scenario
func SetupResult(t *testing.T) *pipeline.Result {
	t.Helper()

	res, err := pipeline.Run(ScenarioRows(), ScenarioTopics(), ScenarioSettings(t))
	if err != nil {
		t.Fatalf("Failed to run pipeline: %v", err)
	}
	return res
}

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.SQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SeedVotes inserts rows into vote_record
func SeedVotes(t *testing.T, conn *sql.DB, rows []models.RawVoteRow) {
	t.Helper()

	for _, row := range rows {
		_, err := conn.Exec(`
			INSERT INTO vote_record (row_num, resolution_id, vote_date, country_name, vote_code)
			VALUES (?, ?, ?, ?, ?)
		`, row.Line, row.ResolutionID, row.Date, row.CountryName, row.VoteCode)
		if err != nil {
			t.Fatalf("Failed to insert vote: %v", err)
		}
	}
}

// SeedTopics inserts a topic mapping into resolution_topic
func SeedTopics(t *testing.T, conn *sql.DB, topics map[string]string) {
	t.Helper()

	for id, label := range topics {
		_, err := conn.Exec(`
			INSERT INTO resolution_topic (resolution_id, topic_label)
			VALUES (?, ?)
		`, id, label)
		if err != nil {
			t.Fatalf("Failed to insert topic: %v", err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
