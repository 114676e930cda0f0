// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/bloc-alignment/db"
	"github.com/danielhkuo/bloc-alignment/pipeline"
	"github.com/danielhkuo/bloc-alignment/testutil"
)

// TestDatabaseWorkflow tests the complete database-backed workflow:
// 1. Seed votes and topics
// 2. Load them back
// 3. Run the pipeline
// 4. Serialize the result
// 5. Serve the report
// 6. Compare against the in-memory run
func TestDatabaseWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	ctx := context.Background()

	// Step 1: Seed
	testutil.SeedVotes(t, conn, testutil.ScenarioRows())
	testutil.SeedTopics(t, conn, testutil.ScenarioTopics())

	// Step 2: Load
	rows, err := db.LoadRawRows(ctx, conn)
	if err != nil {
		t.Fatalf("Step 2 - Load rows failed: %v", err)
	}
	topics, err := db.LoadTopics(ctx, conn)
	if err != nil {
		t.Fatalf("Step 2 - Load topics failed: %v", err)
	}
	if len(rows) != 24 || len(topics) != 3 {
		t.Fatalf("Step 2 - Expected 24 rows and 3 topics, got %d and %d", len(rows), len(topics))
	}

	// Step 3: Run
	res, err := pipeline.Run(rows, topics, testutil.ScenarioSettings(t))
	if err != nil {
		t.Fatalf("Step 3 - Run failed: %v", err)
	}
	t.Logf("Step 3 - Run %s", res.RunID)

	// Step 4: Serialize
	payload, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Step 4 - Marshal failed: %v", err)
	}

	// Step 5: Serve
	handler := NewAnalysisHandler(res)
	w := httptest.NewRecorder()
	handler.GetReport(w, testutil.MakeRequest("GET", "/report", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var report ReportResponse
	testutil.AssertJSON(t, w, &report)

	// Step 6: Same inputs as the in-memory scenario, same run
	memory := testutil.SetupResult(t)
	if report.RunID != memory.RunID {
		t.Errorf("Step 6 - Expected run %s from the database, got %s", memory.RunID, report.RunID)
	}
	memoryPayload, _ := json.Marshal(memory)
	if string(memoryPayload) != string(payload) {
		t.Error("Step 6 - Database and in-memory runs produced different reports")
	}
}
