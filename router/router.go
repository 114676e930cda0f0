// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/bloc-alignment/handlers"
	"github.com/danielhkuo/bloc-alignment/middleware"
	"github.com/danielhkuo/bloc-alignment/pipeline"
)

func NewRouter(res *pipeline.Result) *http.ServeMux {
	mux := http.NewServeMux()

	analysis := handlers.NewAnalysisHandler(res)
	etag := res.ETag()

	// route wraps a read handler with logging and conditional GET support
	route := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithETag(etag, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Run metadata
	mux.HandleFunc("GET /report", route(analysis.GetReport))

	// Group summaries
	mux.HandleFunc("GET /summary", route(analysis.GetSummary))
	mux.HandleFunc("GET /summary/yearly", route(analysis.GetYearly))
	mux.HandleFunc("GET /coalitions", route(analysis.GetCoalitions))
	mux.HandleFunc("GET /majority", route(analysis.GetMajority))

	// Pairwise alignment
	mux.HandleFunc("GET /alignment/matrix", route(analysis.GetMatrix))
	mux.HandleFunc("GET /alignment/pairs", route(analysis.GetPairs))
	mux.HandleFunc("GET /alignment/dyad", route(analysis.GetDyad))
	mux.HandleFunc("GET /similarity", route(analysis.GetSimilarity))

	// Topics
	mux.HandleFunc("GET /topics", route(analysis.GetTopics))
	mux.HandleFunc("GET /topics/divergence", route(analysis.GetDivergence))

	// Bloc versus comparison
	mux.HandleFunc("GET /compare", route(analysis.GetCompare))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bloc-alignment API v1"))
	})

	return mux
}
