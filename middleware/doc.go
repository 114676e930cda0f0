// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start at debug level and completion (status, duration_ms).

# Conditional Requests

The served report is immutable, so every route shares one ETag:

	mux.HandleFunc("GET /summary", middleware.WithETag(res.ETag(), handler))

A request whose If-None-Match lists the tag (or *) gets 304 Not Modified
without running the handler.

# CORS Middleware

Enable cross-origin reads:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET and OPTIONS and exposes the ETag header.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
*/
package middleware
