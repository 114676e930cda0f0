// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the bloc-alignment API.

# Route Registration

NewRouter creates a configured http.ServeMux over one computed result:

	mux := router.NewRouter(res)

# Endpoints

Health:

	GET /health

Run metadata:

	GET /report - Run id, inputs hash, settings, load and pivot reports

Group summaries (optional ?group=bloc|comparison):

	GET /summary         - Agreement tally and majority summary
	GET /summary/yearly  - Per-year tallies
	GET /coalitions      - Coalition records, optionally ?year=
	GET /majority        - Majority alignment for both groups

Pairwise alignment:

	GET /alignment/matrix - Square agreement matrix
	GET /alignment/pairs  - Pairs sorted by agreement
	GET /alignment/dyad   - One pair, ?a=&b=
	GET /similarity       - Jaccard similarity, ?a=&b=&vote=

Topics:

	GET /topics            - Bloc agreement per topic
	GET /topics/divergence - Pairwise spread per topic

Comparison:

	GET /compare - Bloc versus comparison agreement and similarity

# Caching

Every data route carries the same ETag, derived from the inputs digest.
Clients that send If-None-Match with it receive 304 Not Modified. The
result never changes while the server runs, so the tag is computed once.
*/
package router
