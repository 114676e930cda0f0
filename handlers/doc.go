// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the bloc-alignment API.

# Handler Types

A single AnalysisHandler serves one computed pipeline.Result. The result is
immutable, so handlers never lock and any number of requests may read it
concurrently:

	h := handlers.NewAnalysisHandler(res)

# Group Selection

Group-scoped endpoints take an optional ?group= parameter:

	group=bloc        (default)
	group=comparison  (400 when no comparison group is configured)

# Country Parameters

Dyad and similarity endpoints accept any country present in the vote data,
spelled as in the input. Names go through the same directory as the
loader, so aliases and case variants resolve:

	GET /alignment/dyad?a=China&b=united states
	GET /similarity?a=CHINA&b=FRANCE&vote=N

A missing parameter is a 400; a country with no votes is a 404.

# Undefined Metrics

Percentages with a zero denominator serialize as null, never as 0.
*/
package handlers
