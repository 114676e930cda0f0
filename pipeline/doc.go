// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pipeline runs the four stages end to end and assembles one Result.

	Loader -> PivotBuilder -> CoalitionClassifier -> AlignmentCalculator

Usage:

	res, err := pipeline.Run(rows, topics, pipeline.Settings{
		Bloc:       crink,
		Comparison: western,
		Aliases:    map[string]string{"USSR": "RUSSIAN FEDERATION"},
		StartYear:  1991,
	})

All configuration arrives through Settings. Settings.Validate (also called by
Run) rejects bad year ranges, empty groups, thresholds outside [2, |group|]
and unknown policies with a *models.ConfigError before any row is touched.
Group members and the reference country are passed through the same name
directory as the vote data, so "Russia" in a config file and "RUSSIA" in
the input end up as the same id.

# Determinism

The run ID is a SHA-1 UUID of the inputs digest (rows, topics and the
canonical settings string). Encoding a Result with encoding/json is
byte-identical across runs with the same inputs.
*/
package pipeline
