// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package pivot reshapes normalized vote records into a resolution vote matrix.

	matrix, report, err := pivot.Build(records, pivot.FirstWins)

Records are grouped by (resolution id, date). Countries without a cast vote
stay absent; absent records register the resolution but never a vote.

# Duplicates

When a country appears more than once on a resolution:

	FirstWins       - keep the earliest row (default)
	LastWins        - keep the latest row
	RejectConflicts - drop the country's vote when the rows disagree

Identical repeats are counted as duplicates but are not conflicts. Each
conflict is logged with slog.Warn and listed in models.PivotReport.
*/
package pivot
