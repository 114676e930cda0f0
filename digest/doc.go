// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package digest fingerprints the inputs of a run.

	d := digest.Inputs(rows, topics, settings.Canonical())
	d.Hex()    // 64 hex chars, reported as inputs_hash
	d.Short()  // base62 tag, used as the HTTP ETag
	d.RunID()  // SHA-1 UUID derived from the digest

Everything is deterministic: the same rows, topics and settings always give
the same digest and the same run ID. Rows are hashed in input order because
duplicate resolution under FirstWins and LastWins depends on it.
*/
package digest
