// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for bloc-alignment.

bloc-alignment measures how a bloc of countries votes together in the UN
General Assembly. It reads roll-call votes, pivots them into a
resolution × country matrix, classifies each resolution by how the bloc
voted, and computes agreement, similarity and topic tables.

# Running a Report

Votes come from a CSV file or a database:

	go run . -i votes.csv -topics topics.csv > report.json

	DATABASE_URL=votes.db go run . -o report.json

The database is only read. Its vote_record and resolution_topic tables are
described in the db package.

# Serving

The same analysis can be served read-only over HTTP:

	go run . -mode serve -i votes.csv -p 3318

# Configuration

Settings come from flags, environment variables or a .env file:

  - INPUT_CSV (-i): vote table in CSV form
  - DATABASE_URL (-d): SQLite path or PostgreSQL URL
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOPICS_CSV (--topics): resolution topic mapping
  - GROUPS_FILE (--groups): YAML group definitions
  - START_YEAR, END_YEAR (--start, --end): inclusive year window
  - PORT (-p): server port (default: 3318)

Policies are flag-only: --min-agreement, --tie-break, --duplicates and
--unknown.

# Architecture

  - loader: CSV reading, name normalization, row validation
  - pivot: resolution × country matrix with duplicate handling
  - coalition: per-resolution classification of one group
  - alignment: summaries, dyadic agreement, similarity, topics
  - pipeline: runs the stages and holds the immutable result
  - digest: inputs hash and deterministic run id
  - db: SQLite/PostgreSQL input source
  - handlers, router, middleware: the read-only HTTP API
  - cliparse: flags, environment and group files
  - models: shared types

See package documentation for each component.
*/
package main
