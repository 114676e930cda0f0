// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db reads vote data from SQLite or PostgreSQL.

The database is an input source only. Nothing computed is written back.

# Connecting

	conn, err := db.Open(ctx, db.SQLite, "file:votes.db")
	conn, err := db.Open(ctx, db.Postgres, "postgres://...")

The dialect doubles as the driver name (modernc.org/sqlite and lib/pq are
registered here).

# Tables

  - vote_record: row_num, resolution_id, vote_date, country_name, vote_code
  - resolution_topic: resolution_id -> topic_label

row_num gives the input order, which duplicate handling depends on. A NULL
vote_code is an absent vote.

CreateSchema creates both tables with IF NOT EXISTS. It is used to prepare
fixtures and new databases; reading never calls it.

# Reading

	rows, err := db.LoadRawRows(ctx, conn)
	topics, err := db.LoadTopics(ctx, conn)

Both queries are plain SQL accepted by either dialect.
*/
package db
