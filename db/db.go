// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/bloc-alignment/models"
)

var ErrUnsupportedDialect = errors.New("unsupported database type")

// Dialect names both the SQL flavour and the registered driver
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// ParseDialect accepts "sqlite" or "postgres"
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case SQLite, Postgres:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDialect, s)
}

// Open connects and verifies the connection
func Open(ctx context.Context, d Dialect, url string) (*sql.DB, error) {
	conn, err := sql.Open(string(d), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d, err)
	}
	if d == SQLite {
		// keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d, err)
	}
	return conn, nil
}

// LoadRawRows reads the vote table in row order. A NULL vote code reads as
// blank (absent).
func LoadRawRows(ctx context.Context, conn *sql.DB) ([]models.RawVoteRow, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT row_num, resolution_id, vote_date, country_name, vote_code
		FROM vote_record
		ORDER BY row_num
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	var out []models.RawVoteRow
	for rows.Next() {
		var row models.RawVoteRow
		var code sql.NullString
		if err := rows.Scan(&row.Line, &row.ResolutionID, &row.Date, &row.CountryName, &code); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		row.VoteCode = code.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}

	return out, nil
}

// LoadTopics reads the resolution_topic table
func LoadTopics(ctx context.Context, conn *sql.DB) (map[string]string, error) {
	rows, err := conn.QueryContext(ctx, `SELECT resolution_id, topic_label FROM resolution_topic`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := make(map[string]string)
	for rows.Next() {
		var id, label string
		if err := rows.Scan(&id, &label); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		id, label = strings.TrimSpace(id), strings.TrimSpace(label)
		if id == "" || label == "" {
			continue
		}
		topics[id] = label
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics: %w", err)
	}

	return topics, nil
}
