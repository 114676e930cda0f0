// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package loader turns raw roll-call rows into normalized vote records.

# Reading Input

	rows, err := loader.ReadCSV(f)       // resolution_id, date, country_name, vote_code
	topics, err := loader.ReadTopics(f)  // resolution_id, topic_label

The UN Digital Library column names (undl_id, ms_name, ms_vote) are accepted
as well. A missing column is an error; bad values are not. A stray quote
inside a field is kept as a literal, and a row the parser cannot split is
returned with Malformed set so Load can count it.

# Normalizing

	dir := loader.NewDirectory(known, map[string]string{"USSR": "RUSSIAN FEDERATION"})
	l, err := loader.New(loader.Options{
		Directory: dir,
		Unknown:   loader.UnknownPassThrough,
		StartYear: 1991,
		EndYear:   2024,
	})
	records, report := l.Load(rows)

A directory built without a known list is open: every name counts as known
and only aliases are applied. A zero StartYear or EndYear leaves that side
of the window open.

Load never fails. Every skipped or flagged row is counted in the returned
models.LoadReport:

  - row the CSV parser rejected: skipped
  - blank resolution id or country name, unparseable date: skipped
  - year outside [StartYear, EndYear]: skipped (both bounds inclusive)
  - country not in the directory: kept and flagged, or dropped (UnknownDrop)
  - blank vote code: kept as an absent vote
  - unrecognized vote code: kept as an absent vote and counted as invalid

Options are validated by New; a start year after the end year is a
*models.ConfigError.
*/
package loader
