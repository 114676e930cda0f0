// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-mode            report (default) or serve
	-i               Input votes CSV
	-d               Database URL
	-t               Database type: sqlite (default) or postgres
	-topics          Resolution topic CSV
	-groups          Group definitions YAML
	-start, -end     Inclusive year window (0 = open)
	-min-agreement   Members that must share a vote (default 2)
	-tie-break       none | priority
	-duplicates      first | last | reject
	-unknown         pass | drop
	-o               Report output file (default stdout)
	-p               Server port (default 3318)
	-v               Debug logging

# Environment Variables

Flags fall back to environment variables:

	INPUT_CSV     → -i
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	TOPICS_CSV    → -topics
	GROUPS_FILE   → -groups
	START_YEAR    → -start
	END_YEAR      → -end
	PORT          → -p

CLI flags take precedence over environment variables. Exactly one of the
CSV file and the database URL must be set.

# Groups File

LoadAnalysisFile reads YAML over DefaultAnalysis:

	bloc:
	  name: crink
	  members: [China, Russian Federation, "Iran (Islamic Republic of)",
	            "Democratic People's Republic of Korea"]
	comparison:
	  name: western
	  members: [United States, Germany, France, United Kingdom]
	reference: United States
	aliases:
	  USSR: Russian Federation
	known: []   # empty accepts every country name

Analysis.Settings merges the file with the policy flags and validates the
result, so every configuration error surfaces before any input is read.
*/
package cliparse
