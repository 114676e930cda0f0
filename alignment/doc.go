// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package alignment turns coalition records and the vote matrix into summary
tables.

# Dyadic Alignment

For two countries, alignment is the share of resolutions both voted on where
they cast the same vote:

	pct = matches / joint_total * 100

Resolutions where either country is absent are excluded. With no joint votes
the result is undefined, never 0.

	d := alignment.Dyadic(matrix, "CHINA", "RUSSIAN FEDERATION")
	grid := alignment.DyadicMatrix(matrix, members) // symmetric, diagonal 100

# Agreement Tallies

	Summarize(records) - 2/3/4-way counts over one slice
	Yearly(records)    - one Summarize per year, oldest first
	ByTopic(records, topics)

Percentages use the number of classified resolutions (defined agreement
count) as the denominator.

# Divergence and Similarity

DivergenceByTopic reports mean, population standard deviation, min and max
of the pairwise alignment within each topic. Jaccard and GroupJaccard compare
the sets of resolutions on which two countries (or groups) cast a given vote.
*/
package alignment
