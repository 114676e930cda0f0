// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package coalition classifies how a country group voted on each resolution.

	c, err := coalition.New(bloc, coalition.Options{
		MinAgreement: 2,
		TieBreak:     coalition.TieNoWinner,
		Reference:    "UNITED STATES",
	})
	records := c.Classify(matrix)

# Group Vote

The group vote is the mode of the members' cast votes. The agreement count is
the number of members casting it. Both are nil when fewer than MinAgreement
members share the modal value, or when there is no mode. The agreement count
is therefore never 0 or 1.

# Ties

	TieNoWinner - a tie at the top yields no mode (default)
	TiePriority - ties resolve YES > NO > ABSTAIN

The same rule applies to the majority vote over all participating countries.

# Majority Alignment

AlignedWithMajority is nil when either the group vote or the majority vote is
undefined, otherwise whether the two are equal.

# Reference Opposition

With a Reference country set, OpposesReference is defined whenever that
country voted, and is true only when the group is unanimous and voted
differently.
*/
package coalition
