// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package alignment

import (
	"math"
	"sort"

	"github.com/danielhkuo/bloc-alignment/models"
)

// Dyadic compares two countries over the resolutions both voted on
func Dyadic(m models.ResolutionVoteMatrix, a, b string) models.DyadicAlignment {
	return dyadic(m.Resolutions(), a, b)
}

func dyadic(resolutions []models.Resolution, a, b string) models.DyadicAlignment {
	d := models.DyadicAlignment{CountryA: a, CountryB: b}
	for _, r := range resolutions {
		va, vb := r.Vote(a), r.Vote(b)
		if !va.Cast() || !vb.Cast() {
			continue
		}
		d.JointTotal++
		if va == vb {
			d.Matches++
		}
	}
	d.Pct = models.Percentage(d.Matches, d.JointTotal)
	return d
}

// DyadicMatrix builds the square alignment matrix for countries. The
// diagonal is exactly 100; each off-diagonal pair is computed once and
// mirrored.
func DyadicMatrix(m models.ResolutionVoteMatrix, countries []string) models.AlignmentMatrix {
	resolutions := m.Resolutions()
	n := len(countries)

	cells := make([][]models.Metric, n)
	for i := range cells {
		cells[i] = make([]models.Metric, n)
		cells[i][i] = models.Defined(100)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pct := dyadic(resolutions, countries[i], countries[j]).Pct
			cells[i][j] = pct
			cells[j][i] = pct
		}
	}

	return models.AlignmentMatrix{
		Countries: append([]string(nil), countries...),
		Cells:     cells,
	}
}

// DyadicPairs returns every unordered pair, highest alignment first.
// Pairs without joint votes sort last.
func DyadicPairs(m models.ResolutionVoteMatrix, countries []string) []models.DyadicAlignment {
	return pairs(m.Resolutions(), countries)
}

func pairs(resolutions []models.Resolution, countries []string) []models.DyadicAlignment {
	out := make([]models.DyadicAlignment, 0, len(countries)*(len(countries)-1)/2)
	for i := 0; i < len(countries); i++ {
		for j := i + 1; j < len(countries); j++ {
			out = append(out, dyadic(resolutions, countries[i], countries[j]))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		// 1. Higher alignment wins, undefined last
		if a.Pct != b.Pct {
			return descending(a.Pct, b.Pct)
		}

		// 2. Stable tie-breaking by country names
		if a.CountryA != b.CountryA {
			return a.CountryA < b.CountryA
		}
		return a.CountryB < b.CountryB
	})

	return out
}

// AgreementVariance is the population variance of the defined pairwise
// alignment percentages among countries. Lower means more uniform voting.
func AgreementVariance(m models.ResolutionVoteMatrix, countries []string) models.Metric {
	var values []float64
	for _, p := range pairs(m.Resolutions(), countries) {
		if v, ok := p.Pct.Value(); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return models.Undefined()
	}
	_, variance := meanVariance(values)
	return models.Defined(variance)
}

// meanVariance returns the mean and population variance
func meanVariance(values []float64) (float64, float64) {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return mean, sq / float64(len(values))
}

// descending orders defined metrics high to low, undefined last
func descending(a, b models.Metric) bool {
	if a.IsDefined() != b.IsDefined() {
		return a.IsDefined()
	}
	return b.Less(a)
}

func stddev(variance float64) float64 {
	return math.Sqrt(variance)
}
