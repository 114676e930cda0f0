// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package pipeline

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/danielhkuo/bloc-alignment/coalition"
	"github.com/danielhkuo/bloc-alignment/loader"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pivot"
)

// Settings is the full configuration of one run. Nothing is read from
// package state.
type Settings struct {
	Bloc models.CountryGroup
	// Comparison is optional; a zero group disables the comparison tables
	Comparison models.CountryGroup
	// Reference enables the opposes_reference flag when set
	Reference string

	StartYear    int
	EndYear      int
	MinAgreement int

	TieBreak   coalition.TieBreak
	Duplicates pivot.DuplicatePolicy
	Unknown    loader.UnknownPolicy

	// Known lists canonical country ids; Aliases maps variant names onto them
	Known   []string
	Aliases map[string]string
}

// stages holds the validated, ready-to-run components
type stages struct {
	directory  loader.Directory
	loader     *loader.Loader
	bloc       *coalition.Classifier
	comparison *coalition.Classifier
	reference  string
}

// Validate reports the first configuration problem as a *models.ConfigError
func (s Settings) Validate() error {
	_, err := s.prepare()
	return err
}

func (s Settings) prepare() (*stages, error) {
	dir := loader.NewDirectory(s.Known, s.Aliases)

	l, err := loader.New(loader.Options{
		Directory: dir,
		Unknown:   s.Unknown,
		StartYear: s.StartYear,
		EndYear:   s.EndYear,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Duplicates.Validate(); err != nil {
		return nil, err
	}

	if s.Bloc.IsZero() {
		return nil, models.NewConfigError("bloc", models.ErrEmptyGroup, "no bloc configured")
	}

	reference := ""
	if strings.TrimSpace(s.Reference) != "" {
		reference, _, _ = dir.Resolve(s.Reference)
	}
	opts := coalition.Options{
		MinAgreement: s.MinAgreement,
		TieBreak:     s.TieBreak,
		Reference:    reference,
	}

	st := &stages{directory: dir, loader: l, reference: reference}

	bloc, err := canonicalGroup(dir, s.Bloc)
	if err != nil {
		return nil, err
	}
	if st.bloc, err = coalition.New(bloc, opts); err != nil {
		return nil, err
	}

	if !s.Comparison.IsZero() {
		comparison, err := canonicalGroup(dir, s.Comparison)
		if err != nil {
			return nil, err
		}
		if st.comparison, err = coalition.New(comparison, opts); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// canonicalGroup rewrites member names to the ids the loader produces, so
// configured aliases and spelling variants match the vote data
func canonicalGroup(dir loader.Directory, g models.CountryGroup) (models.CountryGroup, error) {
	members := g.Members()
	for i, m := range members {
		members[i], _, _ = dir.Resolve(m)
	}
	return models.NewCountryGroup(g.Name(), members...)
}

// Canonical renders the settings as a stable string for the inputs digest
func (s Settings) Canonical() string {
	var b strings.Builder
	fmt.Fprintf(&b, "bloc=%s:%s\n", s.Bloc.Name(), strings.Join(s.Bloc.Members(), "|"))
	fmt.Fprintf(&b, "comparison=%s:%s\n", s.Comparison.Name(), strings.Join(s.Comparison.Members(), "|"))
	fmt.Fprintf(&b, "reference=%s\n", s.Reference)
	fmt.Fprintf(&b, "years=%d-%d\n", s.StartYear, s.EndYear)
	fmt.Fprintf(&b, "min_agreement=%d\n", s.MinAgreement)
	fmt.Fprintf(&b, "tie_break=%s duplicates=%s unknown=%s\n", s.TieBreak, s.Duplicates, s.Unknown)
	fmt.Fprintf(&b, "known=%s\n", strings.Join(slices.Sorted(slices.Values(s.Known)), "|"))
	for _, k := range slices.Sorted(maps.Keys(s.Aliases)) {
		fmt.Fprintf(&b, "alias=%s>%s\n", k, s.Aliases[k])
	}
	return b.String()
}
