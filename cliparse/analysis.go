// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/bloc-alignment/coalition"
	"github.com/danielhkuo/bloc-alignment/loader"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pipeline"
	"github.com/danielhkuo/bloc-alignment/pivot"
)

// GroupSpec is a named country group as written in the groups file
type GroupSpec struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

// Analysis holds the group definitions and name directory of a run
type Analysis struct {
	Bloc       GroupSpec         `yaml:"bloc"`
	Comparison *GroupSpec        `yaml:"comparison"`
	Reference  string            `yaml:"reference"`
	Aliases    map[string]string `yaml:"aliases"`
	Known      []string          `yaml:"known"`
}

// DefaultAnalysis compares the CRINK bloc against four Western states, with
// the USSR folded into the Russian Federation
func DefaultAnalysis() Analysis {
	return Analysis{
		Bloc: GroupSpec{
			Name: "crink",
			Members: []string{
				"CHINA",
				"RUSSIAN FEDERATION",
				"IRAN (ISLAMIC REPUBLIC OF)",
				"DEMOCRATIC PEOPLE'S REPUBLIC OF KOREA",
			},
		},
		Comparison: &GroupSpec{
			Name: "western",
			Members: []string{
				"UNITED STATES",
				"GERMANY",
				"FRANCE",
				"UNITED KINGDOM",
			},
		},
		Reference: "UNITED STATES",
		Aliases: map[string]string{
			"USSR": "RUSSIAN FEDERATION",
		},
	}
}

// LoadAnalysisFile reads a groups file over DefaultAnalysis. Keys present in
// the file replace the defaults; aliases are merged. Unknown keys are
// rejected.
func LoadAnalysisFile(path string) (Analysis, error) {
	a := DefaultAnalysis()

	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("failed to read groups file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&a); err != nil && !errors.Is(err, io.EOF) {
		return Analysis{}, fmt.Errorf("failed to parse groups file: %w", err)
	}

	return a, nil
}

// Settings combines the analysis with the command-line options into
// validated pipeline settings
func (a Analysis) Settings(cfg Config) (pipeline.Settings, error) {
	var s pipeline.Settings
	var err error

	if s.Bloc, err = models.NewCountryGroup(a.Bloc.Name, a.Bloc.Members...); err != nil {
		return pipeline.Settings{}, err
	}
	if a.Comparison != nil {
		if s.Comparison, err = models.NewCountryGroup(a.Comparison.Name, a.Comparison.Members...); err != nil {
			return pipeline.Settings{}, err
		}
	}

	if s.TieBreak, err = coalition.ParseTieBreak(cfg.TieBreak); err != nil {
		return pipeline.Settings{}, err
	}
	if s.Duplicates, err = pivot.ParseDuplicatePolicy(cfg.Duplicates); err != nil {
		return pipeline.Settings{}, err
	}
	if s.Unknown, err = loader.ParseUnknownPolicy(cfg.Unknown); err != nil {
		return pipeline.Settings{}, err
	}

	s.Reference = a.Reference
	s.Aliases = a.Aliases
	s.Known = a.Known
	s.StartYear = cfg.StartYear
	s.EndYear = cfg.EndYear
	s.MinAgreement = cfg.MinAgreement

	if err := s.Validate(); err != nil {
		return pipeline.Settings{}, err
	}
	return s, nil
}
