// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package loader

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var upper = cases.Upper(language.Und)

// NormalizeName canonicalizes a country name: NFC, trimmed, inner whitespace
// collapsed, upper-cased.
func NormalizeName(name string) string {
	name = norm.NFC.String(name)
	name = strings.Join(strings.Fields(name), " ")
	return upper.String(name)
}

// Directory resolves raw country names to identifiers. Aliases map legacy
// designations onto their successor; alias targets are always known.
// Without a known list every name is treated as known.
type Directory struct {
	aliases map[string]string
	known   map[string]bool
	open    bool
}

// NewDirectory builds a directory. All names are normalized.
func NewDirectory(known []string, aliases map[string]string) Directory {
	d := Directory{
		aliases: make(map[string]string, len(aliases)),
		known:   make(map[string]bool, len(known)+len(aliases)),
		open:    len(known) == 0,
	}
	for _, k := range known {
		d.known[NormalizeName(k)] = true
	}
	for from, to := range aliases {
		target := NormalizeName(to)
		d.aliases[NormalizeName(from)] = target
		d.known[target] = true
	}
	return d
}

// Resolve returns the identifier for name, whether an alias was applied, and
// whether the identifier is known. Unknown names come back normalized but
// otherwise untouched.
func (d Directory) Resolve(name string) (id string, aliased, known bool) {
	id = NormalizeName(name)
	if target, ok := d.aliases[id]; ok {
		return target, true, true
	}
	return id, false, d.open || d.known[id]
}

// Len returns the number of known identifiers
func (d Directory) Len() int {
	return len(d.known)
}
