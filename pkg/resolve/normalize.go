// Package resolve implements the entity-resolution core: name normalization,
// index construction over primary names and aliases, exact and fuzzy
// matching with thresholded scoring, batch resolution with confidence
// tiers, and per-entity profile assembly.
//
// The package is pure computation over in-memory reference tables. It never
// touches the filesystem or network; callers construct an Engine from an
// already-loaded reference.Set.
package resolve

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// honorificPattern matches honorific tokens as whole words, with an optional
// trailing period. Longer alternatives first so MRS isn't eaten by MR.
var honorificPattern = regexp.MustCompile(`(?i)\b(MRS|MR|MS|DR|PROF|SR|JR)\b\.?`)

var upper = cases.Upper(language.Und)

// Normalize canonicalizes a raw name string into its comparison form:
// uppercased, honorifics stripped, whitespace collapsed. Empty input yields
// an empty string, never an error. Normalize is idempotent.
//
//	Normalize("Dr. Jane DOE") == Normalize("JANE DOE") == "JANE DOE"
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	name := upper.String(raw)
	name = honorificPattern.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}
