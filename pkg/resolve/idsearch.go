package resolve

import (
	"strings"

	"github.com/screenline/sdnscreen/pkg/reference"
)

// SearchIdentityDocuments filters the identity-document table by independent
// contains-filters on document number and document type, case-insensitively.
// A blank filter passes every row; rows must satisfy all non-blank filters.
// No match is an empty result, never an error.
func SearchIdentityDocuments(docs []reference.IdentityDocument, number, idType string) []reference.IdentityDocument {
	num := strings.ToLower(strings.TrimSpace(number))
	typ := strings.ToLower(strings.TrimSpace(idType))

	var out []reference.IdentityDocument
	for _, d := range docs {
		if num != "" && !strings.Contains(strings.ToLower(d.IDNumber), num) {
			continue
		}
		if typ != "" && !strings.Contains(strings.ToLower(d.IDType), typ) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// SearchIDs filters the engine's identity-document table; see
// SearchIdentityDocuments.
func (e *Engine) SearchIDs(number, idType string) []reference.IdentityDocument {
	return SearchIdentityDocuments(e.set.IdentityDocuments, number, idType)
}
