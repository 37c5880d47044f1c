// Package screening derives candidate entity populations from a reference
// set by program membership and keyword search. It is plain set-membership
// filtering with no matching logic; the result feeds index construction in
// the resolution core.
package screening

import (
	"sort"
	"strings"

	"github.com/screenline/sdnscreen/pkg/reference"
)

// Criteria selects entities by sanctions program and/or by keywords searched
// case-insensitively across names, aliases, and remarks. Empty criteria
// select nothing.
type Criteria struct {
	Programs []string
	Keywords []string
}

// SelectCandidates returns the sorted, deduplicated uids of every entity
// matching any program or any keyword in the criteria.
func SelectCandidates(set *reference.Set, c Criteria) []int64 {
	selected := make(map[int64]bool)

	if len(c.Programs) > 0 {
		programs := make(map[string]bool, len(c.Programs))
		for _, p := range c.Programs {
			programs[strings.ToUpper(p)] = true
		}
		for _, pr := range set.Programs {
			if programs[strings.ToUpper(pr.Program)] {
				selected[pr.EntityUID] = true
			}
		}
	}

	if len(c.Keywords) > 0 {
		keywords := make([]string, len(c.Keywords))
		for i, k := range c.Keywords {
			keywords[i] = strings.ToUpper(k)
		}
		matches := func(fields ...string) bool {
			for _, f := range fields {
				if f == "" {
					continue
				}
				upper := strings.ToUpper(f)
				for _, k := range keywords {
					if strings.Contains(upper, k) {
						return true
					}
				}
			}
			return false
		}

		for _, e := range set.Entities {
			if matches(e.FirstName, e.LastName, e.Remarks) {
				selected[e.UID] = true
			}
		}
		for _, a := range set.Aliases {
			if matches(a.FirstName, a.LastName) {
				selected[a.EntityUID] = true
			}
		}
	}

	uids := make([]int64, 0, len(selected))
	for uid := range selected {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids
}

// Subset returns a reduced reference set containing only the given entities
// and their related rows, preserving source table order.
func Subset(set *reference.Set, uids []int64) *reference.Set {
	keep := make(map[int64]bool, len(uids))
	for _, uid := range uids {
		keep[uid] = true
	}

	out := &reference.Set{}
	for _, e := range set.Entities {
		if keep[e.UID] {
			out.Entities = append(out.Entities, e)
		}
	}
	for _, a := range set.Aliases {
		if keep[a.EntityUID] {
			out.Aliases = append(out.Aliases, a)
		}
	}
	for _, a := range set.Addresses {
		if keep[a.EntityUID] {
			out.Addresses = append(out.Addresses, a)
		}
	}
	for _, d := range set.IdentityDocuments {
		if keep[d.EntityUID] {
			out.IdentityDocuments = append(out.IdentityDocuments, d)
		}
	}
	for _, p := range set.Programs {
		if keep[p.EntityUID] {
			out.Programs = append(out.Programs, p)
		}
	}
	return out
}
