package resolve

import (
	"fmt"
	"strconv"

	sserrors "github.com/screenline/sdnscreen/pkg/errors"
	"github.com/screenline/sdnscreen/pkg/reference"
)

// Profile is the aggregate view of one entity: the entity row plus every
// alias, address, identity document, and program membership keyed to its
// uid. Profiles have no lifecycle; they are recomputed on each request.
type Profile struct {
	Entity            reference.Entity             `json:"entity"`
	Aliases           []reference.Alias            `json:"aliases,omitempty"`
	Addresses         []reference.Address          `json:"addresses,omitempty"`
	IdentityDocuments []reference.IdentityDocument `json:"identity_documents,omitempty"`
	Programs          []string                     `json:"programs,omitempty"`
}

// ProfileAssembler joins the reference tables into per-entity profiles. It
// only reads the tables and is safe for concurrent use.
type ProfileAssembler struct {
	set *reference.Set
}

// NewProfileAssembler creates an assembler over a loaded reference set.
func NewProfileAssembler(set *reference.Set) *ProfileAssembler {
	return &ProfileAssembler{set: set}
}

// Profile assembles the profile for uid. The second return is false when no
// entity row has that uid; orphaned rows in the related tables never produce
// a profile on their own.
func (p *ProfileAssembler) Profile(uid int64) (*Profile, bool) {
	var entity *reference.Entity
	for i := range p.set.Entities {
		if p.set.Entities[i].UID == uid {
			entity = &p.set.Entities[i]
			break
		}
	}
	if entity == nil {
		return nil, false
	}

	profile := &Profile{Entity: *entity}
	for _, a := range p.set.Aliases {
		if a.EntityUID == uid {
			profile.Aliases = append(profile.Aliases, a)
		}
	}
	for _, a := range p.set.Addresses {
		if a.EntityUID == uid {
			profile.Addresses = append(profile.Addresses, a)
		}
	}
	for _, d := range p.set.IdentityDocuments {
		if d.EntityUID == uid {
			profile.IdentityDocuments = append(profile.IdentityDocuments, d)
		}
	}
	for _, pr := range p.set.Programs {
		if pr.EntityUID == uid {
			profile.Programs = append(profile.Programs, pr.Program)
		}
	}
	return profile, true
}

// ParseUID parses a uid supplied as a numeric string. Non-numeric input is a
// caller contract violation reported as a validation error.
func ParseUID(raw string) (int64, error) {
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("uid %q is not numeric: %w", raw, sserrors.ErrValidation)
	}
	return uid, nil
}

// ProfileByID assembles the profile for a uid given as a numeric string.
// Non-numeric input returns a validation error; an unknown uid returns
// (nil, false, nil).
func (p *ProfileAssembler) ProfileByID(raw string) (*Profile, bool, error) {
	uid, err := ParseUID(raw)
	if err != nil {
		return nil, false, err
	}
	profile, ok := p.Profile(uid)
	return profile, ok, nil
}
