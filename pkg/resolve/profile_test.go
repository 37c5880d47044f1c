package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sserrors "github.com/screenline/sdnscreen/pkg/errors"
	"github.com/screenline/sdnscreen/pkg/reference"
)

func profileSet() *reference.Set {
	return &reference.Set{
		Entities: []reference.Entity{
			{UID: 100, SDNType: "Individual", FirstName: "Ali", LastName: "Hassan"},
			{UID: 200, SDNType: "Entity", LastName: "ACME TRADING"},
		},
		Aliases: []reference.Alias{
			{EntityUID: 100, AKAUID: 1, FirstName: "Ali", LastName: "Hasan"},
			{EntityUID: 100, AKAUID: 2, FirstName: "A.", LastName: "Hassan"},
			{EntityUID: 999, AKAUID: 3, LastName: "Orphaned"}, // no entity row
		},
		Addresses: []reference.Address{
			{EntityUID: 100, AddressUID: 10, City: "Beirut", Country: "Lebanon"},
			{EntityUID: 200, AddressUID: 11, City: "Panama City", Country: "Panama"},
			{EntityUID: 999, AddressUID: 12, Country: "Nowhere"},
		},
		IdentityDocuments: []reference.IdentityDocument{
			{EntityUID: 100, IDUID: 20, IDType: "Passport", IDNumber: "RL0123456", IDCountry: "Lebanon"},
		},
		Programs: []reference.Program{
			{EntityUID: 100, Program: "SDGT"},
			{EntityUID: 200, Program: "SDGT"},
		},
	}
}

func TestProfile_JoinsAllRelatedRows(t *testing.T) {
	p := NewProfileAssembler(profileSet())

	profile, ok := p.Profile(100)
	require.True(t, ok)

	assert.Equal(t, int64(100), profile.Entity.UID)
	assert.Equal(t, "Hassan", profile.Entity.LastName)

	require.Len(t, profile.Aliases, 2)
	assert.Equal(t, int64(1), profile.Aliases[0].AKAUID)
	assert.Equal(t, int64(2), profile.Aliases[1].AKAUID)

	require.Len(t, profile.Addresses, 1)
	assert.Equal(t, "Beirut", profile.Addresses[0].City)

	require.Len(t, profile.IdentityDocuments, 1)
	assert.Equal(t, "RL0123456", profile.IdentityDocuments[0].IDNumber)

	assert.Equal(t, []string{"SDGT"}, profile.Programs)
}

func TestProfile_EmptyCollections(t *testing.T) {
	p := NewProfileAssembler(profileSet())

	profile, ok := p.Profile(200)
	require.True(t, ok)
	assert.Empty(t, profile.Aliases)
	assert.Len(t, profile.Addresses, 1)
	assert.Empty(t, profile.IdentityDocuments)
}

func TestProfile_AbsentDespiteOrphanedRows(t *testing.T) {
	p := NewProfileAssembler(profileSet())

	// uid 999 has alias and address rows but no entity row.
	profile, ok := p.Profile(999)
	assert.False(t, ok)
	assert.Nil(t, profile)
}

func TestProfile_RepeatedCallsConsistent(t *testing.T) {
	p := NewProfileAssembler(profileSet())

	first, ok := p.Profile(100)
	require.True(t, ok)
	second, ok := p.Profile(100)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestProfileByID(t *testing.T) {
	p := NewProfileAssembler(profileSet())

	profile, ok, err := p.ProfileByID("100")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(100), profile.Entity.UID)

	_, ok, err = p.ProfileByID("12345")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = p.ProfileByID("not-a-uid")
	require.Error(t, err)
	assert.True(t, sserrors.IsValidation(err))
}

func TestParseUID(t *testing.T) {
	uid, err := ParseUID("27039")
	require.NoError(t, err)
	assert.Equal(t, int64(27039), uid)

	_, err = ParseUID("27O39")
	assert.True(t, sserrors.IsValidation(err))

	_, err = ParseUID("")
	assert.True(t, sserrors.IsValidation(err))
}
