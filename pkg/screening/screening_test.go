package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/screenline/sdnscreen/pkg/reference"
)

func testSet() *reference.Set {
	return &reference.Set{
		Entities: []reference.Entity{
			{UID: 100, SDNType: "Individual", FirstName: "Ali", LastName: "Hassan", Remarks: "linked to Hizballah network"},
			{UID: 200, SDNType: "Entity", LastName: "ACME TRADING CO."},
			{UID: 300, SDNType: "Individual", FirstName: "Maria", LastName: "Gonzalez"},
		},
		Aliases: []reference.Alias{
			{EntityUID: 300, AKAUID: 1, FirstName: "Marya", LastName: "Gonsales"},
			{EntityUID: 200, AKAUID: 2, LastName: "HIZBALLAH TRADE HOUSE"},
		},
		Addresses: []reference.Address{
			{EntityUID: 100, AddressUID: 10, City: "Beirut", Country: "Lebanon"},
			{EntityUID: 300, AddressUID: 11, City: "Cali", Country: "Colombia"},
		},
		IdentityDocuments: []reference.IdentityDocument{
			{EntityUID: 100, IDUID: 20, IDType: "Passport", IDNumber: "RL0123456"},
		},
		Programs: []reference.Program{
			{EntityUID: 100, Program: "SDGT"},
			{EntityUID: 100, Program: "LEBANON"},
			{EntityUID: 300, Program: "SDNTK"},
		},
	}
}

func TestSelectCandidates_ByProgram(t *testing.T) {
	uids := SelectCandidates(testSet(), Criteria{Programs: []string{"sdgt"}})
	assert.Equal(t, []int64{100}, uids)
}

func TestSelectCandidates_ByKeyword(t *testing.T) {
	// Hits entity 100 through remarks and entity 200 through an alias name.
	uids := SelectCandidates(testSet(), Criteria{Keywords: []string{"hizballah"}})
	assert.Equal(t, []int64{100, 200}, uids)
}

func TestSelectCandidates_ProgramsAndKeywordsUnion(t *testing.T) {
	uids := SelectCandidates(testSet(), Criteria{
		Programs: []string{"SDNTK"},
		Keywords: []string{"acme"},
	})
	assert.Equal(t, []int64{200, 300}, uids)
}

func TestSelectCandidates_KeywordHitsAliasOfOtherwiseUnmatchedEntity(t *testing.T) {
	uids := SelectCandidates(testSet(), Criteria{Keywords: []string{"gonsales"}})
	assert.Equal(t, []int64{300}, uids)
}

func TestSelectCandidates_EmptyCriteria(t *testing.T) {
	assert.Empty(t, SelectCandidates(testSet(), Criteria{}))
}

func TestSelectCandidates_NoMatch(t *testing.T) {
	assert.Empty(t, SelectCandidates(testSet(), Criteria{
		Programs: []string{"CUBA"},
		Keywords: []string{"nonexistent"},
	}))
}

func TestSubset(t *testing.T) {
	sub := Subset(testSet(), []int64{100, 300})

	assert.Len(t, sub.Entities, 2)
	assert.Equal(t, int64(100), sub.Entities[0].UID)
	assert.Equal(t, int64(300), sub.Entities[1].UID)

	assert.Len(t, sub.Aliases, 1)
	assert.Equal(t, int64(300), sub.Aliases[0].EntityUID)

	assert.Len(t, sub.Addresses, 2)
	assert.Len(t, sub.IdentityDocuments, 1)
	assert.Len(t, sub.Programs, 3)
}

func TestSubset_Empty(t *testing.T) {
	sub := Subset(testSet(), nil)
	assert.Empty(t, sub.Entities)
	assert.Empty(t, sub.Aliases)
	assert.Empty(t, sub.Addresses)
	assert.Empty(t, sub.IdentityDocuments)
	assert.Empty(t, sub.Programs)
}
