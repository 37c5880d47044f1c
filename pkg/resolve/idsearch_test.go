package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenline/sdnscreen/pkg/logging"
	"github.com/screenline/sdnscreen/pkg/reference"
)

func testDocs() []reference.IdentityDocument {
	return []reference.IdentityDocument{
		{EntityUID: 100, IDUID: 1, IDType: "Passport", IDNumber: "RL0123456", IDCountry: "Lebanon"},
		{EntityUID: 100, IDUID: 2, IDType: "National ID No.", IDNumber: "901455678", IDCountry: "Lebanon"},
		{EntityUID: 200, IDUID: 3, IDType: "Passport", IDNumber: "AB9014550", IDCountry: "Colombia"},
	}
}

func TestSearchIdentityDocuments_ByNumber(t *testing.T) {
	docs := SearchIdentityDocuments(testDocs(), "rl01", "")
	require.Len(t, docs, 1)
	assert.Equal(t, int64(1), docs[0].IDUID)
}

func TestSearchIdentityDocuments_ByType(t *testing.T) {
	docs := SearchIdentityDocuments(testDocs(), "", "passport")
	require.Len(t, docs, 2)
	assert.Equal(t, int64(1), docs[0].IDUID)
	assert.Equal(t, int64(3), docs[1].IDUID)
}

func TestSearchIdentityDocuments_NumberAndType(t *testing.T) {
	// Both filters must hold: "90145" appears in a national ID and inside a
	// passport number, the type filter keeps only the passport.
	docs := SearchIdentityDocuments(testDocs(), "90145", "passport")
	require.Len(t, docs, 1)
	assert.Equal(t, int64(3), docs[0].IDUID)
}

func TestSearchIdentityDocuments_NoMatch(t *testing.T) {
	assert.Empty(t, SearchIdentityDocuments(testDocs(), "ZZZ", ""))
	assert.Empty(t, SearchIdentityDocuments(testDocs(), "", "driver"))
}

func TestSearchIdentityDocuments_BlankFiltersPassEverything(t *testing.T) {
	assert.Len(t, SearchIdentityDocuments(testDocs(), "", ""), 3)
	assert.Len(t, SearchIdentityDocuments(testDocs(), "  ", ""), 3)
}

func TestEngine_SearchIDs(t *testing.T) {
	set := testSet()
	set.IdentityDocuments = testDocs()
	engine := NewEngine(set, WithLogger(logging.NewNopLogger()))

	docs := engine.SearchIDs("ab901", "")
	require.Len(t, docs, 1)
	assert.Equal(t, int64(200), docs[0].EntityUID)
}
