package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSDN = `<?xml version="1.0" encoding="utf-8"?>
<sdnList>
  <publshInformation>
    <Publish_Date>03/15/2024</Publish_Date>
    <Record_Count>2</Record_Count>
  </publshInformation>
  <sdnEntry>
    <uid>100</uid>
    <firstName>Ali</firstName>
    <lastName>Hassan</lastName>
    <sdnType>Individual</sdnType>
    <remarks>DOB 01 Jan 1970</remarks>
    <programList>
      <program>SDGT</program>
      <program>LEBANON</program>
    </programList>
    <akaList>
      <aka>
        <uid>1</uid>
        <type>a.k.a.</type>
        <category>strong</category>
        <firstName>Ali</firstName>
        <lastName>Hasan</lastName>
      </aka>
    </akaList>
    <addressList>
      <address>
        <uid>10</uid>
        <city>Beirut</city>
        <country>Lebanon</country>
      </address>
    </addressList>
    <idList>
      <id>
        <uid>20</uid>
        <idType>Passport</idType>
        <idNumber>RL0123456</idNumber>
        <idCountry>Lebanon</idCountry>
      </id>
    </idList>
  </sdnEntry>
  <sdnEntry>
    <uid>200</uid>
    <lastName>ACME TRADING CO.</lastName>
    <sdnType>Entity</sdnType>
  </sdnEntry>
</sdnList>`

func TestParseSDN(t *testing.T) {
	set, pub, err := ParseSDN(strings.NewReader(sampleSDN))
	require.NoError(t, err)

	assert.Equal(t, Publication{Date: "03/15/2024", RecordCount: 2}, pub)

	require.Len(t, set.Entities, 2)
	assert.Equal(t, Entity{
		UID:       100,
		SDNType:   "Individual",
		FirstName: "Ali",
		LastName:  "Hassan",
		Remarks:   "DOB 01 Jan 1970",
	}, set.Entities[0])
	assert.Equal(t, "ACME TRADING CO.", set.Entities[1].FullName())

	require.Len(t, set.Programs, 2)
	assert.Equal(t, Program{EntityUID: 100, Program: "SDGT"}, set.Programs[0])
	assert.Equal(t, Program{EntityUID: 100, Program: "LEBANON"}, set.Programs[1])

	require.Len(t, set.Aliases, 1)
	assert.Equal(t, Alias{
		EntityUID: 100,
		AKAUID:    1,
		Type:      "a.k.a.",
		Category:  "strong",
		FirstName: "Ali",
		LastName:  "Hasan",
	}, set.Aliases[0])

	require.Len(t, set.Addresses, 1)
	assert.Equal(t, int64(100), set.Addresses[0].EntityUID)
	assert.Equal(t, "Beirut", set.Addresses[0].City)
	assert.Equal(t, "Lebanon", set.Addresses[0].Country)

	require.Len(t, set.IdentityDocuments, 1)
	assert.Equal(t, "RL0123456", set.IdentityDocuments[0].IDNumber)
}

func TestParseSDN_Invalid(t *testing.T) {
	_, _, err := ParseSDN(strings.NewReader("<sdnList><sdnEntry>"))
	require.Error(t, err)
}
