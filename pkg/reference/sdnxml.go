package reference

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
)

// Publication describes the list snapshot an SDN XML export was taken from.
type Publication struct {
	Date        string `json:"date"`
	RecordCount int    `json:"record_count"`
}

// The OFAC export spells the element "publshInformation"; keep the feed's
// spelling in the tag.
type sdnList struct {
	XMLName     xml.Name `xml:"sdnList"`
	PublishInfo struct {
		PublishDate string `xml:"Publish_Date"`
		RecordCount int    `xml:"Record_Count"`
	} `xml:"publshInformation"`
	Entries []sdnEntry `xml:"sdnEntry"`
}

type sdnEntry struct {
	UID       int64  `xml:"uid"`
	FirstName string `xml:"firstName"`
	LastName  string `xml:"lastName"`
	SDNType   string `xml:"sdnType"`
	Title     string `xml:"title"`
	Remarks   string `xml:"remarks"`

	Programs []string `xml:"programList>program"`

	AKAs []struct {
		UID       int64  `xml:"uid"`
		Type      string `xml:"type"`
		Category  string `xml:"category"`
		FirstName string `xml:"firstName"`
		LastName  string `xml:"lastName"`
	} `xml:"akaList>aka"`

	Addresses []struct {
		UID           int64  `xml:"uid"`
		Address1      string `xml:"address1"`
		Address2      string `xml:"address2"`
		Address3      string `xml:"address3"`
		City          string `xml:"city"`
		StateProvince string `xml:"stateOrProvince"`
		PostalCode    string `xml:"postalCode"`
		Country       string `xml:"country"`
	} `xml:"addressList>address"`

	IDs []struct {
		UID            int64  `xml:"uid"`
		IDType         string `xml:"idType"`
		IDNumber       string `xml:"idNumber"`
		IDCountry      string `xml:"idCountry"`
		IssueDate      string `xml:"issueDate"`
		ExpirationDate string `xml:"expirationDate"`
	} `xml:"idList>id"`
}

// ParseSDN flattens an SDN XML export into the relational reference tables.
// It is a pure structural transform; no matching logic is applied.
func ParseSDN(r io.Reader) (*Set, Publication, error) {
	var list sdnList
	if err := xml.NewDecoder(r).Decode(&list); err != nil {
		return nil, Publication{}, fmt.Errorf("decode sdn xml: %w", err)
	}

	pub := Publication{
		Date:        list.PublishInfo.PublishDate,
		RecordCount: list.PublishInfo.RecordCount,
	}

	set := &Set{Entities: make([]Entity, 0, len(list.Entries))}
	for _, entry := range list.Entries {
		set.Entities = append(set.Entities, Entity{
			UID:       entry.UID,
			SDNType:   entry.SDNType,
			FirstName: entry.FirstName,
			LastName:  entry.LastName,
			Title:     entry.Title,
			Remarks:   entry.Remarks,
		})

		for _, program := range entry.Programs {
			set.Programs = append(set.Programs, Program{
				EntityUID: entry.UID,
				Program:   program,
			})
		}

		for _, aka := range entry.AKAs {
			set.Aliases = append(set.Aliases, Alias{
				EntityUID: entry.UID,
				AKAUID:    aka.UID,
				Type:      aka.Type,
				Category:  aka.Category,
				FirstName: aka.FirstName,
				LastName:  aka.LastName,
			})
		}

		for _, addr := range entry.Addresses {
			set.Addresses = append(set.Addresses, Address{
				EntityUID:     entry.UID,
				AddressUID:    addr.UID,
				Address1:      addr.Address1,
				Address2:      addr.Address2,
				Address3:      addr.Address3,
				City:          addr.City,
				StateProvince: addr.StateProvince,
				PostalCode:    addr.PostalCode,
				Country:       addr.Country,
			})
		}

		for _, id := range entry.IDs {
			set.IdentityDocuments = append(set.IdentityDocuments, IdentityDocument{
				EntityUID:      entry.UID,
				IDUID:          id.UID,
				IDType:         id.IDType,
				IDNumber:       id.IDNumber,
				IDCountry:      id.IDCountry,
				IssueDate:      id.IssueDate,
				ExpirationDate: id.ExpirationDate,
			})
		}
	}

	return set, pub, nil
}

// LoadSetFromSDN loads a reference Set from an SDN XML export on disk.
func LoadSetFromSDN(path string) (*Set, Publication, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Publication{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseSDN(f)
}
