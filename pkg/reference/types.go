// Package reference holds the designated-entity reference dataset: the flat
// relational tables the resolution core reads, and the loaders that produce
// them from CSV, SDN XML, or Postgres. The core never loads data itself; it
// is handed an already-populated Set.
package reference

import "strings"

// Entity is one row of the entity table. UID is the primary key across all
// related tables.
type Entity struct {
	UID       int64  `json:"uid"`
	SDNType   string `json:"sdn_type"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name"`
	Title     string `json:"title,omitempty"`
	Remarks   string `json:"remarks,omitempty"`
}

// FullName composes "{first_name} {last_name}", with the first name omitted
// when missing.
func (e Entity) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// Alias is an alternate name variant attached to exactly one entity.
type Alias struct {
	EntityUID int64  `json:"entity_uid"`
	AKAUID    int64  `json:"aka_uid"`
	Type      string `json:"type"`
	Category  string `json:"category,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name"`
}

// FullName composes the alias's own "{first_name} {last_name}".
func (a Alias) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Address is a free-text location record attached to exactly one entity.
// Country is free text, not a controlled code.
type Address struct {
	EntityUID     int64  `json:"entity_uid"`
	AddressUID    int64  `json:"address_uid"`
	Address1      string `json:"address1,omitempty"`
	Address2      string `json:"address2,omitempty"`
	Address3      string `json:"address3,omitempty"`
	City          string `json:"city,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
}

// IdentityDocument is an identity record attached to exactly one entity.
// Dates are unvalidated strings exactly as published.
type IdentityDocument struct {
	EntityUID      int64  `json:"entity_uid"`
	IDUID          int64  `json:"id_uid"`
	IDType         string `json:"id_type,omitempty"`
	IDNumber       string `json:"id_number,omitempty"`
	IDCountry      string `json:"id_country,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpirationDate string `json:"expiration_date,omitempty"`
}

// Program records an entity's membership in a sanctions program.
type Program struct {
	EntityUID int64  `json:"entity_uid"`
	Program   string `json:"program"`
}

// Set bundles all reference tables for one published list. The tables are
// read-only once loaded.
type Set struct {
	Entities          []Entity           `json:"entities"`
	Aliases           []Alias            `json:"aliases"`
	Addresses         []Address          `json:"addresses"`
	IdentityDocuments []IdentityDocument `json:"identity_documents"`
	Programs          []Program          `json:"programs,omitempty"`
}

// Source is a generic column-named table supplied by an external collaborator
// for batch resolution. All cells are text.
type Source struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of the named column, or false if the
// source has no such column.
func (s *Source) ColumnIndex(name string) (int, bool) {
	for i, c := range s.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at (row, col), tolerating short rows.
func (s *Source) Cell(row, col int) string {
	if row < 0 || row >= len(s.Rows) {
		return ""
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}
