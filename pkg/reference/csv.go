package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	sserrors "github.com/screenline/sdnscreen/pkg/errors"
)

// File names expected inside a reference data directory.
const (
	EntitiesFile  = "entities.csv"
	AliasesFile   = "aliases.csv"
	AddressesFile = "addresses.csv"
	IDsFile       = "ids.csv"
	ProgramsFile  = "programs.csv"
)

// LoadSource reads a CSV stream into a generic Source. The first record is
// the header row. Rows shorter than the header are kept as-is.
func LoadSource(r io.Reader) (*Source, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv input: %w", sserrors.ErrSchema)
	}
	return &Source{Columns: records[0], Rows: records[1:]}, nil
}

// OpenSource loads a CSV file from disk into a generic Source.
func OpenSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return LoadSource(f)
}

// columnMap resolves the required column names to indices, reporting every
// missing column as a schema error.
func columnMap(src *Source, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(required))
	for _, name := range required {
		idx, ok := src.ColumnIndex(name)
		if !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, sserrors.ErrSchema)
		}
		cols[name] = idx
	}
	return cols, nil
}

func parseUID(raw, column string, row int) (int64, error) {
	uid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q value %q is not an integer: %w",
			row, column, raw, sserrors.ErrSchema)
	}
	return uid, nil
}

// EntitiesFromSource decodes the entity table from a generic source.
func EntitiesFromSource(src *Source) ([]Entity, error) {
	cols, err := columnMap(src, "uid", "sdn_type", "first_name", "last_name", "title", "remarks")
	if err != nil {
		return nil, err
	}

	entities := make([]Entity, 0, len(src.Rows))
	for i := range src.Rows {
		uid, err := parseUID(src.Cell(i, cols["uid"]), "uid", i)
		if err != nil {
			return nil, err
		}
		entities = append(entities, Entity{
			UID:       uid,
			SDNType:   src.Cell(i, cols["sdn_type"]),
			FirstName: src.Cell(i, cols["first_name"]),
			LastName:  src.Cell(i, cols["last_name"]),
			Title:     src.Cell(i, cols["title"]),
			Remarks:   src.Cell(i, cols["remarks"]),
		})
	}
	return entities, nil
}

// AliasesFromSource decodes the alias table from a generic source.
func AliasesFromSource(src *Source) ([]Alias, error) {
	cols, err := columnMap(src, "entity_uid", "aka_uid", "type", "category", "first_name", "last_name")
	if err != nil {
		return nil, err
	}

	aliases := make([]Alias, 0, len(src.Rows))
	for i := range src.Rows {
		entityUID, err := parseUID(src.Cell(i, cols["entity_uid"]), "entity_uid", i)
		if err != nil {
			return nil, err
		}
		akaUID, err := parseUID(src.Cell(i, cols["aka_uid"]), "aka_uid", i)
		if err != nil {
			return nil, err
		}
		aliases = append(aliases, Alias{
			EntityUID: entityUID,
			AKAUID:    akaUID,
			Type:      src.Cell(i, cols["type"]),
			Category:  src.Cell(i, cols["category"]),
			FirstName: src.Cell(i, cols["first_name"]),
			LastName:  src.Cell(i, cols["last_name"]),
		})
	}
	return aliases, nil
}

// AddressesFromSource decodes the address table from a generic source.
func AddressesFromSource(src *Source) ([]Address, error) {
	cols, err := columnMap(src, "entity_uid", "address_uid", "address1", "address2",
		"address3", "city", "state_province", "postal_code", "country")
	if err != nil {
		return nil, err
	}

	addresses := make([]Address, 0, len(src.Rows))
	for i := range src.Rows {
		entityUID, err := parseUID(src.Cell(i, cols["entity_uid"]), "entity_uid", i)
		if err != nil {
			return nil, err
		}
		addressUID, err := parseUID(src.Cell(i, cols["address_uid"]), "address_uid", i)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, Address{
			EntityUID:     entityUID,
			AddressUID:    addressUID,
			Address1:      src.Cell(i, cols["address1"]),
			Address2:      src.Cell(i, cols["address2"]),
			Address3:      src.Cell(i, cols["address3"]),
			City:          src.Cell(i, cols["city"]),
			StateProvince: src.Cell(i, cols["state_province"]),
			PostalCode:    src.Cell(i, cols["postal_code"]),
			Country:       src.Cell(i, cols["country"]),
		})
	}
	return addresses, nil
}

// IdentityDocumentsFromSource decodes the identity-document table from a
// generic source.
func IdentityDocumentsFromSource(src *Source) ([]IdentityDocument, error) {
	cols, err := columnMap(src, "entity_uid", "id_uid", "id_type", "id_number",
		"id_country", "issue_date", "expiration_date")
	if err != nil {
		return nil, err
	}

	docs := make([]IdentityDocument, 0, len(src.Rows))
	for i := range src.Rows {
		entityUID, err := parseUID(src.Cell(i, cols["entity_uid"]), "entity_uid", i)
		if err != nil {
			return nil, err
		}
		idUID, err := parseUID(src.Cell(i, cols["id_uid"]), "id_uid", i)
		if err != nil {
			return nil, err
		}
		docs = append(docs, IdentityDocument{
			EntityUID:      entityUID,
			IDUID:          idUID,
			IDType:         src.Cell(i, cols["id_type"]),
			IDNumber:       src.Cell(i, cols["id_number"]),
			IDCountry:      src.Cell(i, cols["id_country"]),
			IssueDate:      src.Cell(i, cols["issue_date"]),
			ExpirationDate: src.Cell(i, cols["expiration_date"]),
		})
	}
	return docs, nil
}

// ProgramsFromSource decodes the program-membership table from a generic
// source.
func ProgramsFromSource(src *Source) ([]Program, error) {
	cols, err := columnMap(src, "uid", "program")
	if err != nil {
		return nil, err
	}

	programs := make([]Program, 0, len(src.Rows))
	for i := range src.Rows {
		uid, err := parseUID(src.Cell(i, cols["uid"]), "uid", i)
		if err != nil {
			return nil, err
		}
		programs = append(programs, Program{
			EntityUID: uid,
			Program:   src.Cell(i, cols["program"]),
		})
	}
	return programs, nil
}

// LoadSetFromDir loads a full reference Set from a directory of CSV files.
// The programs file is optional; everything else is required.
func LoadSetFromDir(dir string) (*Set, error) {
	set := &Set{}

	load := func(file string) (*Source, error) {
		return OpenSource(filepath.Join(dir, file))
	}

	src, err := load(EntitiesFile)
	if err != nil {
		return nil, err
	}
	if set.Entities, err = EntitiesFromSource(src); err != nil {
		return nil, fmt.Errorf("%s: %w", EntitiesFile, err)
	}

	if src, err = load(AliasesFile); err != nil {
		return nil, err
	}
	if set.Aliases, err = AliasesFromSource(src); err != nil {
		return nil, fmt.Errorf("%s: %w", AliasesFile, err)
	}

	if src, err = load(AddressesFile); err != nil {
		return nil, err
	}
	if set.Addresses, err = AddressesFromSource(src); err != nil {
		return nil, fmt.Errorf("%s: %w", AddressesFile, err)
	}

	if src, err = load(IDsFile); err != nil {
		return nil, err
	}
	if set.IdentityDocuments, err = IdentityDocumentsFromSource(src); err != nil {
		return nil, fmt.Errorf("%s: %w", IDsFile, err)
	}

	// Programs are published separately and not every snapshot has them.
	if src, err = load(ProgramsFile); err == nil {
		if set.Programs, err = ProgramsFromSource(src); err != nil {
			return nil, fmt.Errorf("%s: %w", ProgramsFile, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return set, nil
}
