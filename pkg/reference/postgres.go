package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LoadSetFromPostgres loads a full reference Set from a Postgres database
// previously populated by an ingest run. Row order follows each table's
// primary key so index construction stays deterministic across loads.
func LoadSetFromPostgres(ctx context.Context, pool *pgxpool.Pool) (*Set, error) {
	set := &Set{}

	rows, err := pool.Query(ctx, `
		SELECT uid, sdn_type,
		       COALESCE(first_name, ''), COALESCE(last_name, ''),
		       COALESCE(title, ''), COALESCE(remarks, '')
		FROM sdn_entities
		ORDER BY uid`)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	for rows.Next() {
		var e Entity
		if err := rows.Scan(&e.UID, &e.SDNType, &e.FirstName, &e.LastName, &e.Title, &e.Remarks); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		set.Entities = append(set.Entities, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entities: %w", err)
	}

	rows, err = pool.Query(ctx, `
		SELECT entity_uid, aka_uid, COALESCE(type, ''), COALESCE(category, ''),
		       COALESCE(first_name, ''), COALESCE(last_name, '')
		FROM sdn_aliases
		ORDER BY entity_uid, aka_uid`)
	if err != nil {
		return nil, fmt.Errorf("query aliases: %w", err)
	}
	for rows.Next() {
		var a Alias
		if err := rows.Scan(&a.EntityUID, &a.AKAUID, &a.Type, &a.Category, &a.FirstName, &a.LastName); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		set.Aliases = append(set.Aliases, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read aliases: %w", err)
	}

	rows, err = pool.Query(ctx, `
		SELECT entity_uid, address_uid,
		       COALESCE(address1, ''), COALESCE(address2, ''), COALESCE(address3, ''),
		       COALESCE(city, ''), COALESCE(state_province, ''),
		       COALESCE(postal_code, ''), COALESCE(country, '')
		FROM sdn_addresses
		ORDER BY entity_uid, address_uid`)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.EntityUID, &a.AddressUID, &a.Address1, &a.Address2, &a.Address3,
			&a.City, &a.StateProvince, &a.PostalCode, &a.Country); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan address: %w", err)
		}
		set.Addresses = append(set.Addresses, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read addresses: %w", err)
	}

	rows, err = pool.Query(ctx, `
		SELECT entity_uid, id_uid, COALESCE(id_type, ''), COALESCE(id_number, ''),
		       COALESCE(id_country, ''), COALESCE(issue_date, ''), COALESCE(expiration_date, '')
		FROM sdn_ids
		ORDER BY entity_uid, id_uid`)
	if err != nil {
		return nil, fmt.Errorf("query ids: %w", err)
	}
	for rows.Next() {
		var d IdentityDocument
		if err := rows.Scan(&d.EntityUID, &d.IDUID, &d.IDType, &d.IDNumber,
			&d.IDCountry, &d.IssueDate, &d.ExpirationDate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan id: %w", err)
		}
		set.IdentityDocuments = append(set.IdentityDocuments, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}

	rows, err = pool.Query(ctx, `
		SELECT uid, program
		FROM sdn_programs
		ORDER BY uid, program`)
	if err != nil {
		return nil, fmt.Errorf("query programs: %w", err)
	}
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.EntityUID, &p.Program); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan program: %w", err)
		}
		set.Programs = append(set.Programs, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read programs: %w", err)
	}

	return set, nil
}
