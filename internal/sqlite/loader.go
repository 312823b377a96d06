// JSONL loading into SQLite at attach time.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const insertPersonSQL = `INSERT INTO persons
    (person_id, position, name, phone, email, address, tags, created_at, updated_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// replacePersons swaps the contents of the persons table for persons inside
// tx and returns the number of rows inserted. Position follows slice order.
// Rows that violate a constraint (for example a repeated person_id) are
// skipped when skipBad is set and fail the transaction otherwise.
func replacePersons(ctx context.Context, tx *sql.Tx, persons []types.Person, skipBad bool) (int, error) {
	if _, err := tx.ExecContext(ctx, "DELETE FROM persons"); err != nil {
		return 0, fmt.Errorf("clearing persons: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertPersonSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing person insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, p := range persons {
		r := dehydratePerson(p)
		tags, err := json.Marshal(r.Tags)
		if err != nil {
			return inserted, fmt.Errorf("marshalling tags of %s: %w", p.PersonID, err)
		}
		_, err = stmt.ExecContext(ctx,
			r.PersonID, i, r.Name, r.Phone, r.Email, r.Address, string(tags), r.CreatedAt, r.UpdatedAt,
		)
		if err != nil {
			if skipBad {
				continue
			}
			return inserted, fmt.Errorf("inserting person %s: %w", p.PersonID, err)
		}
		inserted++
	}
	return inserted, nil
}

// loadPersonsJSONL reads the JSONL file at path into the persons table in a
// single transaction: either every well-formed record loads or the table is
// left untouched.
func loadPersonsJSONL(ctx context.Context, db *sql.DB, path string) (int, error) {
	persons, err := readPersonsJSONL(path)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	n, err := replacePersons(ctx, tx, persons, true)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return n, nil
}

// scanPersons hydrates person rows selected in table column order.
func scanPersons(rows *sql.Rows) ([]types.Person, error) {
	var persons []types.Person
	for rows.Next() {
		var (
			r    personJSON
			tags string
		)
		if err := rows.Scan(&r.PersonID, &r.Name, &r.Phone, &r.Email, &r.Address, &tags, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
			return nil, fmt.Errorf("decoding tags of %s: %w", r.PersonID, err)
		}
		p, err := hydratePerson(r)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating persons: %w", err)
	}
	return persons, nil
}
