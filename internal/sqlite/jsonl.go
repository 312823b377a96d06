// JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// readJSONL returns each non-empty, well-formed line of the file at path.
// Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL replaces the file at path with records, one per line, using the
// temp-file, fsync, rename pattern so readers never see a partial file.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writePersonsJSONL atomically writes persons to path in order.
func writePersonsJSONL(path string, persons []types.Person) error {
	records := make([]json.RawMessage, 0, len(persons))
	for _, p := range persons {
		b, err := json.Marshal(dehydratePerson(p))
		if err != nil {
			return fmt.Errorf("marshalling person %s: %w", p.PersonID, err)
		}
		records = append(records, b)
	}
	return writeJSONL(path, records)
}

// readPersonsJSONL reads persons from path in file order. Lines that are not
// person records, whose timestamps do not parse, that fail Person.Validate,
// or that repeat the id or name of an earlier record are skipped. Unknown
// fields are ignored.
func readPersonsJSONL(path string) ([]types.Person, error) {
	records, err := readJSONL(path)
	if err != nil {
		return nil, err
	}
	persons := make([]types.Person, 0, len(records))
	seenIDs := make(map[string]bool, len(records))
	for _, rec := range records {
		var r personJSON
		if err := json.Unmarshal(rec, &r); err != nil {
			continue
		}
		if r.PersonID == "" {
			continue
		}
		p, err := hydratePerson(r)
		if err != nil || p.Validate() != nil {
			continue
		}
		if seenIDs[p.PersonID] || slices.ContainsFunc(persons, p.SameIdentity) {
			continue
		}
		seenIDs[p.PersonID] = true
		persons = append(persons, p)
	}
	return persons, nil
}
