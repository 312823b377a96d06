// JSON record structure for persons.jsonl and exported files.
package sqlite

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/rolodex/pkg/types"
)

// personsJSONL is the source-of-truth file inside DataDir.
const personsJSONL = "persons.jsonl"

// personJSON represents a person in persons.jsonl. Timestamps are RFC 3339
// strings so files stay readable and diffable.
type personJSON struct {
	PersonID  string   `json:"person_id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email"`
	Address   string   `json:"address"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func dehydratePerson(p types.Person) personJSON {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return personJSON{
		PersonID:  p.PersonID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Tags:      tags,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func hydratePerson(r personJSON) (types.Person, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return types.Person{}, fmt.Errorf("person %s created_at: %w", r.PersonID, err)
	}
	updatedAt, err := parseTime(r.UpdatedAt)
	if err != nil {
		return types.Person{}, fmt.Errorf("person %s updated_at: %w", r.PersonID, err)
	}
	var tags []string
	if len(r.Tags) > 0 {
		tags = r.Tags
	}
	return types.Person{
		PersonID:  r.PersonID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		Tags:      tags,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// parseTime accepts an empty string as the zero time.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
