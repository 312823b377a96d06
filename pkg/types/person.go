package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Person is a single contact record managed by the address book.
type Person struct {
	PersonID  string    `json:"person_id"`  // UUID v7, generated on creation.
	Name      string    `json:"name"`       // Required, non-empty.
	Phone     string    `json:"phone"`      // Optional.
	Email     string    `json:"email"`      // Optional.
	Address   string    `json:"address"`    // Optional.
	Tags      []string  `json:"tags"`       // Optional, order preserved.
	CreatedAt time.Time `json:"created_at"` // Timestamp of creation.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of last modification.
}

// Person validation errors.
var (
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidTag   = errors.New("invalid tag")
	ErrInvalidID    = errors.New("invalid person ID")
)

// NewPerson returns a Person with a fresh UUID v7 and both timestamps set to now.
func NewPerson(name, phone, email, address string, tags []string) (Person, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Person{}, fmt.Errorf("generating UUID v7: %w", err)
	}
	now := time.Now().UTC()
	p := Person{
		PersonID:  id.String(),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		Address:   strings.TrimSpace(address),
		Tags:      slices.Clone(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return Person{}, err
	}
	return p, nil
}

// Validate checks the fields of p and returns one of the sentinel errors
// above when a field is malformed.
func (p Person) Validate() error {
	if p.PersonID == "" {
		return ErrInvalidID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Phone != "" && !isPhone(p.Phone) {
		return fmt.Errorf("%w: %q", ErrInvalidPhone, p.Phone)
	}
	if p.Email != "" && !isEmail(p.Email) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, p.Email)
	}
	for _, tag := range p.Tags {
		if tag == "" || strings.ContainsAny(tag, " \t") {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}

// Clone returns a deep copy of p. Modifications keep clones so that later
// changes to a caller's value never leak into recorded history.
func (p Person) Clone() Person {
	p.Tags = slices.Clone(p.Tags)
	return p
}

// SameIdentity reports whether p and other describe the same contact.
// Two persons are the same contact when their names match ignoring case.
func (p Person) SameIdentity(other Person) bool {
	return strings.EqualFold(p.Name, other.Name)
}

// String renders p on a single line for command results.
func (p Person) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Phone != "" {
		b.WriteString("; Phone: ")
		b.WriteString(p.Phone)
	}
	if p.Email != "" {
		b.WriteString("; Email: ")
		b.WriteString(p.Email)
	}
	if p.Address != "" {
		b.WriteString("; Address: ")
		b.WriteString(p.Address)
	}
	if len(p.Tags) > 0 {
		b.WriteString("; Tags: ")
		for _, tag := range p.Tags {
			b.WriteString("[" + tag + "]")
		}
	}
	return b.String()
}

func isPhone(s string) bool {
	if len(s) < 3 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '+' && r != '-' && r != ' ' {
			return false
		}
	}
	return true
}

func isEmail(s string) bool {
	local, domain, ok := strings.Cut(s, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@")
}
