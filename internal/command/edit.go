package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mesh-intelligence/rolodex/internal/addressbook"
	"github.com/mesh-intelligence/rolodex/internal/model"
	"github.com/mesh-intelligence/rolodex/pkg/types"
)

const (
	EditWord = "edit"

	MessageEditSuccess   = "Edited person: %s"
	MessageNotEdited     = "At least one field to edit must be provided."
	MessageInvalidFields = "Invalid person details: %s"

	MessageEditUsage = EditWord + ": Edits the details of the person identified by the index number used in the displayed person list.\n" +
		"Existing values will be overwritten by the input values.\n" +
		"Format: " + EditWord + " INDEX [n/NAME] [p/PHONE] [e/EMAIL] [a/ADDRESS] [t/TAG]...\n" +
		"Example: " + EditWord + " 1 p/91234567 e/johndoe@example.com"
)

// EditFields lists the fields an edit overwrites. Nil fields are kept.
type EditFields struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
	Tags    []string
	SetTags bool // Tags replaces the existing tags, even when empty.
}

// Any reports whether at least one field is set.
func (f EditFields) Any() bool {
	return f.Name != nil || f.Phone != nil || f.Email != nil || f.Address != nil || f.SetTags
}

func (f EditFields) apply(p *types.Person) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Phone != nil {
		p.Phone = *f.Phone
	}
	if f.Email != nil {
		p.Email = *f.Email
	}
	if f.Address != nil {
		p.Address = *f.Address
	}
	if f.SetTags {
		p.Tags = slices.Clone(f.Tags)
	}
	p.UpdatedAt = time.Now().UTC()
}

// EditCommand overwrites fields of the person at a one-based index of the
// displayed list.
type EditCommand struct {
	Index  int
	Fields EditFields
}

func (c EditCommand) Execute(ctx context.Context, m model.Model) (Result, error) {
	if !c.Fields.Any() {
		return Result{}, NewError(MessageNotEdited)
	}
	var edited types.Person
	_, err := m.EditPerson(c.Index-1, func(p *types.Person) error {
		c.Fields.apply(p)
		edited = *p
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, model.ErrInvalidIndex):
		return Result{}, wrap(MessageInvalidIndex, err)
	case errors.Is(err, addressbook.ErrDuplicatePerson):
		return Result{}, wrap(MessageDuplicatePerson, err)
	case isValidationError(err):
		return Result{}, wrap(fmt.Sprintf(MessageInvalidFields, err), err)
	default:
		return Result{}, fmt.Errorf("edit person: %w", err)
	}
	return Result{
		Feedback: fmt.Sprintf(MessageEditSuccess, edited.String()),
		Changed:  true,
	}, nil
}

func isValidationError(err error) bool {
	for _, target := range []error{
		types.ErrInvalidName,
		types.ErrInvalidPhone,
		types.ErrInvalidEmail,
		types.ErrInvalidTag,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
