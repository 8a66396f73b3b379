package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidEmail = errors.New("invalid email address")
)

var validate = validator.New()

// ValidEmail reports whether s looks like a deliverable address.
func ValidEmail(s string) bool {
	return s != "" && validate.Var(s, "email") == nil
}

// Validate checks d before any collaborator call is made. Errors wrap
// ErrMissingField or ErrInvalidEmail and carry a message fit for a toast.
func Validate(d Data) error {
	if d.DocumentType == "" {
		return fmt.Errorf("%w: please select an email purpose first", ErrMissingField)
	}
	if !slices.Contains(DocumentTypes, d.DocumentType) {
		return fmt.Errorf("%w: unknown document type %q", ErrMissingField, d.DocumentType)
	}
	if d.UsesAIBody() && NeedsPrompt(d.DocumentType) && d.CustomPrompt == "" {
		return fmt.Errorf("%w: please enter a prompt for the email body", ErrMissingField)
	}
	if d.RecipientEmail != "" && !ValidEmail(d.RecipientEmail) {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, d.RecipientEmail)
	}
	return nil
}
