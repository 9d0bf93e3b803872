package domain

import (
	"errors"
	"fmt"
)

// Domain errors.
var (
	ErrActivityNotFound = errors.New("activité non trouvée")
	ErrPlayerNotFound   = errors.New("joueur non trouvé")
	ErrAssignmentFrozen = errors.New("l'affectation est figée, aucune modification possible")
)

// ValidationError is raised before matching starts, when the ingested data is
// malformed. It always names the offending entity and field so the error can
// be traced back to a line of the inscription file.
type ValidationError struct {
	Entity string // player or activity name (or ID when the name is unknown)
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s, champ %q: %s", e.Entity, e.Field, e.Reason)
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(entity, field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
