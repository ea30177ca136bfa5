package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEmail = errors.New("an account with this email already exists")
)

func missingFields(fields ...string) error {
	return fmt.Errorf("%w: missing required field(s): %s", ErrValidation, strings.Join(fields, ", "))
}

// requireFields takes name/value pairs and reports every blank value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return missingFields(missing...)
	}
	return nil
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	default:
		return err
	}
}
