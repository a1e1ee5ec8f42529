package service

import (
	"errors"
	"fmt"

	"nakliye/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidID            = errors.New("invalid id")
	ErrUnknownKind          = errors.New("unknown kind")
	ErrInvalidOption        = errors.New("value is not a listed option")
	ErrListingQuotaExceeded = errors.New("active listing limit of the membership plan reached")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
	ErrCompanyNotApproved   = errors.New("company is not approved")
	ErrInvalidState         = errors.New("operation not allowed in current state")
)

// ValidationError names a request field that failed a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// repoErr maps repository sentinels onto service sentinels.
func repoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return parsed, nil
}
