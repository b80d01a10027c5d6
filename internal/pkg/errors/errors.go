package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound              = errors.New("resource not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflict: resource already exists")
	ErrInternal              = errors.New("internal server error")
	ErrRateLimited           = errors.New("too many requests")
	ErrBadRequest            = errors.New("bad request")
	ErrDuplicateEntry        = errors.New("duplicate entry")
	ErrCampaignInactive      = errors.New("campaign is not active")
	ErrCampaignNotConfigured = errors.New("campaign has no conditions and no prizes")
	ErrPrizeExhausted        = errors.New("prize stock exhausted")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap extracts the underlying wrapped error.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
