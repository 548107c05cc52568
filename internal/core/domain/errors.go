package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork marks transport failures the caller may retry.
	ErrNetwork = errors.New("network failure")
	// ErrAuth marks 401/403 responses that require a fresh login.
	ErrAuth = errors.New("authentication rejected")
	// ErrNotFound marks 404 responses for an unknown job.
	ErrNotFound = errors.New("job not found")
	// ErrProtocol marks responses whose shape the client does not understand.
	ErrProtocol = errors.New("unexpected response shape")
	// ErrInvalidInput marks client-side validation failures.
	ErrInvalidInput = errors.New("invalid input")
)

// ServerError carries a non-2xx HTTP status outside the auth/not-found
// classes, with the server-provided message preserved verbatim.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("server error: http %d", e.Code)
	}
	return fmt.Sprintf("server error: http %d: %s", e.Code, e.Message)
}

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
