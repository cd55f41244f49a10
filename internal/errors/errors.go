package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/pedromssoares/service-agenda-for-cars/internal/logger"
)

var (
	// ErrNotFound is returned by the storage layer when a record does not exist.
	ErrNotFound = stderrors.New("not found")
	// ErrNotInitialized is returned when the database has not been created yet.
	ErrNotInitialized = stderrors.New("storage not initialized, run 'agenda init' first")
	// ErrInvalidInput marks validation failures on user-provided values.
	ErrInvalidInput = stderrors.New("invalid input")
)

// NotFound returns an error wrapping ErrNotFound for the given record kind and id.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Invalid returns an error wrapping ErrInvalidInput.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
