package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tracker/internal/logger"
)

// Error kinds. Every error returned by the repositories wraps exactly one of these,
// so callers branch with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConstraint = errors.New("constraint violated")
	ErrPersist    = errors.New("failed to persist")
	ErrLoad       = errors.New("failed to load")
)

var (
	ErrTitleEmpty     = fmt.Errorf("%w: category title cannot be empty", ErrValidation)
	ErrTitleTooLong   = fmt.Errorf("%w: category title must not exceed 38 characters", ErrValidation)
	ErrFutureDate     = fmt.Errorf("%w: cannot complete a tracker on a future date", ErrValidation)
	ErrInvalidTracker = fmt.Errorf("%w: invalid tracker", ErrValidation)
	ErrHasTrackers    = fmt.Errorf("%w: cannot delete a category that still has trackers", ErrConstraint)

	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrTrackerNotFound  = fmt.Errorf("tracker %w", ErrNotFound)
	ErrRecordNotFound   = fmt.Errorf("record %w", ErrNotFound)
)

// Persist wraps a failed store write, keeping the original description.
func Persist(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrPersist, op, err)
}

// Load wraps a failed store read, keeping the original description.
func Load(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrLoad, op, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
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

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
