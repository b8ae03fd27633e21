package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/wellness"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected operation (not found, bad credentials, invalid input)
	ExitCommandError = 2 // Command error (bad config, unreadable data file)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeRecords prints records as a JSON array; nil prints [].
func writeRecords(w io.Writer, records []recstore.Record) error {
	if records == nil {
		records = []recstore.Record{}
	}
	return writeJSON(w, records)
}

// failed maps service errors to a failure exit code with a short message.
func failed(action string, err error) error {
	var verr *wellness.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, wellness.ErrNotFound),
		errors.Is(err, wellness.ErrNotAuthorized),
		errors.Is(err, wellness.ErrUserExists),
		errors.Is(err, wellness.ErrInvalidCredentials),
		errors.Is(err, wellness.ErrInvalidOTP),
		errors.Is(err, wellness.ErrAlreadyVerified):
		return WrapExitError(ExitFailure, action, err)
	}
	return WrapExitError(ExitCommandError, action, err)
}

// parseWhere turns key=value pairs into a filter. Values stay text; the
// store compares loosely, so userId=1 matches the integer 1.
func parseWhere(pairs []string) (recstore.Where, error) {
	where := recstore.Where{}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("invalid filter %q: want column=value", p))
		}
		if value == "null" {
			where[key] = nil
			continue
		}
		where[key] = value
	}
	return where, nil
}
