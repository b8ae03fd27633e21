package wellness

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("wellness: not found")
	ErrNotAuthorized      = errors.New("wellness: not authorized")
	ErrUserExists         = errors.New("wellness: user already exists")
	ErrInvalidCredentials = errors.New("wellness: invalid credentials")
	ErrInvalidOTP         = errors.New("wellness: invalid or expired otp")
	ErrAlreadyVerified    = errors.New("wellness: user already verified")
)

// ValidationError reports caller input that cannot be stored.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := "wellness: invalid input"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if len(e.Fields) > 0 {
		msg += " (" + strings.Join(e.Fields, ", ") + ")"
	}
	return msg
}
