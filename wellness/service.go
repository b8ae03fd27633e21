// Package wellness implements the Routine Rocket account and tracking flows
// on top of the record store: registration with emailed one-time codes,
// habits and their daily logs, mood, health and focus histories.
package wellness

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/routinerocket/recstore"
	"github.com/routinerocket/recstore/models"
)

const (
	// DefaultOTPTTL is how long an emailed verification code stays valid.
	DefaultOTPTTL = 10 * time.Minute
	// DefaultHistoryLimit caps the history listings.
	DefaultHistoryLimit = 50
)

// Service runs the application flows against the store tables.
type Service struct {
	tables       *models.Tables
	mailer       Mailer
	logger       *slog.Logger
	now          func() time.Time
	otpTTL       time.Duration
	historyLimit int
	newOTP       func() (string, error)
}

// Option configures a Service
type Option func(*Service)

// WithMailer sets the email transport.
func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithOTPTTL sets the validity of verification codes.
func WithOTPTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.otpTTL = d
		}
	}
}

// WithHistoryLimit sets the maximum number of entries in history listings.
func WithHistoryLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithOTPGenerator replaces the verification code generator.
func WithOTPGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newOTP = gen }
}

// New creates a service over registered tables and installs the User
// table hooks.
func New(tables *models.Tables, opts ...Option) *Service {
	s := &Service{
		tables:       tables,
		logger:       slog.Default(),
		now:          time.Now,
		otpTTL:       DefaultOTPTTL,
		historyLimit: DefaultHistoryLimit,
		newOTP:       generateOTP,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mailer == nil {
		s.mailer = LogMailer{Logger: s.logger}
	}

	tables.Users.Use(recstore.Hooks{
		BeforeCreate: normalizeEmailHook,
		BeforeSave:   normalizeEmailHook,
	})
	return s
}

// generateOTP returns a random six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// ownerOf reports whether rec belongs to userID.
func ownerOf(rec recstore.Record, userID int64) bool {
	id, ok := rec.Value("userId").Int()
	return ok && id == userID
}

// optionalText maps "" to an absent value.
func optionalText(d recstore.Data, key, value string) {
	if value != "" {
		d[key] = value
	}
}

// dayOrNow returns the given day, or the current instant when empty.
func (s *Service) dayOrNow(day string) any {
	if day == "" {
		return s.now()
	}
	return day
}
