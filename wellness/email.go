package wellness

import (
	"context"
	"log/slog"
	"strings"

	"github.com/routinerocket/recstore"
	"golang.org/x/text/unicode/norm"
)

// NormalizeEmail canonicalises an address for storage and lookup:
// NFKC-normalised, trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(email)))
}

// normalizeEmailHook keeps the stored email canonical however it was set.
func normalizeEmailHook(_ context.Context, rec *recstore.Record) error {
	if s, ok := rec.Value("email").Str(); ok {
		rec.Set("email", NormalizeEmail(s))
	}
	return nil
}

// Mailer delivers account emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer writes emails to a logger instead of sending them. It is the
// default when no mail transport is configured.
type LogMailer struct {
	Logger *slog.Logger
}

// Send logs the email.
func (m LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "email not sent, no mail transport configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
