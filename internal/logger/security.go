// Package logger provides secure logging for authentication and abuse
// events. Credentials are never logged.
package logger

import (
	"log/slog"
	"os"
	"time"
)

// SecurityLogger provides methods for logging security-related events.
type SecurityLogger struct {
	logger *slog.Logger
}

// NewSecurityLogger creates a new SecurityLogger with JSON output.
func NewSecurityLogger() *SecurityLogger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return &SecurityLogger{
		logger: slog.New(handler),
	}
}

// NewSecurityLoggerWithHandler creates a SecurityLogger with a custom handler.
func NewSecurityLoggerWithHandler(handler slog.Handler) *SecurityLogger {
	return &SecurityLogger{
		logger: slog.New(handler),
	}
}

// LoginSuccess logs a successful login.
func (s *SecurityLogger) LoginSuccess(ip, email string) {
	s.logger.Info("login_success",
		slog.String("event_type", "login_success"),
		slog.String("ip", ip),
		slog.String("email", email),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// LoginFailure logs a failed login attempt. Never logs the password.
func (s *SecurityLogger) LoginFailure(ip, email, reason string) {
	s.logger.Warn("login_failure",
		slog.String("event_type", "login_failure"),
		slog.String("ip", ip),
		slog.String("email", email),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// Registration logs a new account registration.
func (s *SecurityLogger) Registration(ip, email string) {
	s.logger.Info("registration",
		slog.String("event_type", "registration"),
		slog.String("ip", ip),
		slog.String("email", email),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// AuthFailure logs a failed API key authentication attempt.
func (s *SecurityLogger) AuthFailure(ip, path, reason string) {
	s.logger.Warn("authentication_failure",
		slog.String("event_type", "auth_failure"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// RateLimitExceeded logs when a client exceeds rate limits.
func (s *SecurityLogger) RateLimitExceeded(ip, path string) {
	s.logger.Warn("rate_limit_exceeded",
		slog.String("event_type", "rate_limit"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// PathTraversalAttempt logs a path traversal attempt against file storage.
func (s *SecurityLogger) PathTraversalAttempt(ip, path, attemptedPath string) {
	s.logger.Warn("path_traversal_attempt",
		slog.String("event_type", "path_traversal"),
		slog.String("ip", ip),
		slog.String("path", path),
		slog.String("attempted_path", attemptedPath),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// BlockedFileUpload logs a blocked attachment upload attempt.
func (s *SecurityLogger) BlockedFileUpload(ip, filename, reason string) {
	s.logger.Warn("blocked_file_upload",
		slog.String("event_type", "blocked_upload"),
		slog.String("ip", ip),
		slog.String("filename", filename),
		slog.String("reason", reason),
		slog.Time("timestamp", time.Now().UTC()),
	)
}

// GetLogger returns the underlying slog.Logger for use with middleware.
func (s *SecurityLogger) GetLogger() *slog.Logger {
	return s.logger
}
