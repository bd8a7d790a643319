package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/dirwin/dealerportal/internal/gateway"
	"github.com/dirwin/dealerportal/internal/modules/session"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors carries client-side validation failures keyed by field name.
// These block the request without touching the network.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// Service runs the login/logout flows against the dealer API and owns the
// resulting session.
type Service struct {
	api      API
	sessions *session.Store
	logger   *slog.Logger
}

// NewService creates the auth service.
func NewService(api API, sessions *session.Store, logger *slog.Logger) *Service {
	return &Service{api: api, sessions: sessions, logger: logger}
}

// Login validates the credentials locally, exchanges them for a token, and
// stores the token in the session. HTTP failures surface the server's
// message; transport failures a generic one.
func (s *Service) Login(ctx context.Context, email, password string) error {
	errs := FieldErrors{}
	if msg := validateEmail(email); msg != "" {
		errs["email"] = msg
	}
	if msg := validatePassword(password); msg != "" {
		errs["password"] = msg
	}
	if len(errs) > 0 {
		return errs
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email, "error", err)
		return fmt.Errorf("%s", gateway.UserMessage(err))
	}

	if err := s.sessions.SetToken(token); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	s.logger.Info("login succeeded", "email", email)
	return nil
}

// Logout clears the stored session.
func (s *Service) Logout() error {
	return s.sessions.RemoveToken()
}

// ErrNoResetToken means phase three ran without a reset token from phase
// two; the dealer has to restart the recovery flow.
var ErrNoResetToken = errors.New("missing reset token, restart the recovery flow")

// Recovery walks the three-phase password reset: request OTP, verify OTP,
// set a new password. The reset token captured in phase two is held here.
type Recovery struct {
	api    API
	logger *slog.Logger

	email      string
	resetToken string
}

// NewRecovery starts a password recovery flow.
func NewRecovery(api API, logger *slog.Logger) *Recovery {
	return &Recovery{api: api, logger: logger}
}

// RequestOTP asks the server to send a one-time password to the address.
func (r *Recovery) RequestOTP(ctx context.Context, email string) (string, error) {
	if msg := validateEmail(email); msg != "" {
		return "", FieldErrors{"email": msg}
	}

	message, err := r.api.RequestOTP(ctx, email)
	if err != nil {
		return "", fmt.Errorf("%s", gateway.UserMessage(err))
	}
	r.email = email
	if message == "" {
		message = "OTP sent to your email."
	}
	return message, nil
}

// VerifyOTP checks the code and captures the reset token for phase three.
func (r *Recovery) VerifyOTP(ctx context.Context, otp string) (string, error) {
	if strings.TrimSpace(otp) == "" {
		return "", FieldErrors{"otp": "OTP is required"}
	}
	if len(otp) < 3 {
		return "", FieldErrors{"otp": "Enter a valid OTP"}
	}

	resetToken, message, err := r.api.VerifyOTP(ctx, r.email, otp)
	if err != nil {
		return "", fmt.Errorf("%s", gateway.UserMessage(err))
	}
	if resetToken == "" {
		return "", errors.New("server did not return a reset token")
	}
	r.resetToken = resetToken
	if message == "" {
		message = "OTP verified. You can set a new password."
	}
	return message, nil
}

// ResetPassword sets the new password using the captured reset token.
func (r *Recovery) ResetPassword(ctx context.Context, password, confirm string) (string, error) {
	if msg := validatePassword(password); msg != "" {
		return "", FieldErrors{"password": msg}
	}
	if password != confirm {
		return "", FieldErrors{"confirmPassword": "Passwords do not match"}
	}
	if r.resetToken == "" {
		return "", ErrNoResetToken
	}

	message, err := r.api.ResetPassword(ctx, r.resetToken, password)
	if err != nil {
		return "", fmt.Errorf("%s", gateway.UserMessage(err))
	}
	r.logger.Info("password reset completed", "email", r.email)
	if message == "" {
		message = "Password reset successful."
	}
	return message, nil
}

// Login-side validation is looser than the signup wizard's: the password
// rule here matches the login form, not the signup strength chain.
func validateEmail(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Email is required"
	}
	if !emailPattern.MatchString(value) {
		return "Please enter a valid email address"
	}
	return ""
}

func validatePassword(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Password is required"
	}
	if len(value) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}
