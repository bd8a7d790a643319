package auth

import "context"

// API is the slice of the dealer API the auth flows depend on.
type API interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (token string, err error)
	// RequestOTP asks the server to email a one-time password.
	RequestOTP(ctx context.Context, email string) (message string, err error)
	// VerifyOTP trades a correct OTP for a password-reset token.
	VerifyOTP(ctx context.Context, email, otp string) (resetToken, message string, err error)
	// ResetPassword sets a new password using the reset token.
	ResetPassword(ctx context.Context, resetToken, password string) (message string, err error)
}
