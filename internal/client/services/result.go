package services

import (
	"github.com/dmitrijs2005/naijatax/internal/client/client"
	"github.com/dmitrijs2005/naijatax/internal/client/models"
)

// Result is the uniform outcome of every SessionManager operation. Failures
// never surface as Go errors: Error holds the best message available for
// display (backend detail first, then a fixed per-operation fallback).
type Result struct {
	Success bool
	Error   string
	Message string

	// NeedsVerification is set on a failed login when the account exists
	// but has not been verified yet.
	NeedsVerification bool

	// RequiresVerification is set on a successful registration.
	RequiresVerification bool

	// User is the profile returned by register, refresh and update.
	User *models.Profile
}

const (
	msgLoginFailed        = "Login failed"
	msgLoginSuccess       = "Login successful"
	msgSessionNotSaved    = "Could not save the session on this device"
	msgRegisterFailed     = "Registration failed"
	msgRegisterSuccess    = "Registration successful. Please verify your account before logging in."
	msgNotAuthenticated   = "Not authenticated"
	msgProfileFailed      = "Failed to fetch profile"
	msgSessionChanged     = "Session changed while the request was in flight"
	msgUpdateFailed       = "Failed to update profile"
	msgUpdateSuccess      = "Profile updated"
	msgInvalidEmail       = "Please enter a valid email address"
	msgForgotFailed       = "Failed to send password reset email"
	msgForgotSuccess      = "Password reset instructions have been sent to your email"
	msgResendEmailOnly    = "Please use your email address to resend verification."
	msgResendFailed       = "Failed to resend verification email"
	msgResendSuccess      = "Verification email sent"
	msgVerifyEmailMissing = "Email and verification token are required"
	msgVerifyEmailFailed  = "Email verification failed"
	msgVerifyEmailSuccess = "Email verified successfully"
	msgVerifyPhoneMissing = "Email and verification code are required"
	msgVerifyPhoneFailed  = "Phone verification failed"
	msgVerifyPhoneSuccess = "Phone verified successfully"
	msgResendSMSFailed    = "Failed to resend SMS code"
	msgResendSMSSuccess   = "Verification code sent"
)

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

func fail(message string) Result {
	return Result{Error: message}
}

// failure normalizes err into a Result, preferring the backend's detail.
func failure(err error, fallback string) Result {
	return fail(errorMessage(err, fallback))
}

func errorMessage(err error, fallback string) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	return fallback
}

func orDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
