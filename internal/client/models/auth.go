package models

// LoginRequest carries the credentials for POST /api/auth/login.
// Identifier is either an email address or an international phone number;
// the backend accepts both under email_or_phone.
type LoginRequest struct {
	Identifier string `json:"email_or_phone"`
	Password   string `json:"password"`
}

// LoginResponse is the success body of POST /api/auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	AgreeTerms bool   `json:"agree_terms"`
}

// VerificationType selects the channel of a phone verification code.
type VerificationType string

const (
	VerificationSMS   VerificationType = "sms"
	VerificationVoice VerificationType = "voice"
)

// PhoneVerification is the body of POST /api/auth/verify-phone.
type PhoneVerification struct {
	Email            string           `json:"email"`
	Code             string           `json:"verification_code"`
	VerificationType VerificationType `json:"verification_type"`
}

// EmailRequest is the body shared by the email-only endpoints
// (forgot-password, resend-verification, resend-sms).
type EmailRequest struct {
	Email string `json:"email"`
}

// MessageResponse is the {message} body several auth endpoints answer with.
type MessageResponse struct {
	Message string `json:"message"`
}
