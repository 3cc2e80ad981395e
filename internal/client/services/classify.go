package services

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/naijatax/internal/client/client"
)

// VerificationRequiredCode is the structured error_code the backend may send
// when an account exists but has not been verified.
const VerificationRequiredCode = "VERIFICATION_REQUIRED"

// verificationPhrases are matched, lower-cased, against the error detail when
// the backend sends no error_code.
var verificationPhrases = []string{
	"verif",
	"confirm your email",
	"not activated",
}

// IsVerificationRequired reports whether a failed login means "account exists
// but is unverified". Transport errors never qualify.
func IsVerificationRequired(err error) bool {
	apiErr, ok := client.AsAPIError(err)
	if !ok {
		return false
	}
	return classifyVerification(apiErr.Status, apiErr.Code, apiErr.Detail)
}

func classifyVerification(status int, code, detail string) bool {
	if code != "" {
		return strings.EqualFold(code, VerificationRequiredCode)
	}
	if status != http.StatusUnauthorized && status != http.StatusForbidden {
		return false
	}

	d := strings.ToLower(detail)
	for _, p := range verificationPhrases {
		if strings.Contains(d, p) {
			return true
		}
	}
	return false
}
