package common

import "strings"

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been sent. Nil is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// LooksLikeEmail is the cheap client-side guard used before email-only
// endpoints are called. Real validation happens on the server.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}
