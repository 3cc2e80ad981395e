// Package common contains shared constants and helpers used across
// naijatax client components.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"

	// AccessTokenMetadataKey is the single metadata key the bearer token is
	// persisted under on the device.
	AccessTokenMetadataKey = "access_token"
)
