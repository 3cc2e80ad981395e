// Package client contains the client-side building blocks that talk to the
// naijatax backend and bootstrap local storage.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the auth and profile endpoints: Login, Register, Me, UpdateProfile,
//     ForgotPassword, ResendVerification, VerifyEmail, VerifyPhone, ResendSMS.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that carries the
//     bearer token on session requests only, tags requests with X-Request-ID,
//     normalizes error bodies and runs an unauthorized hook when an
//     authenticated request gets a 401.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Error responses are returned as
// *APIError; a 401 also matches ErrUnauthorized and 502/503/504 match
// ErrUnavailable via errors.Is.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
