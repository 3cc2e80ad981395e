// Package cli provides the interactive naijatax command-line client.
//
// It wires configuration, the local SQLite store, the HTTP API client and
// the SessionManager, then runs a small REPL. On start the persisted session
// is restored; the prompt shows who is signed in.
//
// Commands:
//   - register, login, logout
//   - whoami, refresh, update
//   - forgot, resend, verify-email, verify-phone, resend-sms
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
