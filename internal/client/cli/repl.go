package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ResendVerification(ctx context.Context) error
	VerifyEmail(ctx context.Context) error
	VerifyPhone(ctx context.Context) error
	ResendSMS(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, forgot, resend, verify-email, verify-phone, resend-sms, exit"
	helpSignedIn  = "Available commands: whoami, refresh, update, logout, verify-phone, resend-sms, exit"
)

// runREPL starts a simple read–eval–print loop for the naijatax CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands prompt for their own input on the
// same reader. The loop exits on EOF or when the user types "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("naijatax %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "resend":
			_ = a.ResendVerification(ctx)

		case "verify-email":
			_ = a.VerifyEmail(ctx)

		case "verify-phone":
			_ = a.VerifyPhone(ctx)

		case "resend-sms":
			_ = a.ResendSMS(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}
