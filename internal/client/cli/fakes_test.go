package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/client/services"
	"github.com/dmitrijs2005/naijatax/internal/logging"
)

// fakeSession records what the commands asked for and answers with the
// configured results.
type fakeSession struct {
	user  *models.Profile
	token string

	result      services.Result
	loginResult services.Result

	calls        []string
	lastLogin    models.LoginRequest
	lastRegister models.RegisterRequest
	lastUpdate   models.ProfileUpdate
	lastEmail    string
	lastToken    string
	lastPhone    models.PhoneVerification
}

func (f *fakeSession) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeSession) Init(context.Context) { f.record("init") }
func (f *fakeSession) Login(_ context.Context, req models.LoginRequest) services.Result {
	f.record("login")
	f.lastLogin = req
	return f.loginResult
}
func (f *fakeSession) Register(_ context.Context, req models.RegisterRequest) services.Result {
	f.record("register")
	f.lastRegister = req
	return f.result
}
func (f *fakeSession) Logout(context.Context) {
	f.record("logout")
	f.user, f.token = nil, ""
}
func (f *fakeSession) RefreshUser(context.Context) services.Result {
	f.record("refresh")
	return f.result
}
func (f *fakeSession) UpdateProfile(_ context.Context, upd models.ProfileUpdate) services.Result {
	f.record("update")
	f.lastUpdate = upd
	return f.result
}
func (f *fakeSession) ForgotPassword(_ context.Context, email string) services.Result {
	f.record("forgot")
	f.lastEmail = email
	return f.result
}
func (f *fakeSession) ResendVerification(_ context.Context, identifier string) services.Result {
	f.record("resend")
	f.lastEmail = identifier
	return f.result
}
func (f *fakeSession) VerifyEmail(_ context.Context, token, email string) services.Result {
	f.record("verify-email")
	f.lastToken, f.lastEmail = token, email
	return f.result
}
func (f *fakeSession) VerifyPhone(_ context.Context, req models.PhoneVerification) services.Result {
	f.record("verify-phone")
	f.lastPhone = req
	return f.result
}
func (f *fakeSession) ResendSMS(_ context.Context, email string) services.Result {
	f.record("resend-sms")
	f.lastEmail = email
	return f.result
}
func (f *fakeSession) IsAuthenticated() bool  { return f.user != nil }
func (f *fakeSession) User() *models.Profile { return f.user.Clone() }
func (f *fakeSession) Token() string          { return f.token }

// newTestApp returns an App whose prompts read the given lines in order.
func newTestApp(f *fakeSession, lines ...string) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	in := strings.Join(lines, "\n")
	if len(lines) > 0 {
		in += "\n"
	}
	return &App{
		session: f,
		log:     logging.NewNopLogger(),
		reader:  bufio.NewReader(strings.NewReader(in)),
		out:     out,
	}, out
}

// stubPasswords makes getPassword return the given passwords in order.
func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		pw := passwords[i%len(passwords)]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() { getPassword = orig })
}
