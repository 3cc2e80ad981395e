package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register")
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(ctx context.Context) error        { return f.record("whoami") }
func (f *fakeExec) Refresh(ctx context.Context) error       { return f.record("refresh") }
func (f *fakeExec) UpdateProfile(ctx context.Context) error { return f.record("update") }
func (f *fakeExec) ForgotPassword(ctx context.Context) error {
	return f.record("forgot")
}
func (f *fakeExec) ResendVerification(ctx context.Context) error {
	return f.record("resend")
}
func (f *fakeExec) VerifyEmail(ctx context.Context) error { return f.record("verify-email") }
func (f *fakeExec) VerifyPhone(ctx context.Context) error { return f.record("verify-phone") }
func (f *fakeExec) ResendSMS(ctx context.Context) error   { return f.record("resend-sms") }

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesEveryCommand(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"register",
		"login",
		"whoami",
		"refresh",
		"update",
		"forgot",
		"resend",
		"verify-email",
		"verify-phone",
		"resend-sms",
		"logout",
		"exit",
		"login",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	want := []string{"register", "login", "whoami", "refresh", "update", "forgot", "resend", "verify-email", "verify-phone", "resend-sms", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	printed := silencePrintln(t)

	input := strings.NewReader("help\nlogin\nhelp\nquit\n")
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(input))

	var helps []string
	for _, p := range *printed {
		if strings.HasPrefix(p, "Available commands") {
			helps = append(helps, p)
		}
	}
	if len(helps) != 2 || helps[0] != helpAnonymous || helps[1] != helpSignedIn {
		t.Fatalf("unexpected help output: %v", helps)
	}
}

func TestRunREPL_UnknownBlankAndEOF(t *testing.T) {
	printed := silencePrintln(t)

	input := strings.NewReader("\n   \nfoobar")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "(ada@example.ng pro)" }, bufio.NewReader(input))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	found := false
	for _, p := range *printed {
		if p == "Unknown command: foobar" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown command not reported: %v", *printed)
	}
	if (*printed)[0] != "naijatax (ada@example.ng pro)> " {
		t.Fatalf("prompt = %q", (*printed)[0])
	}
}

func TestRunREPL_StopsWhenContextCanceled(t *testing.T) {
	silencePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami\nwhoami\n")))

	if len(exec.calls) != 1 {
		t.Fatalf("calls = %v, want exactly one", exec.calls)
	}
}
