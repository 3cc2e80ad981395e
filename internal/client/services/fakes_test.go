package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/naijatax/internal/client/client"
	"github.com/dmitrijs2005/naijatax/internal/client/models"
)

// fakeClient implements client.Client for SessionManager tests. Like the
// real HTTPClient it sends the token only on Me and UpdateProfile and runs
// the unauthorized hook when one of those fails with a 401.
type fakeClient struct {
	mu    sync.Mutex
	token string
	hook  client.UnauthorizedFunc

	// behaviour
	LoginResp    *models.LoginResponse
	LoginErr     error
	MeResp       *models.Profile
	MeErr        error
	RegisterResp *models.Profile
	RegisterErr  error
	UpdateResp   *models.Profile
	UpdateErr    error
	MessageResp  string
	MessageErr   error

	// captured
	Calls            map[string]int
	LastLogin        models.LoginRequest
	LastRegister     models.RegisterRequest
	LastUpdate       models.ProfileUpdate
	LastEmail        string
	LastVerifyToken  string
	LastPhone        models.PhoneVerification
	MeTokens         []string
	ClearTokenCalled int
}

func newFakeClient() *fakeClient {
	return &fakeClient{Calls: map[string]int{}}
}

func apiErr(status int, detail string) error {
	return &client.APIError{Status: status, Detail: detail}
}

func (f *fakeClient) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeClient) ClearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.ClearTokenCalled++
}

func (f *fakeClient) OnUnauthorized(fn client.UnauthorizedFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hook = fn
}

func (f *fakeClient) currentToken() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// begin records the call and returns the token the request would carry.
func (f *fakeClient) begin(name string, withToken bool) (string, client.UnauthorizedFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[name]++
	if !withToken {
		return "", nil
	}
	return f.token, f.hook
}

func (f *fakeClient) finish(ctx context.Context, token string, hook client.UnauthorizedFunc, err error) error {
	if err != nil && errors.Is(err, client.ErrUnauthorized) && token != "" && hook != nil {
		hook(ctx, token)
	}
	return err
}

func (f *fakeClient) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		n += c
	}
	return n
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	token, hook := f.begin("login", false)
	f.LastLogin = req
	if err := f.finish(ctx, token, hook, f.LoginErr); err != nil {
		return nil, err
	}
	return f.LoginResp, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error) {
	token, hook := f.begin("register", false)
	f.LastRegister = req
	if err := f.finish(ctx, token, hook, f.RegisterErr); err != nil {
		return nil, err
	}
	return f.RegisterResp, nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.Profile, error) {
	token, hook := f.begin("me", true)
	f.mu.Lock()
	f.MeTokens = append(f.MeTokens, token)
	f.mu.Unlock()
	if err := f.finish(ctx, token, hook, f.MeErr); err != nil {
		return nil, err
	}
	return f.MeResp.Clone(), nil
}

func (f *fakeClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error) {
	token, hook := f.begin("update", true)
	f.LastUpdate = upd
	if err := f.finish(ctx, token, hook, f.UpdateErr); err != nil {
		return nil, err
	}
	return f.UpdateResp.Clone(), nil
}

func (f *fakeClient) message(ctx context.Context, name string) (string, error) {
	token, hook := f.begin(name, false)
	if err := f.finish(ctx, token, hook, f.MessageErr); err != nil {
		return "", err
	}
	return f.MessageResp, nil
}

func (f *fakeClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	f.LastEmail = email
	return f.message(ctx, "forgot")
}

func (f *fakeClient) ResendVerification(ctx context.Context, email string) (string, error) {
	f.LastEmail = email
	return f.message(ctx, "resend")
}

func (f *fakeClient) VerifyEmail(ctx context.Context, token, email string) (string, error) {
	f.LastVerifyToken, f.LastEmail = token, email
	return f.message(ctx, "verify-email")
}

func (f *fakeClient) VerifyPhone(ctx context.Context, req models.PhoneVerification) (string, error) {
	f.LastPhone = req
	return f.message(ctx, "verify-phone")
}

func (f *fakeClient) ResendSMS(ctx context.Context, email string) (string, error) {
	f.LastEmail = email
	return f.message(ctx, "resend-sms")
}

// memStore is an in-memory TokenStore.
type memStore struct {
	mu    sync.Mutex
	token string

	LoadErr   error
	SaveErr   error
	DeleteErr error

	// When set, Save and Delete signal on *Entered and then wait on
	// *Release before touching the token.
	saveEntered, saveRelease     chan struct{}
	deleteEntered, deleteRelease chan struct{}

	Loads, Saves, Deletes int
}

func gate(entered, release chan struct{}) {
	if entered == nil {
		return
	}
	entered <- struct{}{}
	<-release
}

func (m *memStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Loads++
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	return m.token, nil
}

func (m *memStore) Save(_ context.Context, token string) error {
	gate(m.saveEntered, m.saveRelease)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

func (m *memStore) Delete(context.Context) error {
	gate(m.deleteEntered, m.deleteRelease)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.token = ""
	return nil
}

func (m *memStore) stored() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}
