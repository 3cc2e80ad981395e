// Package services contains application services for the naijatax client.
// This file defines the SessionManager: the owner of the bearer token and the
// current user profile, and the only component allowed to change them.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/client/client"
	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/common"
	"github.com/dmitrijs2005/naijatax/internal/logging"
	"github.com/dmitrijs2005/naijatax/internal/tokenx"
)

// Snapshot is a consistent, read-only view of the session.
type Snapshot struct {
	User    *models.Profile
	Token   string
	Loading bool
}

// SessionManager owns the session of this process. Construct one with
// NewSessionManager, call Init once at startup and hand the pointer to every
// consumer.
//
// Invariants:
//   - user is only ever set together with the token it was fetched with;
//   - a 401 on an authenticated request clears token, user and the bearer
//     header under a single lock acquisition, then deletes the persisted
//     token;
//   - once Login, Logout or a forced logout has returned, the in-memory
//     token matches the persisted one. Token writes are serialized by
//     persistMu; readers never wait on disk I/O.
//
// Operations are not otherwise serialized against each other; no lock is
// held while a request is in flight.
type SessionManager struct {
	api   client.Client
	store TokenStore
	log   logging.Logger
	now   func() time.Time

	initOnce sync.Once

	// persistMu orders store writes with the in-memory token switch.
	persistMu sync.Mutex

	mu      sync.RWMutex
	token   string
	user    *models.Profile
	loading bool
}

// NewSessionManager wires the manager to api and store and registers the
// forced-logout hook on api.
func NewSessionManager(api client.Client, store TokenStore, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.NewNopLogger()
	}
	s := &SessionManager{
		api:     api,
		store:   store,
		log:     log.With("component", "session"),
		now:     time.Now,
		loading: true,
	}
	api.OnUnauthorized(s.handleUnauthorized)
	return s
}

// Init rehydrates the session from the persisted token. Only the first call
// does anything; Loading is false once it returns and stays false.
func (s *SessionManager) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		defer s.finishLoading()
		s.rehydrate(ctx)
	})
}

func (s *SessionManager) rehydrate(ctx context.Context) {
	token, err := s.restore(ctx)
	if err != nil {
		s.log.Warn(ctx, "could not read persisted token", "error", err)
		return
	}
	if token == "" {
		s.log.Debug(ctx, "no persisted session")
		return
	}

	s.warnIfExpired(ctx, token)

	profile, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			s.clearIf(ctx, token)
			s.log.Info(ctx, "persisted session rejected, signed out")
			return
		}
		if client.IsTransport(err) {
			s.log.Info(ctx, "backend unreachable, keeping token", "error", err)
			return
		}
		s.log.Warn(ctx, "session rehydration failed, keeping token", "error", err)
		return
	}

	if s.setUser(token, profile) {
		s.log.Info(ctx, "session rehydrated", "email", profile.Email)
	}
}

func (s *SessionManager) warnIfExpired(ctx context.Context, token string) {
	info, err := tokenx.Inspect(token)
	if err != nil {
		return
	}
	if info.Expired(s.now()) {
		s.log.Info(ctx, "persisted token is past its expiry", "expired_at", info.ExpiresAt)
	}
}

// Login authenticates with an email or phone identifier. On success the
// token is persisted and activated and the profile fetched; on failure
// nothing is stored.
func (s *SessionManager) Login(ctx context.Context, req models.LoginRequest) Result {
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.log.Debug(ctx, "login rejected", "error", err)
		r := failure(err, msgLoginFailed)
		r.NeedsVerification = IsVerificationRequired(err)
		return r
	}
	if resp == nil || resp.AccessToken == "" {
		return fail(msgLoginFailed)
	}

	if err := s.persist(ctx, resp.AccessToken); err != nil {
		s.log.Error(ctx, "could not persist token", "error", err)
		return fail(msgSessionNotSaved)
	}

	profile, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return failure(err, msgLoginFailed)
		}
		if client.IsTransport(err) {
			s.log.Info(ctx, "logged in, profile will load once the backend is reachable", "error", err)
		} else {
			s.log.Warn(ctx, "logged in but profile fetch failed", "error", err)
		}
		return ok(msgLoginSuccess)
	}
	s.setUser(resp.AccessToken, profile)
	s.log.Info(ctx, "logged in", "email", profile.Email)

	r := ok(msgLoginSuccess)
	r.User = profile.Clone()
	return r
}

// Register creates an account. It never signs the user in: the account
// has to be verified first.
func (s *SessionManager) Register(ctx context.Context, req models.RegisterRequest) Result {
	profile, err := s.api.Register(ctx, req)
	if err != nil {
		return failure(err, msgRegisterFailed)
	}

	r := ok(msgRegisterSuccess)
	r.RequiresVerification = true
	r.User = profile
	return r
}

// Logout drops the session locally. It has no server round trip, cannot
// fail and is idempotent.
func (s *SessionManager) Logout(ctx context.Context) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	s.deletePersisted(ctx)
}

// RefreshUser re-fetches the profile. Without a token (in memory or on
// disk) it fails without a network call. A failed fetch leaves the current
// profile untouched.
func (s *SessionManager) RefreshUser(ctx context.Context) Result {
	token := s.Token()
	if token == "" {
		var err error
		if token, err = s.restore(ctx); err != nil {
			s.log.Warn(ctx, "could not read persisted token", "error", err)
		}
		if token == "" {
			return fail(msgNotAuthenticated)
		}
	}

	profile, err := s.api.Me(ctx)
	if err != nil {
		return failure(err, msgProfileFailed)
	}
	if !s.setUser(token, profile) {
		return fail(msgSessionChanged)
	}

	r := ok("")
	r.User = profile.Clone()
	return r
}

// GetProfile is an alias of RefreshUser.
func (s *SessionManager) GetProfile(ctx context.Context) Result {
	return s.RefreshUser(ctx)
}

// UpdateProfile sends upd and replaces the profile with the server's answer.
// Fields the server leaves out are gone afterwards: there is no merge.
func (s *SessionManager) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) Result {
	token := s.Token()

	profile, err := s.api.UpdateProfile(ctx, upd)
	if err != nil {
		return failure(err, msgUpdateFailed)
	}
	if token == "" {
		return fail(msgNotAuthenticated)
	}
	if !s.setUser(token, profile) {
		return fail(msgSessionChanged)
	}

	r := ok(msgUpdateSuccess)
	r.User = profile.Clone()
	return r
}

// ForgotPassword asks the backend to send reset instructions.
func (s *SessionManager) ForgotPassword(ctx context.Context, email string) Result {
	email = strings.TrimSpace(email)
	if !common.LooksLikeEmail(email) {
		return fail(msgInvalidEmail)
	}

	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return failure(err, msgForgotFailed)
	}
	return ok(orDefault(msg, msgForgotSuccess))
}

// ResendVerification re-sends the verification email. The endpoint is
// email-only, so phone identifiers are refused locally.
func (s *SessionManager) ResendVerification(ctx context.Context, identifier string) Result {
	identifier = strings.TrimSpace(identifier)
	if !common.LooksLikeEmail(identifier) {
		return fail(msgResendEmailOnly)
	}

	msg, err := s.api.ResendVerification(ctx, identifier)
	if err != nil {
		return failure(err, msgResendFailed)
	}
	return ok(orDefault(msg, msgResendSuccess))
}

// VerifyEmail confirms ownership of email with the token from the
// verification link.
func (s *SessionManager) VerifyEmail(ctx context.Context, token, email string) Result {
	token, email = strings.TrimSpace(token), strings.TrimSpace(email)
	if token == "" || email == "" {
		return fail(msgVerifyEmailMissing)
	}

	msg, err := s.api.VerifyEmail(ctx, token, email)
	if err != nil {
		return failure(err, msgVerifyEmailFailed)
	}
	return ok(orDefault(msg, msgVerifyEmailSuccess))
}

// VerifyPhone submits the code received by SMS or voice call.
func (s *SessionManager) VerifyPhone(ctx context.Context, req models.PhoneVerification) Result {
	req.Email, req.Code = strings.TrimSpace(req.Email), strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		return fail(msgVerifyPhoneMissing)
	}
	if req.VerificationType == "" {
		req.VerificationType = models.VerificationSMS
	}

	msg, err := s.api.VerifyPhone(ctx, req)
	if err != nil {
		return failure(err, msgVerifyPhoneFailed)
	}
	return ok(orDefault(msg, msgVerifyPhoneSuccess))
}

// ResendSMS asks for a new phone verification code for the account of email.
func (s *SessionManager) ResendSMS(ctx context.Context, email string) Result {
	email = strings.TrimSpace(email)
	if !common.LooksLikeEmail(email) {
		return fail(msgInvalidEmail)
	}

	msg, err := s.api.ResendSMS(ctx, email)
	if err != nil {
		return failure(err, msgResendSMSFailed)
	}
	return ok(orDefault(msg, msgResendSMSSuccess))
}

// IsAuthenticated is true only once a profile has been fetched. A token
// without a profile does not count.
func (s *SessionManager) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// HasPermission reports whether the current profile lists name.
func (s *SessionManager) HasPermission(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasPermission(name)
}

// User returns a copy of the current profile, or nil.
func (s *SessionManager) User() *models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

func (s *SessionManager) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading is true until Init has finished.
func (s *SessionManager) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *SessionManager) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{User: s.user.Clone(), Token: s.token, Loading: s.loading}
}

func (s *SessionManager) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// persist saves token and then makes it the active one.
func (s *SessionManager) persist(ctx context.Context, token string) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if err := s.store.Save(ctx, token); err != nil {
		return err
	}
	s.activate(token)
	return nil
}

// restore activates the persisted token unless a token is already active,
// and returns whichever token is active afterwards.
func (s *SessionManager) restore(ctx context.Context) (string, error) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if token := s.Token(); token != "" {
		return token, nil
	}
	token, err := s.store.Load(ctx)
	if err != nil || token == "" {
		return "", err
	}
	s.activate(token)
	return token, nil
}

func (s *SessionManager) activate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.api.SetToken(token)
}

// setUser installs profile if token is still the active one. It returns
// false when the session changed (logout, forced logout, new login) while
// the profile was being fetched.
func (s *SessionManager) setUser(token string, profile *models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" || s.token != token {
		return false
	}
	s.user = profile.Clone()
	return true
}

// handleUnauthorized is the client's 401 hook.
func (s *SessionManager) handleUnauthorized(ctx context.Context, token string) {
	s.clearIf(ctx, token)
}

// clearIf drops the session if token is still the active one, so a late
// 401 for an old token cannot sign out a newer session.
func (s *SessionManager) clearIf(ctx context.Context, token string) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	s.mu.Lock()
	if s.token != token {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()

	s.deletePersisted(ctx)
	s.log.Info(ctx, "session expired, signed out")
}

func (s *SessionManager) resetLocked() {
	s.user = nil
	s.token = ""
	s.api.ClearToken()
}

// deletePersisted must run with persistMu held and mu released.
func (s *SessionManager) deletePersisted(ctx context.Context) {
	if err := s.store.Delete(ctx); err != nil {
		s.log.Error(ctx, "could not delete persisted token", "error", err)
	}
}
