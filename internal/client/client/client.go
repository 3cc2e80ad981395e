package client

import (
	"context"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
)

// UnauthorizedFunc is called when a request that carried token was answered
// with HTTP 401.
type UnauthorizedFunc func(ctx context.Context, token string)

// Client is the contract between the session layer and the tax backend.
type Client interface {
	// SetToken makes every following session request (Me, UpdateProfile)
	// carry "Authorization: Bearer token". Login, Register and the email and
	// phone flows never send it.
	SetToken(token string)
	// ClearToken stops sending the Authorization header at all.
	ClearToken()
	// OnUnauthorized registers the hook run on a 401 to an authenticated request.
	OnUnauthorized(fn UnauthorizedFunc)

	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.Profile, error)
	Me(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.Profile, error)

	ForgotPassword(ctx context.Context, email string) (string, error)
	ResendVerification(ctx context.Context, email string) (string, error)
	VerifyEmail(ctx context.Context, token, email string) (string, error)
	VerifyPhone(ctx context.Context, req models.PhoneVerification) (string, error)
	ResendSMS(ctx context.Context, email string) (string, error)
}
