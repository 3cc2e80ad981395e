package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/naijatax/internal/client/client"
	"github.com/dmitrijs2005/naijatax/internal/client/config"
	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/naijatax/internal/client/services"
	"github.com/dmitrijs2005/naijatax/internal/logging"
)

// sessionService is the part of services.SessionManager the commands use.
type sessionService interface {
	Init(ctx context.Context)
	Login(ctx context.Context, req models.LoginRequest) services.Result
	Register(ctx context.Context, req models.RegisterRequest) services.Result
	Logout(ctx context.Context)
	RefreshUser(ctx context.Context) services.Result
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) services.Result
	ForgotPassword(ctx context.Context, email string) services.Result
	ResendVerification(ctx context.Context, identifier string) services.Result
	VerifyEmail(ctx context.Context, token, email string) services.Result
	VerifyPhone(ctx context.Context, req models.PhoneVerification) services.Result
	ResendSMS(ctx context.Context, email string) services.Result
	IsAuthenticated() bool
	User() *models.Profile
	Token() string
}

var _ sessionService = (*services.SessionManager)(nil)

type App struct {
	config  *config.Config
	session sessionService
	log     logging.Logger
	db      *sql.DB
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the local database and builds the session stack described by
// c. The caller owns the App and must call Run (which closes the database).
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database %s: %w", c.DatabasePath, err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, log.With("component", "api"))
	store := services.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	session := services.NewSessionManager(api, store, log)

	return &App{
		config:  c,
		session: session,
		log:     log,
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the persisted session and runs the REPL until the user exits
// or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	a.session.Init(ctx)

	fmt.Fprintln(a.out, "Welcome to naijatax (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close(ctx context.Context) {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// getStatus is the prompt decoration: "(email tier)" when signed in. Tiers
// this client does not know are left out.
func (a *App) getStatus() string {
	u := a.session.User()
	if u == nil {
		if a.session.Token() != "" {
			return "(offline session)"
		}
		return ""
	}
	if !u.AccountTier.Valid() {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.AccountTier)
}

// report prints the outcome of a session operation and turns a failed one
// into an error for the caller.
func (a *App) report(r services.Result) error {
	if !r.Success {
		fmt.Fprintln(a.out, "Error:", r.Error)
		return errors.New(r.Error)
	}
	if r.Message != "" {
		fmt.Fprintln(a.out, r.Message)
	}
	return nil
}
