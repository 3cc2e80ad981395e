package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/common"
	"github.com/dmitrijs2005/naijatax/internal/tokenx"
)

var getOptionalBool = GetOptionalBool

// WhoAmI prints the cached profile and what can be read from the token.
// It makes no network call.
func (a *App) WhoAmI(ctx context.Context) error {
	token := a.session.Token()
	if token == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return common.ErrNoToken
	}

	if u := a.session.User(); u != nil {
		printProfile(a.out, u)
	} else {
		fmt.Fprintln(a.out, "Profile not loaded yet; try 'refresh'")
	}

	info, err := tokenx.Inspect(token)
	if err != nil {
		a.log.Debug(ctx, "token is not a JWT", "error", err)
		return nil
	}
	if info.HasExpiry() {
		fmt.Fprintf(a.out, "Session expires: %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}

// Refresh re-fetches the profile from the backend.
func (a *App) Refresh(ctx context.Context) error {
	r := a.session.RefreshUser(ctx)
	if err := a.report(r); err != nil {
		return err
	}
	printProfile(a.out, r.User)
	return nil
}

// UpdateProfile prompts for the editable profile fields. An empty answer
// leaves a field out of the request.
func (a *App) UpdateProfile(ctx context.Context) error {
	var upd models.ProfileUpdate

	text := []struct {
		prompt string
		dst    **string
	}{
		{"Full name", &upd.FullName},
		{"Phone", &upd.Phone},
		{"Account type (individual/business)", &upd.AccountType},
		{"Employment status", &upd.EmploymentStatus},
		{"TIN", &upd.TIN},
		{"Company name", &upd.CompanyName},
		{"Business type", &upd.BusinessType},
	}
	for _, f := range text {
		v, err := getSimpleText(a.reader, f.prompt+" (empty to keep)", a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	streams, err := getSimpleText(a.reader, "Income streams, comma separated (empty to keep)", a.out)
	if err != nil {
		return err
	}
	if s := parseIncomeStreams(streams); s != nil {
		upd.IncomeStreams = &s
	}

	flags := []struct {
		prompt string
		dst    **bool
	}{
		{"Email notifications", &upd.EmailNotifications},
		{"SMS notifications", &upd.SMSNotifications},
		{"Marketing emails", &upd.MarketingEmails},
	}
	for _, f := range flags {
		v, err := getOptionalBool(a.reader, f.prompt, a.out)
		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
			return err
		}
		*f.dst = v
	}

	if upd.Empty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	r := a.session.UpdateProfile(ctx, upd)
	if err := a.report(r); err != nil {
		return err
	}
	printProfile(a.out, r.User)
	return nil
}

func parseIncomeStreams(s string) []models.IncomeStream {
	var out []models.IncomeStream
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, models.IncomeStream(p))
		}
	}
	return out
}

func printProfile(w io.Writer, u *models.Profile) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "Name:    %s\n", u.FullName)
	fmt.Fprintf(w, "Email:   %s (verified: %t)\n", u.Email, u.EmailVerified)
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone:   %s (verified: %t)\n", u.Phone, u.PhoneVerified)
	}
	switch {
	case u.AccountTier.Paid():
		fmt.Fprintf(w, "Tier:    %s (paid plan)\n", u.AccountTier)
	case u.AccountTier.Valid():
		fmt.Fprintf(w, "Tier:    %s\n", u.AccountTier)
	default:
		fmt.Fprintln(w, "Tier:    unknown")
	}
	if u.TIN != "" {
		fmt.Fprintf(w, "TIN:     %s\n", u.TIN)
	}
	if u.CompanyName != "" {
		fmt.Fprintf(w, "Company: %s\n", u.CompanyName)
	}
	if u.AdminEnabled {
		fmt.Fprintf(w, "Admin:   %s\n", u.AdminRole)
	}
}
