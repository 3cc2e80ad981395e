package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They can be swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errTermsRejected    = errors.New("the terms of service must be accepted")
)

// Register prompts for the account details and creates the account. The
// user is not signed in afterwards; the account has to be verified first.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional, e.g. +2348012345678)", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	again, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(again)

	if string(password) != string(again) {
		fmt.Fprintln(a.out, "Error:", errPasswordMismatch)
		return errPasswordMismatch
	}

	agree, err := getConfirmation(a.reader, "Do you agree to the terms of service?", a.out)
	if err != nil {
		return err
	}
	if !agree {
		fmt.Fprintln(a.out, "Error:", errTermsRejected)
		return errTermsRejected
	}

	r := a.session.Register(ctx, models.RegisterRequest{
		Email:      email,
		Phone:      phone,
		Password:   string(password),
		FullName:   fullName,
		AgreeTerms: true,
	})
	if err := a.report(r); err != nil {
		return err
	}
	if phone != "" {
		fmt.Fprintln(a.out, "If you receive a code by SMS, use 'verify-phone' to confirm your phone.")
	}
	return nil
}

// Login prompts for an email or phone and a password. When the backend says
// the account is not verified yet, it offers to resend the verification
// email.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter email or phone", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	r := a.session.Login(ctx, models.LoginRequest{Identifier: identifier, Password: string(password)})
	if r.Success {
		fmt.Fprintln(a.out, r.Message)
		return nil
	}

	fmt.Fprintln(a.out, "Error:", r.Error)
	if r.NeedsVerification {
		a.offerResend(ctx, identifier)
	}
	return errors.New(r.Error)
}

func (a *App) offerResend(ctx context.Context, identifier string) {
	yes, err := getConfirmation(a.reader, "Your account is not verified yet. Resend the verification email?", a.out)
	if err != nil || !yes {
		return
	}

	email := identifier
	if !common.LooksLikeEmail(email) {
		email, err = getSimpleText(a.reader, "Enter the email address of the account", a.out)
		if err != nil {
			return
		}
	}
	_ = a.report(a.session.ResendVerification(ctx, email))
}

// Logout drops the local session. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// ForgotPassword requests password reset instructions by email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	return a.report(a.session.ForgotPassword(ctx, email))
}

// ResendVerification re-sends the verification email.
func (a *App) ResendVerification(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	return a.report(a.session.ResendVerification(ctx, email))
}

// VerifyEmail confirms an email address with the token from the
// verification link.
func (a *App) VerifyEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	token, err := getSimpleText(a.reader, "Enter the verification token", a.out)
	if err != nil {
		return err
	}
	return a.report(a.session.VerifyEmail(ctx, token, email))
}

// VerifyPhone submits the code received by SMS or voice call.
func (a *App) VerifyPhone(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	code, err := getSimpleText(a.reader, "Enter the code you received", a.out)
	if err != nil {
		return err
	}
	voice, err := getConfirmation(a.reader, "Did the code come by voice call?", a.out)
	if err != nil {
		return err
	}

	req := models.PhoneVerification{Email: email, Code: code, VerificationType: models.VerificationSMS}
	if voice {
		req.VerificationType = models.VerificationVoice
	}
	return a.report(a.session.VerifyPhone(ctx, req))
}

// ResendSMS asks for a new phone verification code.
func (a *App) ResendSMS(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your email", a.out)
	if err != nil {
		return err
	}
	return a.report(a.session.ResendSMS(ctx, email))
}
