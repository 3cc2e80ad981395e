package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/naijatax/internal/client/models"
	"github.com/dmitrijs2005/naijatax/internal/client/services"
	"github.com/dmitrijs2005/naijatax/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhoAmI(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		a, out := newTestApp(&fakeSession{})
		require.ErrorIs(t, a.WhoAmI(context.Background()), common.ErrNoToken)
		assert.Contains(t, out.String(), "Not logged in")
	})

	t.Run("token without profile", func(t *testing.T) {
		a, out := newTestApp(&fakeSession{token: "opaque"})
		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "try 'refresh'")
	})

	t.Run("jwt with expiry", func(t *testing.T) {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "ada@example.ng",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("k"))
		require.NoError(t, err)

		f := &fakeSession{token: tok, user: &models.Profile{Email: "ada@example.ng", FullName: "Ada Obi", AccountTier: models.TierPro}}
		a, out := newTestApp(f)

		require.NoError(t, a.WhoAmI(context.Background()))
		assert.Contains(t, out.String(), "Ada Obi")
		assert.Contains(t, out.String(), "Tier:    pro (paid plan)")
		assert.Contains(t, out.String(), "Session expires:")
		assert.Empty(t, f.calls, "whoami must not hit the network")
	})
}

func TestRefresh(t *testing.T) {
	f := &fakeSession{result: services.Result{Success: true, User: &models.Profile{FullName: "Ada Obi", Phone: "+2348000000000"}}}
	a, out := newTestApp(f)

	require.NoError(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), "Phone:   +2348000000000")

	f.result = services.Result{Error: "Not authenticated"}
	require.Error(t, a.Refresh(context.Background()))
}

func TestUpdateProfile_SendsOnlyAnsweredFields(t *testing.T) {
	f := &fakeSession{result: services.Result{Success: true, Message: "Profile updated", User: &models.Profile{FullName: "B"}}}
	a, out := newTestApp(f,
		"B",                     // full name
		"",                      // phone
		"",                      // account type
		"",                      // employment status
		"12345678-0001",         // TIN
		"",                      // company
		"",                      // business type
		"Employment, freelance", // income streams
		"n",                     // email notifications
		"",                      // sms
		"",                      // marketing
	)

	require.NoError(t, a.UpdateProfile(context.Background()))

	upd := f.lastUpdate
	require.NotNil(t, upd.FullName)
	assert.Equal(t, "B", *upd.FullName)
	assert.Nil(t, upd.Phone)
	require.NotNil(t, upd.TIN)
	assert.Equal(t, "12345678-0001", *upd.TIN)
	require.NotNil(t, upd.IncomeStreams)
	assert.Equal(t, []models.IncomeStream{models.IncomeEmployment, models.IncomeFreelance}, *upd.IncomeStreams)
	require.NotNil(t, upd.EmailNotifications)
	assert.False(t, *upd.EmailNotifications)
	assert.Nil(t, upd.SMSNotifications)
	assert.Contains(t, out.String(), "Profile updated")
}

func TestUpdateProfile_NothingToSend(t *testing.T) {
	f := &fakeSession{}
	a, out := newTestApp(f, "", "", "", "", "", "", "", "", "", "", "")

	require.NoError(t, a.UpdateProfile(context.Background()))
	assert.Empty(t, f.calls)
	assert.Contains(t, out.String(), "Nothing to update")
}

func TestUpdateProfile_BadToggle(t *testing.T) {
	f := &fakeSession{}
	a, _ := newTestApp(f, "", "", "", "", "", "", "", "", "sometimes")

	require.Error(t, a.UpdateProfile(context.Background()))
	assert.Empty(t, f.calls)
}
