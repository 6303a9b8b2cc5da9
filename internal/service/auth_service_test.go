package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/creaturemap/pkg/api"
)

func withToken[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func TestAuthFlow(t *testing.T) {
	c := setupTestServer(t, true)
	ctx := context.Background()

	t.Run("protected calls need a token", func(t *testing.T) {
		_, err := c.catalog.ListCategories(ctx, connect.NewRequest(&api.ListCategoriesRequest{}))
		requireCode(t, err, connect.CodeUnauthenticated)

		stream, err := c.observations.WatchObservations(ctx, connect.NewRequest(&api.WatchObservationsRequest{CreatureID: 1}))
		require.NoError(t, err)
		defer stream.Close()
		assert.False(t, stream.Receive())
		requireCode(t, stream.Err(), connect.CodeUnauthenticated)
	})

	t.Run("register validates input", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "a@example.com", Password: "longenough"}))
		requireCode(t, err, connect.CodeInvalidArgument)

		_, err = c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "a@example.com", DisplayName: "A", Password: "short"}))
		requireCode(t, err, connect.CodeInvalidArgument)

		_, err = c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "not-an-email", DisplayName: "A", Password: "longenough"}))
		requireCode(t, err, connect.CodeInvalidArgument)
	})

	reg, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "correct horse",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Msg.Token)
	assert.Equal(t, "alice@example.com", reg.Msg.User.Email)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "alice@example.com", DisplayName: "A2", Password: "correct horse"}))
		requireCode(t, err, connect.CodeAlreadyExists)
	})

	t.Run("login", func(t *testing.T) {
		_, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "wrong password"}))
		requireCode(t, err, connect.CodeUnauthenticated)

		resp, err := c.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "alice@example.com", Password: "correct horse"}))
		require.NoError(t, err)
		assert.Equal(t, reg.Msg.User.ID, resp.Msg.User.ID)
	})

	token := reg.Msg.Token

	t.Run("current user", func(t *testing.T) {
		resp, err := c.auth.GetCurrentUser(ctx, withToken(&api.GetCurrentUserRequest{}, token))
		require.NoError(t, err)
		assert.Equal(t, "Alice", resp.Msg.User.DisplayName)

		_, err = c.auth.GetCurrentUser(ctx, withToken(&api.GetCurrentUserRequest{}, "garbage"))
		requireCode(t, err, connect.CodeUnauthenticated)
	})

	t.Run("preferences are per user", func(t *testing.T) {
		_, err := c.prefs.SelectTab(ctx, withToken(&api.SelectTabRequest{Index: 4}, token))
		require.NoError(t, err)

		resp, err := c.prefs.GetPreferences(ctx, withToken(&api.GetPreferencesRequest{}, token))
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Msg.Preferences.LastTabIndex)

		shared, err := c.store.GetPreferences(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, 0, shared.LastTabIndex)
	})

	t.Run("draft sessions are per user", func(t *testing.T) {
		created, err := c.catalog.CreateCreature(ctx, withToken(&api.CreateCreatureRequest{CategoryID: 1, Name: "Kite"}, token))
		require.NoError(t, err)
		d, err := c.drafts.StartDraft(ctx, withToken(&api.StartDraftRequest{CreatureID: created.Msg.Creature.ID}, token))
		require.NoError(t, err)

		bob, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "bob@example.com", DisplayName: "Bob", Password: "correct horse"}))
		require.NoError(t, err)

		_, err = c.drafts.GetDraft(ctx, withToken(&api.DraftRequest{SessionID: d.Msg.SessionID}, bob.Msg.Token))
		requireCode(t, err, connect.CodeNotFound)
		_, err = c.drafts.GetDraft(ctx, withToken(&api.DraftRequest{SessionID: d.Msg.SessionID}, token))
		require.NoError(t, err)
	})

	t.Run("device locations are per user", func(t *testing.T) {
		_, err := c.location.Report(ctx, withToken(&api.ReportLocationRequest{DeviceID: "phone-1", Latitude: 35.1, Longitude: 139.2}, token))
		require.NoError(t, err)

		carol, err := c.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "carol@example.com", DisplayName: "Carol", Password: "correct horse"}))
		require.NoError(t, err)

		watchCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		stream, err := c.location.Watch(watchCtx, withToken(&api.WatchLocationRequest{DeviceID: "phone-1"}, carol.Msg.Token))
		require.NoError(t, err)
		defer stream.Close()
		assert.False(t, stream.Receive(), "carol must not see alice's device")

		ownCtx, cancelOwn := context.WithTimeout(ctx, 5*time.Second)
		defer cancelOwn()
		own, err := c.location.Watch(ownCtx, withToken(&api.WatchLocationRequest{DeviceID: "phone-1"}, token))
		require.NoError(t, err)
		defer own.Close()
		require.True(t, own.Receive(), "last known fix: %v", own.Err())
		assert.Equal(t, 35.1, own.Msg().Latitude)
	})

	t.Run("logout", func(t *testing.T) {
		_, err := c.auth.Logout(ctx, withToken(&api.LogoutRequest{}, token))
		require.NoError(t, err)
	})
}
