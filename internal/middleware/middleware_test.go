package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/creaturemap/internal/auth"
	"github.com/mmynk/creaturemap/internal/models"
	"github.com/mmynk/creaturemap/pkg/api"
	"github.com/mmynk/creaturemap/pkg/api/apiconnect"
)

// echoPrefs reports the request owner as the map mode so tests can see it.
type echoPrefs struct{}

func (echoPrefs) GetPreferences(ctx context.Context, _ *connect.Request[api.GetPreferencesRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return connect.NewResponse(&api.PreferencesResponse{Preferences: api.Preferences{MapMode: Owner(ctx)}}), nil
}

func (echoPrefs) SelectTab(ctx context.Context, _ *connect.Request[api.SelectTabRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return connect.NewResponse(&api.PreferencesResponse{Preferences: api.Preferences{MapMode: Owner(ctx)}}), nil
}

func (echoPrefs) SetMapMode(ctx context.Context, _ *connect.Request[api.SetMapModeRequest]) (*connect.Response[api.PreferencesResponse], error) {
	return connect.NewResponse(&api.PreferencesResponse{Preferences: api.Preferences{MapMode: GetEmail(ctx)}}), nil
}

func setup(t *testing.T, jwtManager *auth.JWTManager) apiconnect.PreferencesServiceClient {
	t.Helper()
	interceptors := connect.WithInterceptors(
		LoggingInterceptor(),
		RequireAuth(jwtManager, apiconnect.PreferencesServiceSelectTabProcedure),
	)
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewPreferencesServiceHandler(echoPrefs{}, interceptors))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return apiconnect.NewPreferencesServiceClient(server.Client(), server.URL)
}

func TestOwner(t *testing.T) {
	assert.Equal(t, models.DefaultOwner, Owner(context.Background()))
	ctx := context.WithValue(context.Background(), UserIDKey, "u-1")
	assert.Equal(t, "u-1", Owner(ctx))
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	client := setup(t, jwtManager)
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		_, err := client.GetPreferences(ctx, connect.NewRequest(&api.GetPreferencesRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("not a bearer token", func(t *testing.T) {
		req := connect.NewRequest(&api.GetPreferencesRequest{})
		req.Header().Set("Authorization", "Basic abc")
		_, err := client.GetPreferences(ctx, req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("public procedure", func(t *testing.T) {
		resp, err := client.SelectTab(ctx, connect.NewRequest(&api.SelectTabRequest{}))
		require.NoError(t, err)
		assert.Equal(t, models.DefaultOwner, resp.Msg.Preferences.MapMode)
	})

	t.Run("valid token sets owner and email", func(t *testing.T) {
		token, err := jwtManager.Generate(&models.User{ID: "u-42", Email: "a@example.com"})
		require.NoError(t, err)

		req := connect.NewRequest(&api.GetPreferencesRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		resp, err := client.GetPreferences(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "u-42", resp.Msg.Preferences.MapMode)

		req2 := connect.NewRequest(&api.SetMapModeRequest{})
		req2.Header().Set("Authorization", "Bearer "+token)
		resp, err = client.SetMapMode(ctx, req2)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", resp.Msg.Preferences.MapMode)
	})

	t.Run("token from another secret", func(t *testing.T) {
		other := auth.NewJWTManager("other", time.Hour)
		token, err := other.Generate(&models.User{ID: "u-42", Email: "a@example.com"})
		require.NoError(t, err)

		req := connect.NewRequest(&api.GetPreferencesRequest{})
		req.Header().Set("Authorization", "Bearer "+token)
		_, err = client.GetPreferences(ctx, req)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "abc", requestID("abc"))
	assert.Len(t, requestID(""), 36)
}
