package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/creaturemap/internal/auth"
	"github.com/mmynk/creaturemap/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// EmailKey is the context key for storing the authenticated user's email.
	EmailKey contextKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// GetEmail extracts the user email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// Owner returns the preferences owner for the request: the authenticated
// user, or models.DefaultOwner when authentication is off.
func Owner(ctx context.Context) string {
	if id := GetUserID(ctx); id != "" {
		return id
	}
	return models.DefaultOwner
}

// authInterceptor validates bearer tokens on unary and streaming calls.
type authInterceptor struct {
	jwtManager *auth.JWTManager
	public     map[string]bool
}

// RequireAuth returns an interceptor that validates JWT tokens and requires
// authentication for every procedure except the public ones. It extracts
// the token from the Authorization header and adds the user ID and email to
// the request context.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.Interceptor {
	i := &authInterceptor{jwtManager: jwtManager, public: make(map[string]bool, len(public))}
	for _, p := range public {
		i.public[p] = true
	}
	return i
}

func (i *authInterceptor) authenticate(ctx context.Context, procedure, header string) (context.Context, error) {
	if i.public[procedure] {
		return ctx, nil
	}
	if header == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	// Parse Bearer token
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
	}

	claims, err := i.jwtManager.Validate(parts[1])
	if err != nil {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, EmailKey, claims.Email)
	return ctx, nil
}

func (i *authInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		if req.Spec().IsClient {
			return next(ctx, req)
		}
		ctx, err := i.authenticate(ctx, req.Spec().Procedure, req.Header().Get("Authorization"))
		if err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

func (i *authInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i *authInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return func(ctx context.Context, conn connect.StreamingHandlerConn) error {
		ctx, err := i.authenticate(ctx, conn.Spec().Procedure, conn.RequestHeader().Get("Authorization"))
		if err != nil {
			return err
		}
		return next(ctx, conn)
	}
}
