package middleware

import (
	"context"
	"net/http"
	"strings"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"
	"healthtech-api/pkg/jwt"
	"healthtech-api/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorKey   contextKey = "actor"
	TokenIDKey contextKey = "token_id"
)

// ActorResolver loads the caller behind validated token claims.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.Actor, error)
}

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	tokens     service.TokenStore
	resolver   ActorResolver
	errors     *response.ErrorRenderer
}

func NewAuthMiddleware(jwtService *jwt.JWTService, tokens service.TokenStore, resolver ActorResolver, errors *response.ErrorRenderer) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		tokens:     tokens,
		resolver:   resolver,
		errors:     errors,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type")
			return
		}

		exists, err := m.tokens.Exists(r.Context(), claims.UserID, jwt.AccessToken, claims.TokenID)
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if !exists {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		actor, err := m.resolver.ResolveActor(r.Context(), claims.UserID)
		if err != nil {
			m.errors.Render(w, err)
			return
		}

		ctx := WithActor(r.Context(), actor)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithActor stores the authenticated caller on ctx.
func WithActor(ctx context.Context, actor *entity.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// GetActorFromContext extracts the authenticated caller from context
func GetActorFromContext(ctx context.Context) (*entity.Actor, bool) {
	actor, ok := ctx.Value(ActorKey).(*entity.Actor)
	return actor, ok && actor != nil
}

// RequireActor is GetActorFromContext for usecases, failing with Unauthorized.
func RequireActor(ctx context.Context) (*entity.Actor, error) {
	actor, ok := GetActorFromContext(ctx)
	if !ok {
		return nil, apperror.Unauthorized("user not found in context")
	}
	return actor, nil
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
