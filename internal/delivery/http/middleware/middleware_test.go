package middleware_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthtech-api/config"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/mocks"
	"healthtech-api/pkg/apperror"
	"healthtech-api/pkg/jwt"
	"healthtech-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(ctx context.Context, userID uuid.UUID) (*entity.Actor, error)

func (f resolverFunc) ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.Actor, error) {
	return f(ctx, userID)
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "middleware-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func okHandler(seen **entity.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, _ := middleware.GetActorFromContext(r.Context())
		*seen = actor
		w.WriteHeader(http.StatusNoContent)
	})
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	jwtService := newJWT()
	tokens := mocks.NewTokenStore()
	userID := uuid.New()
	patientID := uuid.New()

	var suspended bool
	resolver := resolverFunc(func(_ context.Context, id uuid.UUID) (*entity.Actor, error) {
		if suspended {
			return nil, apperror.Forbidden("account is suspended")
		}
		return &entity.Actor{UserID: id, PatientID: &patientID}, nil
	})
	auth := middleware.NewAuthMiddleware(jwtService, tokens, resolver, response.NewErrorRenderer(newLogger(), false))

	access, err := jwtService.GenerateAccessToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, tokens.Store(context.Background(), userID, jwt.AccessToken, access))
	refresh, err := jwtService.GenerateRefreshToken(userID, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, tokens.Store(context.Background(), userID, jwt.RefreshToken, refresh))

	var seen *entity.Actor
	h := auth.Authenticate(okHandler(&seen))

	rec := serve(h, access.Token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID, seen.UserID)

	assert.Equal(t, http.StatusUnauthorized, serve(h, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, refresh.Token).Code, "refresh tokens cannot authenticate")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+access.Token)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	suspended = true
	assert.Equal(t, http.StatusForbidden, serve(h, access.Token).Code)
	suspended = false

	require.NoError(t, tokens.Revoke(context.Background(), userID, jwt.AccessToken, access.TokenID))
	assert.Equal(t, http.StatusUnauthorized, serve(h, access.Token).Code)
}

func TestRequireRole(t *testing.T) {
	doctorID := uuid.New()
	gate := middleware.RequireRole(entity.RoleDoctor, entity.RoleAdmin)

	var seen *entity.Actor
	h := gate(okHandler(&seen))

	call := func(actor *entity.Actor) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if actor != nil {
			req = req.WithContext(middleware.WithActor(req.Context(), actor))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, call(nil))
	assert.Equal(t, http.StatusForbidden, call(&entity.Actor{UserID: uuid.New()}))
	assert.Equal(t, http.StatusNoContent, call(&entity.Actor{UserID: uuid.New(), DoctorID: &doctorID}))
	assert.Equal(t, http.StatusNoContent, call(&entity.Actor{UserID: uuid.New(), IsAdmin: true}))
}

func TestRequireActor(t *testing.T) {
	_, err := middleware.RequireActor(context.Background())
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	actor := &entity.Actor{UserID: uuid.New()}
	got, err := middleware.RequireActor(middleware.WithActor(context.Background(), actor))
	require.NoError(t, err)
	assert.Same(t, actor, got)
}

func TestLoggingMiddleware_EchoesRequestID(t *testing.T) {
	h := middleware.NewLoggingMiddleware(newLogger()).Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "req-42", rec.Header().Get(middleware.RequestIDHeader))
}
