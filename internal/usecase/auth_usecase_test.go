package usecase_test

import (
	"context"
	"testing"
	"time"

	"healthtech-api/config"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/mocks"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func newAuthUsecase(f *fixture, jwtService *jwt.JWTService) usecase.AuthUsecase {
	return usecase.NewAuthUsecase(nil, f.log, f.tx, f.users, mocks.RoleRepository{}, f.patients, jwtService, f.tokens, f.audit())
}

func register(t *testing.T, uc usecase.AuthUsecase, email string) *dto.UserResponse {
	t.Helper()
	user, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email:       email,
		Password:    "correct-horse",
		FullName:    "Alice Liddell",
		DateOfBirth: "1990-05-04",
		Gender:      "female",
	})
	require.NoError(t, err)
	return user
}

func TestAuthUsecase_RegisterCreatesPatientProfile(t *testing.T) {
	f := newFixture()
	uc := newAuthUsecase(f, newJWT())

	user := register(t, uc, " Alice@Example.com ")
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, string(entity.AccountStatusActive), user.AccountStatus)
	require.NotNil(t, user.PatientProfileID)

	patient, _ := f.patients.FindByID(context.Background(), nil, *user.PatientProfileID)
	require.NotNil(t, patient)
	assert.Regexp(t, `^PAT\d{10}$`, patient.PatientCode)
	assert.Equal(t, []string{entity.AuditActionUserRegister}, f.audits.Actions())

	_, err := uc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "alice@example.com",
		Password:    "another-one",
		FullName:    "Alice Again",
		DateOfBirth: "1990-05-04",
		Gender:      "female",
	})
	assert.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

	_, err = uc.Register(context.Background(), &dto.RegisterRequest{Email: "x@example.com", Password: "12345678", FullName: "X", DateOfBirth: "04/05/1990", Gender: "other"})
	assert.ErrorIs(t, err, usecase.ErrInvalidDateFormat)
}

func TestAuthUsecase_LoginRefreshLogout(t *testing.T) {
	f := newFixture()
	jwtService := newJWT()
	uc := newAuthUsecase(f, jwtService)
	register(t, uc, "alice@example.com")

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "alice@example.com", Password: "wrong-horse"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
	_, err = uc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)

	pair, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	rotated, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: pair.RefreshToken})
	assert.ErrorIs(t, err, usecase.ErrTokenRevoked, "refresh tokens are single use")

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.AccessToken})
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)

	claims, err := jwtService.ValidateToken(rotated.AccessToken)
	require.NoError(t, err)
	actor, err := uc.ResolveActor(context.Background(), claims.UserID)
	require.NoError(t, err)

	ctx := context.WithValue(as(actor), middleware.TokenIDKey, claims.TokenID)
	require.NoError(t, uc.Logout(ctx, rotated.RefreshToken))

	ok, _ := f.tokens.Exists(context.Background(), claims.UserID, jwt.AccessToken, claims.TokenID)
	assert.False(t, ok)
	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, usecase.ErrTokenRevoked)
}

func TestAuthUsecase_SuspendedAccountsAreRefused(t *testing.T) {
	f := newFixture()
	uc := newAuthUsecase(f, newJWT())
	user := register(t, uc, "alice@example.com")

	stored, _ := f.users.FindByID(context.Background(), nil, user.ID)
	stored.AccountStatus = entity.AccountStatusSuspended

	_, err := uc.Login(context.Background(), &dto.LoginRequest{Email: "alice@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, usecase.ErrAccountSuspended)
	_, err = uc.ResolveActor(context.Background(), user.ID)
	assert.ErrorIs(t, err, usecase.ErrAccountSuspended)
}

func TestAuthUsecase_GetCurrentUser(t *testing.T) {
	f := newFixture()
	uc := newAuthUsecase(f, newJWT())
	patient, _ := f.addPatient("alice")

	me, err := uc.GetCurrentUser(as(patient))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)

	_, err = uc.GetCurrentUser(context.Background())
	assert.Error(t, err)
}
