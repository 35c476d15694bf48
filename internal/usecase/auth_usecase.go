package usecase

import (
	"context"
	"strings"
	"time"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"
	"healthtech-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context) (*dto.UserResponse, error)
	ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.Actor, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	tx          repository.Transactor
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	patientRepo repository.PatientRepository
	jwtService  *jwt.JWTService
	tokens      service.TokenStore
	audit       service.AuditService
	now         func() time.Time
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	tx repository.Transactor,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	patientRepo repository.PatientRepository,
	jwtService *jwt.JWTService,
	tokens service.TokenStore,
	audit service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		tx:          tx,
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		patientRepo: patientRepo,
		jwtService:  jwtService,
		tokens:      tokens,
		audit:       audit,
		now:         time.Now,
	}
}

// Register creates the account together with its patient profile.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, apperror.Internal(err)
	}

	role, err := u.roleRepo.FindByName(ctx, u.db, entity.RoleUser)
	if err != nil {
		u.log.Warnf("Failed to find role: %+v", err)
		return nil, apperror.Internal(err)
	}
	if role == nil {
		return nil, ErrRoleNotFound
	}

	user := &entity.User{
		RoleID:        role.ID,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Password:      string(hashedPassword),
		FullName:      strings.TrimSpace(req.FullName),
		DateOfBirth:   dob,
		Gender:        req.Gender,
		Phone:         req.Phone,
		Address:       req.Address,
		AccountStatus: entity.AccountStatusActive,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			if repository.IsDuplicateOn(err, repository.ConstraintUsersEmail) {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return apperror.Internal(err)
		}

		patient := &entity.Patient{
			UserID:              user.ID,
			PatientCode:         generatePatientCode(u.now()),
			PreferredUnitSystem: entity.UnitSystemMetric,
		}
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient profile: %+v", err)
			return apperror.Internal(err)
		}

		user.PatientProfileID = &patient.ID
		if err := u.userRepo.UpdateFields(ctx, tx, user.ID, map[string]interface{}{"patient_profile_id": &patient.ID}); err != nil {
			u.log.Warnf("Failed to link patient profile: %+v", err)
			return apperror.Internal(err)
		}

		return u.audit.Record(ctx, tx, service.AuditEntry{
			UserID:    &user.ID,
			PatientID: &patient.ID,
			Action:    entity.AuditActionUserRegister,
			Entity:    "user",
			EntityID:  user.ID.String(),
		})
	})
	if err != nil {
		return nil, err
	}

	user.Role = *role
	u.log.Infof("User registered: id=%s", user.ID)
	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, u.db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.IsSuspended() {
		return nil, ErrAccountSuspended
	}

	tokens, err := u.issueTokens(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	if err := u.userRepo.TouchLastLogin(ctx, u.db, user.ID, u.now()); err != nil {
		u.log.Warnf("Failed to update last login for user %s: %+v", user.ID, err)
	}
	if err := u.audit.Record(ctx, u.db, service.AuditEntry{
		UserID:   &user.ID,
		Action:   entity.AuditActionUserLogin,
		Entity:   "user",
		EntityID: user.ID.String(),
	}); err != nil {
		u.log.Warnf("Failed to record login for user %s: %+v", user.ID, err)
	}

	return tokens, nil
}

// Logout revokes the current access token and, when given, the refresh token
// issued alongside it.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return err
	}

	if tokenID, ok := middleware.GetTokenIDFromContext(ctx); ok {
		if err := u.tokens.Revoke(ctx, actor.UserID, jwt.AccessToken, tokenID); err != nil {
			return apperror.Internal(err)
		}
	}

	if refreshToken != "" {
		claims, err := u.jwtService.ValidateToken(refreshToken)
		if err == nil && claims.TokenType == jwt.RefreshToken && claims.UserID == actor.UserID {
			if err := u.tokens.Revoke(ctx, actor.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
				return apperror.Internal(err)
			}
		}
	}

	if err := u.audit.Record(ctx, u.db, service.AuditEntry{
		UserID:   &actor.UserID,
		Action:   entity.AuditActionUserLogout,
		Entity:   "user",
		EntityID: actor.UserID.String(),
	}); err != nil {
		u.log.Warnf("Failed to record logout for user %s: %+v", actor.UserID, err)
	}
	return nil
}

// RefreshToken rotates the pair: the presented refresh token is single use.
func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokens.Exists(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	user, err := u.userRepo.FindByID(ctx, u.db, claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if user.IsSuspended() {
		return nil, ErrAccountSuspended
	}

	if err := u.tokens.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		return nil, apperror.Internal(err)
	}

	return u.issueTokens(ctx, user.ID, user.Email)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, u.db, actor.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// ResolveActor loads the user behind an access token. Suspended accounts are
// refused even while their tokens are still valid.
func (u *authUsecase) ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.Actor, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if user.IsSuspended() {
		return nil, ErrAccountSuspended
	}
	return entity.NewActor(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, userID uuid.UUID, email string) (*dto.TokenResponse, error) {
	access, err := u.jwtService.GenerateAccessToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, apperror.Internal(err)
	}
	refresh, err := u.jwtService.GenerateRefreshToken(userID, email)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, apperror.Internal(err)
	}

	if err := u.tokens.Store(ctx, userID, jwt.AccessToken, access); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := u.tokens.Store(ctx, userID, jwt.RefreshToken, refresh); err != nil {
		return nil, apperror.Internal(err)
	}

	return &dto.TokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(access.TTL.Seconds()),
	}, nil
}
