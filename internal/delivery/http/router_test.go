package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthtech-api/config"
	deliveryHttp "healthtech-api/internal/delivery/http"
	"healthtech-api/internal/delivery/http/handler"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/mocks"
	"healthtech-api/internal/service"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/jwt"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	handler http.Handler
	users   *mocks.UserRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	tx := &mocks.Transactor{}
	users := mocks.NewUserRepository()
	patients := mocks.NewPatientRepository()
	doctors := mocks.NewDoctorRepository()
	relations := mocks.NewRelationRepository()
	audits := &mocks.AuditLogRepository{}
	slots := mocks.NewAppointmentSlotRepository()
	bookings := mocks.NewAppointmentRepository()
	slots.Appointments = bookings
	notifier := &mocks.Notifier{Stored: map[uuid.UUID][]entity.Notification{}}
	tokens := mocks.NewTokenStore()

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "router-test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	audit := service.NewAuditService(log, audits)
	authorizer := service.NewAuthorizer(nil, log, relations)
	v := validator.NewValidator()
	errs := response.NewErrorRenderer(log, false)

	authUsecase := usecase.NewAuthUsecase(nil, log, tx, users, mocks.RoleRepository{}, patients, jwtService, tokens, audit)
	router := deliveryHttp.NewRouter(
		handler.NewAuthHandler(authUsecase, v, errs),
		handler.NewPatientHandler(
			usecase.NewPatientProfileUsecase(nil, log, tx, users, patients, audit),
			usecase.NewEmergencyContactUsecase(nil, log, tx, mocks.NewEmergencyContactRepository(), audit),
			v, errs,
		),
		handler.NewDoctorHandler(
			usecase.NewDoctorApprovalUsecase(nil, log, tx, doctors, users, audit, notifier),
			usecase.NewDoctorProfileUsecase(nil, log, tx, doctors, audit),
			v, errs,
		),
		handler.NewRelationHandler(usecase.NewRelationUsecase(nil, log, tx, relations, patients, doctors, audit, notifier), v, errs),
		handler.NewClinicalHandler(
			usecase.NewHealthMetricUsecase(nil, log, &mocks.HealthMetricRepository{}, patients, authorizer, &mocks.AlertPublisher{}, notifier),
			usecase.NewMedicalRecordUsecase(nil, log, tx, mocks.NewMedicalRecordRepository(), authorizer, audit),
			usecase.NewSymptomLogUsecase(nil, log, &mocks.SymptomLogRepository{}),
			usecase.NewHealthGoalUsecase(nil, log, mocks.NewHealthGoalRepository()),
			v, errs,
		),
		handler.NewAppointmentHandler(usecase.NewAppointmentUsecase(nil, log, slots, bookings, authorizer, mocks.NewSlotQuota()), v, errs),
		handler.NewNotificationHandler(usecase.NewNotificationUsecase(log, notifier), errs),
		handler.NewAdminHandler(usecase.NewAdminUsecase(nil, log, tx, users, patients, doctors, tokens, audit), v, errs),
		handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(nil, log, audits), errs),
		middleware.NewAuthMiddleware(jwtService, tokens, authUsecase.(middleware.ActorResolver), errs),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log),
	)

	return &testServer{handler: router.Setup(), users: users}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *response.Meta  `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

// signUp registers and logs in a user, returning its access token.
func (s *testServer) signUp(t *testing.T, email string) string {
	t.Helper()

	status, _ := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":         email,
		"password":      "correct-horse",
		"full_name":     "Test User",
		"date_of_birth": "1990-05-04",
		"gender":        "other",
	})
	require.Equal(t, http.StatusCreated, status)
	return s.login(t, email, "correct-horse")
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()

	status, env := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, string(env.Error))
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	decodeData(t, env, &tokens)
	return tokens.AccessToken
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	s.users.Add(&entity.User{
		Email:         "admin@example.com",
		Password:      string(hash),
		FullName:      "Admin",
		RoleID:        entity.RoleIDAdmin,
		Role:          entity.Role{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		AccountStatus: entity.AccountStatusActive,
	})
	return s.login(t, "admin@example.com", "admin-secret")
}

func TestRouter_HealthCheck(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_ProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = s.do(t, http.MethodGet, "/api/health-metrics", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_RejectsBadBodies(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	status, env := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":         "not-an-email",
		"password":      "short",
		"full_name":     "X",
		"date_of_birth": "1990-05-04",
		"gender":        "other",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRouter_RegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "alice@example.com")

	status, env := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	var me struct {
		Email            string     `json:"email"`
		Roles            []string   `json:"roles"`
		PatientProfileID *uuid.UUID `json:"patient_profile_id"`
	}
	decodeData(t, env, &me)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Contains(t, me.Roles, entity.RolePatient)
	assert.NotNil(t, me.PatientProfileID)

	status, _ = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status, "logged out token must be refused")
}

func TestRouter_RoleGates(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "alice@example.com")

	status, _ := s.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPost, "/api/appointment-slots", token, map[string]interface{}{})
	assert.Equal(t, http.StatusForbidden, status, "patients cannot publish slots")

	status, _ = s.do(t, http.MethodGet, "/api/patient/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_SuspendedAccountIsLockedOut(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	token := s.signUp(t, "alice@example.com")
	alice, _ := s.users.FindByEmail(context.Background(), nil, "alice@example.com")
	require.NotNil(t, alice)

	status, _ := s.do(t, http.MethodPut, "/api/admin/users/"+alice.ID.String()+"/status", adminToken, map[string]string{
		"account_status": string(entity.AccountStatusSuspended),
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_DoctorOnboardingThroughLedger(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.seedAdmin(t)
	patientToken := s.signUp(t, "alice@example.com")
	doctorToken := s.signUp(t, "house@example.com")

	// the patient records a reading of their own
	status, env := s.do(t, http.MethodPost, "/api/health-metrics", patientToken, map[string]interface{}{
		"metric_type": "heart_rate",
		"value":       72,
	})
	require.Equal(t, http.StatusCreated, status, string(env.Error))

	status, env = s.do(t, http.MethodPost, "/api/user/apply-for-doctor", doctorToken, map[string]interface{}{
		"medical_license_number": "md-4410",
		"specialization":         "cardiology",
		"years_of_experience":    12,
		"consultation_fee":       "150.00",
	})
	require.Equal(t, http.StatusCreated, status, string(env.Error))
	var application struct {
		ID             uuid.UUID `json:"id"`
		ApprovalStatus string    `json:"approval_status"`
	}
	decodeData(t, env, &application)
	assert.Equal(t, string(entity.ApprovalStatusPending), application.ApprovalStatus)

	// still pending, so doctor routes stay closed
	status, _ = s.do(t, http.MethodGet, "/api/doctors/patients", doctorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = s.do(t, http.MethodPost, "/api/admin/approve-doctor/"+application.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, "/api/auth/me", patientToken, nil)
	require.Equal(t, http.StatusOK, status)
	var patient struct {
		PatientProfileID uuid.UUID `json:"patient_profile_id"`
	}
	decodeData(t, env, &patient)

	// no relation yet
	metricsPath := "/api/health-metrics?patient_id=" + patient.PatientProfileID.String()
	status, _ = s.do(t, http.MethodGet, metricsPath, doctorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodPost, "/api/doctor-patient-relations", doctorToken, map[string]interface{}{
		"patient_id":    patient.PatientProfileID,
		"relation_type": "primary",
	})
	require.Equal(t, http.StatusCreated, status, string(env.Error))
	var relation struct {
		ID     uuid.UUID `json:"id"`
		Status string    `json:"status"`
	}
	decodeData(t, env, &relation)
	assert.Equal(t, string(entity.RelationStatusPending), relation.Status)

	status, _ = s.do(t, http.MethodGet, metricsPath, doctorToken, nil)
	assert.Equal(t, http.StatusForbidden, status, "pending relations grant nothing")

	status, env = s.do(t, http.MethodPost, "/api/relations/"+relation.ID.String()+"/approve", patientToken, nil)
	require.Equal(t, http.StatusOK, status, string(env.Error))

	status, env = s.do(t, http.MethodGet, metricsPath, doctorToken, nil)
	require.Equal(t, http.StatusOK, status, string(env.Error))
	require.NotNil(t, env.Meta)
	assert.Equal(t, int64(1), env.Meta.Total)

	status, _ = s.do(t, http.MethodPost, "/api/relations/"+relation.ID.String()+"/permissions/viewHealthMetrics/revoke", patientToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, metricsPath, doctorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(t, http.MethodGet, "/api/admin/activity-logs", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotZero(t, env.Meta.Total)
}

func TestRouter_EmergencyContacts(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "alice@example.com")

	status, env := s.do(t, http.MethodPost, "/api/emergency-contacts", token, map[string]interface{}{
		"full_name":    "Bob Liddell",
		"relationship": "sibling",
		"phone":        "not a phone",
	})
	require.Equal(t, http.StatusBadRequest, status)
	var fields map[string]string
	require.NoError(t, json.Unmarshal(env.Error, &fields))
	assert.Contains(t, fields, "phone")

	status, env = s.do(t, http.MethodPost, "/api/emergency-contacts", token, map[string]interface{}{
		"full_name":    "Bob Liddell",
		"relationship": "sibling",
		"phone":        "+628123456789",
		"is_primary":   true,
	})
	require.Equal(t, http.StatusCreated, status, string(env.Error))
	var contact struct {
		ID        uuid.UUID `json:"id"`
		IsPrimary bool      `json:"is_primary"`
	}
	decodeData(t, env, &contact)
	assert.True(t, contact.IsPrimary)

	status, env = s.do(t, http.MethodGet, "/api/emergency-contacts", token, nil)
	require.Equal(t, http.StatusOK, status)
	var contacts []json.RawMessage
	decodeData(t, env, &contacts)
	assert.Len(t, contacts, 1)

	status, _ = s.do(t, http.MethodDelete, "/api/emergency-contacts/"+contact.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodGet, "/api/doctor/profile", token, nil)
	assert.Equal(t, http.StatusForbidden, status, "doctor profile is for approved doctors")
}
