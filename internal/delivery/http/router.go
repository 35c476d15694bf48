package http

import (
	"net/http"

	"healthtech-api/internal/delivery/http/handler"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	relationHandler     *handler.RelationHandler
	clinicalHandler     *handler.ClinicalHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	adminHandler        *handler.AdminHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	relationHandler *handler.RelationHandler,
	clinicalHandler *handler.ClinicalHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		relationHandler:     relationHandler,
		clinicalHandler:     clinicalHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		adminHandler:        adminHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Everything below requires a valid access token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/logout", r.authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	protected.HandleFunc("/user/apply-for-doctor", r.doctorHandler.Apply).Methods(http.MethodPost)

	// Relation ledger; party checks happen in the usecase
	protected.HandleFunc("/relations/pending", r.relationHandler.ListPending).Methods(http.MethodGet)
	protected.HandleFunc("/relations/{id}/approve", r.relationHandler.Approve).Methods(http.MethodPost)
	protected.HandleFunc("/relations/{id}/terminate", r.relationHandler.Terminate).Methods(http.MethodPost)
	protected.HandleFunc("/relations/{id}/decline", r.relationHandler.Decline).Methods(http.MethodPost)
	protected.HandleFunc("/relations/{id}/permissions/{name}/grant", r.relationHandler.GrantPermission).Methods(http.MethodPost)
	protected.HandleFunc("/relations/{id}/permissions/{name}/revoke", r.relationHandler.RevokePermission).Methods(http.MethodPost)

	// Clinical data, gated per patient by the ledger
	protected.HandleFunc("/health-metrics", r.clinicalHandler.RecordMetric).Methods(http.MethodPost)
	protected.HandleFunc("/health-metrics", r.clinicalHandler.ListMetrics).Methods(http.MethodGet)
	protected.HandleFunc("/health-metrics/latest", r.clinicalHandler.LatestMetrics).Methods(http.MethodGet)
	protected.HandleFunc("/health-metrics/trend", r.clinicalHandler.MetricTrend).Methods(http.MethodGet)
	protected.HandleFunc("/medical-records", r.clinicalHandler.CreateMedicalRecord).Methods(http.MethodPost)
	protected.HandleFunc("/medical-records", r.clinicalHandler.ListMedicalRecords).Methods(http.MethodGet)
	protected.HandleFunc("/medical-records/{id}/finalize", r.clinicalHandler.FinalizeMedicalRecord).Methods(http.MethodPost)

	// Appointments
	protected.HandleFunc("/doctors/{id}/slots", r.appointmentHandler.ListDoctorSlots).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	protected.HandleFunc("/notifications", r.notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPost)

	// Doctor routes
	doctor := api.NewRoute().Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireRole(entity.RoleDoctor))
	doctor.HandleFunc("/doctor-patient-relations", r.relationHandler.Request).Methods(http.MethodPost)
	doctor.HandleFunc("/doctor/profile", r.doctorHandler.GetProfile).Methods(http.MethodGet)
	doctor.HandleFunc("/doctor/profile", r.doctorHandler.UpdateProfile).Methods(http.MethodPut)
	doctor.HandleFunc("/doctors/patients", r.relationHandler.ListDoctorPatients).Methods(http.MethodGet)
	doctor.HandleFunc("/appointment-slots", r.appointmentHandler.CreateSlot).Methods(http.MethodPost)

	// Patient routes
	patient := api.NewRoute().Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequireRole(entity.RolePatient))
	patient.HandleFunc("/patient/profile", r.patientHandler.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("/patient/profile", r.patientHandler.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/patients/doctors", r.relationHandler.ListPatientDoctors).Methods(http.MethodGet)
	patient.HandleFunc("/emergency-contacts", r.patientHandler.CreateEmergencyContact).Methods(http.MethodPost)
	patient.HandleFunc("/emergency-contacts", r.patientHandler.ListEmergencyContacts).Methods(http.MethodGet)
	patient.HandleFunc("/emergency-contacts/{id}", r.patientHandler.DeleteEmergencyContact).Methods(http.MethodDelete)
	patient.HandleFunc("/symptom-logs", r.clinicalHandler.CreateSymptomLog).Methods(http.MethodPost)
	patient.HandleFunc("/symptom-logs", r.clinicalHandler.ListSymptomLogs).Methods(http.MethodGet)
	patient.HandleFunc("/health-goals", r.clinicalHandler.CreateHealthGoal).Methods(http.MethodPost)
	patient.HandleFunc("/health-goals", r.clinicalHandler.ListHealthGoals).Methods(http.MethodGet)
	patient.HandleFunc("/health-goals/{id}/progress", r.clinicalHandler.UpdateGoalProgress).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireRole(entity.RoleAdmin))

	admin.HandleFunc("/doctor-applications", r.doctorHandler.ListApplications).Methods(http.MethodGet)
	admin.HandleFunc("/doctor-applications/bulk-action", r.doctorHandler.BulkAction).Methods(http.MethodPost)
	admin.HandleFunc("/doctor-applications/{id}", r.doctorHandler.GetApplication).Methods(http.MethodGet)
	admin.HandleFunc("/approve-doctor/{id}", r.doctorHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/reject-doctor/{id}", r.doctorHandler.Reject).Methods(http.MethodPost)

	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/status", r.adminHandler.UpdateUserStatus).Methods(http.MethodPut)
	admin.HandleFunc("/patients", r.adminHandler.ListPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.adminHandler.UpdatePatient).Methods(http.MethodPut)
	admin.HandleFunc("/patients/{id}", r.adminHandler.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/activity-logs", r.auditLogHandler.ListActivityLogs).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
