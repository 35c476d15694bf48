package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthtech-api/config"
	deliveryHttp "healthtech-api/internal/delivery/http"
	"healthtech-api/internal/delivery/http/handler"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/infrastructure/cache"
	"healthtech-api/internal/infrastructure/database"
	"healthtech-api/internal/infrastructure/document"
	"healthtech-api/internal/infrastructure/messaging"
	"healthtech-api/internal/repository"
	"healthtech-api/internal/service"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/jwt"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Mongo       *mongo.Database
	AlertWriter *kafka.Writer
	SlotQuota   service.SlotQuota
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	app.Log = NewLogger(cfg.App)
	app.Log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, app.Log, cfg.App.IsDevelopment())
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	// Initialize MongoDB
	mongoDB, err := document.NewMongoDatabase(cfg.Mongo, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Mongo = mongoDB

	// Kafka is optional; alerts go to the log without brokers
	app.AlertWriter = messaging.NewAlertWriter(cfg.Kafka)

	app.Server = app.initializeServer()

	return app, nil
}

// NewLogger configures the logrus logger
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	if cfg.IsDevelopment() {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg, db, log := app.Config, app.DB, app.Log

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator and error rendering
	customValidator := validator.NewValidator()
	errorRenderer := response.NewErrorRenderer(log, cfg.App.IsDevelopment())

	// Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	relationRepo := repository.NewRelationRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	metricRepo := repository.NewHealthMetricRepository()
	recordRepo := repository.NewMedicalRecordRepository()
	symptomRepo := repository.NewSymptomLogRepository()
	goalRepo := repository.NewHealthGoalRepository()
	slotRepo := repository.NewAppointmentSlotRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	contactRepo := repository.NewEmergencyContactRepository()

	// Initialize services
	tokenStore := service.NewRedisTokenStore(app.RedisClient, log)
	auditService := service.NewAuditService(log, auditLogRepo)
	notificationService := service.NewMongoNotificationService(app.Mongo, log)
	authorizer := service.NewAuthorizer(db, log, relationRepo)

	var alertPublisher service.AlertPublisher
	if app.AlertWriter != nil {
		alertPublisher = service.NewKafkaAlertPublisher(app.AlertWriter, log)
	} else {
		log.Warn("No Kafka brokers configured, abnormal metric alerts are only logged")
		alertPublisher = service.NewLogAlertPublisher(log)
	}

	app.SlotQuota = service.NewRedisSlotQuota(db, app.RedisClient, log, slotRepo)
	syncCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.SlotQuota.SyncOnStartup(syncCtx); err != nil {
		log.Warnf("Failed to sync slot quotas on startup: %+v", err)
	}
	cancel()

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, tx, userRepo, roleRepo, patientRepo, jwtService, tokenStore, auditService)
	patientUsecase := usecase.NewPatientProfileUsecase(db, log, tx, userRepo, patientRepo, auditService)
	contactUsecase := usecase.NewEmergencyContactUsecase(db, log, tx, contactRepo, auditService)
	approvalUsecase := usecase.NewDoctorApprovalUsecase(db, log, tx, doctorRepo, userRepo, auditService, notificationService)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, tx, doctorRepo, auditService)
	relationUsecase := usecase.NewRelationUsecase(db, log, tx, relationRepo, patientRepo, doctorRepo, auditService, notificationService)
	metricUsecase := usecase.NewHealthMetricUsecase(db, log, metricRepo, patientRepo, authorizer, alertPublisher, notificationService)
	recordUsecase := usecase.NewMedicalRecordUsecase(db, log, tx, recordRepo, authorizer, auditService)
	symptomUsecase := usecase.NewSymptomLogUsecase(db, log, symptomRepo)
	goalUsecase := usecase.NewHealthGoalUsecase(db, log, goalRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, slotRepo, appointmentRepo, authorizer, app.SlotQuota)
	notificationUsecase := usecase.NewNotificationUsecase(log, notificationService)
	adminUsecase := usecase.NewAdminUsecase(db, log, tx, userRepo, patientRepo, doctorRepo, tokenStore, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, errorRenderer)
	patientHandler := handler.NewPatientHandler(patientUsecase, contactUsecase, customValidator, errorRenderer)
	doctorHandler := handler.NewDoctorHandler(approvalUsecase, doctorProfileUsecase, customValidator, errorRenderer)
	relationHandler := handler.NewRelationHandler(relationUsecase, customValidator, errorRenderer)
	clinicalHandler := handler.NewClinicalHandler(metricUsecase, recordUsecase, symptomUsecase, goalUsecase, customValidator, errorRenderer)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, errorRenderer)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase, errorRenderer)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator, errorRenderer)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase, errorRenderer)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, authUsecase.(middleware.ActorResolver), errorRenderer)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		relationHandler,
		clinicalHandler,
		appointmentHandler,
		notificationHandler,
		adminHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
		loggingMiddleware,
	)

	// Create server
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases background workers and connections
func (app *App) Close() {
	if app.SlotQuota != nil {
		app.SlotQuota.Stop()
	}

	if app.AlertWriter != nil {
		if err := app.AlertWriter.Close(); err != nil {
			app.Log.Warnf("Failed to close Kafka writer: %v", err)
		}
	}

	if app.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.Mongo.Client().Disconnect(ctx); err != nil {
			app.Log.Warnf("Failed to disconnect MongoDB: %v", err)
		}
		cancel()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
