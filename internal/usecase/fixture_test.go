package usecase_test

import (
	"context"
	"io"
	"time"

	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/mocks"
	"healthtech-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type fixture struct {
	log       *logrus.Logger
	tx        *mocks.Transactor
	users     *mocks.UserRepository
	patients  *mocks.PatientRepository
	doctors   *mocks.DoctorRepository
	relations *mocks.RelationRepository
	audits    *mocks.AuditLogRepository
	metrics   *mocks.HealthMetricRepository
	records   *mocks.MedicalRecordRepository
	symptoms  *mocks.SymptomLogRepository
	goals     *mocks.HealthGoalRepository
	contacts  *mocks.EmergencyContactRepository
	slots     *mocks.AppointmentSlotRepository
	bookings  *mocks.AppointmentRepository
	notifier  *mocks.Notifier
	alerts    *mocks.AlertPublisher
	tokens    *mocks.TokenStore
	quota     *mocks.SlotQuota
}

func newFixture() *fixture {
	log := logrus.New()
	log.SetOutput(io.Discard)

	slots := mocks.NewAppointmentSlotRepository()
	bookings := mocks.NewAppointmentRepository()
	slots.Appointments = bookings

	return &fixture{
		log:       log,
		tx:        &mocks.Transactor{},
		users:     mocks.NewUserRepository(),
		patients:  mocks.NewPatientRepository(),
		doctors:   mocks.NewDoctorRepository(),
		relations: mocks.NewRelationRepository(),
		audits:    &mocks.AuditLogRepository{},
		metrics:   &mocks.HealthMetricRepository{},
		records:   mocks.NewMedicalRecordRepository(),
		symptoms:  &mocks.SymptomLogRepository{},
		goals:     mocks.NewHealthGoalRepository(),
		contacts:  mocks.NewEmergencyContactRepository(),
		slots:     slots,
		bookings:  bookings,
		notifier:  &mocks.Notifier{Stored: map[uuid.UUID][]entity.Notification{}},
		alerts:    &mocks.AlertPublisher{},
		tokens:    mocks.NewTokenStore(),
		quota:     mocks.NewSlotQuota(),
	}
}

func (f *fixture) audit() service.AuditService {
	return service.NewAuditService(f.log, f.audits)
}

func (f *fixture) authorizer() *service.Authorizer {
	return service.NewAuthorizer(nil, f.log, f.relations)
}

// addPatient stores a user with a patient profile and returns its actor.
func (f *fixture) addPatient(name string) (*entity.Actor, *entity.Patient) {
	user := f.users.Add(&entity.User{
		Email:         name + "@example.com",
		FullName:      name,
		RoleID:        entity.RoleIDUser,
		AccountStatus: entity.AccountStatusActive,
		DateOfBirth:   time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	patient := f.patients.Add(&entity.Patient{UserID: user.ID, PatientCode: "PAT-" + name})
	user.PatientProfileID = &patient.ID
	patient.User = *user
	return entity.NewActor(user), patient
}

// addDoctor stores an approved doctor and returns its actor.
func (f *fixture) addDoctor(name string) (*entity.Actor, *entity.Doctor) {
	user := f.users.Add(&entity.User{
		Email:         name + "@example.com",
		FullName:      "Dr. " + name,
		RoleID:        entity.RoleIDUser,
		AccountStatus: entity.AccountStatusActive,
	})
	now := time.Now()
	doctor := f.doctors.Add(&entity.Doctor{
		UserID:               user.ID,
		MedicalLicenseNumber: "LIC-" + name,
		Specialization:       entity.SpecializationCardiology,
		DoctorCode:           "DOC-" + name,
		ApprovalStatus:       entity.ApprovalStatusApproved,
		ApprovalDate:         &now,
		ConsultationFee:      decimal.NewFromInt(150),
	})
	user.DoctorProfileID = &doctor.ID
	return entity.NewActor(user), doctor
}

func (f *fixture) addAdmin() *entity.Actor {
	user := f.users.Add(&entity.User{
		Email:         "admin@example.com",
		FullName:      "Admin",
		RoleID:        entity.RoleIDAdmin,
		AccountStatus: entity.AccountStatusActive,
		Role:          entity.Role{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
	})
	return entity.NewActor(user)
}

func (f *fixture) addRelation(doctorID, patientID uuid.UUID, status entity.RelationStatus, perms entity.Permissions) *entity.DoctorPatientRelation {
	rel := &entity.DoctorPatientRelation{
		DoctorID:     doctorID,
		PatientID:    patientID,
		RelationType: entity.RelationTypePrimary,
		Status:       status,
		Permissions:  perms,
		AccessLevel:  entity.AccessLevelLimited,
	}
	if status == entity.RelationStatusActive {
		start := time.Now().Add(-time.Hour)
		rel.StartDate = &start
	}
	return f.relations.Add(rel)
}

func as(actor *entity.Actor) context.Context {
	return middleware.WithActor(context.Background(), actor)
}

// setPermission flips a flag on the stored relation.
func (f *fixture) setPermission(rel *entity.DoctorPatientRelation, perm entity.Permission, value bool) {
	rel.Permissions.Set(perm, value)
	_ = f.relations.UpdatePermissions(context.Background(), nil, rel)
}
