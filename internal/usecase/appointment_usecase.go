package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"healthtech-api/internal/converter"
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const quotaRestoreTimeout = 5 * time.Second

type AppointmentUsecase interface {
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	ListSlots(ctx context.Context, doctorID uuid.UUID) (*dto.SlotListResponse, error)
	Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context) (*dto.AppointmentListResponse, error)
	Cancel(ctx context.Context, appointmentID uuid.UUID) error
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	slotRepo        repository.AppointmentSlotRepository
	appointmentRepo repository.AppointmentRepository
	authorizer      *service.Authorizer
	quota           service.SlotQuota
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.AppointmentSlotRepository,
	appointmentRepo repository.AppointmentRepository,
	authorizer *service.Authorizer,
	quota service.SlotQuota,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		authorizer:      authorizer,
		quota:           quota,
		now:             time.Now,
	}
}

// CreateSlot publishes a consultation window for the calling doctor and seeds
// its quota counters.
func (u *appointmentUsecase) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() {
		return nil, ErrDoctorProfileRequired
	}

	slotDate, err := time.Parse("2006-01-02", req.SlotDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if slotDate.Before(u.today()) {
		return nil, ErrSlotPast
	}
	// HH:MM strings compare in time order
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidSlotTime
	}

	slot := &entity.AppointmentSlot{
		DoctorID:   *actor.DoctorID,
		SlotDate:   slotDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalQuota: req.TotalQuota,
	}
	if err := u.slotRepo.Create(ctx, u.db, slot); err != nil {
		u.log.Warnf("Failed to create slot for doctor %s: %+v", slot.DoctorID, err)
		return nil, apperror.Internal(err)
	}

	if err := u.quota.SyncSlot(ctx, slot.ID); err != nil {
		u.log.Warnf("Failed to seed quota of slot %d: %+v", slot.ID, err)
	}

	u.log.Infof("Slot created: id=%d doctor=%s date=%s quota=%d", slot.ID, slot.DoctorID, req.SlotDate, slot.TotalQuota)
	return converter.SlotToResponse(slot), nil
}

// ListSlots returns a doctor's slots from today on.
func (u *appointmentUsecase) ListSlots(ctx context.Context, doctorID uuid.UUID) (*dto.SlotListResponse, error) {
	from := u.today()
	slots, err := u.slotRepo.List(ctx, u.db, entity.SlotFilter{DoctorID: &doctorID, From: &from})
	if err != nil {
		u.log.Warnf("Failed to list slots of doctor %s: %+v", doctorID, err)
		return nil, apperror.Internal(err)
	}
	return &dto.SlotListResponse{
		Slots: converter.SlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

// Book takes a place in a slot. The quota is reserved in Redis first and
// handed back if the database insert fails. A doctor booking on a patient's
// behalf needs the scheduleAppointments flag and must own the slot.
func (u *appointmentUsecase) Book(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	patientID, err := targetPatient(actor, req.PatientID)
	if err != nil {
		return nil, err
	}

	slot, err := u.slotRepo.FindByID(ctx, u.db, req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, apperror.Internal(err)
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.SlotDate.Before(u.today()) {
		return nil, ErrSlotPast
	}

	relation, err := u.authorizer.Authorize(ctx, actor, patientID, service.ActionScheduleAppointments)
	if err != nil {
		return nil, err
	}
	if relation != nil && relation.DoctorID != slot.DoctorID {
		return nil, ErrSlotNotOwned
	}

	existing, err := u.appointmentRepo.FindOpenByPatientAndSlot(ctx, u.db, patientID, slot.ID)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, ErrAlreadyBooked
	}

	queueNumber, err := u.quota.Reserve(ctx, slot.ID)
	if err != nil {
		if errors.Is(err, service.ErrSlotFull) {
			return nil, ErrSlotFull
		}
		u.log.Warnf("Failed to reserve a place in slot %d: %+v", slot.ID, err)
		return nil, apperror.Internal(err)
	}

	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        slot.DoctorID,
		SlotID:          slot.ID,
		RelationID:      relationRef(relation),
		AppointmentCode: generateAppointmentCode(slot.SlotDate),
		QueueNumber:     queueNumber,
		Reason:          req.Reason,
		Status:          entity.AppointmentStatusPending,
		BookedBy:        actor.UserID,
		Slot:            slot,
	}
	if err := u.appointmentRepo.Create(ctx, u.db, appointment); err != nil {
		u.restore(slot.ID)
		if repository.IsDuplicateOn(err, repository.ConstraintAppointmentsOpen) {
			return nil, ErrAlreadyBooked
		}
		u.log.Errorf("Failed to insert appointment for slot %d: %+v", slot.ID, err)
		return nil, apperror.Internal(err)
	}

	u.log.Infof("Appointment booked: id=%s slot=%d queue=%d code=%s", appointment.ID, slot.ID, queueNumber, appointment.AppointmentCode)
	return converter.AppointmentToResponse(appointment), nil
}

// ListMine returns the appointments the caller attends, as patient or doctor.
func (u *appointmentUsecase) ListMine(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsDoctor() && !actor.IsPatient() {
		return nil, ErrClinicalProfileRequired
	}

	var appointments []entity.Appointment
	if actor.IsPatient() {
		found, err := u.appointmentRepo.ListByPatient(ctx, u.db, *actor.PatientID)
		if err != nil {
			u.log.Warnf("Failed to list appointments of patient %s: %+v", *actor.PatientID, err)
			return nil, apperror.Internal(err)
		}
		appointments = append(appointments, found...)
	}
	if actor.IsDoctor() {
		found, err := u.appointmentRepo.ListByDoctor(ctx, u.db, *actor.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to list appointments of doctor %s: %+v", *actor.DoctorID, err)
			return nil, apperror.Internal(err)
		}
		appointments = append(appointments, found...)
	}
	appointments = uniqueAppointments(appointments)
	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].CreatedAt.After(appointments[j].CreatedAt)
	})

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Cancel frees the place held by an open appointment. The queue number is
// not reused.
func (u *appointmentUsecase) Cancel(ctx context.Context, appointmentID uuid.UUID) error {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return apperror.Internal(err)
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if !actor.IsPatientSelf(appointment.PatientID) && !actor.IsDoctorSelf(appointment.DoctorID) && appointment.BookedBy != actor.UserID {
		return ErrAppointmentNotOwned
	}

	rows, err := u.appointmentRepo.Cancel(ctx, u.db, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointment.ID, err)
		return apperror.Internal(err)
	}
	if rows == 0 {
		return ErrAppointmentNotOpen
	}

	u.restore(appointment.SlotID)
	u.log.Infof("Appointment cancelled: id=%s slot=%d", appointment.ID, appointment.SlotID)
	return nil
}

// restore runs on a fresh context so a cancelled request still returns its place.
func (u *appointmentUsecase) restore(slotID int) {
	ctx, cancel := context.WithTimeout(context.Background(), quotaRestoreTimeout)
	defer cancel()
	if err := u.quota.Restore(ctx, slotID); err != nil {
		u.log.Errorf("Failed to restore quota of slot %d, it will be rebuilt on next sync: %+v", slotID, err)
	}
}

func uniqueAppointments(appointments []entity.Appointment) []entity.Appointment {
	seen := make(map[uuid.UUID]bool, len(appointments))
	out := appointments[:0]
	for _, a := range appointments {
		if !seen[a.ID] {
			seen[a.ID] = true
			out = append(out, a)
		}
	}
	return out
}

func (u *appointmentUsecase) today() time.Time {
	return u.now().UTC().Truncate(24 * time.Hour)
}
