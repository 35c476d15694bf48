package mocks

import (
	"context"
	"sync"
	"time"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentSlotRepository struct {
	mu    sync.Mutex
	Slots map[int]*entity.AppointmentSlot
	// Appointments backs Usage when set.
	Appointments *AppointmentRepository
}

func NewAppointmentSlotRepository() *AppointmentSlotRepository {
	return &AppointmentSlotRepository{Slots: map[int]*entity.AppointmentSlot{}}
}

func (r *AppointmentSlotRepository) Create(_ context.Context, _ *gorm.DB, slot *entity.AppointmentSlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	slot.ID = len(r.Slots) + 1
	cp := *slot
	r.Slots[slot.ID] = &cp
	return nil
}

func (r *AppointmentSlotRepository) FindByID(_ context.Context, _ *gorm.DB, id int) (*entity.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Slots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *AppointmentSlotRepository) List(_ context.Context, _ *gorm.DB, filter entity.SlotFilter) ([]entity.AppointmentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.AppointmentSlot
	for id := 1; id <= len(r.Slots); id++ {
		s, ok := r.Slots[id]
		if !ok {
			continue
		}
		if filter.DoctorID != nil && s.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.From != nil && s.SlotDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && s.SlotDate.After(*filter.To) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *AppointmentSlotRepository) Usage(ctx context.Context, db *gorm.DB, slotID int) (*repository.SlotUsage, error) {
	slot, _ := r.FindByID(ctx, db, slotID)
	if slot == nil {
		return nil, nil
	}
	usage := &repository.SlotUsage{SlotID: slot.ID, TotalQuota: slot.TotalQuota, SlotDate: slot.SlotDate}
	if r.Appointments != nil {
		r.Appointments.mu.Lock()
		for _, a := range r.Appointments.Appointments {
			if a.SlotID != slotID {
				continue
			}
			if a.Status != entity.AppointmentStatusCancelled {
				usage.BookedCount++
			}
			if a.QueueNumber > usage.MaxQueueNumber {
				usage.MaxQueueNumber = a.QueueNumber
			}
		}
		r.Appointments.mu.Unlock()
	}
	return usage, nil
}

func (r *AppointmentSlotRepository) UpcomingUsage(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]repository.SlotUsage, error) {
	slots, _ := r.List(ctx, db, entity.SlotFilter{From: &from})
	var out []repository.SlotUsage
	for _, s := range page(slots, limit, offset) {
		u, _ := r.Usage(ctx, db, s.ID)
		out = append(out, *u)
	}
	return out, nil
}

type AppointmentRepository struct {
	mu           sync.Mutex
	Appointments map[uuid.UUID]*entity.Appointment
	Err          error
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{Appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (r *AppointmentRepository) Create(_ context.Context, _ *gorm.DB, appointment *entity.Appointment) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Appointments {
		if a.PatientID == appointment.PatientID && a.SlotID == appointment.SlotID && a.Status != entity.AppointmentStatusCancelled {
			return &repository.DuplicateKeyError{Constraint: repository.ConstraintAppointmentsOpen}
		}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	cp := *appointment
	r.Appointments[appointment.ID] = &cp
	return nil
}

func (r *AppointmentRepository) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AppointmentRepository) FindOpenByPatientAndSlot(_ context.Context, _ *gorm.DB, patientID uuid.UUID, slotID int) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.Appointments {
		if a.PatientID == patientID && a.SlotID == slotID && a.Status != entity.AppointmentStatusCancelled {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *AppointmentRepository) list(match func(*entity.Appointment) bool) []entity.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.Appointments {
		if match(a) {
			out = append(out, *a)
		}
	}
	return out
}

func (r *AppointmentRepository) ListByPatient(_ context.Context, _ *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.list(func(a *entity.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *AppointmentRepository) ListByDoctor(_ context.Context, _ *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return r.list(func(a *entity.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *AppointmentRepository) Cancel(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Appointments[id]
	if !ok || !a.Cancel() {
		return 0, nil
	}
	return 1, nil
}
