package repository

import (
	"context"
	"time"

	"healthtech-api/internal/domain/entity"
	domainRepo "healthtech-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentSlotRepository struct{}

func NewAppointmentSlotRepository() domainRepo.AppointmentSlotRepository {
	return &appointmentSlotRepository{}
}

func (r *appointmentSlotRepository) Create(ctx context.Context, db *gorm.DB, slot *entity.AppointmentSlot) error {
	return db.WithContext(ctx).Omit("Doctor").Create(slot).Error
}

func (r *appointmentSlotRepository) FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.AppointmentSlot, error) {
	return first[entity.AppointmentSlot](db.WithContext(ctx).Where("id = ?", id))
}

func (r *appointmentSlotRepository) List(ctx context.Context, db *gorm.DB, filter entity.SlotFilter) ([]entity.AppointmentSlot, error) {
	query := db.WithContext(ctx)
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.From != nil {
		query = query.Where("slot_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("slot_date <= ?", *filter.To)
	}

	var slots []entity.AppointmentSlot
	if err := query.Order("slot_date ASC, start_time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *appointmentSlotRepository) Usage(ctx context.Context, db *gorm.DB, slotID int) (*domainRepo.SlotUsage, error) {
	var usage domainRepo.SlotUsage
	err := r.usageQuery(ctx, db).
		Where("appointment_slots.id = ?", slotID).
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	if usage.SlotID == 0 {
		return nil, nil
	}
	return &usage, nil
}

func (r *appointmentSlotRepository) UpcomingUsage(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]domainRepo.SlotUsage, error) {
	var usages []domainRepo.SlotUsage
	err := r.usageQuery(ctx, db).
		Where("appointment_slots.slot_date >= ?", from).
		Order("appointment_slots.id").
		Limit(limit).
		Offset(offset).
		Scan(&usages).Error
	if err != nil {
		return nil, err
	}
	return usages, nil
}

// usageQuery counts non-cancelled appointments and the highest queue number per slot.
func (r *appointmentSlotRepository) usageQuery(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Model(&entity.AppointmentSlot{}).
		Select(`
			appointment_slots.id AS slot_id,
			appointment_slots.total_quota,
			COUNT(CASE WHEN appointments.status IS NOT NULL AND appointments.status != ? THEN 1 END) AS booked_count,
			COALESCE(MAX(appointments.queue_number), 0) AS max_queue_number,
			appointment_slots.slot_date
		`, entity.AppointmentStatusCancelled).
		Joins("LEFT JOIN appointments ON appointments.slot_id = appointment_slots.id").
		Group("appointment_slots.id, appointment_slots.total_quota, appointment_slots.slot_date")
}

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return translateError(db.WithContext(ctx).Omit("Slot").Create(appointment).Error)
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return first[entity.Appointment](db.WithContext(ctx).Preload("Slot").Where("id = ?", id))
}

func (r *appointmentRepository) FindOpenByPatientAndSlot(ctx context.Context, db *gorm.DB, patientID uuid.UUID, slotID int) (*entity.Appointment, error) {
	return first[entity.Appointment](db.WithContext(ctx).
		Where("patient_id = ? AND slot_id = ? AND status != ?", patientID, slotID, entity.AppointmentStatusCancelled))
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.list(db.WithContext(ctx).Where("patient_id = ?", patientID))
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return r.list(db.WithContext(ctx).Where("doctor_id = ?", doctorID))
}

func (r *appointmentRepository) list(query *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	if err := query.Preload("Slot").Order("created_at DESC").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Cancel returns 0 rows when the appointment was already cancelled.
func (r *appointmentRepository) Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status NOT IN ?", id, []entity.AppointmentStatus{entity.AppointmentStatusCancelled, entity.AppointmentStatusCompleted}).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
