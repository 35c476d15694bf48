package repository

import (
	"context"
	"time"

	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotUsage is the booking state of one slot as recorded in the database.
type SlotUsage struct {
	SlotID         int
	TotalQuota     int
	BookedCount    int
	MaxQueueNumber int
	SlotDate       time.Time
}

type AppointmentSlotRepository interface {
	Create(ctx context.Context, db *gorm.DB, slot *entity.AppointmentSlot) error
	FindByID(ctx context.Context, db *gorm.DB, id int) (*entity.AppointmentSlot, error)
	List(ctx context.Context, db *gorm.DB, filter entity.SlotFilter) ([]entity.AppointmentSlot, error)
	Usage(ctx context.Context, db *gorm.DB, slotID int) (*SlotUsage, error)
	// UpcomingUsage pages through slots dated on or after from.
	UpcomingUsage(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]SlotUsage, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindOpenByPatientAndSlot(ctx context.Context, db *gorm.DB, patientID uuid.UUID, slotID int) (*entity.Appointment, error)
	ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	ListByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	// Cancel flips an open appointment to cancelled and returns the rows
	// changed, so a second cancel reports zero.
	Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
