package usecase_test

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/service"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentUsecase(f *fixture) usecase.AppointmentUsecase {
	return usecase.NewAppointmentUsecase(nil, f.log, f.slots, f.bookings, f.authorizer(), f.quota)
}

func tomorrow() string {
	return time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
}

// openSlot publishes a slot for doctor with quota places.
func openSlot(t *testing.T, f *fixture, uc usecase.AppointmentUsecase, doctor *entity.Actor, quota int) *dto.SlotResponse {
	t.Helper()
	slot, err := uc.CreateSlot(as(doctor), &dto.CreateSlotRequest{
		SlotDate:   tomorrow(),
		StartTime:  "09:00",
		EndTime:    "12:00",
		TotalQuota: quota,
	})
	require.NoError(t, err)
	f.quota.Remaining[slot.ID] = quota
	return slot
}

func TestAppointmentUsecase_CreateSlotRules(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patient, _ := f.addPatient("alice")
	uc := newAppointmentUsecase(f)

	slot := openSlot(t, f, uc, doctor, 3)
	assert.Equal(t, doc.ID, slot.DoctorID)
	assert.Equal(t, []int{slot.ID}, f.quota.Synced)

	_, err := uc.CreateSlot(as(patient), &dto.CreateSlotRequest{SlotDate: tomorrow(), StartTime: "09:00", EndTime: "10:00", TotalQuota: 1})
	assert.ErrorIs(t, err, usecase.ErrDoctorProfileRequired)

	_, err = uc.CreateSlot(as(doctor), &dto.CreateSlotRequest{SlotDate: "2020-01-01", StartTime: "09:00", EndTime: "10:00", TotalQuota: 1})
	assert.ErrorIs(t, err, usecase.ErrSlotPast)

	_, err = uc.CreateSlot(as(doctor), &dto.CreateSlotRequest{SlotDate: tomorrow(), StartTime: "10:00", EndTime: "10:00", TotalQuota: 1})
	assert.ErrorIs(t, err, usecase.ErrInvalidSlotTime)

	_, err = uc.CreateSlot(as(doctor), &dto.CreateSlotRequest{SlotDate: "01/02/2027", StartTime: "09:00", EndTime: "10:00", TotalQuota: 1})
	assert.ErrorIs(t, err, usecase.ErrInvalidDateFormat)

	list, err := uc.ListSlots(as(patient), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestAppointmentUsecase_PatientBooksUntilFull(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	alice, aliceProfile := f.addPatient("alice")
	bob, _ := f.addPatient("bob")
	carol, _ := f.addPatient("carol")
	uc := newAppointmentUsecase(f)
	slot := openSlot(t, f, uc, doctor, 2)

	first, err := uc.Book(as(alice), &dto.BookAppointmentRequest{SlotID: slot.ID, Reason: "checkup"})
	require.NoError(t, err)
	assert.Equal(t, aliceProfile.ID, first.PatientID)
	assert.Equal(t, 1, first.QueueNumber)
	assert.Equal(t, string(entity.AppointmentStatusPending), first.Status)
	assert.Regexp(t, regexp.MustCompile(`^APT-\d{8}-[0-9A-F]{6}$`), first.AppointmentCode)
	assert.Nil(t, first.RelationID)

	_, err = uc.Book(as(alice), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, usecase.ErrAlreadyBooked)

	second, err := uc.Book(as(bob), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, second.QueueNumber)

	_, err = uc.Book(as(carol), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.ErrorIs(t, err, usecase.ErrSlotFull)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = uc.Book(as(carol), &dto.BookAppointmentRequest{SlotID: 99})
	assert.ErrorIs(t, err, usecase.ErrSlotNotFound)
}

func TestAppointmentUsecase_CancelReturnsPlace(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	alice, _ := f.addPatient("alice")
	bob, _ := f.addPatient("bob")
	uc := newAppointmentUsecase(f)
	slot := openSlot(t, f, uc, doctor, 1)

	booked, err := uc.Book(as(alice), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)
	assert.Equal(t, 0, f.quota.Remaining[slot.ID])

	assert.ErrorIs(t, uc.Cancel(as(bob), booked.ID), usecase.ErrAppointmentNotOwned)
	require.NoError(t, uc.Cancel(as(alice), booked.ID))
	assert.Equal(t, 1, f.quota.Remaining[slot.ID])

	assert.ErrorIs(t, uc.Cancel(as(alice), booked.ID), usecase.ErrAppointmentNotOpen)
	assert.ErrorIs(t, uc.Cancel(as(alice), uuid.New()), usecase.ErrAppointmentNotFound)

	again, err := uc.Book(as(bob), &dto.BookAppointmentRequest{SlotID: slot.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, again.QueueNumber, "queue numbers are not reused")
}

func TestAppointmentUsecase_FailedInsertRestoresQuota(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	alice, _ := f.addPatient("alice")
	uc := newAppointmentUsecase(f)
	slot := openSlot(t, f, uc, doctor, 1)

	f.bookings.Err = errors.New("connection reset")
	_, err := uc.Book(as(alice), &dto.BookAppointmentRequest{SlotID: slot.ID})
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, 1, f.quota.Remaining[slot.ID])
}

func TestAppointmentUsecase_DoctorBooksThroughLedger(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	other, _ := f.addDoctor("wilson")
	_, patient := f.addPatient("alice")
	uc := newAppointmentUsecase(f)
	own := openSlot(t, f, uc, doctor, 2)
	foreign := openSlot(t, f, uc, other, 2)

	_, err := uc.Book(as(doctor), &dto.BookAppointmentRequest{SlotID: own.ID})
	assert.ErrorIs(t, err, usecase.ErrPatientIDRequired)

	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	_, err = uc.Book(as(doctor), &dto.BookAppointmentRequest{SlotID: own.ID, PatientID: &patient.ID})
	assert.ErrorIs(t, err, service.ErrPermissionMissing)

	f.setPermission(rel, entity.PermissionScheduleAppointments, true)
	_, err = uc.Book(as(doctor), &dto.BookAppointmentRequest{SlotID: foreign.ID, PatientID: &patient.ID})
	assert.ErrorIs(t, err, usecase.ErrSlotNotOwned)

	booked, err := uc.Book(as(doctor), &dto.BookAppointmentRequest{SlotID: own.ID, PatientID: &patient.ID})
	require.NoError(t, err)
	require.NotNil(t, booked.RelationID)
	assert.Equal(t, rel.ID, *booked.RelationID)
	assert.Equal(t, doctor.UserID, booked.BookedBy)

	mine, err := uc.ListMine(as(doctor))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
}

func TestAppointmentUsecase_ListMineNeedsProfile(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	uc := newAppointmentUsecase(f)

	_, err := uc.ListMine(as(admin))
	assert.ErrorIs(t, err, usecase.ErrClinicalProfileRequired)
}
