package usecase_test

import (
	"context"
	"testing"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/domain/repository"
	"healthtech-api/internal/mocks"
	"healthtech-api/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmergencyContactUsecase(f *fixture, contacts repository.EmergencyContactRepository) usecase.EmergencyContactUsecase {
	return usecase.NewEmergencyContactUsecase(nil, f.log, f.tx, contacts, f.audit())
}

func contactRequest(name string, primary bool) *dto.CreateEmergencyContactRequest {
	return &dto.CreateEmergencyContactRequest{
		FullName:     name,
		Relationship: string(entity.ContactSpouse),
		Phone:        "+628123456789",
		IsPrimary:    primary,
	}
}

func TestEmergencyContactUsecase_NewPrimaryDemotesPrevious(t *testing.T) {
	f := newFixture()
	patient, profile := f.addPatient("alice")
	uc := newEmergencyContactUsecase(f, f.contacts)

	first, err := uc.Create(as(patient), contactRequest("Bob", true))
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)
	assert.True(t, first.NotificationsEnabled)
	assert.Equal(t, string(entity.ContactMethodPhone), first.PreferredContactMethod)
	assert.Equal(t, profile.ID, first.PatientID)

	second, err := uc.Create(as(patient), contactRequest("Carol", true))
	require.NoError(t, err)

	list, err := uc.List(as(patient))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID, "primary contact is listed first")
	assert.True(t, list[0].IsPrimary)
	assert.False(t, list[1].IsPrimary)

	assert.Equal(t, []string{entity.AuditActionContactCreate, entity.AuditActionContactCreate}, f.audits.Actions())
	require.NotNil(t, f.audits.Logs[0].UserID)
	assert.Equal(t, patient.UserID, *f.audits.Logs[0].UserID)
}

func TestEmergencyContactUsecase_OptionalFields(t *testing.T) {
	f := newFixture()
	patient, _ := f.addPatient("alice")
	uc := newEmergencyContactUsecase(f, f.contacts)

	off := false
	req := contactRequest("  Bob  ", false)
	req.Email = "Bob@Example.com"
	req.NotificationsEnabled = &off
	req.PreferredContactMethod = string(entity.ContactMethodWhatsApp)
	req.Address = entity.ContactAddress{City: "Bandung", Country: "ID"}

	res, err := uc.Create(as(patient), req)
	require.NoError(t, err)
	assert.Equal(t, "Bob", res.FullName)
	assert.Equal(t, "bob@example.com", res.Email)
	assert.False(t, res.NotificationsEnabled)
	assert.Equal(t, "whatsapp", res.PreferredContactMethod)
	assert.Equal(t, "Bandung", res.Address.City)
}

func TestEmergencyContactUsecase_OnlyPatientsManageContacts(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	uc := newEmergencyContactUsecase(f, f.contacts)

	_, err := uc.Create(as(doctor), contactRequest("Bob", false))
	assert.ErrorIs(t, err, usecase.ErrPatientProfileRequired)

	_, err = uc.Create(context.Background(), contactRequest("Bob", false))
	assert.Error(t, err)
	assert.Empty(t, f.contacts.Contacts)
}

func TestEmergencyContactUsecase_DeleteIsScopedToOwner(t *testing.T) {
	f := newFixture()
	alice, _ := f.addPatient("alice")
	bob, _ := f.addPatient("bob")
	uc := newEmergencyContactUsecase(f, f.contacts)

	contact, err := uc.Create(as(alice), contactRequest("Carol", false))
	require.NoError(t, err)

	err = uc.Delete(as(bob), contact.ID)
	assert.ErrorIs(t, err, usecase.ErrEmergencyContactNotFound)
	assert.Len(t, f.contacts.Contacts, 1)

	require.NoError(t, uc.Delete(as(alice), contact.ID))
	assert.Empty(t, f.contacts.Contacts)
	assert.ErrorIs(t, uc.Delete(as(alice), uuid.New()), usecase.ErrEmergencyContactNotFound)
	assert.Equal(t, []string{entity.AuditActionContactCreate, entity.AuditActionContactDelete}, f.audits.Actions())
}

// racingContacts skips the demotion, as if another request set a primary
// contact between ClearPrimary and Create.
type racingContacts struct {
	*mocks.EmergencyContactRepository
}

func (racingContacts) ClearPrimary(context.Context, *gorm.DB, uuid.UUID) error {
	return nil
}

func TestEmergencyContactUsecase_ConcurrentPrimaryIsConflict(t *testing.T) {
	f := newFixture()
	patient, _ := f.addPatient("alice")
	uc := newEmergencyContactUsecase(f, racingContacts{f.contacts})

	_, err := uc.Create(as(patient), contactRequest("Bob", true))
	require.NoError(t, err)

	_, err = uc.Create(as(patient), contactRequest("Carol", true))
	assert.ErrorIs(t, err, usecase.ErrPrimaryContactChanged)
	assert.Len(t, f.contacts.Contacts, 1)
}
