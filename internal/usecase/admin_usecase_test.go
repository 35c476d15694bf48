package usecase_test

import (
	"context"
	"testing"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminUsecase(f *fixture) usecase.AdminUsecase {
	return usecase.NewAdminUsecase(nil, f.log, f.tx, f.users, f.patients, f.doctors, f.tokens, f.audit())
}

func TestAdminUsecase_SuspendRevokesSessions(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	patient, _ := f.addPatient("alice")
	require.NoError(t, f.tokens.Store(context.Background(), patient.UserID, jwt.RefreshToken, &jwt.IssuedToken{TokenID: "r1"}))
	uc := newAdminUsecase(f)

	res, err := uc.UpdateUserStatus(as(admin), patient.UserID, &dto.UpdateUserStatusRequest{AccountStatus: string(entity.AccountStatusSuspended)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AccountStatusSuspended), res.AccountStatus)

	ok, err := f.tokens.Exists(context.Background(), patient.UserID, jwt.RefreshToken, "r1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{entity.AuditActionUserStatusUpdate}, f.audits.Actions())

	_, err = uc.UpdateUserStatus(as(admin), uuid.New(), &dto.UpdateUserStatusRequest{AccountStatus: "active"})
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)

	_, err = uc.UpdateUserStatus(as(admin), patient.UserID, &dto.UpdateUserStatusRequest{AccountStatus: "banned"})
	assert.ErrorIs(t, err, usecase.ErrInvalidUserStatus)
}

func TestAdminUsecase_ListUsersFilters(t *testing.T) {
	f := newFixture()
	f.addAdmin()
	f.addPatient("alice")
	f.addPatient("bob")
	uc := newAdminUsecase(f)

	all, err := uc.ListUsers(context.Background(), "", "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	found, err := uc.ListUsers(context.Background(), "active", "bob", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, found.Users, 1)
	assert.Equal(t, "bob@example.com", found.Users[0].Email)

	_, err = uc.ListUsers(context.Background(), "deleted", "", dto.PageRequest{})
	assert.ErrorIs(t, err, usecase.ErrInvalidUserStatus)
}

func TestAdminUsecase_DeletePatientClearsUserPointer(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	_, profile := f.addPatient("alice")
	uc := newAdminUsecase(f)

	list, err := uc.ListPatients(context.Background(), "alice", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, uc.DeletePatient(as(admin), profile.ID))

	user, _ := f.users.FindByID(context.Background(), nil, profile.UserID)
	assert.Nil(t, user.PatientProfileID)
	gone, _ := f.patients.FindByID(context.Background(), nil, profile.ID)
	assert.Nil(t, gone)
	assert.Equal(t, []string{entity.AuditActionPatientDelete}, f.audits.Actions())

	assert.ErrorIs(t, uc.DeletePatient(as(admin), profile.ID), usecase.ErrPatientNotFound)
}

func TestAdminUsecase_UpdatePatient(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	_, profile := f.addPatient("alice")
	_, doctor := f.addDoctor("house")
	uc := newAdminUsecase(f)

	weight := 81.26
	bloodType := "O-"
	careMode := true
	res, err := uc.UpdatePatient(as(admin), profile.ID, &dto.AdminUpdatePatientRequest{
		Weight:          &weight,
		BloodType:       &bloodType,
		CareModeEnabled: &careMode,
		PrimaryDoctorID: &doctor.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Weight)
	assert.Equal(t, 81.3, *res.Weight)
	assert.Equal(t, bloodType, res.BloodType)
	assert.True(t, res.CareModeEnabled)
	require.NotNil(t, res.PrimaryDoctorID)
	assert.Equal(t, doctor.ID, *res.PrimaryDoctorID)

	stored, _ := f.patients.FindByID(as(admin), nil, profile.ID)
	assert.Equal(t, doctor.ID, *stored.PrimaryDoctorID)
	assert.Equal(t, []string{entity.AuditActionPatientUpdate}, f.audits.Actions())
	require.NotNil(t, f.audits.Logs[0].PatientID)
	assert.Equal(t, profile.ID, *f.audits.Logs[0].PatientID)
}

func TestAdminUsecase_UpdatePatientNeedsApprovedPrimaryDoctor(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	_, profile := f.addPatient("alice")
	_, doctor := f.addDoctor("house")
	doctor.ApprovalStatus = entity.ApprovalStatusPending
	uc := newAdminUsecase(f)

	_, err := uc.UpdatePatient(as(admin), profile.ID, &dto.AdminUpdatePatientRequest{PrimaryDoctorID: &doctor.ID})
	assert.ErrorIs(t, err, usecase.ErrPrimaryDoctorInvalid)

	unknown := uuid.New()
	_, err = uc.UpdatePatient(as(admin), profile.ID, &dto.AdminUpdatePatientRequest{PrimaryDoctorID: &unknown})
	assert.ErrorIs(t, err, usecase.ErrPrimaryDoctorInvalid)

	_, err = uc.UpdatePatient(as(admin), uuid.New(), &dto.AdminUpdatePatientRequest{})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)
	assert.Empty(t, f.audits.Actions())
}
