package usecase_test

import (
	"errors"
	"testing"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorApprovalUsecase(f *fixture) usecase.DoctorApprovalUsecase {
	return usecase.NewDoctorApprovalUsecase(nil, f.log, f.tx, f.doctors, f.users, f.audit(), f.notifier)
}

func applyRequest(license string) *dto.ApplyDoctorRequest {
	return &dto.ApplyDoctorRequest{
		MedicalLicenseNumber: license,
		Specialization:       string(entity.SpecializationNeurology),
		YearsOfExperience:    8,
		ConsultationFee:      decimal.RequireFromString("250.50"),
	}
}

func TestDoctorApproval_ApplyMarksUserPending(t *testing.T) {
	f := newFixture()
	applicant, _ := f.addPatient("greg")
	uc := newDoctorApprovalUsecase(f)

	res, err := uc.Apply(as(applicant), applyRequest(" md-12345 "))
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalStatusPending), res.ApprovalStatus)
	assert.Equal(t, "MD-12345", res.MedicalLicenseNumber)
	assert.Regexp(t, `^DOC\d{10}$`, res.DoctorCode)
	assert.Empty(t, res.AvailableDays)

	assert.Equal(t, entity.AccountStatusPendingDoctorApproval, f.users.Users[applicant.UserID].AccountStatus)
	assert.Nil(t, f.users.Users[applicant.UserID].DoctorProfileID, "no capability before approval")
	assert.Equal(t, []string{entity.AuditActionDoctorApply}, f.audits.Actions())
}

func TestDoctorApproval_ApplyConflicts(t *testing.T) {
	f := newFixture()
	first, _ := f.addPatient("greg")
	second, _ := f.addPatient("james")
	uc := newDoctorApprovalUsecase(f)

	_, err := uc.Apply(as(first), applyRequest("MD-1"))
	require.NoError(t, err)

	_, err = uc.Apply(as(first), applyRequest("MD-2"))
	assert.ErrorIs(t, err, usecase.ErrAlreadyApplied)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = uc.Apply(as(second), applyRequest("md-1"))
	assert.ErrorIs(t, err, usecase.ErrLicenseAlreadyExists)

	req := applyRequest("MD-3")
	req.ConsultationFee = decimal.NewFromInt(-1)
	_, err = uc.Apply(as(second), req)
	assert.ErrorIs(t, err, usecase.ErrNegativeConsultationFee)
}

func TestDoctorApproval_ApproveGrantsCapability(t *testing.T) {
	f := newFixture()
	applicant, _ := f.addPatient("greg")
	admin := f.addAdmin()
	uc := newDoctorApprovalUsecase(f)

	app, err := uc.Apply(as(applicant), applyRequest("MD-1"))
	require.NoError(t, err)

	res, err := uc.Approve(as(admin), app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalStatusApproved), res.ApprovalStatus)
	assert.Equal(t, admin.UserID, *res.ApprovedBy)
	require.NotNil(t, res.ApprovalDate)

	user := f.users.Users[applicant.UserID]
	assert.Equal(t, entity.AccountStatusActive, user.AccountStatus)
	require.NotNil(t, user.DoctorProfileID)
	assert.Equal(t, app.ID, *user.DoctorProfileID)
	assert.Equal(t, []string{entity.NotificationDoctorApproved}, f.notifier.Types())

	_, err = uc.Approve(as(admin), app.ID)
	assert.ErrorIs(t, err, usecase.ErrApplicationNotPending)
	_, err = uc.Reject(as(admin), app.ID, "too late")
	assert.ErrorIs(t, err, usecase.ErrApplicationNotPending)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
}

func TestDoctorApproval_RejectIsFinal(t *testing.T) {
	f := newFixture()
	applicant, _ := f.addPatient("greg")
	admin := f.addAdmin()
	uc := newDoctorApprovalUsecase(f)

	app, err := uc.Apply(as(applicant), applyRequest("MD-1"))
	require.NoError(t, err)

	res, err := uc.Reject(as(admin), app.ID, "license could not be verified")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalStatusRejected), res.ApprovalStatus)
	assert.Equal(t, "license could not be verified", res.RejectionReason)

	user := f.users.Users[applicant.UserID]
	assert.Equal(t, entity.AccountStatusActive, user.AccountStatus)
	assert.Nil(t, user.DoctorProfileID)

	_, err = uc.Approve(as(admin), app.ID)
	assert.ErrorIs(t, err, usecase.ErrApplicationNotPending)

	_, err = uc.Apply(as(applicant), applyRequest("MD-9"))
	assert.ErrorIs(t, err, usecase.ErrAlreadyApplied, "re-application after rejection is refused")
}

func TestDoctorApproval_NotFound(t *testing.T) {
	f := newFixture()
	uc := newDoctorApprovalUsecase(f)

	_, err := uc.Approve(as(f.addAdmin()), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrDoctorNotFound)
	_, err = uc.GetApplication(as(f.addAdmin()), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrDoctorNotFound)
}

func TestDoctorApproval_BulkActionReportsEachItem(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	uc := newDoctorApprovalUsecase(f)

	var ids []uuid.UUID
	for _, name := range []string{"a", "b"} {
		applicant, _ := f.addPatient(name)
		app, err := uc.Apply(as(applicant), applyRequest("MD-"+name))
		require.NoError(t, err)
		ids = append(ids, app.ID)
	}
	_, err := uc.Approve(as(admin), ids[1])
	require.NoError(t, err)

	missing := uuid.New()
	res, err := uc.BulkAction(as(admin), &dto.BulkDoctorActionRequest{
		DoctorIDs: []uuid.UUID{ids[0], ids[1], missing},
		Action:    "reject",
		Reason:    "incomplete documents",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Modified)
	require.Len(t, res.Results, 3)
	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, usecase.ErrApplicationNotPending.Error(), res.Results[1].Error)
	assert.False(t, res.Results[2].Success)

	assert.Equal(t, entity.ApprovalStatusRejected, f.doctors.Doctors[ids[0]].ApprovalStatus)
	assert.Equal(t, entity.ApprovalStatusApproved, f.doctors.Doctors[ids[1]].ApprovalStatus)
}

func TestDoctorApproval_BulkActionHidesInternalCauses(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	uc := newDoctorApprovalUsecase(f)

	applicant, _ := f.addPatient("a")
	app, err := uc.Apply(as(applicant), applyRequest("MD-a"))
	require.NoError(t, err)

	f.doctors.Err = errors.New("pq: connection refused to 10.0.0.7:5432")
	res, err := uc.BulkAction(as(admin), &dto.BulkDoctorActionRequest{
		DoctorIDs: []uuid.UUID{app.ID},
		Action:    "approve",
	})
	require.NoError(t, err)
	require.Len(t, res.Results, 1)
	assert.False(t, res.Results[0].Success)
	assert.Equal(t, "internal error", res.Results[0].Error)
	assert.NotContains(t, res.Results[0].Error, "10.0.0.7")
	assert.Zero(t, res.Modified)
}

func TestDoctorApproval_ListApplicationsDefaultsToPending(t *testing.T) {
	f := newFixture()
	admin := f.addAdmin()
	uc := newDoctorApprovalUsecase(f)

	for _, name := range []string{"a", "b", "c"} {
		applicant, _ := f.addPatient(name)
		_, err := uc.Apply(as(applicant), applyRequest("MD-"+name))
		require.NoError(t, err)
	}
	f.addDoctor("approved")

	list, err := uc.ListApplications(as(admin), "", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.Total)
	assert.Len(t, list.Doctors, 2)

	list, err = uc.ListApplications(as(admin), "approved", dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	_, err = uc.ListApplications(as(admin), "archived", dto.PageRequest{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestDoctorApproval_ApplyRejectsInvalidAvailability(t *testing.T) {
	f := newFixture()
	applicant, _ := f.addPatient("greg")
	uc := newDoctorApprovalUsecase(f)

	req := applyRequest("md-777")
	req.Availability = entity.AvailabilitySchedule{"monday": {Available: true, Slots: []entity.TimeSlot{{StartTime: "17:00", EndTime: "08:00"}}}}

	_, err := uc.Apply(as(applicant), req)
	assert.ErrorIs(t, err, usecase.ErrInvalidAvailability)
	assert.Empty(t, f.doctors.Doctors)
}
