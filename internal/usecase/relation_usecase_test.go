package usecase_test

import (
	"sync"
	"testing"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRelationUsecase(f *fixture) usecase.RelationUsecase {
	return usecase.NewRelationUsecase(nil, f.log, f.tx, f.relations, f.patients, f.doctors, f.audit(), f.notifier)
}

func TestRelationUsecase_RequestCreatesPendingWithDefaults(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	_, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	res, err := uc.RequestRelation(as(doctor), &dto.CreateRelationRequest{
		PatientID:    patient.ID,
		RelationType: string(entity.RelationTypePrimary),
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.RelationStatusPending), res.Status)
	assert.Equal(t, entity.DefaultPermissions(), res.Permissions)
	assert.Equal(t, string(entity.AccessLevelLimited), res.AccessLevel)
	require.NotNil(t, res.StartDate, "pending requests carry the request time")
	assert.Nil(t, res.EndDate)
	assert.Equal(t, []string{entity.AuditActionRelationRequest}, f.audits.Actions())

	require.Len(t, f.notifier.Notices, 1)
	assert.Equal(t, patient.UserID, f.notifier.Notices[0].UserID)
	assert.Equal(t, entity.NotificationDoctorRequest, f.notifier.Notices[0].Type)
}

func TestRelationUsecase_RequestRefusals(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	_, err := uc.RequestRelation(as(patientActor), &dto.CreateRelationRequest{PatientID: patient.ID, RelationType: "primary"})
	assert.ErrorIs(t, err, usecase.ErrDoctorProfileRequired)

	_, err = uc.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: uuid.New(), RelationType: "primary"})
	assert.ErrorIs(t, err, usecase.ErrPatientNotFound)

	f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	_, err = uc.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: patient.ID, RelationType: "primary"})
	assert.ErrorIs(t, err, usecase.ErrRelationExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRelationUsecase_RequestRefusesSecondPending(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	_, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	req := &dto.CreateRelationRequest{PatientID: patient.ID, RelationType: "primary"}
	_, err := uc.RequestRelation(as(doctor), req)
	require.NoError(t, err)

	_, err = uc.RequestRelation(as(doctor), req)
	assert.ErrorIs(t, err, usecase.ErrRelationPendingExists)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestRelationUsecase_ApproveByPatient(t *testing.T) {
	f := newFixture()
	_, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusPending, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	res, err := uc.ApproveRelation(as(patientActor), rel.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RelationStatusActive), res.Status)
	require.NotNil(t, res.StartDate)

	stored := f.relations.Get(rel.ID)
	assert.Equal(t, entity.RelationStatusActive, stored.Status)
	assert.Equal(t, []string{entity.NotificationRelationApproved}, f.notifier.Types())
	assert.Equal(t, doc.UserID, f.notifier.Notices[0].UserID)

	_, err = uc.ApproveRelation(as(patientActor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationNotPending)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
}

func TestRelationUsecase_ApproveOnlyByPatientOrAdmin(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	other, _ := f.addPatient("bob")
	_, patient := f.addPatient("alice")
	admin := f.addAdmin()
	uc := newRelationUsecase(f)

	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusPending, entity.DefaultPermissions())

	_, err := uc.ApproveRelation(as(doctor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrNotRelationPatient)
	_, err = uc.ApproveRelation(as(other), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrNotRelationPatient)

	_, err = uc.ApproveRelation(as(admin), rel.ID)
	assert.NoError(t, err)

	_, err = uc.ApproveRelation(as(admin), uuid.New())
	assert.ErrorIs(t, err, usecase.ErrRelationNotFound)
}

func TestRelationUsecase_ApproveRejectsSecondActive(t *testing.T) {
	f := newFixture()
	_, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	pending := f.addRelation(doc.ID, patient.ID, entity.RelationStatusPending, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	_, err := uc.ApproveRelation(as(patientActor), pending.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationExists)
	assert.Equal(t, 1, f.relations.CountActive(doc.ID, patient.ID))
	assert.Equal(t, entity.RelationStatusPending, f.relations.Get(pending.ID).Status)
}

func TestRelationUsecase_TerminateIsFinal(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	_, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	res, err := uc.TerminateRelation(as(doctor), rel.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RelationStatusTerminated), res.Status)
	require.NotNil(t, res.EndDate)
	assert.False(t, res.EndDate.Before(*res.StartDate))

	// the patient hears about it, not the doctor who ended it
	require.Len(t, f.notifier.Notices, 1)
	assert.Equal(t, patient.UserID, f.notifier.Notices[0].UserID)

	_, err = uc.TerminateRelation(as(doctor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationTerminated)
	_, err = uc.DeclineRelation(as(doctor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationNotPending)
}

func TestRelationUsecase_TerminateRequiresParty(t *testing.T) {
	f := newFixture()
	stranger, _ := f.addDoctor("wilson")
	_, doc := f.addDoctor("house")
	_, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusPending, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	_, err := uc.TerminateRelation(as(stranger), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrNotRelationParty)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestRelationUsecase_DeclinePendingThenTerminate(t *testing.T) {
	f := newFixture()
	_, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusPending, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	res, err := uc.DeclineRelation(as(patientActor), rel.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RelationStatusInactive), res.Status)

	// the doctor hears about it, not the patient who declined
	require.Len(t, f.notifier.Notices, 1)
	assert.Equal(t, doc.UserID, f.notifier.Notices[0].UserID)
	assert.Equal(t, entity.NotificationRelationDeclined, f.notifier.Notices[0].Type)

	_, err = uc.ApproveRelation(as(patientActor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationNotPending)

	res, err = uc.TerminateRelation(as(patientActor), rel.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RelationStatusTerminated), res.Status)
	assert.Equal(t, []string{entity.AuditActionRelationDecline, entity.AuditActionRelationTerminate}, f.audits.Actions())
}

func TestRelationUsecase_StartDateFollowsApproval(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	requested, err := uc.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: patient.ID, RelationType: "primary"})
	require.NoError(t, err)
	require.NotNil(t, requested.StartDate)

	approved, err := uc.ApproveRelation(as(patientActor), requested.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.StartDate)
	assert.False(t, approved.StartDate.Before(*requested.StartDate))

	ended, err := uc.TerminateRelation(as(patientActor), requested.ID)
	require.NoError(t, err)
	require.NotNil(t, ended.EndDate)
	assert.False(t, ended.EndDate.Before(*ended.StartDate))
}

func TestRelationUsecase_DeclineRefusesActiveRelation(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	_, err := uc.DeclineRelation(as(patientActor), rel.ID)
	assert.ErrorIs(t, err, usecase.ErrRelationNotPending)
	_, err = uc.DeclineRelation(as(doctor), rel.ID)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))
	assert.Equal(t, entity.RelationStatusActive, f.relations.Get(rel.ID).Status)
	assert.Empty(t, f.audits.Actions())
}

func TestRelationUsecase_GrantAndRevokePermission(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	rel := f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	res, err := uc.GrantPermission(as(patientActor), rel.ID, "addMedicalNotes")
	require.NoError(t, err)
	assert.True(t, res.Permissions.AddMedicalNotes)
	assert.True(t, f.relations.Get(rel.ID).Permissions.AddMedicalNotes)

	res, err = uc.RevokePermission(as(patientActor), rel.ID, "view_health_metrics")
	require.NoError(t, err)
	assert.False(t, res.Permissions.ViewHealthMetrics)
	assert.Equal(t, []string{entity.AuditActionPermissionGrant, entity.AuditActionPermissionRevoke}, f.audits.Actions())

	_, err = uc.GrantPermission(as(patientActor), rel.ID, "deleteEverything")
	assert.ErrorIs(t, err, usecase.ErrUnknownPermission)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = uc.GrantPermission(as(doctor), rel.ID, "writePrescriptions")
	assert.ErrorIs(t, err, usecase.ErrNotRelationPatient)
}

func TestRelationUsecase_Listings(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	_, other := f.addPatient("bob")
	f.addRelation(doc.ID, patient.ID, entity.RelationStatusActive, entity.DefaultPermissions())
	f.addRelation(doc.ID, other.ID, entity.RelationStatusPending, entity.DefaultPermissions())
	uc := newRelationUsecase(f)

	list, err := uc.ListDoctorPatients(as(doctor))
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, patient.ID, list.Relations[0].PatientID)

	list, err = uc.ListPending(as(doctor))
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, other.ID, list.Relations[0].PatientID)

	list, err = uc.ListPatientDoctors(as(patientActor))
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = uc.ListDoctorPatients(as(patientActor))
	assert.ErrorIs(t, err, usecase.ErrDoctorProfileRequired)
	_, err = uc.ListPending(as(f.addAdmin()))
	assert.ErrorIs(t, err, usecase.ErrClinicalProfileRequired)
}

func TestRelationUsecase_ConcurrentApprovalsKeepOneActive(t *testing.T) {
	f := newFixture()
	_, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	// two pending rows cannot be created through the usecase, so seed them
	// directly the way a pre-index database might hold them
	var ids []uuid.UUID
	for i := 0; i < 2; i++ {
		rel := &entity.DoctorPatientRelation{ID: uuid.New(), DoctorID: doc.ID, PatientID: patient.ID, Status: entity.RelationStatusPending}
		f.relations.Relations[rel.ID] = rel
		ids = append(ids, rel.ID)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = uc.ApproveRelation(as(patientActor), id)
		}(i, id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, usecase.ErrRelationExists)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.relations.CountActive(doc.ID, patient.ID))
}

func TestRelationUsecase_ConcurrentRequestsAndApprovals(t *testing.T) {
	f := newFixture()
	doctor, doc := f.addDoctor("house")
	patientActor, patient := f.addPatient("alice")
	uc := newRelationUsecase(f)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: patient.ID, RelationType: "primary"})
			if err != nil {
				return
			}
			_, _ = uc.ApproveRelation(as(patientActor), res.ID)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, f.relations.CountActive(doc.ID, patient.ID), 1)
}
