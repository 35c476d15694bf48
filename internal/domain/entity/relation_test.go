package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to RelationStatus
		want     bool
	}{
		{RelationStatusPending, RelationStatusActive, true},
		{RelationStatusPending, RelationStatusInactive, true},
		{RelationStatusPending, RelationStatusTerminated, true},
		{RelationStatusActive, RelationStatusTerminated, true},
		{RelationStatusInactive, RelationStatusTerminated, true},
		{RelationStatusActive, RelationStatusPending, false},
		{RelationStatusActive, RelationStatusInactive, false},
		{RelationStatusInactive, RelationStatusActive, false},
		{RelationStatusTerminated, RelationStatusActive, false},
		{RelationStatusTerminated, RelationStatusPending, false},
		{RelationStatusTerminated, RelationStatusInactive, false},
		{RelationStatusTerminated, RelationStatusTerminated, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRelation_TerminateStampsEndDateNotBeforeStart(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &DoctorPatientRelation{Status: RelationStatusPending}
	require.True(t, r.Activate(start))

	// clock skew: terminate "before" the start date
	require.True(t, r.Terminate(start.Add(-time.Hour)))
	require.NotNil(t, r.EndDate)
	assert.Equal(t, RelationStatusTerminated, r.Status)
	assert.False(t, r.EndDate.Before(*r.StartDate))

	assert.False(t, r.Terminate(start.Add(time.Hour)), "terminated is final")
}

func TestRelation_TerminatePendingWithoutStartDate(t *testing.T) {
	now := time.Now()
	r := &DoctorPatientRelation{Status: RelationStatusPending}
	require.True(t, r.Terminate(now))
	assert.Equal(t, now, *r.EndDate)
}

func TestRelation_ActivateOnlyFromPending(t *testing.T) {
	r := &DoctorPatientRelation{Status: RelationStatusInactive}
	assert.False(t, r.Activate(time.Now()))
	assert.Nil(t, r.StartDate)
}

func TestRelation_DeclineOnlyFromPending(t *testing.T) {
	for _, status := range []RelationStatus{RelationStatusActive, RelationStatusInactive, RelationStatusTerminated} {
		r := &DoctorPatientRelation{Status: status}
		assert.False(t, r.Decline(), "decline from %s", status)
		assert.Equal(t, status, r.Status)
	}

	r := &DoctorPatientRelation{Status: RelationStatusPending}
	assert.True(t, r.Decline())
	assert.Equal(t, RelationStatusInactive, r.Status)
}

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("viewHealthMetrics")
	require.NoError(t, err)
	assert.Equal(t, PermissionViewHealthMetrics, p)

	p, err = ParsePermission("add_medical_notes")
	require.NoError(t, err)
	assert.Equal(t, PermissionAddMedicalNotes, p)

	_, err = ParsePermission("deleteEverything")
	assert.Error(t, err)
}

func TestPermissions_SetAndHas(t *testing.T) {
	perms := DefaultPermissions()
	assert.True(t, perms.Has(PermissionViewMedicalRecords))
	assert.True(t, perms.Has(PermissionViewHealthMetrics))
	assert.False(t, perms.Has(PermissionAddMedicalNotes))

	for _, p := range AllPermissions {
		perms.Set(p, true)
		assert.True(t, perms.Has(p), p)
		perms.Set(p, false)
		assert.False(t, perms.Has(p), p)
	}
}

func TestRelation_IsParty(t *testing.T) {
	doctorID, patientID := uuid.New(), uuid.New()
	r := &DoctorPatientRelation{DoctorID: doctorID, PatientID: patientID}

	assert.True(t, r.IsParty(&Actor{DoctorID: &doctorID}))
	assert.True(t, r.IsParty(&Actor{PatientID: &patientID}))

	other := uuid.New()
	assert.False(t, r.IsParty(&Actor{DoctorID: &other}))
	assert.False(t, r.IsParty(&Actor{IsAdmin: true}))
}
