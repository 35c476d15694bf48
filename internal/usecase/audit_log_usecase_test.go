package usecase_test

import (
	"context"
	"testing"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditLogUsecase_ListFiltersByPatient(t *testing.T) {
	f := newFixture()
	doctor, _ := f.addDoctor("house")
	alice, aliceProfile := f.addPatient("alice")
	_, bobProfile := f.addPatient("bob")
	relations := newRelationUsecase(f)

	pending, err := relations.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: aliceProfile.ID, RelationType: "primary"})
	require.NoError(t, err)
	_, err = relations.RequestRelation(as(doctor), &dto.CreateRelationRequest{PatientID: bobProfile.ID, RelationType: "primary"})
	require.NoError(t, err)
	_, err = relations.ApproveRelation(as(alice), pending.ID)
	require.NoError(t, err)

	uc := usecase.NewAuditLogUsecase(nil, f.log, f.audits)

	all, err := uc.ListActivityLogs(context.Background(), &dto.ActivityLogQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	forAlice, err := uc.ListActivityLogs(context.Background(), &dto.ActivityLogQuery{PatientID: &aliceProfile.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), forAlice.Total)

	approvals, err := uc.ListActivityLogs(context.Background(), &dto.ActivityLogQuery{Action: entity.AuditActionRelationApprove})
	require.NoError(t, err)
	require.Len(t, approvals.Logs, 1)
	assert.Equal(t, alice.UserID, *approvals.Logs[0].UserID)
}
