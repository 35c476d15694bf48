package usecase

import (
	"context"

	"healthtech-api/internal/delivery/http/middleware"
	"healthtech-api/internal/domain/entity"

	"github.com/google/uuid"
)

// targetPatient picks the patient a clinical call is about. Patients default
// to themselves; doctors must name the patient.
func targetPatient(actor *entity.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if requested != nil && *requested != uuid.Nil {
		return *requested, nil
	}
	if actor.IsPatient() {
		return *actor.PatientID, nil
	}
	if actor.IsDoctor() {
		return uuid.Nil, ErrPatientIDRequired
	}
	return uuid.Nil, ErrPatientProfileRequired
}

// relationRef returns the id of the relation that authorized the access.
func relationRef(relation *entity.DoctorPatientRelation) *uuid.UUID {
	if relation == nil {
		return nil
	}
	id := relation.ID
	return &id
}

// requirePatient returns the caller's own patient profile id.
func requirePatient(ctx context.Context) (uuid.UUID, error) {
	actor, err := patientActor(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return *actor.PatientID, nil
}

func patientActor(ctx context.Context) (*entity.Actor, error) {
	actor, err := middleware.RequireActor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient() {
		return nil, ErrPatientProfileRequired
	}
	return actor, nil
}
