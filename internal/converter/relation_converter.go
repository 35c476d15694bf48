package converter

import (
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

// RelationToResponse converts a DoctorPatientRelation to RelationResponse DTO.
// Party summaries are included when preloaded.
func RelationToResponse(relation *entity.DoctorPatientRelation) *dto.RelationResponse {
	if relation == nil {
		return nil
	}

	return &dto.RelationResponse{
		ID:                relation.ID,
		DoctorID:          relation.DoctorID,
		PatientID:         relation.PatientID,
		RelationType:      string(relation.RelationType),
		Status:            string(relation.Status),
		Permissions:       relation.Permissions,
		AccessLevel:       string(relation.AccessLevel),
		StartDate:         relation.StartDate,
		EndDate:           relation.EndDate,
		ReasonForRelation: relation.ReasonForRelation,
		SpecialtyFocus:    relation.SpecialtyFocus,
		Notes:             relation.Notes,
		CreatedBy:         relation.CreatedBy,
		LastUpdatedBy:     relation.LastUpdatedBy,
		Doctor:            DoctorToSummary(relation.Doctor),
		Patient:           PatientToSummary(relation.Patient),
		CreatedAt:         relation.CreatedAt,
		UpdatedAt:         relation.UpdatedAt,
	}
}

func RelationsToResponses(relations []entity.DoctorPatientRelation) []dto.RelationResponse {
	responses := make([]dto.RelationResponse, len(relations))
	for i := range relations {
		responses[i] = *RelationToResponse(&relations[i])
	}
	return responses
}
