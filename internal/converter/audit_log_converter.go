package converter

import (
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

// ActivityLogToResponse converts an AuditLog entity to ActivityLogResponse DTO
func ActivityLogToResponse(log *entity.AuditLog) *dto.ActivityLogResponse {
	if log == nil {
		return nil
	}

	return &dto.ActivityLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		PatientID: log.PatientID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
}

func ActivityLogsToResponses(logs []entity.AuditLog) []dto.ActivityLogResponse {
	responses := make([]dto.ActivityLogResponse, len(logs))
	for i := range logs {
		responses[i] = *ActivityLogToResponse(&logs[i])
	}
	return responses
}
