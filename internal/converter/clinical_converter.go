package converter

import (
	"encoding/json"
	"time"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

func HealthMetricToResponse(metric *entity.HealthMetric) *dto.HealthMetricResponse {
	if metric == nil {
		return nil
	}

	return &dto.HealthMetricResponse{
		ID:           metric.ID,
		PatientID:    metric.PatientID,
		UserID:       metric.UserID,
		MetricType:   string(metric.MetricType),
		Value:        json.RawMessage(metric.Value),
		Unit:         metric.Unit,
		Timestamp:    metric.Timestamp,
		Source:       string(metric.Source),
		DeviceID:     metric.DeviceID,
		QualityScore: metric.QualityScore,
		IsAbnormal:   metric.IsAbnormal,
		Notes:        metric.Notes,
		Tags:         nonNil(metric.Tags),
		RelationID:   metric.RelationID,
		CreatedAt:    metric.CreatedAt,
	}
}

func HealthMetricsToResponses(metrics []entity.HealthMetric) []dto.HealthMetricResponse {
	responses := make([]dto.HealthMetricResponse, len(metrics))
	for i := range metrics {
		responses[i] = *HealthMetricToResponse(&metrics[i])
	}
	return responses
}

func HealthMetricsToTrendPoints(metrics []entity.HealthMetric) []dto.MetricTrendPoint {
	points := make([]dto.MetricTrendPoint, len(metrics))
	for i, m := range metrics {
		points[i] = dto.MetricTrendPoint{Value: json.RawMessage(m.Value), Timestamp: m.Timestamp}
	}
	return points
}

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:                   record.ID,
		PatientID:            record.PatientID,
		DoctorID:             record.DoctorID,
		RelationID:           record.RelationID,
		VisitDate:            record.VisitDate,
		VisitType:            string(record.VisitType),
		Symptoms:             nonNil(record.Symptoms),
		Diagnosis:            record.Diagnosis.Data(),
		Prescriptions:        nonNil(record.Prescriptions),
		TreatmentPlan:        record.TreatmentPlan.Data(),
		FollowUpDate:         record.FollowUpDate,
		FollowUpInstructions: record.FollowUpInstructions,
		RecordStatus:         string(record.RecordStatus),
		Notes:                record.Notes,
		Recommendations:      record.Recommendations,
		CreatedBy:            record.CreatedBy,
		LastUpdatedBy:        record.LastUpdatedBy,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}

func SymptomLogToResponse(log *entity.SymptomLog) *dto.SymptomLogResponse {
	if log == nil {
		return nil
	}

	return &dto.SymptomLogResponse{
		ID:                log.ID,
		PatientID:         log.PatientID,
		SymptomType:       log.SymptomType,
		Severity:          log.Severity,
		StartTime:         log.StartTime,
		EndTime:           log.EndTime,
		Duration:          log.Duration,
		Location:          log.Location,
		Triggers:          nonNil(log.Triggers),
		ReliefMethods:     nonNil(log.ReliefMethods),
		Notes:             log.Notes,
		ImpactOnDailyLife: log.ImpactOnDailyLife,
		Pattern:           log.Pattern,
		CreatedAt:         log.CreatedAt,
	}
}

func SymptomLogsToResponses(logs []entity.SymptomLog) []dto.SymptomLogResponse {
	responses := make([]dto.SymptomLogResponse, len(logs))
	for i := range logs {
		responses[i] = *SymptomLogToResponse(&logs[i])
	}
	return responses
}

func HealthGoalToResponse(goal *entity.HealthGoal, now time.Time) *dto.HealthGoalResponse {
	if goal == nil {
		return nil
	}

	return &dto.HealthGoalResponse{
		ID:                 goal.ID,
		PatientID:          goal.PatientID,
		GoalType:           string(goal.GoalType),
		Title:              goal.Title,
		Description:        goal.Description,
		TargetValue:        goal.TargetValue,
		CurrentValue:       goal.CurrentValue,
		StartDate:          goal.StartDate,
		TargetDate:         goal.TargetDate,
		Frequency:          goal.Frequency,
		Priority:           goal.Priority,
		IsActive:           goal.IsActive,
		IsCompleted:        goal.IsCompleted(),
		ProgressPercentage: goal.ProgressPercentage,
		DaysRemaining:      goal.DaysRemaining(now),
		Notes:              goal.Notes,
		LastUpdated:        goal.LastUpdated,
	}
}

func HealthGoalsToResponses(goals []entity.HealthGoal, now time.Time) []dto.HealthGoalResponse {
	responses := make([]dto.HealthGoalResponse, len(goals))
	for i := range goals {
		responses[i] = *HealthGoalToResponse(&goals[i], now)
	}
	return responses
}
