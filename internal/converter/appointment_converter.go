package converter

import (
	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/domain/entity"
)

// SlotToResponse converts an AppointmentSlot entity to SlotResponse DTO
func SlotToResponse(slot *entity.AppointmentSlot) *dto.SlotResponse {
	if slot == nil {
		return nil
	}

	return &dto.SlotResponse{
		ID:         slot.ID,
		DoctorID:   slot.DoctorID,
		SlotDate:   slot.SlotDate.Format("2006-01-02"),
		StartTime:  slot.StartTime,
		EndTime:    slot.EndTime,
		TotalQuota: slot.TotalQuota,
		CreatedAt:  slot.CreatedAt,
	}
}

func SlotsToResponses(slots []entity.AppointmentSlot) []dto.SlotResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		responses[i] = *SlotToResponse(&slots[i])
	}
	return responses
}

// AppointmentToResponse includes slot info when preloaded.
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		SlotID:          appointment.SlotID,
		RelationID:      appointment.RelationID,
		AppointmentCode: appointment.AppointmentCode,
		QueueNumber:     appointment.QueueNumber,
		Reason:          appointment.Reason,
		Status:          string(appointment.Status),
		BookedBy:        appointment.BookedBy,
		Slot:            SlotToResponse(appointment.Slot),
		CreatedAt:       appointment.CreatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
