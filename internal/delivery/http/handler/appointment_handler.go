package handler

import (
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	errors             *response.ErrorRenderer
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, errors *response.ErrorRenderer) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		errors:             errors,
	}
}

func (h *AppointmentHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSlotRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	slot, err := h.appointmentUsecase.CreateSlot(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment slot created", slot)
}

func (h *AppointmentHandler) ListDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	slots, err := h.appointmentUsecase.ListSlots(r.Context(), doctorID)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment slots retrieved successfully", slots)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListMine(r.Context())
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), appointmentID); err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
