package handler

import (
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientProfileUsecase
	contactUsecase usecase.EmergencyContactUsecase
	validator      *validator.CustomValidator
	errors         *response.ErrorRenderer
}

func NewPatientHandler(patientUsecase usecase.PatientProfileUsecase, contactUsecase usecase.EmergencyContactUsecase, validator *validator.CustomValidator, errors *response.ErrorRenderer) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		contactUsecase: contactUsecase,
		validator:      validator,
		errors:         errors,
	}
}

func (h *PatientHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.patientUsecase.GetMyProfile(r.Context())
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *PatientHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientProfileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	profile, err := h.patientUsecase.UpdateMyProfile(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}

func (h *PatientHandler) CreateEmergencyContact(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmergencyContactRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	contact, err := h.contactUsecase.Create(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Emergency contact added successfully", contact)
}

func (h *PatientHandler) ListEmergencyContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactUsecase.List(r.Context())
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Emergency contacts retrieved successfully", contacts)
}

func (h *PatientHandler) DeleteEmergencyContact(w http.ResponseWriter, r *http.Request) {
	contactID, ok := pathUUID(w, r, "id", "emergency contact")
	if !ok {
		return
	}

	if err := h.contactUsecase.Delete(r.Context(), contactID); err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Emergency contact deleted successfully", nil)
}
