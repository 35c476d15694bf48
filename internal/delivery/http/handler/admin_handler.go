package handler

import (
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"
)

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
	errors       *response.ErrorRenderer
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator, errors *response.ErrorRenderer) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
		errors:       errors,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	query := r.URL.Query()
	list, err := h.adminUsecase.ListUsers(r.Context(), query.Get("status"), query.Get("search"), page)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", list.Users, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "id", "user")
	if !ok {
		return
	}
	var req dto.UpdateUserStatusRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	user, err := h.adminUsecase.UpdateUserStatus(r.Context(), userID, &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "User status updated", user)
}

func (h *AdminHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	list, err := h.adminUsecase.ListPatients(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", list.Patients, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *AdminHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}
	var req dto.AdminUpdatePatientRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	patient, err := h.adminUsecase.UpdatePatient(r.Context(), patientID, &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *AdminHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathUUID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.adminUsecase.DeletePatient(r.Context(), patientID); err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
