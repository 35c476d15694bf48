package handler

import (
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"
)

type DoctorHandler struct {
	approvalUsecase usecase.DoctorApprovalUsecase
	profileUsecase  usecase.DoctorProfileUsecase
	validator       *validator.CustomValidator
	errors          *response.ErrorRenderer
}

func NewDoctorHandler(approvalUsecase usecase.DoctorApprovalUsecase, profileUsecase usecase.DoctorProfileUsecase, validator *validator.CustomValidator, errors *response.ErrorRenderer) *DoctorHandler {
	return &DoctorHandler{
		approvalUsecase: approvalUsecase,
		profileUsecase:  profileUsecase,
		validator:       validator,
		errors:          errors,
	}
}

func (h *DoctorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req dto.ApplyDoctorRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.approvalUsecase.Apply(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor application submitted", doctor)
}

func (h *DoctorHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	list, err := h.approvalUsecase.ListApplications(r.Context(), r.URL.Query().Get("status"), page)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctor applications retrieved successfully", list.Doctors, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *DoctorHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.approvalUsecase.GetApplication(r.Context(), doctorID)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor application retrieved successfully", doctor)
}

func (h *DoctorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.approvalUsecase.Approve(r.Context(), doctorID)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor approved successfully", doctor)
}

func (h *DoctorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}
	var req dto.RejectDoctorRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.approvalUsecase.Reject(r.Context(), doctorID, req.Reason)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor rejected", doctor)
}

// BulkAction always answers 200; per-item failures are listed in the results.
func (h *DoctorHandler) BulkAction(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkDoctorActionRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	result, err := h.approvalUsecase.BulkAction(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Bulk action processed", result)
}

func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileUsecase.GetMyProfile(r.Context())
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}

func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorProfileRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	profile, err := h.profileUsecase.UpdateMyProfile(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
