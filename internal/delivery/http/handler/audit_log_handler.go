package handler

import (
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	errors          *response.ErrorRenderer
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, errors *response.ErrorRenderer) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		errors:          errors,
	}
}

func (h *AuditLogHandler) ListActivityLogs(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryUUID(w, r, "user_id")
	if !ok {
		return
	}
	patientID, ok := queryUUID(w, r, "patient_id")
	if !ok {
		return
	}

	page := pageRequest(r)
	logs, err := h.auditLogUsecase.ListActivityLogs(r.Context(), &dto.ActivityLogQuery{
		UserID:      userID,
		PatientID:   patientID,
		Action:      r.URL.Query().Get("action"),
		PageRequest: page,
	})
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Activity logs retrieved successfully", logs.Logs, response.NewMeta(page.Page, page.Limit, logs.Total))
}
