package handler

import (
	"net/http"
	"strconv"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"
)

// ClinicalHandler serves the patient's health data. Access for doctors is
// decided by the usecases through the relation ledger.
type ClinicalHandler struct {
	metricUsecase  usecase.HealthMetricUsecase
	recordUsecase  usecase.MedicalRecordUsecase
	symptomUsecase usecase.SymptomLogUsecase
	goalUsecase    usecase.HealthGoalUsecase
	validator      *validator.CustomValidator
	errors         *response.ErrorRenderer
}

func NewClinicalHandler(
	metricUsecase usecase.HealthMetricUsecase,
	recordUsecase usecase.MedicalRecordUsecase,
	symptomUsecase usecase.SymptomLogUsecase,
	goalUsecase usecase.HealthGoalUsecase,
	validator *validator.CustomValidator,
	errors *response.ErrorRenderer,
) *ClinicalHandler {
	return &ClinicalHandler{
		metricUsecase:  metricUsecase,
		recordUsecase:  recordUsecase,
		symptomUsecase: symptomUsecase,
		goalUsecase:    goalUsecase,
		validator:      validator,
		errors:         errors,
	}
}

func (h *ClinicalHandler) RecordMetric(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordHealthMetricRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	metric, err := h.metricUsecase.Record(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Health metric recorded", metric)
}

func (h *ClinicalHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	patientID, ok := queryUUID(w, r, "patient_id")
	if !ok {
		return
	}
	from, ok := queryTime(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryTime(w, r, "to")
	if !ok {
		return
	}

	page := pageRequest(r)
	list, err := h.metricUsecase.List(r.Context(), &dto.HealthMetricQuery{
		PatientID:   patientID,
		MetricType:  r.URL.Query().Get("metric_type"),
		From:        from,
		To:          to,
		PageRequest: page,
	})
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Health metrics retrieved successfully", list.Metrics, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *ClinicalHandler) LatestMetrics(w http.ResponseWriter, r *http.Request) {
	patientID, ok := queryUUID(w, r, "patient_id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.metricUsecase.Latest(r.Context(), patientID, queryList(r, "types"), limit)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Latest health metrics retrieved successfully", list)
}

func (h *ClinicalHandler) MetricTrend(w http.ResponseWriter, r *http.Request) {
	patientID, ok := queryUUID(w, r, "patient_id")
	if !ok {
		return
	}
	from, ok := queryTime(w, r, "from")
	if !ok {
		return
	}
	to, ok := queryTime(w, r, "to")
	if !ok {
		return
	}

	trend, err := h.metricUsecase.Trend(r.Context(), &dto.MetricTrendQuery{
		PatientID:  patientID,
		MetricType: r.URL.Query().Get("metric_type"),
		From:       from,
		To:         to,
	})
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health metric trend retrieved successfully", trend)
}

func (h *ClinicalHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicalRecordRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.Create(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created", record)
}

func (h *ClinicalHandler) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	patientID, ok := queryUUID(w, r, "patient_id")
	if !ok {
		return
	}

	page := pageRequest(r)
	list, err := h.recordUsecase.List(r.Context(), &dto.MedicalRecordQuery{
		PatientID:   patientID,
		Status:      r.URL.Query().Get("status"),
		PageRequest: page,
	})
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Medical records retrieved successfully", list.Records, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *ClinicalHandler) FinalizeMedicalRecord(w http.ResponseWriter, r *http.Request) {
	recordID, ok := pathUUID(w, r, "id", "medical record")
	if !ok {
		return
	}

	record, err := h.recordUsecase.Finalize(r.Context(), recordID)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Medical record finalized", record)
}

func (h *ClinicalHandler) CreateSymptomLog(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSymptomLogRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	entry, err := h.symptomUsecase.Create(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Symptom logged", entry)
}

func (h *ClinicalHandler) ListSymptomLogs(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	list, err := h.symptomUsecase.List(r.Context(), page)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Symptom logs retrieved successfully", list.Logs, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *ClinicalHandler) CreateHealthGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHealthGoalRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	goal, err := h.goalUsecase.Create(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Health goal created", goal)
}

func (h *ClinicalHandler) ListHealthGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.goalUsecase.List(r.Context(), queryBool(r, "active"))
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health goals retrieved successfully", list)
}

func (h *ClinicalHandler) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	goalID, ok := pathUUID(w, r, "id", "health goal")
	if !ok {
		return
	}
	var req dto.UpdateGoalProgressRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	goal, err := h.goalUsecase.UpdateProgress(r.Context(), goalID, &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Health goal progress updated", goal)
}
