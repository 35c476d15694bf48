package handler

import (
	"context"
	"net/http"

	"healthtech-api/internal/delivery/dto"
	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"
	"healthtech-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type RelationHandler struct {
	relationUsecase usecase.RelationUsecase
	validator       *validator.CustomValidator
	errors          *response.ErrorRenderer
}

func NewRelationHandler(relationUsecase usecase.RelationUsecase, validator *validator.CustomValidator, errors *response.ErrorRenderer) *RelationHandler {
	return &RelationHandler{
		relationUsecase: relationUsecase,
		validator:       validator,
		errors:          errors,
	}
}

func (h *RelationHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRelationRequest
	if !decode(w, r, h.validator, &req) {
		return
	}

	relation, err := h.relationUsecase.RequestRelation(r.Context(), &req)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Relation requested", relation)
}

func (h *RelationHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.relationUsecase.ApproveRelation, "Relation approved")
}

func (h *RelationHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.relationUsecase.TerminateRelation, "Relation terminated")
}

func (h *RelationHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.relationUsecase.DeclineRelation, "Relation declined")
}

func (h *RelationHandler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	h.permission(w, r, h.relationUsecase.GrantPermission, "Permission granted")
}

func (h *RelationHandler) RevokePermission(w http.ResponseWriter, r *http.Request) {
	h.permission(w, r, h.relationUsecase.RevokePermission, "Permission revoked")
}

func (h *RelationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationUsecase.ListPending)
}

func (h *RelationHandler) ListDoctorPatients(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationUsecase.ListDoctorPatients)
}

func (h *RelationHandler) ListPatientDoctors(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.relationUsecase.ListPatientDoctors)
}

type relationTransition func(ctx context.Context, id uuid.UUID) (*dto.RelationResponse, error)

func (h *RelationHandler) transition(w http.ResponseWriter, r *http.Request, apply relationTransition, message string) {
	relationID, ok := pathUUID(w, r, "id", "relation")
	if !ok {
		return
	}

	relation, err := apply(r.Context(), relationID)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, relation)
}

func (h *RelationHandler) permission(w http.ResponseWriter, r *http.Request, apply func(context.Context, uuid.UUID, string) (*dto.RelationResponse, error), message string) {
	relationID, ok := pathUUID(w, r, "id", "relation")
	if !ok {
		return
	}

	relation, err := apply(r.Context(), relationID, mux.Vars(r)["name"])
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, message, relation)
}

func (h *RelationHandler) list(w http.ResponseWriter, r *http.Request, load func(context.Context) (*dto.RelationListResponse, error)) {
	list, err := load(r.Context())
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Relations retrieved successfully", list)
}
