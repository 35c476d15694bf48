package handler

import (
	"net/http"

	"healthtech-api/internal/usecase"
	"healthtech-api/pkg/response"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	errors              *response.ErrorRenderer
}

func NewNotificationHandler(notificationUsecase usecase.NotificationUsecase, errors *response.ErrorRenderer) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		errors:              errors,
	}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageRequest(r)
	list, err := h.notificationUsecase.ListMine(r.Context(), queryBool(r, "unread"), page)
	if err != nil {
		h.errors.Render(w, err)
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Notifications retrieved successfully", list.Notifications, response.NewMeta(page.Page, page.Limit, list.Total))
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationUsecase.MarkRead(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.errors.Render(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}
