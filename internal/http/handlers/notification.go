package handlers

import (
	"net/http"

	"estagio/internal/app"
	"estagio/internal/http/middleware"
	"estagio/internal/http/response"
)

type NotificationHandler struct {
	notifications *app.NotificationService
}

func NewNotificationHandler(notifications *app.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

type sendNotificationRequest struct {
	Matricula   string `json:"matricula"`
	Course      string `json:"curso"`
	AllStudents bool   `json:"todos_alunos"`
	Title       string `json:"titulo" validate:"required"`
	Body        string `json:"mensagem" validate:"required"`
}

type sendNotificationResponse struct {
	Sent int `json:"enviadas"`
}

func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	senderID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req sendNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if err := validateStruct(req); err != nil {
		response.Error(w, err)
		return
	}
	count, err := h.notifications.Send(r.Context(), senderID, app.SendInput{
		Matricula:   req.Matricula,
		Course:      req.Course,
		AllStudents: req.AllStudents,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, sendNotificationResponse{Sent: count})
}

func (h *NotificationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.notifications.ListMine(r.Context(), recipientID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.notifications.ListUnread(r.Context(), recipientID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	notificationID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.notifications.MarkRead(r.Context(), notificationID, recipientID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"mensagem": "notificação marcada como lida"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	if err := h.notifications.MarkAllRead(r.Context(), recipientID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"mensagem": "notificações marcadas como lidas"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	notificationID, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.notifications.Delete(r.Context(), notificationID, recipientID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"mensagem": "notificação removida"})
}
