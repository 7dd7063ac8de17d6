package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type InboxService interface {
	List(ctx context.Context) (usecase.InboxView, error)
	MarkAllRead(ctx context.Context) (usecase.InboxView, error)
}

type NotificationHandler struct {
	Inbox  InboxService
	Events *usecase.Broadcaster[entity.SystemNotification]
	Log    logger.Logger
}

func NewNotificationHandler(inbox InboxService, events *usecase.Broadcaster[entity.SystemNotification], log logger.Logger) *NotificationHandler {
	return &NotificationHandler{Inbox: inbox, Events: events, Log: log}
}

// GET /notifications
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	view, err := h.Inbox.List(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, "list_notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /notifications/read
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	view, err := h.Inbox.MarkAllRead(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, "mark_notifications_read", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GET /notifications/stream
func (h *NotificationHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	stream(w, r, h.Events, func(n entity.SystemNotification) string { return "notification" })
}
