package entity

import (
	"context"
	"time"
)

type NotificationType string

const (
	NotificationNewLead      NotificationType = "NEW_LEAD"
	NotificationStatusChange NotificationType = "STATUS_CHANGE"
	NotificationSale         NotificationType = "SALE"
)

// NotificationID aceita número ou string, como LeadID.
type NotificationID string

func (id *NotificationID) UnmarshalJSON(data []byte) error {
	var v LeadID
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = NotificationID(v)
	return nil
}

// SystemNotification é criada por triggers do banco; aqui só lemos e
// marcamos como lida.
type SystemNotification struct {
	ID        NotificationID   `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Metadata  map[string]any   `json:"metadata"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

type NotificationRepository interface {
	ListRecent(ctx context.Context, limit int) ([]SystemNotification, error)
	MarkAllRead(ctx context.Context) error
}
