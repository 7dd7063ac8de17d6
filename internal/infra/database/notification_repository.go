package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/xavierca1/sales-os/internal/entity"
)

type NotificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]entity.SystemNotification, error) {
	query := `
		SELECT id::text, type, title, message, metadata, read, created_at
		FROM system_notifications
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar notificações: %w", err)
	}
	defer rows.Close()

	items := make([]entity.SystemNotification, 0, limit)
	for rows.Next() {
		var (
			n              entity.SystemNotification
			id, typ        string
			title, message sql.NullString
			metadata       []byte
		)
		if err := rows.Scan(&id, &typ, &title, &message, &metadata, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler notificação: %w", err)
		}
		n.ID = entity.NotificationID(id)
		n.Type = entity.NotificationType(typ)
		n.Title = title.String
		n.Message = message.String
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
				return nil, fmt.Errorf("metadata inválida na notificação %s: %w", id, err)
			}
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// MarkAllRead é um único UPDATE em todas as não lidas.
func (r *NotificationRepository) MarkAllRead(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE system_notifications SET read = true WHERE read = false`)
	if err != nil {
		return fmt.Errorf("erro ao marcar notificações: %w", err)
	}
	return nil
}
