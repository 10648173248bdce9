package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste una notificación y deja el ID generado en notification.
func (r *NotificationRepo) Create(notification *entity.Notification) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO notifications (user_id, type_id, title, message, action_data, is_read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		notification.UserID, notification.TypeID, notification.Title, notification.Message,
		notification.ActionData, notification.IsRead, notification.CreatedAt,
	).Scan(&notification.ID)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser lista las notificaciones del usuario, más recientes primero.
func (r *NotificationRepo) ListByUser(userID int64, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, user_id, type_id, title, message, action_data, is_read, created_at
		 FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.TypeID, &n.Title, &n.Message,
			&n.ActionData, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// CountUnread cuenta las notificaciones no leídas del usuario.
func (r *NotificationRepo) CountUnread(userID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

// MarkRead marca una notificación propia como leída.
func (r *NotificationRepo) MarkRead(id, userID int64) error {
	if _, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (r *NotificationRepo) MarkAllRead(userID int64) error {
	if _, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
