package repository

import "github.com/jhoicas/backoffice-api/internal/domain/entity"

// NotificationRepository define el puerto para notificaciones internas.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByUser(userID int64, limit, offset int) ([]*entity.Notification, error)
	CountUnread(userID int64) (int64, error)
	MarkRead(id int64, userID int64) error
	MarkAllRead(userID int64) error
}
