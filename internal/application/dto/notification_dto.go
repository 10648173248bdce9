package dto

import (
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// NotificationResponse salida de una notificación interna.
type NotificationResponse struct {
	ID         int64     `json:"id"`
	TypeID     int       `json:"type_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	ActionData string    `json:"action_data,omitempty"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewNotificationResponse mapea la entidad a su representación HTTP.
func NewNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID,
		TypeID:     n.TypeID,
		Title:      n.Title,
		Message:    n.Message,
		ActionData: n.ActionData,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
	}
}

// NotificationListResponse lista de notificaciones con contador de no leídas.
type NotificationListResponse struct {
	Items       []NotificationResponse `json:"items"`
	UnreadCount int64                  `json:"unread_count"`
}
