package entity

import "time"

// Tipos de notificación interna.
const (
	NotificationTypeSystem    = 1
	NotificationTypeQuotation = 2
)

// Notification notificación interna de un usuario.
// ActionData lleva el recurso asociado (ej. número de cotización) para que el
// cliente pueda navegar a él.
type Notification struct {
	ID         int64
	UserID     int64
	TypeID     int
	Title      string
	Message    string
	ActionData string
	IsRead     bool
	CreatedAt  time.Time
}
