package usecase

import (
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// NotificationUseCase consulta y marcado de notificaciones internas.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListByUser lista las notificaciones del usuario con el contador de no leídas.
func (uc *NotificationUseCase) ListByUser(userID int64, limit, offset int) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NewNotificationResponse(n))
	}
	return &dto.NotificationListResponse{Items: items, UnreadCount: unread}, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(id, userID int64) error {
	return uc.repo.MarkRead(id, userID)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *NotificationUseCase) MarkAllRead(userID int64) error {
	return uc.repo.MarkAllRead(userID)
}
