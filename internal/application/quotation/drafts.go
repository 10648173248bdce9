package quotation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

// MaxDraftsPerUser tope de borradores manuales por usuario.
const MaxDraftsPerUser = 5

// SaveDraft guarda un borrador manual. Rechaza con ErrConflict al llegar al tope.
func (uc *UseCase) SaveDraft(_ context.Context, userID int64, payload json.RawMessage) (*entity.QuotationDraft, error) {
	if len(payload) == 0 {
		return nil, domain.ErrInvalidInput
	}
	count, err := uc.draftRepo.CountManualByUser(userID)
	if err != nil {
		return nil, err
	}
	if count >= MaxDraftsPerUser {
		return nil, domain.ErrConflict
	}

	draft := &entity.QuotationDraft{
		UserID:    userID,
		Auto:      false,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := uc.draftRepo.Create(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveAutoDraft guarda o reemplaza el auto-borrador del usuario (hay a lo sumo uno).
func (uc *UseCase) SaveAutoDraft(_ context.Context, userID int64, payload json.RawMessage) (*entity.QuotationDraft, error) {
	if len(payload) == 0 {
		return nil, domain.ErrInvalidInput
	}
	draft := &entity.QuotationDraft{
		UserID:    userID,
		Auto:      true,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	if err := uc.draftRepo.UpsertAuto(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// ListDrafts devuelve los borradores del usuario (manuales y auto).
func (uc *UseCase) ListDrafts(_ context.Context, userID int64) ([]*entity.QuotationDraft, error) {
	return uc.draftRepo.ListByUser(userID)
}

// DeleteDraft borra un borrador propio; borrar el de otro usuario es ErrForbidden.
func (uc *UseCase) DeleteDraft(_ context.Context, userID, draftID int64) error {
	draft, err := uc.draftRepo.GetByID(draftID)
	if err != nil {
		return err
	}
	if draft == nil {
		return domain.ErrNotFound
	}
	if draft.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.draftRepo.Delete(draftID)
}

// DeleteAutoDraft borra el auto-borrador del usuario si existe.
func (uc *UseCase) DeleteAutoDraft(_ context.Context, userID int64) error {
	return uc.draftRepo.DeleteAutoByUser(userID)
}
