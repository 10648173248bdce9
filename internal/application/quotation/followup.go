package quotation

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// FollowupService genera recordatorios de seguimiento sobre cotizaciones
// activas: un aviso normal cuando ya corrió la mitad de la validez y uno
// urgente cuando queda un día o menos. Pensado para correr una vez al día.
type FollowupService struct {
	uc     *UseCase
	sender EmailSender
	log    *logger.Logger
}

// NewFollowupService construye el servicio. sender puede ser nil si el correo
// está deshabilitado; en ese caso solo se generan notificaciones internas.
func NewFollowupService(uc *UseCase, sender EmailSender, log *logger.Logger) *FollowupService {
	return &FollowupService{uc: uc, sender: sender, log: log}
}

// RunSweep ejecuta un ciclo completo: expira las vencidas y reparte recordatorios.
func (s *FollowupService) RunSweep(ctx context.Context, now time.Time) {
	expired, err := s.uc.ExpireOverdue(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("barrido de expiración falló")
	} else if expired > 0 {
		s.log.Info().Int("expired", expired).Msg("cotizaciones marcadas como expiradas")
	}

	sent, err := s.SendReminders(ctx, now)
	if err != nil {
		s.log.Error().Err(err).Msg("envío de recordatorios falló")
	} else if sent > 0 {
		s.log.Info().Int("reminders", sent).Msg("recordatorios de seguimiento generados")
	}
}

// SendReminders recorre las cotizaciones en created/sent que aún no vencen y
// notifica al emisor según cuánto falta. Devuelve cuántos recordatorios generó.
func (s *FollowupService) SendReminders(_ context.Context, now time.Time) (int, error) {
	active, err := s.uc.quotRepo.ListActiveByStatus(
		[]int{entity.QuotationStatusCreated, entity.QuotationStatusSent}, now)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, q := range active {
		urgent, due := reminderDue(q, now)
		if !due {
			continue
		}

		issuer, err := s.uc.userRepo.GetByCoUserID(q.CoUserID)
		if err != nil || issuer == nil {
			continue
		}

		title := "Followup Reminder"
		if urgent {
			title = "Urgent Reminder"
		}
		notification := &entity.Notification{
			UserID:     issuer.ID,
			TypeID:     entity.NotificationTypeQuotation,
			Title:      title,
			Message:    reminderMessage(q, urgent),
			ActionData: q.QuotationID,
			CreatedAt:  now,
		}
		if err := s.uc.notifRepo.Create(notification); err != nil {
			s.log.Error().Err(err).Str("quotation_id", q.QuotationID).Msg("no se pudo crear la notificación")
			continue
		}
		sent++

		if s.sender != nil && issuer.Email != "" {
			if err := s.sender.Send(issuer.Email, title+" - "+q.QuotationID, reminderEmailBody(q, issuer, urgent)); err != nil {
				// el correo es mejor-esfuerzo; la notificación interna ya quedó
				s.log.Warn().Err(err).Str("quotation_id", q.QuotationID).Msg("correo de recordatorio no enviado")
			}
		}
	}
	return sent, nil
}

// reminderDue decide si toca recordatorio y de qué tipo: urgente con un día o
// menos de validez restante, normal cuando ya corrió la mitad del plazo.
func reminderDue(q *entity.Quotation, now time.Time) (urgent, due bool) {
	remaining := q.ExpiresAt().Sub(now)
	if remaining <= 0 {
		return false, false
	}
	if remaining <= 24*time.Hour {
		return true, true
	}
	half := time.Duration(q.ValidityDays) * 24 * time.Hour / 2
	if remaining <= half {
		return false, true
	}
	return false, false
}

func reminderMessage(q *entity.Quotation, urgent bool) string {
	client := q.Client.Name
	if q.Client.ContactPerson != "" {
		client = fmt.Sprintf("%s (%s)", client, q.Client.ContactPerson)
	}
	status := entity.QuotationStatusKeys[q.StatusID]
	if urgent {
		return fmt.Sprintf("Quotation %s for %s (%s) expires within a day. Please tap open to followup.",
			q.QuotationID, client, status)
	}
	return fmt.Sprintf("Quotation %s for %s (%s) is halfway through its validity. Please tap open to followup.",
		q.QuotationID, client, status)
}

func reminderEmailBody(q *entity.Quotation, issuer *entity.User, urgent bool) string {
	lead := "is halfway through its validity period"
	if urgent {
		lead = "expires within a day"
	}
	return fmt.Sprintf(
		"<p>Hello %s,</p><p>Your quotation <strong>%s</strong> for %s %s (valid until %s).</p><p>Consider following up with the client.</p>",
		issuer.FirstName, q.QuotationID, q.Client.Name, lead, q.ExpiresAt().Format("02 Jan 2006"),
	)
}
