package quotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domainquo "github.com/jhoicas/backoffice-api/internal/domain/quotation"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	quotRepo  repository.QuotationRepository
	tcsRepo   repository.QuotationTcsRepository
	draftRepo repository.QuotationDraftRepository
	tagRepo   repository.QuotationTagRepository
	userRepo  repository.UserRepository
	notifRepo repository.NotificationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	quotRepo repository.QuotationRepository,
	tcsRepo repository.QuotationTcsRepository,
	draftRepo repository.QuotationDraftRepository,
	tagRepo repository.QuotationTagRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
) *UseCase {
	return &UseCase{
		quotRepo:  quotRepo,
		tcsRepo:   tcsRepo,
		draftRepo: draftRepo,
		tagRepo:   tagRepo,
		userRepo:  userRepo,
		notifRepo: notifRepo,
	}
}

// CreateQuotation verifica TCs, cliente y líneas (acumulando todos los errores
// antes de rechazar), calcula el resumen de precios, genera el identificador de
// negocio y persiste la cotización. Al crearla borra el auto-borrador del usuario.
func (uc *UseCase) CreateQuotation(ctx context.Context, user *entity.User, req dto.CreateQuotationRequest) (*entity.Quotation, error) {
	tcs, err := uc.tcsRepo.GetByID(req.TcsID)
	if err != nil {
		return nil, err
	}
	if tcs == nil || tcs.TypeID != req.TypeID {
		return nil, domain.ErrNotFound
	}

	tcsInput := req.TcsInput(*tcs)
	clientInput := req.Client.ToInput()
	itemInputs := dto.LineItemInputs(req.Items)

	// todas las verificaciones corren antes de rechazar
	var errs domain.ValidationErrors
	errs = append(errs, domainquo.VerifyTcs(tcsInput, req.TypeID, req.EditTcs)...)
	errs = append(errs, domainquo.VerifyClientInfo(clientInput)...)
	errs = append(errs, domainquo.VerifyLineItems(itemInputs)...)
	if len(errs) > 0 {
		return nil, errs
	}

	summary := domainquo.CalculatePriceSummary(itemInputs, req.VatExcluded, tcs.VatPercentage)

	now := time.Now()
	monthCount, err := uc.quotRepo.CountSince(domainquo.MonthStart(now))
	if err != nil {
		return nil, err
	}
	quotationID := domainquo.GenerateQuotationID(now, monthCount)

	validityDays := tcs.ValidityDays
	if v := tcsInput.EffectiveValidityDays(req.EditTcs); v != nil {
		validityDays = *v
	}
	initialPct, lastPct := tcsInput.EffectivePaymentPcts(req.EditTcs)

	client := clientInput.ToEntity()
	trimClient(&client)

	items := make([]entity.QuotationLineItem, 0, len(itemInputs))
	for _, in := range itemInputs {
		items = append(items, in.ToEntity())
	}

	quotation := &entity.Quotation{
		QuotationID:       quotationID,
		CoUserID:          user.CoUserID,
		Time:              now,
		TypeID:            req.TypeID,
		CategoryID:        req.CategoryID,
		CurrencyID:        req.CurrencyID,
		TcsID:             req.TcsID,
		TcsEdited:         req.EditTcs,
		VatExcluded:       req.VatExcluded,
		ValidityDays:      validityDays,
		PaymentGraceDays:  tcsInput.EffectiveGraceDays(req.EditTcs),
		InitialPaymentPct: initialPct,
		LastPaymentPct:    lastPct,
		SubTotal:          summary.Subtotal,
		Vat:               summary.Vat,
		GrandTotal:        summary.GrandTotal,
		StatusID:          entity.QuotationStatusCreated,
		Client:            client,
		LineItems:         items,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.quotRepo.Create(quotation); err != nil {
		return nil, err
	}

	// el auto-borrador ya cumplió su propósito; su borrado no afecta la creación
	_ = uc.draftRepo.DeleteAutoByUser(user.ID)

	return quotation, nil
}

// GetQuotation devuelve una cotización por su identificador de negocio.
func (uc *UseCase) GetQuotation(_ context.Context, quotationID string) (*entity.Quotation, error) {
	if !domainquo.ValidateQuotationID(quotationID) {
		return nil, domain.ErrInvalidInput
	}
	quotation, err := uc.quotRepo.GetByQuotationID(quotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, domain.ErrNotFound
	}
	return quotation, nil
}

// ListQuotations lista cotizaciones según filtro, con su total.
func (uc *UseCase) ListQuotations(_ context.Context, filter repository.QuotationFilter) ([]*entity.Quotation, int64, error) {
	items, err := uc.quotRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.quotRepo.Count(filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SumQuotations suma los totales de las cotizaciones que cumplen el filtro,
// junto con cuántas son.
func (uc *UseCase) SumQuotations(_ context.Context, filter repository.QuotationFilter) (decimal.Decimal, int64, error) {
	total, err := uc.quotRepo.SumGrandTotal(filter)
	if err != nil {
		return decimal.Zero, 0, err
	}
	count, err := uc.quotRepo.Count(filter)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return total, count, nil
}

// UpdateStatus cambia el estado de una cotización. Reglas: solo el emisor puede
// cambiarla; una expirada (por fecha o por estado) no se toca; created y expired
// no son destinos válidos desde la API; repetir el estado actual es conflicto.
func (uc *UseCase) UpdateStatus(_ context.Context, user *entity.User, quotationID, statusKey string) error {
	if !domainquo.ValidateQuotationID(quotationID) {
		return domain.ErrInvalidInput
	}

	statusID := entity.QuotationStatusIDByKey(statusKey)
	if statusID == 0 {
		return domain.ErrInvalidInput
	}
	if statusID == entity.QuotationStatusCreated || statusID == entity.QuotationStatusExpired {
		return domain.ErrInvalidInput
	}

	quotation, err := uc.quotRepo.GetByQuotationID(quotationID)
	if err != nil {
		return err
	}
	if quotation == nil {
		return domain.ErrNotFound
	}
	if quotation.CoUserID != user.CoUserID {
		return domain.ErrForbidden
	}
	if quotation.StatusID == statusID {
		return domain.ErrConflict
	}
	if quotation.IsExpired(time.Now()) {
		return domain.ErrQuotationExpired
	}

	return uc.quotRepo.UpdateStatus(quotationID, statusID)
}

// ExpireOverdue marca como expiradas las cotizaciones activas cuya validez ya
// venció. Devuelve cuántas se marcaron; los fallos individuales no detienen el
// barrido.
func (uc *UseCase) ExpireOverdue(_ context.Context, now time.Time) (int, error) {
	overdue, err := uc.quotRepo.ListActiveExpiredBefore(now)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, q := range overdue {
		if err := uc.quotRepo.UpdateStatus(q.QuotationID, entity.QuotationStatusExpired); err == nil {
			expired++
		}
	}
	return expired, nil
}

// TagUsers etiqueta usuarios en una cotización y les genera una notificación
// con los datos para navegar al documento.
func (uc *UseCase) TagUsers(_ context.Context, tagger *entity.User, quotationID string, taggedUserIDs []int64, message string) error {
	if !domainquo.ValidateQuotationID(quotationID) || len(taggedUserIDs) == 0 {
		return domain.ErrInvalidInput
	}
	quotation, err := uc.quotRepo.GetByQuotationID(quotationID)
	if err != nil {
		return err
	}
	if quotation == nil {
		return domain.ErrNotFound
	}

	for _, userID := range taggedUserIDs {
		tagged, err := uc.userRepo.GetByID(userID)
		if err != nil || tagged == nil {
			return domain.ErrUserNotFound
		}

		tag := &entity.QuotationTag{
			QuotationID:  quotationID,
			TaggedUserID: userID,
			TaggedBy:     tagger.CoUserID,
			Message:      message,
			CreatedAt:    time.Now(),
		}
		if err := uc.tagRepo.Create(tag); err != nil {
			return err
		}

		notification := &entity.Notification{
			UserID:     userID,
			TypeID:     entity.NotificationTypeQuotation,
			Title:      "Quotation Tag",
			Message:    tagNotificationMessage(tagger, quotationID, message),
			ActionData: quotationID,
			CreatedAt:  time.Now(),
		}
		if err := uc.notifRepo.Create(notification); err != nil {
			return err
		}
	}
	return nil
}

// ListTcs devuelve las plantillas de términos y condiciones; si typeID no es
// cero filtra por tipo de cotización.
func (uc *UseCase) ListTcs(_ context.Context, typeID int64) ([]*entity.QuotationTcs, error) {
	if typeID != 0 {
		return uc.tcsRepo.ListByType(typeID)
	}
	return uc.tcsRepo.List()
}

// ListTags devuelve las etiquetas de una cotización.
func (uc *UseCase) ListTags(_ context.Context, quotationID string) ([]*entity.QuotationTag, error) {
	if !domainquo.ValidateQuotationID(quotationID) {
		return nil, domain.ErrInvalidInput
	}
	return uc.tagRepo.ListByQuotation(quotationID)
}

func tagNotificationMessage(tagger *entity.User, quotationID, message string) string {
	msg := fmt.Sprintf("You have been tagged by %s (%s) on quotation %s.",
		tagger.FullName(), tagger.CoUserID, quotationID)
	if m := strings.TrimSpace(message); len(m) > 5 {
		if !strings.HasSuffix(m, ".") {
			m += "."
		}
		msg += fmt.Sprintf(" %q", m)
	}
	return msg + " Please tap open to followup."
}

func trimClient(c *entity.QuotationClient) {
	c.Name = strings.TrimSpace(c.Name)
	c.ContactPerson = strings.TrimSpace(c.ContactPerson)
	c.ExternalRef = strings.TrimSpace(c.ExternalRef)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Country = strings.TrimSpace(c.Country)
	c.City = strings.TrimSpace(c.City)
	c.AddressLine1 = strings.TrimSpace(c.AddressLine1)
}
