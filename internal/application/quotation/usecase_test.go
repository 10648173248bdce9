package quotation

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
	"github.com/jhoicas/backoffice-api/pkg/logger"
)

// --- fakes ---

type fakeQuotationRepo struct {
	byID   map[string]*entity.Quotation
	nextID int64
}

func newFakeQuotationRepo() *fakeQuotationRepo {
	return &fakeQuotationRepo{byID: map[string]*entity.Quotation{}}
}

func (r *fakeQuotationRepo) Create(q *entity.Quotation) error {
	r.nextID++
	q.ID = r.nextID
	cp := *q
	r.byID[q.QuotationID] = &cp
	return nil
}

func (r *fakeQuotationRepo) GetByQuotationID(id string) (*entity.Quotation, error) {
	q, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuotationRepo) List(filter repository.QuotationFilter) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.byID {
		out = append(out, q)
	}
	return out, nil
}

func (r *fakeQuotationRepo) Count(filter repository.QuotationFilter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeQuotationRepo) SumGrandTotal(filter repository.QuotationFilter) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, q := range r.byID {
		sum = sum.Add(q.GrandTotal)
	}
	return sum, nil
}

func (r *fakeQuotationRepo) CountSince(since time.Time) (int64, error) {
	var n int64
	for _, q := range r.byID {
		if !q.Time.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuotationRepo) UpdateStatus(id string, statusID int) error {
	q, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	q.StatusID = statusID
	return nil
}

func (r *fakeQuotationRepo) ListActiveExpiredBefore(now time.Time) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.byID {
		active := q.StatusID == entity.QuotationStatusCreated || q.StatusID == entity.QuotationStatusSent
		if active && q.ExpiresAt().Before(now) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuotationRepo) ListActiveByStatus(statusIDs []int, now time.Time) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.byID {
		for _, s := range statusIDs {
			if q.StatusID == s && q.ExpiresAt().After(now) {
				out = append(out, q)
				break
			}
		}
	}
	return out, nil
}

type fakeTcsRepo struct{ byID map[int64]*entity.QuotationTcs }

func (r *fakeTcsRepo) GetByID(id int64) (*entity.QuotationTcs, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTcsRepo) ListByType(typeID int64) ([]*entity.QuotationTcs, error) { return nil, nil }
func (r *fakeTcsRepo) List() ([]*entity.QuotationTcs, error)                   { return nil, nil }

type fakeDraftRepo struct {
	drafts map[int64]*entity.QuotationDraft
	nextID int64
}

func newFakeDraftRepo() *fakeDraftRepo {
	return &fakeDraftRepo{drafts: map[int64]*entity.QuotationDraft{}}
}

func (r *fakeDraftRepo) Create(d *entity.QuotationDraft) error {
	r.nextID++
	d.ID = r.nextID
	cp := *d
	r.drafts[d.ID] = &cp
	return nil
}

func (r *fakeDraftRepo) UpsertAuto(d *entity.QuotationDraft) error {
	for id, existing := range r.drafts {
		if existing.UserID == d.UserID && existing.Auto {
			d.ID = id
			cp := *d
			r.drafts[id] = &cp
			return nil
		}
	}
	return r.Create(d)
}

func (r *fakeDraftRepo) GetByID(id int64) (*entity.QuotationDraft, error) {
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDraftRepo) ListByUser(userID int64) ([]*entity.QuotationDraft, error) {
	var out []*entity.QuotationDraft
	for _, d := range r.drafts {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDraftRepo) CountManualByUser(userID int64) (int64, error) {
	var n int64
	for _, d := range r.drafts {
		if d.UserID == userID && !d.Auto {
			n++
		}
	}
	return n, nil
}

func (r *fakeDraftRepo) Delete(id int64) error {
	delete(r.drafts, id)
	return nil
}

func (r *fakeDraftRepo) DeleteAutoByUser(userID int64) error {
	for id, d := range r.drafts {
		if d.UserID == userID && d.Auto {
			delete(r.drafts, id)
		}
	}
	return nil
}

type fakeTagRepo struct{ tags []*entity.QuotationTag }

func (r *fakeTagRepo) Create(t *entity.QuotationTag) error {
	t.ID = int64(len(r.tags) + 1)
	r.tags = append(r.tags, t)
	return nil
}

func (r *fakeTagRepo) ListByQuotation(quotationID string) ([]*entity.QuotationTag, error) {
	var out []*entity.QuotationTag
	for _, t := range r.tags {
		if t.QuotationID == quotationID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) ListByTaggedUser(userID int64, limit, offset int) ([]*entity.QuotationTag, error) {
	return nil, nil
}

type fakeUserRepo struct{ users map[int64]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error { return nil }

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return nil, nil }

func (r *fakeUserRepo) GetByCoUserID(coUserID string) (*entity.User, error) {
	for _, u := range r.users {
		if u.CoUserID == coUserID {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error                    { return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(id int64) error                          { return nil }

type fakeNotificationRepo struct{ notifications []*entity.Notification }

func (r *fakeNotificationRepo) Create(n *entity.Notification) error {
	n.ID = int64(len(r.notifications) + 1)
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID int64, limit, offset int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) CountUnread(userID int64) (int64, error) { return 0, nil }
func (r *fakeNotificationRepo) MarkRead(id, userID int64) error         { return nil }
func (r *fakeNotificationRepo) MarkAllRead(userID int64) error          { return nil }

// --- fixture ---

type fixture struct {
	uc        *UseCase
	quotRepo  *fakeQuotationRepo
	draftRepo *fakeDraftRepo
	tagRepo   *fakeTagRepo
	notifRepo *fakeNotificationRepo
	user      *entity.User
	other     *entity.User
}

func intPtrT(v int) *int { return &v }

func decPtrT(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newFixture() *fixture {
	quotRepo := newFakeQuotationRepo()
	grace := 30
	tcsRepo := &fakeTcsRepo{byID: map[int64]*entity.QuotationTcs{
		1: {
			ID:               1,
			TypeID:           entity.QuotationTypeSupply,
			DeliveryDays:     14,
			ValidityDays:     30,
			PaymentGraceDays: &grace,
			VatPercentage:    18,
			PaymentWords:     "Payment due {payment_grace_days_phrase}.",
			ValidityWords:    "Valid for {validity_days} days.",
		},
	}}
	draftRepo := newFakeDraftRepo()
	tagRepo := &fakeTagRepo{}
	notifRepo := &fakeNotificationRepo{}
	user := &entity.User{ID: 1, CoUserID: "EMP/0001", Email: "ana@example.com", FirstName: "Ana", LastName: "Ruiz"}
	other := &entity.User{ID: 2, CoUserID: "EMP/0002", Email: "luis@example.com", FirstName: "Luis"}
	userRepo := &fakeUserRepo{users: map[int64]*entity.User{1: user, 2: other}}

	return &fixture{
		uc:        NewUseCase(quotRepo, tcsRepo, draftRepo, tagRepo, userRepo, notifRepo),
		quotRepo:  quotRepo,
		draftRepo: draftRepo,
		tagRepo:   tagRepo,
		notifRepo: notifRepo,
		user:      user,
		other:     other,
	}
}

func validCreateRequest() dto.CreateQuotationRequest {
	return dto.CreateQuotationRequest{
		TypeID:     entity.QuotationTypeSupply,
		CategoryID: 2,
		CurrencyID: 1,
		TcsID:      1,
		Client:     dto.QuotationClientRequest{Name: "ACME Corp", Email: "buyer@acme.example"},
		Items: []dto.QuotationLineItemRequest{
			{Name: "Steel pipe", Quantity: decPtrT("2"), Units: "pcs", UnitPrice: decPtrT("100.25")},
			{Name: "Bolts", Quantity: decPtrT("1.5"), Units: "box", UnitPrice: decPtrT("80")},
		},
	}
}

// --- tests ---

func TestCreateQuotation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	quotation, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)

	assert.Regexp(t, `^Q\d{9}$`, quotation.QuotationID)
	assert.Equal(t, entity.QuotationStatusCreated, quotation.StatusID)
	assert.Equal(t, f.user.CoUserID, quotation.CoUserID)
	assert.Equal(t, 30, quotation.ValidityDays, "sin edición usa la validez de la plantilla")
	require.NotNil(t, quotation.PaymentGraceDays)
	assert.Equal(t, 30, *quotation.PaymentGraceDays)

	// 320.50 + 18% = 378.19 -> redondeado hacia arriba
	assert.True(t, quotation.SubTotal.Equal(decimal.RequireFromString("320.50")))
	assert.True(t, quotation.GrandTotal.Equal(decimal.RequireFromString("379")))

	stored, err := f.quotRepo.GetByQuotationID(quotation.QuotationID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.LineItems, 2)
}

func TestCreateQuotation_BorraAutoBorrador(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.SaveAutoDraft(ctx, f.user.ID, json.RawMessage(`{"wip":true}`))
	require.NoError(t, err)

	_, err = f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)

	drafts, err := f.uc.ListDrafts(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, drafts, "el auto-borrador se elimina al emitir")
}

func TestCreateQuotation_AcumulaErroresDeValidacion(t *testing.T) {
	f := newFixture()

	req := validCreateRequest()
	req.Client = dto.QuotationClientRequest{Email: "basura"} // sin nombre y con email inválido
	req.Items = nil                                          // sin líneas

	_, err := f.uc.CreateQuotation(context.Background(), f.user, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var errs domain.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.GreaterOrEqual(t, len(errs), 3, "reporta todos los orígenes a la vez: %v", errs)
}

func TestCreateQuotation_TcsEditados(t *testing.T) {
	f := newFixture()

	req := validCreateRequest()
	req.EditTcs = true
	req.EditedValidityDays = intPtrT(45)
	req.EditedDeliveryDays = intPtrT(7)
	req.EditedPaymentGraceDays = intPtrT(0)

	quotation, err := f.uc.CreateQuotation(context.Background(), f.user, req)
	require.NoError(t, err)

	assert.True(t, quotation.TcsEdited)
	assert.Equal(t, 45, quotation.ValidityDays)
	require.NotNil(t, quotation.PaymentGraceDays)
	assert.Equal(t, 0, *quotation.PaymentGraceDays)
}

func TestCreateQuotation_IdsDecrecientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)
	second, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.QuotationID, second.QuotationID)
	assert.Less(t, second.QuotationID, first.QuotationID, "el contador mensual es inverso")
}

func TestUpdateStatus(t *testing.T) {
	newQuotation := func(f *fixture) *entity.Quotation {
		q, err := f.uc.CreateQuotation(context.Background(), f.user, validCreateRequest())
		require.NoError(t, err)
		return q
	}

	t.Run("created a sent", func(t *testing.T) {
		f := newFixture()
		q := newQuotation(f)

		require.NoError(t, f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "sent"))
		stored, _ := f.quotRepo.GetByQuotationID(q.QuotationID)
		assert.Equal(t, entity.QuotationStatusSent, stored.StatusID)
	})

	t.Run("solo el emisor puede cambiarla", func(t *testing.T) {
		f := newFixture()
		q := newQuotation(f)

		err := f.uc.UpdateStatus(context.Background(), f.other, q.QuotationID, "sent")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("repetir el estado es conflicto", func(t *testing.T) {
		f := newFixture()
		q := newQuotation(f)

		require.NoError(t, f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "sent"))
		err := f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "sent")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("created y expired no son destinos validos", func(t *testing.T) {
		f := newFixture()
		q := newQuotation(f)

		assert.ErrorIs(t, f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "created"), domain.ErrInvalidInput)
		assert.ErrorIs(t, f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "expired"), domain.ErrInvalidInput)
	})

	t.Run("una expirada no se toca", func(t *testing.T) {
		f := newFixture()
		q := newQuotation(f)
		f.quotRepo.byID[q.QuotationID].Time = time.Now().Add(-60 * 24 * time.Hour)

		err := f.uc.UpdateStatus(context.Background(), f.user, q.QuotationID, "accepted")
		assert.ErrorIs(t, err, domain.ErrQuotationExpired)
	})

	t.Run("id con forma invalida", func(t *testing.T) {
		f := newFixture()
		err := f.uc.UpdateStatus(context.Background(), f.user, "garbage", "sent")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestExpireOverdue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	fresh, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)
	stale, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)
	f.quotRepo.byID[stale.QuotationID].Time = time.Now().Add(-45 * 24 * time.Hour)

	expired, err := f.uc.ExpireOverdue(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	assert.Equal(t, entity.QuotationStatusExpired, f.quotRepo.byID[stale.QuotationID].StatusID)
	assert.Equal(t, entity.QuotationStatusCreated, f.quotRepo.byID[fresh.QuotationID].StatusID)
}

func TestDrafts(t *testing.T) {
	t.Run("tope de borradores manuales", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		for i := 0; i < MaxDraftsPerUser; i++ {
			_, err := f.uc.SaveDraft(ctx, f.user.ID, json.RawMessage(fmt.Sprintf(`{"n":%d}`, i)))
			require.NoError(t, err)
		}
		_, err := f.uc.SaveDraft(ctx, f.user.ID, json.RawMessage(`{"n":5}`))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("auto-borrador unico por usuario", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		_, err := f.uc.SaveAutoDraft(ctx, f.user.ID, json.RawMessage(`{"v":1}`))
		require.NoError(t, err)
		_, err = f.uc.SaveAutoDraft(ctx, f.user.ID, json.RawMessage(`{"v":2}`))
		require.NoError(t, err)

		drafts, err := f.uc.ListDrafts(ctx, f.user.ID)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.JSONEq(t, `{"v":2}`, string(drafts[0].Payload))
	})

	t.Run("no se puede borrar el borrador de otro", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()

		draft, err := f.uc.SaveDraft(ctx, f.user.ID, json.RawMessage(`{}`))
		require.NoError(t, err)

		err = f.uc.DeleteDraft(ctx, f.other.ID, draft.ID)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		require.NoError(t, f.uc.DeleteDraft(ctx, f.user.ID, draft.ID))
	})
}

func TestTagUsers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	q, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)

	err = f.uc.TagUsers(ctx, f.user, q.QuotationID, []int64{f.other.ID}, "Por favor revisa los precios")
	require.NoError(t, err)

	tags, err := f.uc.ListTags(ctx, q.QuotationID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, f.other.ID, tags[0].TaggedUserID)
	assert.Equal(t, f.user.CoUserID, tags[0].TaggedBy)

	require.Len(t, f.notifRepo.notifications, 1)
	notif := f.notifRepo.notifications[0]
	assert.Equal(t, f.other.ID, notif.UserID)
	assert.Contains(t, notif.Message, "tagged by Ana Ruiz (EMP/0001)")
	assert.Contains(t, notif.Message, q.QuotationID)
	assert.Equal(t, q.QuotationID, notif.ActionData)
}

func TestFollowupReminders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	svc := NewFollowupService(f.uc, nil, log)

	fresh, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)
	halfway, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)
	urgent, err := f.uc.CreateQuotation(ctx, f.user, validCreateRequest())
	require.NoError(t, err)

	// validez de 30 días: a mitad de plazo toca aviso, con <=1 día urgente
	f.quotRepo.byID[halfway.QuotationID].Time = time.Now().Add(-20 * 24 * time.Hour)
	f.quotRepo.byID[urgent.QuotationID].Time = time.Now().Add(-29*24*time.Hour - 12*time.Hour)

	sent, err := svc.SendReminders(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)

	titles := map[string]string{}
	for _, n := range f.notifRepo.notifications {
		titles[n.ActionData] = n.Title
	}
	assert.Equal(t, "Followup Reminder", titles[halfway.QuotationID])
	assert.Equal(t, "Urgent Reminder", titles[urgent.QuotationID])
	assert.NotContains(t, titles, fresh.QuotationID)
}
