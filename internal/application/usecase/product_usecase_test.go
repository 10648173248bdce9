package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

type fakeProductRepo struct {
	byID   map[int64]*entity.Product
	nextID int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: map[int64]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode int64) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.byID[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStockSummary(productID, quantity int64, status int, updatedBy string) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	p.Status = status
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) UpdatePurchasePricing(productID int64, buyingPrice decimal.Decimal, markupPercentage int64, updatedBy string) error {
	p, ok := r.byID[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.BuyingPrice = buyingPrice
	p.MarkupPercentage = markupPercentage
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.byID {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.byID, id)
	return nil
}

type fakeCategoryRepo struct{ byID map[int64]*entity.Category }

func (r *fakeCategoryRepo) Create(c *entity.Category) error { return nil }
func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *fakeCategoryRepo) GetByName(name string) (*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) List() ([]*entity.Category, error)               { return nil, nil }
func (r *fakeCategoryRepo) Delete(id int64) error                           { return nil }

type fakeMovementExistence struct{ withMovements map[int64]bool }

func (r *fakeMovementExistence) Create(m *entity.StockMovement) error { return nil }
func (r *fakeMovementExistence) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementExistence) ListByPoint(pointID int64, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementExistence) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *fakeMovementExistence) ExistsForProduct(productID int64) (bool, error) {
	return r.withMovements[productID], nil
}

func newProductFixture() (*ProductUseCase, *fakeProductRepo, *fakeMovementExistence) {
	repo := newFakeProductRepo()
	categories := &fakeCategoryRepo{byID: map[int64]*entity.Category{
		1: {ID: 1, Name: "Electronics", CreatedAt: time.Now()},
	}}
	movements := &fakeMovementExistence{withMovements: map[int64]bool{}}
	return NewProductUseCase(repo, categories, movements), repo, movements
}

func createRequest() dto.CreateProductRequest {
	min := int64(10)
	return dto.CreateProductRequest{
		Name:         "Cable HDMI 2m",
		Barcode:      7791234567890,
		UnitID:       1,
		CategoryID:   1,
		CurrencyID:   1,
		BuyingPrice:  decimal.NewFromInt(8),
		SellingPrice: decimal.NewFromInt(12),
		MinQuantity:  &min,
	}
}

func TestProductCreate(t *testing.T) {
	uc, _, _ := newProductFixture()

	resp, err := uc.Create(createRequest(), "EMP/0001")
	require.NoError(t, err)

	assert.Regexp(t, `^ELE-\d{12}-[A-Z0-9]{3}$`, resp.SKU, "SKU con prefijo de la categoría")
	assert.Equal(t, int64(0), resp.Quantity)
	assert.Equal(t, entity.ProductStatusLow, resp.Status, "sin stock arranca en low")
	assert.Equal(t, "low", resp.StatusKey)
	assert.Equal(t, int64(50), resp.MarkupPercentage, "margen de 8 a 12 es 50%")
}

func TestProductCreate_Duplicados(t *testing.T) {
	uc, _, _ := newProductFixture()

	_, err := uc.Create(createRequest(), "EMP/0001")
	require.NoError(t, err)

	t.Run("nombre repetido", func(t *testing.T) {
		req := createRequest()
		req.Barcode = 111
		_, err := uc.Create(req, "EMP/0001")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})

	t.Run("barcode repetido", func(t *testing.T) {
		req := createRequest()
		req.Name = "Otro cable"
		_, err := uc.Create(req, "EMP/0001")
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	})
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _ := newProductFixture()

	req := createRequest()
	req.CategoryID = 99
	_, err := uc.Create(req, "EMP/0001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUpdate_RecalculaDerivados(t *testing.T) {
	uc, repo, _ := newProductFixture()

	created, err := uc.Create(createRequest(), "EMP/0001")
	require.NoError(t, err)

	// simula stock repuesto por el libro
	require.NoError(t, repo.UpdateStockSummary(created.ID, 40, entity.ProductStatusModerate, "EMP/0001"))

	newSelling := decimal.NewFromInt(20)
	resp, err := uc.Update(created.ID, dto.UpdateProductRequest{SellingPrice: &newSelling}, "EMP/0002")
	require.NoError(t, err)

	assert.Equal(t, int64(150), resp.MarkupPercentage, "margen de 8 a 20 es 150%")
	assert.Equal(t, int64(40), resp.Quantity, "la cantidad no se toca por update")
	assert.Equal(t, entity.ProductStatusModerate, resp.Status)
}

func TestProductUpdate_PrecioNegativo(t *testing.T) {
	uc, _, _ := newProductFixture()

	created, err := uc.Create(createRequest(), "EMP/0001")
	require.NoError(t, err)

	negative := decimal.NewFromInt(-1)
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{SellingPrice: &negative}, "EMP/0001")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductDelete(t *testing.T) {
	uc, _, movements := newProductFixture()

	created, err := uc.Create(createRequest(), "EMP/0001")
	require.NoError(t, err)

	t.Run("con movimientos no se borra", func(t *testing.T) {
		movements.withMovements[created.ID] = true
		assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrConflict)
	})

	t.Run("sin movimientos se borra", func(t *testing.T) {
		movements.withMovements[created.ID] = false
		require.NoError(t, uc.Delete(created.ID))
		_, err := uc.GetByID(created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
