package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// fakeStore almacén en memoria compartido por los repos falsos. El runner de
// transacciones lo clona antes de ejecutar y lo restaura si la función falla,
// imitando el Rollback real.
type fakeStore struct {
	products  map[int64]*entity.Product
	stocks    map[[2]int64]*entity.InventoryStock // clave producto+punto
	movements []*entity.StockMovement
	purchases map[int64]*entity.Purchase
	sales     map[int64]*entity.Sale
	transfers map[int64]*entity.Transfer
	suppliers map[int64]*entity.Supplier
	points    map[int64]*entity.InventoryPoint
	users     map[int64]*entity.User
	nextID    int64

	// failTransferItems simula un fallo a mitad del insert de líneas: la
	// cabecera ya quedó escrita cuando Create devuelve el error.
	failTransferItems error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:  map[int64]*entity.Product{},
		stocks:    map[[2]int64]*entity.InventoryStock{},
		purchases: map[int64]*entity.Purchase{},
		sales:     map[int64]*entity.Sale{},
		transfers: map[int64]*entity.Transfer{},
		suppliers: map[int64]*entity.Supplier{},
		points:    map[int64]*entity.InventoryPoint{},
		users:     map[int64]*entity.User{},
		nextID:    100,
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.nextID = s.nextID
	c.failTransferItems = s.failTransferItems
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.stocks {
		cp := *v
		c.stocks[k] = &cp
	}
	for _, m := range s.movements {
		cp := *m
		c.movements = append(c.movements, &cp)
	}
	for k, v := range s.purchases {
		cp := *v
		c.purchases[k] = &cp
	}
	for k, v := range s.sales {
		cp := *v
		c.sales[k] = &cp
	}
	for k, v := range s.transfers {
		cp := *v
		cp.Items = append([]entity.TransferItem(nil), v.Items...)
		c.transfers[k] = &cp
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	for k, v := range s.points {
		cp := *v
		c.points[k] = &cp
	}
	for k, v := range s.users {
		cp := *v
		c.users[k] = &cp
	}
	return c
}

func (s *fakeStore) restore(from *fakeStore) { *s = *from }

// --- repos falsos ---

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	p.ID = r.s.id()
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(barcode int64) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStockSummary(productID int64, quantity int64, status int, updatedBy string) error {
	p := r.s.products[productID]
	p.Quantity = quantity
	p.Status = status
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) UpdatePurchasePricing(productID int64, buyingPrice decimal.Decimal, markupPercentage int64, updatedBy string) error {
	p := r.s.products[productID]
	p.BuyingPrice = buyingPrice
	p.MarkupPercentage = markupPercentage
	p.UpdatedBy = updatedBy
	return nil
}

func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) ListByCategory(categoryID int64, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.s.products, id)
	return nil
}

type fakeStockRepo struct{ s *fakeStore }

func (r *fakeStockRepo) Get(productID, pointID int64) (*entity.InventoryStock, error) {
	st, ok := r.s.stocks[[2]int64{productID, pointID}]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, pointID int64) (*entity.InventoryStock, error) {
	return r.Get(productID, pointID)
}

func (r *fakeStockRepo) Upsert(stock *entity.InventoryStock) error {
	cp := *stock
	r.s.stocks[[2]int64{stock.ProductID, stock.InventoryPointID}] = &cp
	return nil
}

func (r *fakeStockRepo) ListByProduct(productID int64) ([]*entity.InventoryStock, error) {
	var out []*entity.InventoryStock
	for _, st := range r.s.stocks {
		if st.ProductID == productID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListByPoint(pointID int64) ([]*entity.InventoryStock, error) {
	var out []*entity.InventoryStock
	for _, st := range r.s.stocks {
		if st.InventoryPointID == pointID {
			cp := *st
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) TotalByProduct(productID int64) (int64, error) {
	var total int64
	for _, st := range r.s.stocks {
		if st.ProductID == productID {
			total += st.Quantity
		}
	}
	return total, nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	m.ID = r.s.id()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByPoint(pointID int64, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.InventoryPointID == pointID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByTransaction(transactionID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.TransactionID == transactionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ExistsForProduct(productID int64) (bool, error) {
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

type fakePurchaseRepo struct{ s *fakeStore }

func (r *fakePurchaseRepo) Create(p *entity.Purchase) error {
	p.ID = r.s.id()
	for i := range p.Items {
		p.Items[i].ID = r.s.id()
		p.Items[i].PurchaseID = p.ID
	}
	cp := *p
	r.s.purchases[p.ID] = &cp
	return nil
}

func (r *fakePurchaseRepo) GetByID(id int64) (*entity.Purchase, error) {
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePurchaseRepo) List(limit, offset int) ([]*entity.Purchase, error) { return nil, nil }

func (r *fakePurchaseRepo) ListBySupplier(supplierID int64, limit, offset int) ([]*entity.Purchase, error) {
	return nil, nil
}

type fakeSaleRepo struct{ s *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	sale.ID = r.s.id()
	for i := range sale.Items {
		sale.Items[i].ID = r.s.id()
		sale.Items[i].SaleID = sale.ID
	}
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *fakeSaleRepo) GetBySaleNo(saleNo string) (*entity.Sale, error) {
	for _, sale := range r.s.sales {
		if sale.SaleNo == saleNo {
			cp := *sale
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

type fakeTransferRepo struct{ s *fakeStore }

func (r *fakeTransferRepo) Create(t *entity.Transfer) error {
	t.ID = r.s.id()
	for i := range t.Items {
		t.Items[i].ID = r.s.id()
		t.Items[i].TransferID = t.ID
	}
	cp := *t
	if r.s.failTransferItems != nil {
		// Cabecera escrita, líneas no: el rollback de la tx debe limpiarla
		cp.Items = nil
		r.s.transfers[t.ID] = &cp
		return r.s.failTransferItems
	}
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	r.s.transfers[t.ID] = &cp
	return nil
}

func (r *fakeTransferRepo) GetByID(id int64) (*entity.Transfer, error) {
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Items = append([]entity.TransferItem(nil), t.Items...)
	return &cp, nil
}

func (r *fakeTransferRepo) GetByIDForUpdate(id int64) (*entity.Transfer, error) {
	return r.GetByID(id)
}

func (r *fakeTransferRepo) List(limit, offset int) ([]*entity.Transfer, error) { return nil, nil }

func (r *fakeTransferRepo) ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error) {
	return nil, nil
}

func (r *fakeTransferRepo) ListByAssignedUser(userID int64, limit, offset int) ([]*entity.Transfer, error) {
	return nil, nil
}

func (r *fakeTransferRepo) UpdateStatus(id int64, status string, signatureData string) error {
	t := r.s.transfers[id]
	t.Status = status
	if signatureData != "" {
		t.SignatureData = signatureData
	}
	return nil
}

type fakeSupplierRepo struct{ s *fakeStore }

func (r *fakeSupplierRepo) Create(sup *entity.Supplier) error {
	sup.ID = r.s.id()
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

func (r *fakeSupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

func (r *fakeSupplierRepo) GetByName(name string) (*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(sup *entity.Supplier) error               { return nil }
func (r *fakeSupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Delete(id int64) error { return nil }

type fakePointRepo struct{ s *fakeStore }

func (r *fakePointRepo) Create(p *entity.InventoryPoint) error {
	p.ID = r.s.id()
	cp := *p
	r.s.points[p.ID] = &cp
	return nil
}

func (r *fakePointRepo) GetByID(id int64) (*entity.InventoryPoint, error) {
	p, ok := r.s.points[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePointRepo) Update(p *entity.InventoryPoint) error          { return nil }
func (r *fakePointRepo) List() ([]*entity.InventoryPoint, error)        { return nil, nil }
func (r *fakePointRepo) Delete(id int64) error                          { return nil }

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(u *entity.User) error {
	u.ID = r.s.id()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id int64) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByCoUserID(coUserID string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.CoUserID == coUserID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(u *entity.User) error                  { return nil }
func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) Delete(id int64) error                        { return nil }

// fakeTxRunner simula Commit/Rollback clonando el almacén antes de ejecutar.
// onBegin permite inyectar una escritura concurrente ya confirmada justo antes
// de que la transacción lea; se dispara una sola vez.
type fakeTxRunner struct {
	s       *fakeStore
	onBegin func()
}

func (r *fakeTxRunner) begin() {
	if r.onBegin != nil {
		fn := r.onBegin
		r.onBegin = nil
		fn()
	}
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.InventoryStockRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.begin()
	snapshot := r.s.clone()
	err := fn(&fakeMovementRepo{r.s}, &fakeStockRepo{r.s}, &fakeProductRepo{r.s})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

func (r *fakeTxRunner) RunTrade(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.InventoryStockRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	saleRepo repository.SaleRepository,
	transferRepo repository.TransferRepository,
) error) error {
	r.begin()
	snapshot := r.s.clone()
	err := fn(
		&fakeMovementRepo{r.s}, &fakeStockRepo{r.s}, &fakeProductRepo{r.s},
		&fakePurchaseRepo{r.s}, &fakeSaleRepo{r.s}, &fakeTransferRepo{r.s},
	)
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}
