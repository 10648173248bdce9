package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Adaptadores de los catálogos de apoyo. CRUD plano sobre tablas chicas;
// unicidad violada se reporta como domain.ErrDuplicate.

var (
	_ repository.SupplierRepository       = (*SupplierRepo)(nil)
	_ repository.InventoryPointRepository = (*InventoryPointRepo)(nil)
	_ repository.CategoryRepository       = (*CategoryRepo)(nil)
	_ repository.UnitRepository           = (*UnitRepo)(nil)
	_ repository.CurrencyRepository       = (*CurrencyRepo)(nil)
	_ repository.TagRepository            = (*TagRepo)(nil)
)

// --- proveedores ---

type SupplierRepo struct{ q Querier }

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo { return &SupplierRepo{q: q} }

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO suppliers (name, email, phone, address, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		supplier.Name, supplier.Email, supplier.Phone, supplier.Address,
		supplier.CreatedAt, supplier.UpdatedAt,
	).Scan(&supplier.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, email, phone, address, created_at, updated_at FROM suppliers WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, email, phone, address, created_at, updated_at FROM suppliers WHERE name = $1`, name,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by name: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) Update(supplier *entity.Supplier) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6 WHERE id = $1`,
		supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.Address, supplier.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, email, phone, address, created_at, updated_at
		 FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SupplierRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// --- puntos de inventario ---

type InventoryPointRepo struct{ q Querier }

// NewInventoryPointRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryPointRepository(q Querier) *InventoryPointRepo { return &InventoryPointRepo{q: q} }

func (r *InventoryPointRepo) Create(point *entity.InventoryPoint) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO inventory_points (name, location, created_at) VALUES ($1, $2, $3) RETURNING id`,
		point.Name, point.Location, point.CreatedAt,
	).Scan(&point.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory point: %w", err)
	}
	return nil
}

func (r *InventoryPointRepo) GetByID(id int64) (*entity.InventoryPoint, error) {
	var p entity.InventoryPoint
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, location, created_at FROM inventory_points WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Location, &p.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory point: %w", err)
	}
	return &p, nil
}

func (r *InventoryPointRepo) Update(point *entity.InventoryPoint) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE inventory_points SET name = $2, location = $3 WHERE id = $1`,
		point.ID, point.Name, point.Location,
	)
	if err != nil {
		return fmt.Errorf("update inventory point: %w", err)
	}
	return nil
}

func (r *InventoryPointRepo) List() ([]*entity.InventoryPoint, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, location, created_at FROM inventory_points ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list inventory points: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryPoint
	for rows.Next() {
		var p entity.InventoryPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory point: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *InventoryPointRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM inventory_points WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete inventory point: %w", err)
	}
	return nil
}

// --- categorías ---

type CategoryRepo struct{ q Querier }

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo { return &CategoryRepo{q: q} }

func (r *CategoryRepo) Create(category *entity.Category) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO categories (name, created_at) VALUES ($1, $2) RETURNING id`,
		category.Name, category.CreatedAt,
	).Scan(&category.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, created_at FROM categories WHERE name = $1`, name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List() ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// --- unidades ---

type UnitRepo struct{ q Querier }

// NewUnitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitRepository(q Querier) *UnitRepo { return &UnitRepo{q: q} }

func (r *UnitRepo) Create(unit *entity.Unit) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO units (name, short_name) VALUES ($1, $2) RETURNING id`,
		unit.Name, unit.ShortName,
	).Scan(&unit.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(id int64) (*entity.Unit, error) {
	var u entity.Unit
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, short_name FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.ShortName)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

func (r *UnitRepo) List() ([]*entity.Unit, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name, short_name FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		if err := rows.Scan(&u.ID, &u.Name, &u.ShortName); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM units WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}

// --- monedas ---

type CurrencyRepo struct{ q Querier }

// NewCurrencyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCurrencyRepository(q Querier) *CurrencyRepo { return &CurrencyRepo{q: q} }

func (r *CurrencyRepo) GetByID(id int64) (*entity.Currency, error) {
	var c entity.Currency
	err := r.q.QueryRow(context.Background(),
		`SELECT id, code, name FROM currencies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get currency: %w", err)
	}
	return &c, nil
}

func (r *CurrencyRepo) List() ([]*entity.Currency, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, code, name FROM currencies ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Currency
	for rows.Next() {
		var c entity.Currency
		if err := rows.Scan(&c.ID, &c.Code, &c.Name); err != nil {
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// --- etiquetas ---

type TagRepo struct{ q Querier }

// NewTagRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTagRepository(q Querier) *TagRepo { return &TagRepo{q: q} }

func (r *TagRepo) Create(tag *entity.Tag) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO tags (name) VALUES ($1) RETURNING id`, tag.Name,
	).Scan(&tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *TagRepo) GetByID(id int64) (*entity.Tag, error) {
	var t entity.Tag
	err := r.q.QueryRow(context.Background(), `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return &t, nil
}

func (r *TagRepo) List() ([]*entity.Tag, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()
	var list []*entity.Tag
	for rows.Next() {
		var t entity.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *TagRepo) Delete(id int64) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM tags WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
