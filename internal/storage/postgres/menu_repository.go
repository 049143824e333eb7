package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type menuRepository struct {
	db *sql.DB
}

// NewMenuRepository создаёт PostgreSQL-реализацию MenuRepository.
func NewMenuRepository(store *Store) domain.MenuRepository {
	return &menuRepository{db: store.DB()}
}

func (r *menuRepository) Categories() ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name
		FROM categories
		ORDER BY id
	`)
	if err != nil {
		return nil, domain.StorageFailure("list categories", err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, domain.StorageFailure("scan category row", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate category rows", err)
	}
	return result, nil
}

func (r *menuRepository) CreateCategory(name string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.PreconditionFailed("category", 0, "category name already exists")
		}
		return 0, domain.StorageFailure("insert category", err)
	}
	return id, nil
}

func (r *menuRepository) CategoryExists(id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, domain.StorageFailure("check category", err)
	}
	return exists, nil
}

func (r *menuRepository) CreateItem(item domain.MenuItem) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, price_cents, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, item.CategoryID, item.Name, item.PriceCents, item.Active).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.NotFound("category", item.CategoryID)
		}
		return 0, domain.StorageFailure("insert menu item", err)
	}
	return id, nil
}

func (r *menuRepository) GetItem(id int64) (domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.MenuItem
	err := r.db.QueryRowContext(ctx, `
		SELECT mi.id, mi.category_id, mi.name, mi.price_cents, mi.active, c.name
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.id = $1
	`, id).Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceCents, &item.Active, &item.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MenuItem{}, domain.NotFound("menu item", id)
		}
		return domain.MenuItem{}, domain.StorageFailure("select menu item", err)
	}
	return item, nil
}

func (r *menuRepository) ListActiveItems() ([]domain.MenuItem, error) {
	return r.queryItems(`
		SELECT mi.id, mi.category_id, mi.name, mi.price_cents, mi.active, c.name
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.active
		ORDER BY c.name, mi.name
	`)
}

func (r *menuRepository) ListItemsByCategory(categoryID int64) ([]domain.MenuItem, error) {
	return r.queryItems(`
		SELECT mi.id, mi.category_id, mi.name, mi.price_cents, mi.active, c.name
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.category_id = $1
		ORDER BY mi.name
	`, categoryID)
}

func (r *menuRepository) SearchItemsByName(term string) ([]domain.MenuItem, error) {
	return r.queryItems(`
		SELECT mi.id, mi.category_id, mi.name, mi.price_cents, mi.active, c.name
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.name ILIKE '%' || $1 || '%'
		ORDER BY c.name, mi.name
	`, term)
}

func (r *menuRepository) SearchItemsByPriceRange(minCents, maxCents int64) ([]domain.MenuItem, error) {
	return r.queryItems(`
		SELECT mi.id, mi.category_id, mi.name, mi.price_cents, mi.active, c.name
		FROM menu_items mi
		JOIN categories c ON c.id = mi.category_id
		WHERE mi.price_cents BETWEEN $1 AND $2
		ORDER BY mi.price_cents, mi.name
	`, minCents, maxCents)
}

func (r *menuRepository) UpdateItemPrice(id int64, priceCents int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET price_cents = $1
		WHERE id = $2
	`, priceCents, id)
	if err != nil {
		return domain.StorageFailure("update menu item price", err)
	}
	return requireAffected(res, "menu item", id)
}

func (r *menuRepository) SetItemActive(id int64, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET active = $1
		WHERE id = $2
	`, active, id)
	if err != nil {
		return domain.StorageFailure("update menu item active flag", err)
	}
	return requireAffected(res, "menu item", id)
}

func (r *menuRepository) queryItems(query string, args ...any) ([]domain.MenuItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageFailure("list menu items", err)
	}
	defer rows.Close()

	result := make([]domain.MenuItem, 0)
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.PriceCents, &item.Active, &item.CategoryName); err != nil {
			return nil, domain.StorageFailure("scan menu item row", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate menu item rows", err)
	}
	return result, nil
}

var _ domain.MenuRepository = (*menuRepository)(nil)
