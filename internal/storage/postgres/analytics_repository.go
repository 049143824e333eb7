package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type analyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository создаёт PostgreSQL-реализацию AnalyticsRepository.
func NewAnalyticsRepository(store *Store) domain.AnalyticsRepository {
	return &analyticsRepository{db: store.DB()}
}

// StatusStats группирует заказы по статусу; строки идут в порядке жизненного цикла.
func (r *analyticsRepository) StatusStats() ([]domain.StatusStat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(AVG(total_cents), 0)::BIGINT, COALESCE(SUM(total_cents), 0)
		FROM orders
		GROUP BY status
		ORDER BY CASE status
			WHEN 'PENDING' THEN 1
			WHEN 'ACCEPTED' THEN 2
			WHEN 'PREPARING' THEN 3
			WHEN 'COMPLETED' THEN 4
			WHEN 'CANCELLED' THEN 5
		END
	`)
	if err != nil {
		return nil, domain.StorageFailure("query status stats", err)
	}
	defer rows.Close()

	result := make([]domain.StatusStat, 0)
	for rows.Next() {
		var (
			stat   domain.StatusStat
			status string
		)
		if err := rows.Scan(&status, &stat.OrderCount, &stat.AvgCents, &stat.RevenueCents); err != nil {
			return nil, domain.StorageFailure("scan status stat", err)
		}
		stat.Status = domain.OrderStatus(status)
		result = append(result, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate status stats", err)
	}
	return result, nil
}

// TodayStats считает заказы за текущий день; выручка учитывает только COMPLETED.
func (r *analyticsRepository) TodayStats() (domain.TodayStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var stats domain.TodayStats
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'COMPLETED'),
		       COALESCE(SUM(total_cents) FILTER (WHERE status = 'COMPLETED'), 0)
		FROM orders
		WHERE ordered_at >= CURRENT_DATE
		  AND ordered_at < CURRENT_DATE + INTERVAL '1 day'
	`).Scan(&stats.Orders, &stats.CompletedOrders, &stats.RevenueCents)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.TodayStats{}, domain.StorageFailure("query today stats", err)
	}
	return stats, nil
}

// PopularItems возвращает топ позиций по проданному количеству без учёта
// отменённых заказов.
func (r *analyticsRepository) PopularItems(limit int) ([]domain.PopularItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := `
		SELECT mi.name, cat.name, SUM(oi.quantity), COUNT(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status <> 'CANCELLED'
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		JOIN categories cat ON cat.id = mi.category_id
		GROUP BY mi.id, mi.name, cat.name
		ORDER BY SUM(oi.quantity) DESC, mi.name
	`

	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx, query+` LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, domain.StorageFailure("query popular items", err)
	}
	defer rows.Close()

	result := make([]domain.PopularItem, 0)
	for rows.Next() {
		var item domain.PopularItem
		if err := rows.Scan(&item.ItemName, &item.CategoryName, &item.TotalOrdered, &item.OrderCount); err != nil {
			return nil, domain.StorageFailure("scan popular item", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate popular items", err)
	}
	return result, nil
}

// CategorySales агрегирует продажи по категориям меню по актуальным ценам каталога.
func (r *analyticsRepository) CategorySales() ([]domain.CategorySale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT cat.name,
		       SUM(oi.quantity),
		       SUM(oi.quantity * mi.price_cents),
		       COUNT(DISTINCT mi.id),
		       COUNT(DISTINCT oi.order_id)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status <> 'CANCELLED'
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		JOIN categories cat ON cat.id = mi.category_id
		GROUP BY cat.id, cat.name
		ORDER BY SUM(oi.quantity * mi.price_cents) DESC, cat.name
	`)
	if err != nil {
		return nil, domain.StorageFailure("query category sales", err)
	}
	defer rows.Close()

	result := make([]domain.CategorySale, 0)
	for rows.Next() {
		var sale domain.CategorySale
		if err := rows.Scan(&sale.CategoryName, &sale.TotalQty, &sale.RevenueCents, &sale.UniqueItems, &sale.OrderCount); err != nil {
			return nil, domain.StorageFailure("scan category sale", err)
		}
		result = append(result, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate category sales", err)
	}
	return result, nil
}

var _ domain.AnalyticsRepository = (*analyticsRepository)(nil)
