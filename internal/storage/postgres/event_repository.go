package postgres

import (
	"context"
	"database/sql"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type orderEventRepository struct {
	db *sql.DB
}

// NewOrderEventRepository создаёт PostgreSQL-реализацию OrderEventRepository.
func NewOrderEventRepository(store *Store) domain.OrderEventRepository {
	return &orderEventRepository{db: store.DB()}
}

func (r *orderEventRepository) Append(ev domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO order_events (id, order_id, event_type, from_status, to_status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ev.ID, ev.OrderID, ev.Type, string(ev.FromStatus), string(ev.ToStatus), ev.OccurredAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("order", ev.OrderID)
		}
		return domain.StorageFailure("insert order event", err)
	}
	return nil
}

func (r *orderEventRepository) ListByOrder(orderID int64) ([]domain.OrderEvent, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, event_type, from_status, to_status, occurred_at
		FROM order_events
		WHERE order_id = $1
		ORDER BY occurred_at, id
	`, orderID)
	if err != nil {
		return nil, domain.StorageFailure("list order events", err)
	}
	defer rows.Close()

	result := make([]domain.OrderEvent, 0)
	for rows.Next() {
		var (
			ev   domain.OrderEvent
			from string
			to   string
		)
		if err := rows.Scan(&ev.ID, &ev.OrderID, &ev.Type, &from, &to, &ev.OccurredAt); err != nil {
			return nil, domain.StorageFailure("scan order event", err)
		}
		ev.FromStatus = domain.OrderStatus(from)
		ev.ToStatus = domain.OrderStatus(to)
		result = append(result, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate order events", err)
	}
	return result, nil
}

var _ domain.OrderEventRepository = (*orderEventRepository)(nil)
