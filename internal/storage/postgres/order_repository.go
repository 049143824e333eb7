package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

const orderSelect = `
	SELECT o.id, o.customer_id, o.employee_id, o.status, o.total_cents, o.ordered_at,
	       c.name, e.name
	FROM orders o
	JOIN customers c ON c.id = o.customer_id
	JOIN employees e ON e.id = o.employee_id
`

const orderItemSelect = `
	SELECT oi.order_id, oi.menu_item_id, oi.quantity, mi.name, mi.price_cents, cat.name
	FROM order_items oi
	JOIN menu_items mi ON mi.id = oi.menu_item_id
	JOIN categories cat ON cat.id = mi.category_id
`

func (r *orderRepository) Create(o domain.Order) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, employee_id, status, total_cents, ordered_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, o.CustomerID, o.EmployeeID, string(o.Status), o.TotalCents, o.OrderedAt).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, mapOrderFKViolation(err, o)
		}
		return 0, domain.StorageFailure("insert order", err)
	}
	return id, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var (
		o      domain.Order
		status string
	)
	err := r.db.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id).Scan(
		&o.ID, &o.CustomerID, &o.EmployeeID, &status, &o.TotalCents, &o.OrderedAt,
		&o.CustomerName, &o.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.NotFound("order", id)
		}
		return domain.Order{}, domain.StorageFailure("select order", err)
	}
	o.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *orderRepository) ListAll() ([]domain.Order, error) {
	return r.queryOrders(orderSelect + ` ORDER BY o.ordered_at DESC, o.id DESC`)
}

func (r *orderRepository) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return r.queryOrders(orderSelect+` WHERE o.customer_id = $1 ORDER BY o.ordered_at DESC, o.id DESC`, customerID)
}

func (r *orderRepository) ListByEmployee(employeeID int64) ([]domain.Order, error) {
	return r.queryOrders(orderSelect+` WHERE o.employee_id = $1 ORDER BY o.ordered_at DESC, o.id DESC`, employeeID)
}

func (r *orderRepository) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return r.queryOrders(orderSelect+` WHERE o.status = $1 ORDER BY o.ordered_at DESC, o.id DESC`, string(status))
}

func (r *orderRepository) CountByCustomer(customerID int64) (int, error) {
	return r.countOrders(`SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID)
}

func (r *orderRepository) CountByEmployee(employeeID int64) (int, error) {
	return r.countOrders(`SELECT COUNT(*) FROM orders WHERE employee_id = $1`, employeeID)
}

func (r *orderRepository) UpdateStatus(id int64, status domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1
		WHERE id = $2
	`, string(status), id)
	if err != nil {
		return domain.StorageFailure("update order status", err)
	}
	return requireAffected(res, "order", id)
}

func (r *orderRepository) UpdateTotal(id int64, totalCents int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET total_cents = $1
		WHERE id = $2
	`, totalCents, id)
	if err != nil {
		return domain.StorageFailure("update order total", err)
	}
	return requireAffected(res, "order", id)
}

// Delete удаляет события, позиции и заказ одной транзакцией.
func (r *orderRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageFailure("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_events WHERE order_id = $1`, id); err != nil {
		return domain.StorageFailure("delete order events", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return domain.StorageFailure("delete order items", err)
	}

	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return domain.StorageFailure("delete order", err)
	}
	if err = requireAffected(res, "order", id); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return domain.StorageFailure("commit delete order", err)
	}
	return nil
}

func (r *orderRepository) AddItem(item domain.OrderItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.insertItem(ctx, r.db.ExecContext, item)
}

// AddItems вставляет набор позиций одной транзакцией: либо все, либо ни одной.
func (r *orderRepository) AddItems(items []domain.OrderItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StorageFailure("begin tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, item := range items {
		if err = r.insertItem(ctx, tx.ExecContext, item); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.StorageFailure("commit add order items", err)
	}
	return nil
}

type execFunc func(ctx context.Context, query string, args ...any) (sql.Result, error)

// insertItem записывает позицию; повторная вставка той же позиции перезаписывает
// количество.
func (r *orderRepository) insertItem(ctx context.Context, exec execFunc, item domain.OrderItem) error {
	_, err := exec(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (order_id, menu_item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity
	`, item.OrderID, item.MenuItemID, item.Quantity)
	if err != nil {
		if isForeignKeyViolation(err) {
			return mapItemFKViolation(err, item)
		}
		return domain.StorageFailure("insert order item", err)
	}
	return nil
}

func (r *orderRepository) GetItem(orderID, menuItemID int64) (domain.OrderItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.OrderItem
	err := r.db.QueryRowContext(ctx,
		orderItemSelect+` WHERE oi.order_id = $1 AND oi.menu_item_id = $2`,
		orderID, menuItemID,
	).Scan(&item.OrderID, &item.MenuItemID, &item.Quantity, &item.ItemName, &item.PriceCents, &item.CategoryName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OrderItem{}, domain.NotFound("order item", menuItemID)
		}
		return domain.OrderItem{}, domain.StorageFailure("select order item", err)
	}
	return item, nil
}

func (r *orderRepository) UpdateItemQuantity(orderID, menuItemID int64, quantity int32) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE order_items
		SET quantity = $1
		WHERE order_id = $2 AND menu_item_id = $3
	`, quantity, orderID, menuItemID)
	if err != nil {
		return domain.StorageFailure("update order item quantity", err)
	}
	return requireAffected(res, "order item", menuItemID)
}

func (r *orderRepository) RemoveItem(orderID, menuItemID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM order_items
		WHERE order_id = $1 AND menu_item_id = $2
	`, orderID, menuItemID)
	if err != nil {
		return domain.StorageFailure("delete order item", err)
	}
	return requireAffected(res, "order item", menuItemID)
}

// SumItems считает Σ(quantity × актуальная цена каталога) по позициям заказа.
func (r *orderRepository) SumItems(orderID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var sum int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity * mi.price_cents), 0)
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE o.id = $1
		GROUP BY o.id
	`, orderID).Scan(&sum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFound("order", orderID)
		}
		return 0, domain.StorageFailure("sum order items", err)
	}
	return sum, nil
}

func (r *orderRepository) queryOrders(query string, args ...any) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageFailure("list orders", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var (
			o      domain.Order
			status string
		)
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.EmployeeID, &status, &o.TotalCents, &o.OrderedAt,
			&o.CustomerName, &o.EmployeeName,
		); err != nil {
			return nil, domain.StorageFailure("scan order row", err)
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate order rows", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *orderRepository) countOrders(query string, args ...any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, domain.StorageFailure("count orders", err)
	}
	return count, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx,
		orderItemSelect+` WHERE oi.order_id = $1 ORDER BY cat.name, mi.name`,
		orderID,
	)
	if err != nil {
		return nil, domain.StorageFailure("load order items", err)
	}
	defer rows.Close()

	items := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.OrderID, &item.MenuItemID, &item.Quantity, &item.ItemName, &item.PriceCents, &item.CategoryName); err != nil {
			return nil, domain.StorageFailure("scan order item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate order items", err)
	}
	return items, nil
}

// mapOrderFKViolation определяет по имени ограничения, какая сущность отсутствует.
func mapOrderFKViolation(err error, o domain.Order) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.Contains(pgErr.ConstraintName, "customer") {
			return domain.NotFound("customer", o.CustomerID)
		}
		if strings.Contains(pgErr.ConstraintName, "employee") {
			return domain.NotFound("employee", o.EmployeeID)
		}
	}
	return domain.StorageFailure("insert order", err)
}

func mapItemFKViolation(err error, item domain.OrderItem) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.Contains(pgErr.ConstraintName, "menu_item") {
			return domain.NotFound("menu item", item.MenuItemID)
		}
		if strings.Contains(pgErr.ConstraintName, "order") {
			return domain.NotFound("order", item.OrderID)
		}
	}
	return domain.StorageFailure("insert order item", err)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
