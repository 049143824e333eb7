package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

const (
	opTimeout = 5 * time.Second

	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{db: store.DB()}
}

func (r *customerRepository) Create(c domain.Customer) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		RETURNING id
	`, c.Name, c.Email, c.Phone).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.PreconditionFailed("customer", 0, "email already registered")
		}
		return 0, domain.StorageFailure("insert customer", err)
	}
	return id, nil
}

func (r *customerRepository) Get(id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.NotFound("customer", id)
		}
		return domain.Customer{}, domain.StorageFailure("select customer", err)
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(email string) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var c domain.Customer
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone
		FROM customers
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.NotFound("customer", 0)
		}
		return domain.Customer{}, domain.StorageFailure("select customer by email", err)
	}
	return c, nil
}

func (r *customerRepository) List() ([]domain.Customer, error) {
	return r.queryCustomers(`
		SELECT id, name, email, phone
		FROM customers
		ORDER BY id
	`)
}

func (r *customerRepository) SearchByName(term string) ([]domain.Customer, error) {
	return r.queryCustomers(`
		SELECT id, name, email, phone
		FROM customers
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, term)
}

func (r *customerRepository) Update(c domain.Customer) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3
		WHERE id = $4
	`, c.Name, c.Email, c.Phone, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.PreconditionFailed("customer", c.ID, "email already registered")
		}
		return domain.StorageFailure("update customer", err)
	}
	return requireAffected(res, "customer", c.ID)
}

func (r *customerRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return domain.StorageFailure("delete customer", err)
	}
	return requireAffected(res, "customer", id)
}

func (r *customerRepository) EmailExists(email string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE LOWER(email) = LOWER($1) AND id <> $2
		)
	`, email, excludeID).Scan(&exists)
	if err != nil {
		return false, domain.StorageFailure("check customer email", err)
	}
	return exists, nil
}

func (r *customerRepository) queryCustomers(query string, args ...any) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageFailure("list customers", err)
	}
	defer rows.Close()

	result := make([]domain.Customer, 0)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, domain.StorageFailure("scan customer row", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate customer rows", err)
	}
	return result, nil
}

// requireAffected превращает отсутствие затронутых строк в KindNotFound.
func requireAffected(res sql.Result, entity string, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StorageFailure("rows affected", err)
	}
	if affected == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
