package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type employeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository создаёт PostgreSQL-реализацию EmployeeRepository.
func NewEmployeeRepository(store *Store) domain.EmployeeRepository {
	return &employeeRepository{db: store.DB()}
}

func (r *employeeRepository) Create(e domain.Employee) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var id int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (name, phone, available)
		VALUES ($1, $2, $3)
		RETURNING id
	`, e.Name, e.Phone, e.Available).Scan(&id)
	if err != nil {
		return 0, domain.StorageFailure("insert employee", err)
	}
	return id, nil
}

func (r *employeeRepository) Get(id int64) (domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var e domain.Employee
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, available
		FROM employees
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Phone, &e.Available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Employee{}, domain.NotFound("employee", id)
		}
		return domain.Employee{}, domain.StorageFailure("select employee", err)
	}
	return e, nil
}

func (r *employeeRepository) List() ([]domain.Employee, error) {
	return r.queryEmployees(`
		SELECT id, name, phone, available
		FROM employees
		ORDER BY id
	`)
}

func (r *employeeRepository) ListAvailable() ([]domain.Employee, error) {
	return r.queryEmployees(`
		SELECT id, name, phone, available
		FROM employees
		WHERE available
		ORDER BY id
	`)
}

func (r *employeeRepository) SearchByName(term string) ([]domain.Employee, error) {
	return r.queryEmployees(`
		SELECT id, name, phone, available
		FROM employees
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY id
	`, term)
}

func (r *employeeRepository) Update(e domain.Employee) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET name = $1, phone = $2, available = $3
		WHERE id = $4
	`, e.Name, e.Phone, e.Available, e.ID)
	if err != nil {
		return domain.StorageFailure("update employee", err)
	}
	return requireAffected(res, "employee", e.ID)
}

func (r *employeeRepository) SetAvailability(id int64, available bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE employees
		SET available = $1
		WHERE id = $2
	`, available, id)
	if err != nil {
		return domain.StorageFailure("update employee availability", err)
	}
	return requireAffected(res, "employee", id)
}

func (r *employeeRepository) Delete(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return domain.StorageFailure("delete employee", err)
	}
	return requireAffected(res, "employee", id)
}

func (r *employeeRepository) queryEmployees(query string, args ...any) ([]domain.Employee, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageFailure("list employees", err)
	}
	defer rows.Close()

	result := make([]domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Available); err != nil {
			return nil, domain.StorageFailure("scan employee row", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageFailure("iterate employee rows", err)
	}
	return result, nil
}

var _ domain.EmployeeRepository = (*employeeRepository)(nil)
