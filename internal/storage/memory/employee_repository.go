package memory

import (
	"sort"
	"strings"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type employeeRepository struct {
	store *Store
}

// NewEmployeeRepository возвращает in-memory реализацию EmployeeRepository.
func NewEmployeeRepository(store *Store) domain.EmployeeRepository {
	return &employeeRepository{store: store}
}

func (r *employeeRepository) Create(e domain.Employee) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEmployeeID++
	e.ID = s.nextEmployeeID
	s.employees[e.ID] = e
	return e.ID, nil
}

func (r *employeeRepository) Get(id int64) (domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return domain.Employee{}, domain.NotFound("employee", id)
	}
	return e, nil
}

func (r *employeeRepository) List() ([]domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *employeeRepository) ListAvailable() ([]domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Employee, 0)
	for _, e := range s.employees {
		if e.Available {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *employeeRepository) SearchByName(term string) ([]domain.Employee, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	result := make([]domain.Employee, 0)
	for _, e := range s.employees {
		if strings.Contains(strings.ToLower(e.Name), term) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *employeeRepository) Update(e domain.Employee) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[e.ID]; !ok {
		return domain.NotFound("employee", e.ID)
	}
	s.employees[e.ID] = e
	return nil
}

func (r *employeeRepository) SetAvailability(id int64, available bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.employees[id]
	if !ok {
		return domain.NotFound("employee", id)
	}
	e.Available = available
	s.employees[id] = e
	return nil
}

func (r *employeeRepository) Delete(id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return domain.NotFound("employee", id)
	}
	delete(s.employees, id)
	return nil
}

var _ domain.EmployeeRepository = (*employeeRepository)(nil)
