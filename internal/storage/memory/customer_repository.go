package memory

import (
	"sort"
	"strings"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type customerRepository struct {
	store *Store
}

// NewCustomerRepository возвращает in-memory реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

func (r *customerRepository) Create(c domain.Customer) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return 0, domain.PreconditionFailed("customer", existing.ID, "email already registered")
		}
	}

	s.nextCustomerID++
	c.ID = s.nextCustomerID
	s.customers[c.ID] = c
	return c.ID, nil
}

func (r *customerRepository) Get(id int64) (domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, domain.NotFound("customer", id)
	}
	return c, nil
}

func (r *customerRepository) GetByEmail(email string) (domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if strings.EqualFold(c.Email, email) {
			return c, nil
		}
	}
	return domain.Customer{}, domain.NotFound("customer", 0)
}

func (r *customerRepository) List() ([]domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *customerRepository) SearchByName(term string) ([]domain.Customer, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	term = strings.ToLower(term)
	result := make([]domain.Customer, 0)
	for _, c := range s.customers {
		if strings.Contains(strings.ToLower(c.Name), term) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *customerRepository) Update(c domain.Customer) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[c.ID]; !ok {
		return domain.NotFound("customer", c.ID)
	}
	for _, existing := range s.customers {
		if existing.ID != c.ID && strings.EqualFold(existing.Email, c.Email) {
			return domain.PreconditionFailed("customer", existing.ID, "email already registered")
		}
	}
	s.customers[c.ID] = c
	return nil
}

func (r *customerRepository) Delete(id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[id]; !ok {
		return domain.NotFound("customer", id)
	}
	delete(s.customers, id)
	return nil
}

func (r *customerRepository) EmailExists(email string, excludeID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.ID != excludeID && strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
