package memory

import "github.com/hiTanyaZhao/food-order-system/internal/domain"

type eventRepository struct {
	store *Store
}

// NewOrderEventRepository возвращает in-memory реализацию OrderEventRepository.
func NewOrderEventRepository(store *Store) domain.OrderEventRepository {
	return &eventRepository{store: store}
}

func (r *eventRepository) Append(ev domain.OrderEvent) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.OrderID] = append(s.events[ev.OrderID], ev)
	return nil
}

func (r *eventRepository) ListByOrder(orderID int64) ([]domain.OrderEvent, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.events[orderID]
	result := make([]domain.OrderEvent, len(stored))
	copy(result, stored)
	return result, nil
}

var _ domain.OrderEventRepository = (*eventRepository)(nil)
