package memory

import (
	"sort"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository возвращает in-memory реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(o domain.Order) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[o.CustomerID]; !ok {
		return 0, domain.NotFound("customer", o.CustomerID)
	}
	if _, ok := s.employees[o.EmployeeID]; !ok {
		return 0, domain.NotFound("employee", o.EmployeeID)
	}

	s.nextOrderID++
	o.ID = s.nextOrderID
	o.Items = nil
	s.orders[o.ID] = o
	s.orderItems[o.ID] = make(map[int64]domain.OrderItem)
	return o.ID, nil
}

func (r *orderRepository) Get(id int64) (domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, domain.NotFound("order", id)
	}
	return s.resolveOrder(o), nil
}

func (r *orderRepository) ListAll() ([]domain.Order, error) {
	return r.filterOrders(func(domain.Order) bool { return true })
}

func (r *orderRepository) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return r.filterOrders(func(o domain.Order) bool { return o.CustomerID == customerID })
}

func (r *orderRepository) ListByEmployee(employeeID int64) ([]domain.Order, error) {
	return r.filterOrders(func(o domain.Order) bool { return o.EmployeeID == employeeID })
}

func (r *orderRepository) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return r.filterOrders(func(o domain.Order) bool { return o.Status == status })
}

func (r *orderRepository) CountByCustomer(customerID int64) (int, error) {
	orders, err := r.ListByCustomer(customerID)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (r *orderRepository) CountByEmployee(employeeID int64) (int, error) {
	orders, err := r.ListByEmployee(employeeID)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

func (r *orderRepository) UpdateStatus(id int64, status domain.OrderStatus) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.NotFound("order", id)
	}
	o.Status = status
	s.orders[id] = o
	return nil
}

func (r *orderRepository) UpdateTotal(id int64, totalCents int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return domain.NotFound("order", id)
	}
	o.TotalCents = totalCents
	s.orders[id] = o
	return nil
}

// Delete удаляет позиции, события и заказ; под одним замком удаление атомарно.
func (r *orderRepository) Delete(id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return domain.NotFound("order", id)
	}
	delete(s.orderItems, id)
	delete(s.events, id)
	delete(s.orders, id)
	return nil
}

func (r *orderRepository) AddItem(item domain.OrderItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return r.addItemLocked(item)
}

func (r *orderRepository) AddItems(items []domain.OrderItem) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	// Сначала валидация всех строк, затем вставка: либо все, либо ни одной.
	for _, item := range items {
		if _, ok := s.orders[item.OrderID]; !ok {
			return domain.NotFound("order", item.OrderID)
		}
		if _, ok := s.menuItems[item.MenuItemID]; !ok {
			return domain.NotFound("menu item", item.MenuItemID)
		}
	}
	for _, item := range items {
		if err := r.addItemLocked(item); err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) addItemLocked(item domain.OrderItem) error {
	s := r.store
	if _, ok := s.orders[item.OrderID]; !ok {
		return domain.NotFound("order", item.OrderID)
	}
	if _, ok := s.menuItems[item.MenuItemID]; !ok {
		return domain.NotFound("menu item", item.MenuItemID)
	}
	lines := s.orderItems[item.OrderID]
	if lines == nil {
		lines = make(map[int64]domain.OrderItem)
		s.orderItems[item.OrderID] = lines
	}
	item.ItemName = ""
	item.PriceCents = 0
	item.CategoryName = ""
	lines[item.MenuItemID] = item
	return nil
}

func (r *orderRepository) GetItem(orderID, menuItemID int64) (domain.OrderItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.orderItems[orderID][menuItemID]
	if !ok {
		return domain.OrderItem{}, domain.NotFound("order item", menuItemID)
	}
	return s.resolveItem(item), nil
}

func (r *orderRepository) UpdateItemQuantity(orderID, menuItemID int64, quantity int32) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.orderItems[orderID]
	item, ok := lines[menuItemID]
	if !ok {
		return domain.NotFound("order item", menuItemID)
	}
	item.Quantity = quantity
	lines[menuItemID] = item
	return nil
}

func (r *orderRepository) RemoveItem(orderID, menuItemID int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.orderItems[orderID]
	if _, ok := lines[menuItemID]; !ok {
		return domain.NotFound("order item", menuItemID)
	}
	delete(lines, menuItemID)
	return nil
}

func (r *orderRepository) SumItems(orderID int64) (int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.orders[orderID]; !ok {
		return 0, domain.NotFound("order", orderID)
	}
	return s.sumOrderItems(orderID), nil
}

func (r *orderRepository) filterOrders(keep func(domain.Order) bool) ([]domain.Order, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, o := range s.orders {
		if keep(o) {
			result = append(result, s.resolveOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderedAt.Equal(result[j].OrderedAt) {
			return result[i].OrderedAt.After(result[j].OrderedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
