package memory

import (
	"sort"
	"sync"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// Store — in-memory хранилище всех таблиц для локальной разработки и тестов.
// Один RWMutex на всё хранилище: пересчёт итога заказа пересекает таблицы
// заказа и каталога, и одиночный замок избавляет от согласования замков.
type Store struct {
	mu sync.RWMutex

	customers  map[int64]domain.Customer
	employees  map[int64]domain.Employee
	categories map[int64]domain.Category
	menuItems  map[int64]domain.MenuItem
	orders     map[int64]domain.Order
	// orderItems: orderID -> menuItemID -> позиция (без display-полей).
	orderItems map[int64]map[int64]domain.OrderItem
	events     map[int64][]domain.OrderEvent

	nextCustomerID int64
	nextEmployeeID int64
	nextCategoryID int64
	nextMenuItemID int64
	nextOrderID    int64
}

// NewStore возвращает пустое хранилище.
func NewStore() *Store {
	return &Store{
		customers:  make(map[int64]domain.Customer),
		employees:  make(map[int64]domain.Employee),
		categories: make(map[int64]domain.Category),
		menuItems:  make(map[int64]domain.MenuItem),
		orders:     make(map[int64]domain.Order),
		orderItems: make(map[int64]map[int64]domain.OrderItem),
		events:     make(map[int64][]domain.OrderEvent),
	}
}

// resolveItem подтягивает отображаемые поля позиции из актуального каталога.
// Вызывается под замком.
func (s *Store) resolveItem(item domain.OrderItem) domain.OrderItem {
	if mi, ok := s.menuItems[item.MenuItemID]; ok {
		item.ItemName = mi.Name
		item.PriceCents = mi.PriceCents
		if cat, ok := s.categories[mi.CategoryID]; ok {
			item.CategoryName = cat.Name
		}
	}
	return item
}

// resolveOrder собирает заказ с позициями и именами. Вызывается под замком.
func (s *Store) resolveOrder(order domain.Order) domain.Order {
	if c, ok := s.customers[order.CustomerID]; ok {
		order.CustomerName = c.Name
	}
	if e, ok := s.employees[order.EmployeeID]; ok {
		order.EmployeeName = e.Name
	}

	lines := s.orderItems[order.ID]
	items := make([]domain.OrderItem, 0, len(lines))
	for _, item := range lines {
		items = append(items, s.resolveItem(item))
	}
	// Порядок как в postgres-реализации: категория, затем название.
	sort.Slice(items, func(i, j int) bool {
		if items[i].CategoryName != items[j].CategoryName {
			return items[i].CategoryName < items[j].CategoryName
		}
		return items[i].ItemName < items[j].ItemName
	})
	order.Items = items
	return order
}

// sumOrderItems считает итог по актуальным ценам каталога. Вызывается под замком.
func (s *Store) sumOrderItems(orderID int64) int64 {
	var sum int64
	for _, item := range s.orderItems[orderID] {
		if mi, ok := s.menuItems[item.MenuItemID]; ok {
			sum += int64(item.Quantity) * mi.PriceCents
		}
	}
	return sum
}
