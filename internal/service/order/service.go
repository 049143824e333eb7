package order

import (
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/messaging/kafka"
	"github.com/hiTanyaZhao/food-order-system/internal/metrics"
)

// ItemRequest описывает запрошенную позицию заказа.
type ItemRequest struct {
	MenuItemID int64
	Quantity   int32
}

// Service управляет жизненным циклом заказа: статусами, составом и итогом.
type Service interface {
	Create(customerID, employeeID int64) (domain.Order, error)
	// CreateAutoAssigned выбирает свободного сотрудника автоматически.
	CreateAutoAssigned(customerID int64) (domain.Order, error)

	Get(id int64) (domain.Order, error)
	ListAll() ([]domain.Order, error)
	ListByCustomer(customerID int64) ([]domain.Order, error)
	ListByEmployee(employeeID int64) ([]domain.Order, error)
	ListByStatus(status domain.OrderStatus) ([]domain.Order, error)
	Events(orderID int64) ([]domain.OrderEvent, error)

	// UpdateStatus переводит заказ по таблице переходов; переход в текущий
	// статус — no-op с успехом.
	UpdateStatus(id int64, next domain.OrderStatus) (domain.Order, error)
	Cancel(id int64) (domain.Order, error)
	Complete(id int64) (domain.Order, error)

	AddItem(orderID, menuItemID int64, quantity int32) (domain.Order, error)
	// AddItems добавляет набор позиций атомарно: либо все, либо ни одной.
	AddItems(orderID int64, requests []ItemRequest) (domain.Order, error)
	// UpdateItemQuantity меняет количество; ноль означает удаление позиции.
	UpdateItemQuantity(orderID, menuItemID int64, quantity int32) (domain.Order, error)
	RemoveItem(orderID, menuItemID int64) (domain.Order, error)

	// Delete удаляет заказ целиком; разрешено только в статусе PENDING.
	Delete(id int64) error

	// RecalculateTotal пересчитывает итог по актуальным ценам каталога.
	RecalculateTotal(orderID int64) (int64, error)
}

type service struct {
	orders        domain.OrderRepository
	events        domain.OrderEventRepository
	customers     domain.CustomerRepository
	employees     domain.EmployeeRepository
	menu          domain.MenuRepository
	logger        *log.Entry
	metrics       *metrics.OrderMetrics
	kafkaProducer *kafka.Producer // опциональная публикация событий заказа
	now           func() time.Time
}

// NewService создаёт рабочий экземпляр движка заказов.
func NewService(
	orders domain.OrderRepository,
	events domain.OrderEventRepository,
	customers domain.CustomerRepository,
	employees domain.EmployeeRepository,
	menu domain.MenuRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		orders:    orders,
		events:    events,
		customers: customers,
		employees: employees,
		menu:      menu,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
		now:       time.Now,
	}
}

// NewServiceWithKafka создаёт движок с публикацией событий заказов в Kafka.
func NewServiceWithKafka(
	orders domain.OrderRepository,
	events domain.OrderEventRepository,
	customers domain.CustomerRepository,
	employees domain.EmployeeRepository,
	menu domain.MenuRepository,
	kafkaProducer *kafka.Producer,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		orders:        orders,
		events:        events,
		customers:     customers,
		employees:     employees,
		menu:          menu,
		logger:        logger,
		metrics:       metrics.NewOrderMetrics(),
		kafkaProducer: kafkaProducer,
		now:           time.Now,
	}
}

// NewServiceWithoutMetrics создаёт движок без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	events domain.OrderEventRepository,
	customers domain.CustomerRepository,
	employees domain.EmployeeRepository,
	menu domain.MenuRepository,
	logger *log.Entry,
) Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &service{
		orders:    orders,
		events:    events,
		customers: customers,
		employees: employees,
		menu:      menu,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *service) Create(customerID, employeeID int64) (domain.Order, error) {
	start := s.now()
	defer s.observe("create", start)

	if customerID <= 0 {
		return domain.Order{}, domain.InvalidArgument("customer_id", "must be positive")
	}
	if employeeID <= 0 {
		return domain.Order{}, domain.InvalidArgument("employee_id", "must be positive")
	}

	if _, err := s.customers.Get(customerID); err != nil {
		return domain.Order{}, err
	}
	employee, err := s.employees.Get(employeeID)
	if err != nil {
		return domain.Order{}, err
	}
	if !employee.Available {
		return domain.Order{}, domain.PreconditionFailed("employee", employeeID, "employee is not available")
	}

	id, err := s.orders.Create(domain.Order{
		CustomerID: customerID,
		EmployeeID: employeeID,
		Status:     domain.OrderStatusPending,
		OrderedAt:  s.now(),
	})
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.recordEvent(string(kafka.EventTypeOrderCreated), order.ID, "", order.Status)
	s.publish(kafka.EventTypeOrderCreated, order, "", order.Status)

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"employee_id": employeeID,
	}).Info("order created")

	return order, nil
}

// CreateAutoAssigned назначает первого свободного сотрудника.
func (s *service) CreateAutoAssigned(customerID int64) (domain.Order, error) {
	available, err := s.employees.ListAvailable()
	if err != nil {
		return domain.Order{}, err
	}
	if len(available) == 0 {
		return domain.Order{}, domain.NoAvailableEmployee()
	}
	return s.Create(customerID, available[0].ID)
}

func (s *service) Get(id int64) (domain.Order, error) {
	return s.orders.Get(id)
}

func (s *service) ListAll() ([]domain.Order, error) {
	return s.orders.ListAll()
}

func (s *service) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return s.orders.ListByCustomer(customerID)
}

func (s *service) ListByEmployee(employeeID int64) ([]domain.Order, error) {
	return s.orders.ListByEmployee(employeeID)
}

func (s *service) ListByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, domain.InvalidArgument("status", "unknown order status")
	}
	return s.orders.ListByStatus(status)
}

func (s *service) Events(orderID int64) ([]domain.OrderEvent, error) {
	if _, err := s.orders.Get(orderID); err != nil {
		return nil, err
	}
	return s.events.ListByOrder(orderID)
}

func (s *service) UpdateStatus(id int64, next domain.OrderStatus) (domain.Order, error) {
	start := s.now()
	defer s.observe("update_status", start)

	if !next.Valid() {
		return domain.Order{}, domain.InvalidArgument("status", "unknown order status")
	}

	order, err := s.orders.Get(id)
	if err != nil {
		return domain.Order{}, err
	}

	if order.Status == next {
		// Переход в текущий статус — успешный no-op.
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return domain.Order{}, domain.InvalidTransition(id, order.Status, next)
	}

	if err := s.orders.UpdateStatus(id, next); err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(string(order.Status), string(next), next.Terminal())
	}
	s.recordEvent(string(kafka.EventTypeOrderStatusChanged), id, order.Status, next)

	from := order.Status
	order.Status = next
	s.publish(kafka.EventTypeOrderStatusChanged, order, from, next)

	s.logger.WithFields(log.Fields{
		"order_id": id,
		"from":     string(from),
		"to":       string(next),
	}).Info("order status changed")

	return order, nil
}

func (s *service) Cancel(id int64) (domain.Order, error) {
	return s.UpdateStatus(id, domain.OrderStatusCancelled)
}

func (s *service) Complete(id int64) (domain.Order, error) {
	return s.UpdateStatus(id, domain.OrderStatusCompleted)
}

func (s *service) AddItem(orderID, menuItemID int64, quantity int32) (domain.Order, error) {
	start := s.now()
	defer s.observe("add_item", start)

	if quantity <= 0 {
		return domain.Order{}, domain.InvalidArgument("quantity", "must be positive")
	}

	order, err := s.modifiableOrder(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.requireActiveMenuItem(menuItemID); err != nil {
		return domain.Order{}, err
	}

	// Повторное добавление позиции суммирует количество.
	existing, err := s.orders.GetItem(orderID, menuItemID)
	switch {
	case err == nil:
		if err := s.orders.UpdateItemQuantity(orderID, menuItemID, existing.Quantity+quantity); err != nil {
			return domain.Order{}, err
		}
	case domain.IsNotFound(err):
		if err := s.orders.AddItem(domain.OrderItem{OrderID: orderID, MenuItemID: menuItemID, Quantity: quantity}); err != nil {
			return domain.Order{}, err
		}
	default:
		return domain.Order{}, err
	}

	updated, err := s.finishMutation(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordItemMutation("added")
	}
	s.recordEvent(string(kafka.EventTypeOrderItemAdded), orderID, order.Status, order.Status)
	s.publish(kafka.EventTypeOrderItemAdded, updated, order.Status, order.Status)

	return updated, nil
}

func (s *service) AddItems(orderID int64, requests []ItemRequest) (domain.Order, error) {
	start := s.now()
	defer s.observe("add_items", start)

	if len(requests) == 0 {
		return domain.Order{}, domain.InvalidArgument("items", "must not be empty")
	}

	order, err := s.modifiableOrder(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	// Валидация и слияние с существующими строками до записи.
	merged := make([]domain.OrderItem, 0, len(requests))
	seen := make(map[int64]int)
	for _, req := range requests {
		if req.Quantity <= 0 {
			return domain.Order{}, domain.InvalidArgument("quantity", "must be positive")
		}
		if err := s.requireActiveMenuItem(req.MenuItemID); err != nil {
			return domain.Order{}, err
		}

		if idx, ok := seen[req.MenuItemID]; ok {
			merged[idx].Quantity += req.Quantity
			continue
		}

		quantity := req.Quantity
		existing, err := s.orders.GetItem(orderID, req.MenuItemID)
		switch {
		case err == nil:
			quantity += existing.Quantity
		case domain.IsNotFound(err):
		default:
			return domain.Order{}, err
		}

		seen[req.MenuItemID] = len(merged)
		merged = append(merged, domain.OrderItem{OrderID: orderID, MenuItemID: req.MenuItemID, Quantity: quantity})
	}

	if err := s.orders.AddItems(merged); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.finishMutation(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		for range merged {
			s.metrics.RecordItemMutation("added")
		}
	}
	s.recordEvent(string(kafka.EventTypeOrderItemAdded), orderID, order.Status, order.Status)
	s.publish(kafka.EventTypeOrderItemAdded, updated, order.Status, order.Status)

	return updated, nil
}

func (s *service) UpdateItemQuantity(orderID, menuItemID int64, quantity int32) (domain.Order, error) {
	start := s.now()
	defer s.observe("update_item_quantity", start)

	if quantity < 0 {
		return domain.Order{}, domain.InvalidArgument("quantity", "must not be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(orderID, menuItemID)
	}

	order, err := s.modifiableOrder(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if _, err := s.orders.GetItem(orderID, menuItemID); err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.UpdateItemQuantity(orderID, menuItemID, quantity); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.finishMutation(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordItemMutation("updated")
	}
	s.recordEvent(string(kafka.EventTypeOrderItemQtyUpdated), orderID, order.Status, order.Status)
	s.publish(kafka.EventTypeOrderItemQtyUpdated, updated, order.Status, order.Status)

	return updated, nil
}

func (s *service) RemoveItem(orderID, menuItemID int64) (domain.Order, error) {
	start := s.now()
	defer s.observe("remove_item", start)

	order, err := s.modifiableOrder(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if _, err := s.orders.GetItem(orderID, menuItemID); err != nil {
		return domain.Order{}, err
	}

	if err := s.orders.RemoveItem(orderID, menuItemID); err != nil {
		return domain.Order{}, err
	}

	updated, err := s.finishMutation(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordItemMutation("removed")
	}
	s.recordEvent(string(kafka.EventTypeOrderItemRemoved), orderID, order.Status, order.Status)
	s.publish(kafka.EventTypeOrderItemRemoved, updated, order.Status, order.Status)

	return updated, nil
}

func (s *service) Delete(id int64) error {
	start := s.now()
	defer s.observe("delete", start)

	order, err := s.orders.Get(id)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.NotDeletable(id, order.Status)
	}

	if err := s.orders.Delete(id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordOrderDeleted()
	}
	s.publish(kafka.EventTypeOrderDeleted, order, order.Status, order.Status)

	s.logger.WithField("order_id", id).Info("order deleted")
	return nil
}

// RecalculateTotal пересчитывает итог заказа по актуальным ценам каталога
// и сохраняет его.
func (s *service) RecalculateTotal(orderID int64) (int64, error) {
	sum, err := s.orders.SumItems(orderID)
	if err != nil {
		return 0, err
	}
	if err := s.orders.UpdateTotal(orderID, sum); err != nil {
		return 0, err
	}
	if s.metrics != nil {
		s.metrics.RecordRecalculation()
	}
	return sum, nil
}

// modifiableOrder возвращает заказ, если его состав разрешено менять.
func (s *service) modifiableOrder(orderID int64) (domain.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !order.Status.Modifiable() {
		return domain.Order{}, domain.NotModifiable(orderID, order.Status)
	}
	return order, nil
}

func (s *service) requireActiveMenuItem(menuItemID int64) error {
	item, err := s.menu.GetItem(menuItemID)
	if err != nil {
		return err
	}
	if !item.Active {
		return domain.PreconditionFailed("menu item", menuItemID, "menu item is not active")
	}
	return nil
}

// finishMutation пересчитывает итог и возвращает свежее состояние заказа.
func (s *service) finishMutation(orderID int64) (domain.Order, error) {
	if _, err := s.RecalculateTotal(orderID); err != nil {
		return domain.Order{}, err
	}
	return s.orders.Get(orderID)
}

// recordEvent добавляет запись в аудит; сбой аудита не прерывает операцию.
func (s *service) recordEvent(eventType string, orderID int64, from, to domain.OrderStatus) {
	ev := domain.OrderEvent{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		Type:       eventType,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: s.now(),
	}
	if err := s.events.Append(ev); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   orderID,
			"event_type": eventType,
		}).Warn("failed to record order event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOrderEvent()
	}
}

// publish отправляет событие в Kafka, если producer сконфигурирован;
// ошибки публикации логируются и не прерывают операцию.
func (s *service) publish(eventType kafka.EventType, order domain.Order, from, to domain.OrderStatus) {
	if s.kafkaProducer == nil {
		return
	}

	event := kafka.NewOrderEvent(eventType, order.ID, order.CustomerID)
	event.FromStatus = string(from)
	event.ToStatus = string(to)
	event.TotalCents = order.TotalCents

	if err := s.kafkaProducer.PublishOrderEvent(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   order.ID,
			"event_type": string(eventType),
		}).Warn("failed to publish order event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}

func (s *service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordOperationDuration(operation, s.now().Sub(start))
	}
}

var _ Service = (*service)(nil)
