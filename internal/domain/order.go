package domain

import "time"

// OrderStatus описывает жизненный цикл заказа в ресторане.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, позиции ещё набираются.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusAccepted — заказ принят сотрудником, позиции ещё можно менять.
	OrderStatusAccepted OrderStatus = "ACCEPTED"
	// OrderStatusPreparing — кухня готовит заказ, состав заморожен.
	OrderStatusPreparing OrderStatus = "PREPARING"
	// OrderStatusCompleted — заказ выдан; терминальный статус.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled — заказ отменён до начала приготовления; терминальный статус.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// statusFlow задаёт допустимые переходы в виде таблицы смежности.
// Отмена возможна только до начала приготовления.
var statusFlow = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAccepted, OrderStatusCancelled},
	OrderStatusAccepted:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// Valid сообщает, входит ли значение в закрытое множество статусов.
func (s OrderStatus) Valid() bool {
	_, ok := statusFlow[s]
	return ok
}

// Terminal сообщает, что дальнейшие переходы из статуса запрещены.
func (s OrderStatus) Terminal() bool {
	next, ok := statusFlow[s]
	return ok && len(next) == 0
}

// Modifiable сообщает, разрешено ли менять состав заказа в этом статусе.
func (s OrderStatus) Modifiable() bool {
	return s == OrderStatusPending || s == OrderStatusAccepted
}

// CanTransitionTo проверяет переход по таблице. Переход в текущий статус
// считается допустимым (no-op).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OrderItem представляет одну позицию заказа. Идентичность составная:
// (OrderID, MenuItemID). Отображаемые поля (название, цена, категория)
// подтягиваются из актуального каталога при чтении и не хранятся в позиции.
type OrderItem struct {
	OrderID    int64
	MenuItemID int64
	// Quantity всегда > 0 в хранилище; обновление в 0 означает удаление позиции.
	Quantity int32

	ItemName     string
	PriceCents   int64
	CategoryName string
}

// SubtotalCents возвращает стоимость позиции по текущей цене каталога.
func (i OrderItem) SubtotalCents() int64 {
	return int64(i.Quantity) * i.PriceCents
}

// Order агрегирует заказ и его позиции.
type Order struct {
	ID         int64
	CustomerID int64
	EmployeeID int64
	Status     OrderStatus
	// TotalCents равен сумме Quantity × актуальная цена каталога по всем
	// позициям; пересчитывается после каждой мутации состава.
	TotalCents int64
	OrderedAt  time.Time
	Items      []OrderItem

	CustomerName string
	EmployeeName string
}

// SumItemsCents суммирует позиции по подтянутым ценам каталога.
func (o Order) SumItemsCents() int64 {
	var sum int64
	for _, item := range o.Items {
		sum += item.SubtotalCents()
	}
	return sum
}

// OrderEvent фиксирует изменение жизненного цикла заказа для аудита.
type OrderEvent struct {
	ID         string
	OrderID    int64
	Type       string
	FromStatus OrderStatus
	ToStatus   OrderStatus
	OccurredAt time.Time
}
