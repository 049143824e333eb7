package kafka

import "time"

// EventType определяет тип события заказа.
type EventType string

const (
	EventTypeOrderCreated        EventType = "order.created"
	EventTypeOrderStatusChanged  EventType = "order.status_changed"
	EventTypeOrderItemAdded      EventType = "order.item_added"
	EventTypeOrderItemQtyUpdated EventType = "order.item_quantity_updated"
	EventTypeOrderItemRemoved    EventType = "order.item_removed"
	EventTypeOrderDeleted        EventType = "order.deleted"
)

// TopicOrderEvents — топик жизненного цикла заказов.
const TopicOrderEvents = "foodorder.order.events"

// OrderEvent представляет событие заказа на проводе.
type OrderEvent struct {
	EventType  EventType `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status,omitempty"`
	TotalCents int64     `json:"total_cents"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewOrderEvent создаёт событие заказа с текущей отметкой времени.
func NewOrderEvent(eventType EventType, orderID, customerID int64) *OrderEvent {
	return &OrderEvent{
		EventType:  eventType,
		OrderID:    orderID,
		CustomerID: customerID,
		Timestamp:  time.Now(),
	}
}
