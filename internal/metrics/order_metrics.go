package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики движка заказов.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated   prometheus.Counter
	ordersDeleted   prometheus.Counter
	transitions     *prometheus.CounterVec
	itemMutations   *prometheus.CounterVec
	recalculations  prometheus.Counter
	orderEvents     prometheus.Counter
	eventsPublished prometheus.Counter

	// Гистограмма времени выполнения операций движка
	operationDuration *prometheus.HistogramVec

	// Gauge для заказов в работе (не в терминальном статусе)
	activeOrders prometheus.Gauge
}

// NewOrderMetrics создаёт метрики движка и регистрирует их в реестре по умолчанию.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "foodorder_orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersDeleted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "foodorder_orders_deleted_total",
			Help: "Total number of orders deleted",
		}),
		transitions: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "foodorder_order_status_transitions_total",
			Help: "Total number of order status transitions",
		}, []string{"from", "to"}),
		itemMutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "foodorder_order_item_mutations_total",
			Help: "Total number of order item mutations",
		}, []string{"kind"}),
		recalculations: registerCounter(registerer, prometheus.CounterOpts{
			Name: "foodorder_order_recalculations_total",
			Help: "Total number of order total recalculations",
		}),
		orderEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "foodorder_order_events_total",
			Help: "Total number of order lifecycle events recorded",
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "foodorder_order_events_published_total",
			Help: "Total number of order events published to the broker",
		}),
		operationDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "foodorder_order_operation_duration_seconds",
			Help:    "Duration of order engine operations in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"operation"}),
		activeOrders: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "foodorder_active_orders",
			Help: "Number of orders not yet in a terminal status",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCreated увеличивает счётчик созданных заказов и активные заказы.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
	m.activeOrders.Inc()
}

// RecordOrderDeleted увеличивает счётчик удалённых заказов.
func (m *OrderMetrics) RecordOrderDeleted() {
	m.ordersDeleted.Inc()
	m.activeOrders.Dec()
}

// RecordTransition записывает переход статуса; терминальный переход
// уменьшает количество активных заказов.
func (m *OrderMetrics) RecordTransition(from, to string, terminal bool) {
	m.transitions.WithLabelValues(from, to).Inc()
	if terminal {
		m.activeOrders.Dec()
	}
}

// RecordItemMutation записывает мутацию состава: added, updated или removed.
func (m *OrderMetrics) RecordItemMutation(kind string) {
	m.itemMutations.WithLabelValues(kind).Inc()
}

// RecordRecalculation увеличивает счётчик пересчётов итога.
func (m *OrderMetrics) RecordRecalculation() {
	m.recalculations.Inc()
}

// RecordOrderEvent увеличивает счётчик событий аудита.
func (m *OrderMetrics) RecordOrderEvent() {
	m.orderEvents.Inc()
}

// RecordEventPublished увеличивает счётчик опубликованных в брокер событий.
func (m *OrderMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}

// RecordOperationDuration записывает время выполнения операции движка.
func (m *OrderMetrics) RecordOperationDuration(operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
