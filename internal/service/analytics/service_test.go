package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/service/analytics"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()

	customers := memory.NewCustomerRepository(store)
	employees := memory.NewEmployeeRepository(store)
	menu := memory.NewMenuRepository(store)
	orders := memory.NewOrderRepository(store)

	customerID, err := customers.Create(domain.Customer{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	employeeID, err := employees.Create(domain.Employee{Name: "Bob", Available: true})
	require.NoError(t, err)

	mainsID, err := menu.CreateCategory("Mains")
	require.NoError(t, err)
	drinksID, err := menu.CreateCategory("Drinks")
	require.NoError(t, err)
	pizzaID, err := menu.CreateItem(domain.MenuItem{CategoryID: mainsID, Name: "Pizza", PriceCents: 699, Active: true})
	require.NoError(t, err)
	colaID, err := menu.CreateItem(domain.MenuItem{CategoryID: drinksID, Name: "Cola", PriceCents: 250, Active: true})
	require.NoError(t, err)

	completed, err := orders.Create(domain.Order{
		CustomerID: customerID, EmployeeID: employeeID,
		Status: domain.OrderStatusCompleted, OrderedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, orders.AddItem(domain.OrderItem{OrderID: completed, MenuItemID: pizzaID, Quantity: 3}))
	require.NoError(t, orders.AddItem(domain.OrderItem{OrderID: completed, MenuItemID: colaID, Quantity: 1}))
	require.NoError(t, orders.UpdateTotal(completed, 3*699+250))

	cancelled, err := orders.Create(domain.Order{
		CustomerID: customerID, EmployeeID: employeeID,
		Status: domain.OrderStatusCancelled, OrderedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, orders.AddItem(domain.OrderItem{OrderID: cancelled, MenuItemID: colaID, Quantity: 10}))

	return store
}

func TestStatusReport(t *testing.T) {
	svc := analytics.NewService(memory.NewAnalyticsRepository(seedStore(t)), nil)

	stats, err := svc.StatusReport()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	// Строки идут в порядке жизненного цикла: COMPLETED раньше CANCELLED.
	assert.Equal(t, domain.OrderStatusCompleted, stats[0].Status)
	assert.Equal(t, int64(3*699+250), stats[0].RevenueCents)
	assert.Equal(t, domain.OrderStatusCancelled, stats[1].Status)
}

func TestTodayReportCountsCompletedRevenue(t *testing.T) {
	svc := analytics.NewService(memory.NewAnalyticsRepository(seedStore(t)), nil)

	stats, err := svc.TodayReport()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Orders)
	assert.Equal(t, 1, stats.CompletedOrders)
	assert.Equal(t, int64(3*699+250), stats.RevenueCents)
}

func TestPopularItemsSkipCancelled(t *testing.T) {
	svc := analytics.NewService(memory.NewAnalyticsRepository(seedStore(t)), nil)

	items, err := svc.PopularItems(0)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Десять банок из отменённого заказа не считаются.
	assert.Equal(t, "Pizza", items[0].ItemName)
	assert.Equal(t, int64(3), items[0].TotalOrdered)
	assert.Equal(t, "Cola", items[1].ItemName)
	assert.Equal(t, int64(1), items[1].TotalOrdered)
}

func TestCategorySales(t *testing.T) {
	svc := analytics.NewService(memory.NewAnalyticsRepository(seedStore(t)), nil)

	sales, err := svc.CategorySales()
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "Mains", sales[0].CategoryName)
	assert.Equal(t, int64(3*699), sales[0].RevenueCents)
	assert.Equal(t, "Drinks", sales[1].CategoryName)
	assert.Equal(t, int64(250), sales[1].RevenueCents)
}
