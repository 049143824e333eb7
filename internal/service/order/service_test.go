package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/service/order"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

type fixture struct {
	svc        order.Service
	store      *memory.Store
	menu       domain.MenuRepository
	employees  domain.EmployeeRepository
	customerID int64
	employeeID int64
	pizzaID    int64
	colaID     int64
	inactiveID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()

	customers := memory.NewCustomerRepository(store)
	employees := memory.NewEmployeeRepository(store)
	menu := memory.NewMenuRepository(store)
	orders := memory.NewOrderRepository(store)
	events := memory.NewOrderEventRepository(store)

	customerID, err := customers.Create(domain.Customer{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	employeeID, err := employees.Create(domain.Employee{Name: "Bob", Available: true})
	require.NoError(t, err)

	catID, err := menu.CreateCategory("Mains")
	require.NoError(t, err)
	pizzaID, err := menu.CreateItem(domain.MenuItem{CategoryID: catID, Name: "Pizza", PriceCents: 699, Active: true})
	require.NoError(t, err)
	colaID, err := menu.CreateItem(domain.MenuItem{CategoryID: catID, Name: "Cola", PriceCents: 250, Active: true})
	require.NoError(t, err)
	inactiveID, err := menu.CreateItem(domain.MenuItem{CategoryID: catID, Name: "Retired", PriceCents: 100, Active: true})
	require.NoError(t, err)
	require.NoError(t, menu.SetItemActive(inactiveID, false))

	return &fixture{
		svc:        order.NewServiceWithoutMetrics(orders, events, customers, employees, menu, nil),
		store:      store,
		menu:       menu,
		employees:  employees,
		customerID: customerID,
		employeeID: employeeID,
		pizzaID:    pizzaID,
		colaID:     colaID,
		inactiveID: inactiveID,
	}
}

func (f *fixture) newOrder(t *testing.T) domain.Order {
	t.Helper()
	o, err := f.svc.Create(f.customerID, f.employeeID)
	require.NoError(t, err)
	return o
}

func TestCreateStartsPending(t *testing.T) {
	f := newFixture(t)

	o := f.newOrder(t)
	assert.Equal(t, domain.OrderStatusPending, o.Status)
	assert.Equal(t, int64(0), o.TotalCents)
	assert.Equal(t, "Alice", o.CustomerName)
	assert.Equal(t, "Bob", o.EmployeeName)

	events, err := f.svc.Events(o.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].Type)
	assert.NotEmpty(t, events[0].ID)
}

func TestCreateUnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(404, f.employeeID)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}

func TestCreateInvalidIDs(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(0, f.employeeID)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
	_, err = f.svc.Create(f.customerID, -1)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestCreateRejectsUnavailableEmployee(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.employees.SetAvailability(f.employeeID, false))

	_, err := f.svc.Create(f.customerID, f.employeeID)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	orders, err := f.svc.ListByEmployee(f.employeeID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateAutoAssigned(t *testing.T) {
	f := newFixture(t)

	o, err := f.svc.CreateAutoAssigned(f.customerID)
	require.NoError(t, err)
	assert.Equal(t, f.employeeID, o.EmployeeID)
}

func TestCreateAutoAssignedNoneAvailable(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.employees.SetAvailability(f.employeeID, false))

	_, err := f.svc.CreateAutoAssigned(f.customerID)
	assert.Equal(t, domain.KindNoAvailableEmployee, domain.KindOf(err))
}

func TestStatusHappyPath(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	for _, next := range []domain.OrderStatus{
		domain.OrderStatusAccepted,
		domain.OrderStatusPreparing,
		domain.OrderStatusCompleted,
	} {
		updated, err := f.svc.UpdateStatus(o.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	events, err := f.svc.Events(o.ID)
	require.NoError(t, err)
	assert.Len(t, events, 4) // created + 3 перехода
}

func TestStatusSameIsNoOp(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	updated, err := f.svc.UpdateStatus(o.ID, domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, updated.Status)

	// No-op не пишет событие перехода.
	events, err := f.svc.Events(o.ID)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestStatusSkippingStepsRejected(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.UpdateStatus(o.ID, domain.OrderStatusPreparing)
	assert.True(t, domain.IsInvalidTransition(err), "expected invalid transition, got %v", err)
	_, err = f.svc.UpdateStatus(o.ID, domain.OrderStatusCompleted)
	assert.True(t, domain.IsInvalidTransition(err), "expected invalid transition, got %v", err)
}

func TestCancelOnlyBeforePreparing(t *testing.T) {
	f := newFixture(t)

	pending := f.newOrder(t)
	_, err := f.svc.Cancel(pending.ID)
	require.NoError(t, err)

	accepted := f.newOrder(t)
	_, err = f.svc.UpdateStatus(accepted.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)
	_, err = f.svc.Cancel(accepted.ID)
	require.NoError(t, err)

	preparing := f.newOrder(t)
	_, err = f.svc.UpdateStatus(preparing.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(preparing.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)

	_, err = f.svc.Cancel(preparing.ID)
	assert.True(t, domain.IsInvalidTransition(err), "expected invalid transition, got %v", err)
}

func TestUnknownStatusRejected(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.UpdateStatus(o.ID, domain.OrderStatus("SHIPPED"))
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestAddItemRecalculatesTotal(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	updated, err := f.svc.AddItem(o.ID, f.pizzaID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1398), updated.TotalCents)

	updated, err = f.svc.AddItem(o.ID, f.colaID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1648), updated.TotalCents)
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 2)
	require.NoError(t, err)

	updated, err := f.svc.AddItem(o.ID, f.pizzaID, 1)
	require.NoError(t, err)

	require.Len(t, updated.Items, 1)
	assert.Equal(t, int32(3), updated.Items[0].Quantity)
	assert.Equal(t, int64(2097), updated.TotalCents)
}

func TestAddItemValidation(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 0)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)

	_, err = f.svc.AddItem(o.ID, 404, 1)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)

	_, err = f.svc.AddItem(o.ID, f.inactiveID, 1)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))
}

func TestItemsFrozenAfterPreparing(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 1)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(o.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)

	// В ACCEPTED состав всё ещё изменяем.
	_, err = f.svc.AddItem(o.ID, f.colaID, 1)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(o.ID, domain.OrderStatusPreparing)
	require.NoError(t, err)

	_, err = f.svc.AddItem(o.ID, f.colaID, 1)
	assert.True(t, domain.IsNotModifiable(err), "expected not modifiable, got %v", err)
	_, err = f.svc.UpdateItemQuantity(o.ID, f.pizzaID, 5)
	assert.True(t, domain.IsNotModifiable(err), "expected not modifiable, got %v", err)
	_, err = f.svc.RemoveItem(o.ID, f.pizzaID)
	assert.True(t, domain.IsNotModifiable(err), "expected not modifiable, got %v", err)
}

func TestUpdateItemQuantity(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 2)
	require.NoError(t, err)

	updated, err := f.svc.UpdateItemQuantity(o.ID, f.pizzaID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5*699), updated.TotalCents)

	_, err = f.svc.UpdateItemQuantity(o.ID, f.pizzaID, -1)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestUpdateItemQuantityZeroRemoves(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 2)
	require.NoError(t, err)
	_, err = f.svc.AddItem(o.ID, f.colaID, 1)
	require.NoError(t, err)

	updated, err := f.svc.UpdateItemQuantity(o.ID, f.pizzaID, 0)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, int64(250), updated.TotalCents)
}

func TestRemoveMissingItem(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.RemoveItem(o.ID, f.pizzaID)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}

func TestAddItemsBatch(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 1)
	require.NoError(t, err)

	// Дубликаты внутри пакета и с уже существующей строкой сливаются.
	updated, err := f.svc.AddItems(o.ID, []order.ItemRequest{
		{MenuItemID: f.pizzaID, Quantity: 1},
		{MenuItemID: f.colaID, Quantity: 2},
		{MenuItemID: f.colaID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	byItem := map[int64]int32{}
	for _, item := range updated.Items {
		byItem[item.MenuItemID] = item.Quantity
	}
	assert.Equal(t, int32(2), byItem[f.pizzaID])
	assert.Equal(t, int32(3), byItem[f.colaID])
	assert.Equal(t, int64(2*699+3*250), updated.TotalCents)
}

func TestAddItemsBatchAtomic(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItems(o.ID, []order.ItemRequest{
		{MenuItemID: f.pizzaID, Quantity: 1},
		{MenuItemID: f.inactiveID, Quantity: 1},
	})
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	current, err := f.svc.Get(o.ID)
	require.NoError(t, err)
	assert.Empty(t, current.Items)
	assert.Equal(t, int64(0), current.TotalCents)
}

func TestDeleteOnlyPending(t *testing.T) {
	f := newFixture(t)

	pending := f.newOrder(t)
	_, err := f.svc.AddItem(pending.ID, f.pizzaID, 1)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(pending.ID))

	_, err = f.svc.Get(pending.ID)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)

	accepted := f.newOrder(t)
	_, err = f.svc.UpdateStatus(accepted.ID, domain.OrderStatusAccepted)
	require.NoError(t, err)

	err = f.svc.Delete(accepted.ID)
	assert.Equal(t, domain.KindOrderNotDeletable, domain.KindOf(err))
}

func TestRecalculateAfterPriceChange(t *testing.T) {
	f := newFixture(t)
	o := f.newOrder(t)

	_, err := f.svc.AddItem(o.ID, f.pizzaID, 2)
	require.NoError(t, err)
	require.NoError(t, f.menu.UpdateItemPrice(f.pizzaID, 999))

	total, err := f.svc.RecalculateTotal(o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1998), total)

	current, err := f.svc.Get(o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1998), current.TotalCents)
}

func TestEventsUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Events(404)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}
