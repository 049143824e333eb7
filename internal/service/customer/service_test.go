package customer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/service/customer"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

func newService(t *testing.T) (customer.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return customer.NewService(
		memory.NewCustomerRepository(store),
		memory.NewOrderRepository(store),
		nil,
	), store
}

func TestRegister(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.Register("  Alice  ", "alice@example.com", "+1-555-0101")
	require.NoError(t, err)
	assert.Equal(t, "Alice", c.Name)
	assert.NotZero(t, c.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register("", "alice@example.com", "")
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)

	_, err = svc.Register("Alice", "not-an-email", "")
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Register("Alice", "alice@example.com", "")
	require.NoError(t, err)

	_, err = svc.Register("Other", "ALICE@example.com", "")
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))
}

func TestUpdateKeepsOwnEmail(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.Register("Alice", "alice@example.com", "")
	require.NoError(t, err)

	c.Name = "Alice Johnson"
	updated, err := svc.Update(c)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", updated.Name)
}

func TestDeleteRefusedWithOrders(t *testing.T) {
	svc, store := newService(t)

	c, err := svc.Register("Alice", "alice@example.com", "")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository(store)
	employeeID, err := employees.Create(domain.Employee{Name: "Bob", Available: true})
	require.NoError(t, err)

	orders := memory.NewOrderRepository(store)
	_, err = orders.Create(domain.Order{
		CustomerID: c.ID,
		EmployeeID: employeeID,
		Status:     domain.OrderStatusPending,
		OrderedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	err = svc.Delete(c.ID)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	count, err := svc.OrderCount(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteWithoutOrders(t *testing.T) {
	svc, _ := newService(t)

	c, err := svc.Register("Alice", "alice@example.com", "")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(c.ID))

	_, err = svc.Get(c.ID)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}
