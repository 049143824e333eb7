package cli_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/cli"
	"github.com/hiTanyaZhao/food-order-system/internal/service/analytics"
	"github.com/hiTanyaZhao/food-order-system/internal/service/customer"
	"github.com/hiTanyaZhao/food-order-system/internal/service/employee"
	menusvc "github.com/hiTanyaZhao/food-order-system/internal/service/menu"
	"github.com/hiTanyaZhao/food-order-system/internal/service/order"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

func newCLI(t *testing.T, input string) (*cli.CLI, *strings.Builder) {
	t.Helper()
	store := memory.NewStore()

	customers := memory.NewCustomerRepository(store)
	employees := memory.NewEmployeeRepository(store)
	menuRepo := memory.NewMenuRepository(store)
	orders := memory.NewOrderRepository(store)
	events := memory.NewOrderEventRepository(store)

	out := &strings.Builder{}
	c := cli.New(
		strings.NewReader(input),
		out,
		customer.NewService(customers, orders, nil),
		employee.NewService(employees, orders, nil),
		menusvc.NewService(menuRepo, nil),
		order.NewServiceWithoutMetrics(orders, events, customers, employees, menuRepo, nil),
		analytics.NewService(memory.NewAnalyticsRepository(store), nil),
		nil,
	)
	return c, out
}

func TestRunExit(t *testing.T) {
	c, out := newCLI(t, "0\n")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Food Order System")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunStopsOnEOF(t *testing.T) {
	c, _ := newCLI(t, "")
	require.NoError(t, c.Run(context.Background()))
}

func TestRunFullScenario(t *testing.T) {
	// Регистрация клиента и сотрудника, позиция меню, заказ с позицией.
	script := strings.Join([]string{
		"1", "1", "Alice", "alice@example.com", "+1-555-0101", // customer
		"2", "1", "Bob", "+1-555-0199", // employee
		"3", "3", "Mains", // category
		"3", "4", "1", "Pizza", "6.99", // menu item
		"4", "1", "1", "1", // order: customer 1, employee 1
		"4", "6", "1", "1", "2", // add 2x pizza
		"4", "3", "1", // show order
		"0",
	}, "\n") + "\n"

	c, out := newCLI(t, script)
	require.NoError(t, c.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Customer #1 registered")
	assert.Contains(t, output, "Employee #1 hired")
	assert.Contains(t, output, "Menu item #1 created")
	assert.Contains(t, output, "Order #1 created")
	assert.Contains(t, output, "$13.98")
}

func TestRunReportsError(t *testing.T) {
	// Заказ для несуществующего клиента.
	c, out := newCLI(t, "4\n1\n42\n1\n0\n")
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Error: customer 42 does not exist")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, _ := newCLI(t, "0\n")
	assert.Error(t, c.Run(ctx))
}
