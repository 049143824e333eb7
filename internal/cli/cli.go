package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/service/analytics"
	"github.com/hiTanyaZhao/food-order-system/internal/service/customer"
	"github.com/hiTanyaZhao/food-order-system/internal/service/employee"
	menusvc "github.com/hiTanyaZhao/food-order-system/internal/service/menu"
	"github.com/hiTanyaZhao/food-order-system/internal/service/order"
)

// CLI — консольный интерфейс управления рестораном.
type CLI struct {
	in        *bufio.Scanner
	out       io.Writer
	customers customer.Service
	employees employee.Service
	menu      menusvc.Service
	orders    order.Service
	reports   analytics.Service
	logger    *log.Entry
}

// New создаёт CLI поверх сервисного слоя.
func New(
	in io.Reader,
	out io.Writer,
	customers customer.Service,
	employees employee.Service,
	menu menusvc.Service,
	orders order.Service,
	reports analytics.Service,
	logger *log.Entry,
) *CLI {
	if logger == nil {
		logger = log.New().WithField("component", "cli")
	}
	return &CLI{
		in:        bufio.NewScanner(in),
		out:       out,
		customers: customers,
		employees: employees,
		menu:      menu,
		orders:    orders,
		reports:   reports,
		logger:    logger,
	}
}

// Run крутит главное меню до выхода пользователя, конца ввода или отмены контекста.
func (c *CLI) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printf("\n=== Food Order System ===\n")
		c.printf(" 1. Customers\n")
		c.printf(" 2. Employees\n")
		c.printf(" 3. Menu\n")
		c.printf(" 4. Orders\n")
		c.printf(" 5. Reports\n")
		c.printf(" 0. Exit\n")

		choice, ok := c.prompt("Choose")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			c.customersMenu()
		case "2":
			c.employeesMenu()
		case "3":
			c.menuMenu()
		case "4":
			c.ordersMenu()
		case "5":
			c.reportsMenu()
		case "0":
			c.printf("Bye!\n")
			return nil
		default:
			c.printf("Unknown option %q\n", choice)
		}
	}
}

// --- customers ---

func (c *CLI) customersMenu() {
	c.printf("\n--- Customers ---\n")
	c.printf(" 1. Register customer\n")
	c.printf(" 2. List customers\n")
	c.printf(" 3. Search by name\n")
	c.printf(" 4. Find by email\n")
	c.printf(" 5. Update customer\n")
	c.printf(" 6. Delete customer\n")

	choice, ok := c.prompt("Choose")
	if !ok {
		return
	}

	switch choice {
	case "1":
		name, _ := c.prompt("Name")
		email, _ := c.prompt("Email")
		phone, _ := c.prompt("Phone")
		created, err := c.customers.Register(name, email, phone)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Customer #%d registered\n", created.ID)
	case "2":
		list, err := c.customers.List()
		if err != nil {
			c.fail(err)
			return
		}
		for _, cust := range list {
			c.printf("#%-5d %-25s %-30s %s\n", cust.ID, truncate(cust.Name, 25), cust.Email, cust.Phone)
		}
		c.printf("%d customer(s)\n", len(list))
	case "3":
		term, _ := c.prompt("Name contains")
		found, err := c.customers.SearchByName(term)
		if err != nil {
			c.fail(err)
			return
		}
		for _, cust := range found {
			c.printf("#%-5d %-25s %s\n", cust.ID, truncate(cust.Name, 25), cust.Email)
		}
	case "4":
		email, _ := c.prompt("Email")
		cust, err := c.customers.GetByEmail(email)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("#%d %s <%s> %s\n", cust.ID, cust.Name, cust.Email, cust.Phone)
	case "5":
		id, ok := c.promptID("Customer id")
		if !ok {
			return
		}
		current, err := c.customers.Get(id)
		if err != nil {
			c.fail(err)
			return
		}
		name, _ := c.prompt(fmt.Sprintf("Name [%s]", current.Name))
		email, _ := c.prompt(fmt.Sprintf("Email [%s]", current.Email))
		phone, _ := c.prompt(fmt.Sprintf("Phone [%s]", current.Phone))
		if name != "" {
			current.Name = name
		}
		if email != "" {
			current.Email = email
		}
		if phone != "" {
			current.Phone = phone
		}
		if _, err := c.customers.Update(current); err != nil {
			c.fail(err)
			return
		}
		c.printf("Customer #%d updated\n", id)
	case "6":
		id, ok := c.promptID("Customer id")
		if !ok {
			return
		}
		if err := c.customers.Delete(id); err != nil {
			c.fail(err)
			return
		}
		c.printf("Customer #%d deleted\n", id)
	default:
		c.printf("Unknown option %q\n", choice)
	}
}

// --- employees ---

func (c *CLI) employeesMenu() {
	c.printf("\n--- Employees ---\n")
	c.printf(" 1. Hire employee\n")
	c.printf(" 2. List employees\n")
	c.printf(" 3. List available\n")
	c.printf(" 4. Toggle availability\n")
	c.printf(" 5. Delete employee\n")

	choice, ok := c.prompt("Choose")
	if !ok {
		return
	}

	switch choice {
	case "1":
		name, _ := c.prompt("Name")
		phone, _ := c.prompt("Phone")
		hired, err := c.employees.Hire(name, phone)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Employee #%d hired\n", hired.ID)
	case "2":
		list, err := c.employees.List()
		if err != nil {
			c.fail(err)
			return
		}
		for _, e := range list {
			marker := " "
			if e.Available {
				marker = "*"
			}
			c.printf("#%-5d %s %-25s %s\n", e.ID, marker, truncate(e.Name, 25), e.Phone)
		}
		c.printf("%d employee(s), * = available\n", len(list))
	case "3":
		list, err := c.employees.ListAvailable()
		if err != nil {
			c.fail(err)
			return
		}
		for _, e := range list {
			c.printf("#%-5d %s\n", e.ID, e.Name)
		}
	case "4":
		id, ok := c.promptID("Employee id")
		if !ok {
			return
		}
		current, err := c.employees.Get(id)
		if err != nil {
			c.fail(err)
			return
		}
		if err := c.employees.SetAvailability(id, !current.Available); err != nil {
			c.fail(err)
			return
		}
		c.printf("Employee #%d available: %v\n", id, !current.Available)
	case "5":
		id, ok := c.promptID("Employee id")
		if !ok {
			return
		}
		if err := c.employees.Delete(id); err != nil {
			c.fail(err)
			return
		}
		c.printf("Employee #%d deleted\n", id)
	default:
		c.printf("Unknown option %q\n", choice)
	}
}

// --- menu catalog ---

func (c *CLI) menuMenu() {
	c.printf("\n--- Menu ---\n")
	c.printf(" 1. List active items\n")
	c.printf(" 2. List categories\n")
	c.printf(" 3. Add category\n")
	c.printf(" 4. Add item\n")
	c.printf(" 5. Search by name\n")
	c.printf(" 6. Search by price range\n")
	c.printf(" 7. Change price\n")
	c.printf(" 8. Activate/deactivate item\n")

	choice, ok := c.prompt("Choose")
	if !ok {
		return
	}

	switch choice {
	case "1":
		items, err := c.menu.ListActive()
		if err != nil {
			c.fail(err)
			return
		}
		c.printMenuItems(items)
	case "2":
		categories, err := c.menu.Categories()
		if err != nil {
			c.fail(err)
			return
		}
		for _, cat := range categories {
			c.printf("#%-5d %s\n", cat.ID, cat.Name)
		}
	case "3":
		name, _ := c.prompt("Category name")
		id, err := c.menu.CreateCategory(name)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Category #%d created\n", id)
	case "4":
		categoryID, ok := c.promptID("Category id")
		if !ok {
			return
		}
		name, _ := c.prompt("Item name")
		price, ok := c.promptMoney("Price")
		if !ok {
			return
		}
		item, err := c.menu.AddItem(categoryID, name, price)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Menu item #%d created\n", item.ID)
	case "5":
		term, _ := c.prompt("Name contains")
		items, err := c.menu.SearchByName(term)
		if err != nil {
			c.fail(err)
			return
		}
		c.printMenuItems(items)
	case "6":
		minCents, ok := c.promptMoney("Min price")
		if !ok {
			return
		}
		maxCents, ok := c.promptMoney("Max price")
		if !ok {
			return
		}
		items, err := c.menu.SearchByPriceRange(minCents, maxCents)
		if err != nil {
			c.fail(err)
			return
		}
		c.printMenuItems(items)
	case "7":
		id, ok := c.promptID("Item id")
		if !ok {
			return
		}
		price, ok := c.promptMoney("New price")
		if !ok {
			return
		}
		item, err := c.menu.ChangePrice(id, price)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Item #%d price is now %s\n", item.ID, FormatCents(item.PriceCents))
	case "8":
		id, ok := c.promptID("Item id")
		if !ok {
			return
		}
		current, err := c.menu.GetItem(id)
		if err != nil {
			c.fail(err)
			return
		}
		if err := c.menu.SetActive(id, !current.Active); err != nil {
			c.fail(err)
			return
		}
		c.printf("Item #%d active: %v\n", id, !current.Active)
	default:
		c.printf("Unknown option %q\n", choice)
	}
}

func (c *CLI) printMenuItems(items []domain.MenuItem) {
	for _, item := range items {
		marker := " "
		if !item.Active {
			marker = "x"
		}
		c.printf("#%-5d %s %-25s %10s  (%s)\n",
			item.ID, marker, truncate(item.Name, 25), FormatCents(item.PriceCents), item.CategoryName)
	}
	c.printf("%d item(s), x = inactive\n", len(items))
}

// --- orders ---

func (c *CLI) ordersMenu() {
	c.printf("\n--- Orders ---\n")
	c.printf(" 1. Create order\n")
	c.printf(" 2. Create order (auto-assign employee)\n")
	c.printf(" 3. Show order\n")
	c.printf(" 4. List orders\n")
	c.printf(" 5. List by status\n")
	c.printf(" 6. Add item\n")
	c.printf(" 7. Change item quantity\n")
	c.printf(" 8. Remove item\n")
	c.printf(" 9. Change status\n")
	c.printf("10. Cancel order\n")
	c.printf("11. Complete order\n")
	c.printf("12. Delete order\n")
	c.printf("13. Order history\n")

	choice, ok := c.prompt("Choose")
	if !ok {
		return
	}

	switch choice {
	case "1":
		customerID, ok := c.promptID("Customer id")
		if !ok {
			return
		}
		employeeID, ok := c.promptID("Employee id")
		if !ok {
			return
		}
		o, err := c.orders.Create(customerID, employeeID)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d created\n", o.ID)
	case "2":
		customerID, ok := c.promptID("Customer id")
		if !ok {
			return
		}
		o, err := c.orders.CreateAutoAssigned(customerID)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d created, assigned to %s\n", o.ID, o.EmployeeName)
	case "3":
		id, ok := c.promptID("Order id")
		if !ok {
			return
		}
		o, err := c.orders.Get(id)
		if err != nil {
			c.fail(err)
			return
		}
		c.printOrder(o)
	case "4":
		list, err := c.orders.ListAll()
		if err != nil {
			c.fail(err)
			return
		}
		for _, o := range list {
			c.printf("%s\n", formatOrderLine(o))
		}
		c.printf("%d order(s)\n", len(list))
	case "5":
		status, _ := c.prompt("Status (PENDING/ACCEPTED/PREPARING/COMPLETED/CANCELLED)")
		list, err := c.orders.ListByStatus(domain.OrderStatus(strings.ToUpper(status)))
		if err != nil {
			c.fail(err)
			return
		}
		for _, o := range list {
			c.printf("%s\n", formatOrderLine(o))
		}
	case "6":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		itemID, ok := c.promptID("Menu item id")
		if !ok {
			return
		}
		quantity, ok := c.promptQuantity("Quantity")
		if !ok {
			return
		}
		o, err := c.orders.AddItem(orderID, itemID, quantity)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d total: %s\n", o.ID, FormatCents(o.TotalCents))
	case "7":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		itemID, ok := c.promptID("Menu item id")
		if !ok {
			return
		}
		quantity, ok := c.promptQuantity("New quantity (0 removes)")
		if !ok {
			return
		}
		o, err := c.orders.UpdateItemQuantity(orderID, itemID, quantity)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d total: %s\n", o.ID, FormatCents(o.TotalCents))
	case "8":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		itemID, ok := c.promptID("Menu item id")
		if !ok {
			return
		}
		o, err := c.orders.RemoveItem(orderID, itemID)
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d total: %s\n", o.ID, FormatCents(o.TotalCents))
	case "9":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		status, _ := c.prompt("New status")
		o, err := c.orders.UpdateStatus(orderID, domain.OrderStatus(strings.ToUpper(status)))
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d is now %s\n", o.ID, o.Status)
	case "10":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		if _, err := c.orders.Cancel(orderID); err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d cancelled\n", orderID)
	case "11":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		if _, err := c.orders.Complete(orderID); err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d completed\n", orderID)
	case "12":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		if err := c.orders.Delete(orderID); err != nil {
			c.fail(err)
			return
		}
		c.printf("Order #%d deleted\n", orderID)
	case "13":
		orderID, ok := c.promptID("Order id")
		if !ok {
			return
		}
		events, err := c.orders.Events(orderID)
		if err != nil {
			c.fail(err)
			return
		}
		for _, ev := range events {
			line := fmt.Sprintf("%s  %-30s", ev.OccurredAt.Format("2006-01-02 15:04:05"), ev.Type)
			if ev.FromStatus != ev.ToStatus {
				line += fmt.Sprintf(" %s -> %s", ev.FromStatus, ev.ToStatus)
			}
			c.printf("%s\n", line)
		}
	default:
		c.printf("Unknown option %q\n", choice)
	}
}

func (c *CLI) printOrder(o domain.Order) {
	c.printf("Order #%d [%s]\n", o.ID, o.Status)
	c.printf("Customer: %s   Employee: %s   Placed: %s\n",
		o.CustomerName, o.EmployeeName, o.OrderedAt.Format("2006-01-02 15:04"))
	for _, item := range o.Items {
		c.printf("%s\n", formatItemLine(item))
	}
	c.printf("Total: %s\n", FormatCents(o.TotalCents))
}

// --- reports ---

func (c *CLI) reportsMenu() {
	c.printf("\n--- Reports ---\n")
	c.printf(" 1. Orders by status\n")
	c.printf(" 2. Today\n")
	c.printf(" 3. Popular items\n")
	c.printf(" 4. Sales by category\n")

	choice, ok := c.prompt("Choose")
	if !ok {
		return
	}

	switch choice {
	case "1":
		stats, err := c.reports.StatusReport()
		if err != nil {
			c.fail(err)
			return
		}
		for _, stat := range stats {
			c.printf("%-10s %5d order(s)  avg %10s  total %10s\n",
				stat.Status, stat.OrderCount, FormatCents(stat.AvgCents), FormatCents(stat.RevenueCents))
		}
	case "2":
		stats, err := c.reports.TodayReport()
		if err != nil {
			c.fail(err)
			return
		}
		c.printf("Orders today: %d, completed: %d, revenue: %s\n",
			stats.Orders, stats.CompletedOrders, FormatCents(stats.RevenueCents))
	case "3":
		items, err := c.reports.PopularItems(0)
		if err != nil {
			c.fail(err)
			return
		}
		for i, item := range items {
			c.printf("%2d. %-25s sold %4d in %d order(s)  (%s)\n",
				i+1, truncate(item.ItemName, 25), item.TotalOrdered, item.OrderCount, item.CategoryName)
		}
	case "4":
		sales, err := c.reports.CategorySales()
		if err != nil {
			c.fail(err)
			return
		}
		for _, sale := range sales {
			c.printf("%-20s qty %5d  revenue %10s  items %3d  orders %3d\n",
				truncate(sale.CategoryName, 20), sale.TotalQty, FormatCents(sale.RevenueCents),
				sale.UniqueItems, sale.OrderCount)
		}
	default:
		c.printf("Unknown option %q\n", choice)
	}
}

// --- input helpers ---

func (c *CLI) prompt(label string) (string, bool) {
	c.printf("%s: ", label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *CLI) promptID(label string) (int64, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.printf("Invalid id %q\n", raw)
		return 0, false
	}
	return id, true
}

func (c *CLI) promptQuantity(label string) (int32, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	quantity, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		c.printf("Invalid quantity %q\n", raw)
		return 0, false
	}
	return int32(quantity), true
}

func (c *CLI) promptMoney(label string) (int64, bool) {
	raw, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	cents, err := ParseCents(raw)
	if err != nil {
		c.printf("Invalid amount %q\n", raw)
		return 0, false
	}
	return cents, true
}

func (c *CLI) fail(err error) {
	c.printf("Error: %v\n", err)
	c.logger.WithError(err).Debug("operation failed")
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}
