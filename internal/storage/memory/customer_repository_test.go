package memory_test

import (
	"testing"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

func TestCustomerRepository_EmailUniqueness(t *testing.T) {
	repo := memory.NewCustomerRepository(memory.NewStore())

	if _, err := repo.Create(domain.Customer{Name: "Alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(domain.Customer{Name: "Other", Email: "ALICE@example.com"}); err == nil {
		t.Fatal("expected duplicate email to be rejected")
	}
}

func TestCustomerRepository_EmailExists(t *testing.T) {
	repo := memory.NewCustomerRepository(memory.NewStore())
	id, err := repo.Create(domain.Customer{Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err := repo.EmailExists("alice@example.com", 0)
	if err != nil || !exists {
		t.Fatalf("expected email to exist, got %v/%v", exists, err)
	}
	// Собственный адрес клиента не считается занятым при excludeID.
	exists, err = repo.EmailExists("alice@example.com", id)
	if err != nil || exists {
		t.Fatalf("expected email free for own id, got %v/%v", exists, err)
	}
}

func TestCustomerRepository_SearchByName(t *testing.T) {
	repo := memory.NewCustomerRepository(memory.NewStore())
	if _, err := repo.Create(domain.Customer{Name: "Alice Johnson", Email: "a@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := repo.Create(domain.Customer{Name: "Bob", Email: "b@example.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	found, err := repo.SearchByName("john")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Alice Johnson" {
		t.Fatalf("unexpected search result: %+v", found)
	}
}

func TestEmployeeRepository_ListAvailable(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewEmployeeRepository(store)

	busy, err := repo.Create(domain.Employee{Name: "Busy", Available: false})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	free, err := repo.Create(domain.Employee{Name: "Free", Available: true})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	available, err := repo.ListAvailable()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 1 || available[0].ID != free {
		t.Fatalf("expected only employee %d available, got %+v", free, available)
	}

	if err := repo.SetAvailability(busy, true); err != nil {
		t.Fatalf("set availability: %v", err)
	}
	available, err = repo.ListAvailable()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("expected 2 available employees, got %d", len(available))
	}
}

func TestMenuRepository_FiltersInactive(t *testing.T) {
	store := memory.NewStore()
	menu := memory.NewMenuRepository(store)

	catID, err := menu.CreateCategory("Drinks")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	activeID, err := menu.CreateItem(domain.MenuItem{CategoryID: catID, Name: "Cola", PriceCents: 250, Active: true})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	retiredID, err := menu.CreateItem(domain.MenuItem{CategoryID: catID, Name: "Retired", PriceCents: 100, Active: true})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := menu.SetItemActive(retiredID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	items, err := menu.ListActiveItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != activeID {
		t.Fatalf("expected only active item %d, got %+v", activeID, items)
	}
	if items[0].CategoryName != "Drinks" {
		t.Fatalf("expected category name resolved, got %q", items[0].CategoryName)
	}
}
