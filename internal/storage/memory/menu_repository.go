package memory

import (
	"sort"
	"strings"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

type menuRepository struct {
	store *Store
}

// NewMenuRepository возвращает in-memory реализацию MenuRepository.
func NewMenuRepository(store *Store) domain.MenuRepository {
	return &menuRepository{store: store}
}

func (r *menuRepository) Categories() ([]domain.Category, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *menuRepository) CreateCategory(name string) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCategoryID++
	s.categories[s.nextCategoryID] = domain.Category{ID: s.nextCategoryID, Name: name}
	return s.nextCategoryID, nil
}

func (r *menuRepository) CategoryExists(id int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.categories[id]
	return ok, nil
}

func (r *menuRepository) CreateItem(item domain.MenuItem) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[item.CategoryID]; !ok {
		return 0, domain.NotFound("category", item.CategoryID)
	}
	s.nextMenuItemID++
	item.ID = s.nextMenuItemID
	item.CategoryName = ""
	s.menuItems[item.ID] = item
	return item.ID, nil
}

func (r *menuRepository) GetItem(id int64) (domain.MenuItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.menuItems[id]
	if !ok {
		return domain.MenuItem{}, domain.NotFound("menu item", id)
	}
	return r.withCategoryName(item), nil
}

func (r *menuRepository) ListActiveItems() ([]domain.MenuItem, error) {
	return r.filterItems(func(item domain.MenuItem) bool { return item.Active })
}

func (r *menuRepository) ListItemsByCategory(categoryID int64) ([]domain.MenuItem, error) {
	return r.filterItems(func(item domain.MenuItem) bool {
		return item.Active && item.CategoryID == categoryID
	})
}

func (r *menuRepository) SearchItemsByName(term string) ([]domain.MenuItem, error) {
	term = strings.ToLower(term)
	return r.filterItems(func(item domain.MenuItem) bool {
		return item.Active && strings.Contains(strings.ToLower(item.Name), term)
	})
}

func (r *menuRepository) SearchItemsByPriceRange(minCents, maxCents int64) ([]domain.MenuItem, error) {
	return r.filterItems(func(item domain.MenuItem) bool {
		return item.Active && item.PriceCents >= minCents && item.PriceCents <= maxCents
	})
}

func (r *menuRepository) UpdateItemPrice(id int64, priceCents int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.menuItems[id]
	if !ok {
		return domain.NotFound("menu item", id)
	}
	item.PriceCents = priceCents
	s.menuItems[id] = item
	return nil
}

func (r *menuRepository) SetItemActive(id int64, active bool) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.menuItems[id]
	if !ok {
		return domain.NotFound("menu item", id)
	}
	item.Active = active
	s.menuItems[id] = item
	return nil
}

func (r *menuRepository) filterItems(keep func(domain.MenuItem) bool) ([]domain.MenuItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.MenuItem, 0)
	for _, item := range s.menuItems {
		if keep(item) {
			result = append(result, r.withCategoryName(item))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CategoryName != result[j].CategoryName {
			return result[i].CategoryName < result[j].CategoryName
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// withCategoryName вызывается под замком.
func (r *menuRepository) withCategoryName(item domain.MenuItem) domain.MenuItem {
	if cat, ok := r.store.categories[item.CategoryID]; ok {
		item.CategoryName = cat.Name
	}
	return item
}

var _ domain.MenuRepository = (*menuRepository)(nil)
