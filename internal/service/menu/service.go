package menu

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// Service управляет каталогом меню: категориями, позициями и ценами.
type Service interface {
	Categories() ([]domain.Category, error)
	CreateCategory(name string) (int64, error)

	AddItem(categoryID int64, name string, priceCents int64) (domain.MenuItem, error)
	GetItem(id int64) (domain.MenuItem, error)
	ListActive() ([]domain.MenuItem, error)
	ListByCategory(categoryID int64) ([]domain.MenuItem, error)
	SearchByName(term string) ([]domain.MenuItem, error)
	SearchByPriceRange(minCents, maxCents int64) ([]domain.MenuItem, error)
	// ChangePrice меняет актуальную цену; сохранённые итоги прошлых заказов
	// не пересчитываются.
	ChangePrice(id int64, priceCents int64) (domain.MenuItem, error)
	SetActive(id int64, active bool) error
}

type service struct {
	menu   domain.MenuRepository
	logger *log.Entry
}

// NewService создаёт сервис каталога меню.
func NewService(menu domain.MenuRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "menu-service")
	}
	return &service{menu: menu, logger: logger}
}

func (s *service) Categories() ([]domain.Category, error) {
	return s.menu.Categories()
}

func (s *service) CreateCategory(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, domain.InvalidArgument("name", "must not be empty")
	}

	id, err := s.menu.CreateCategory(name)
	if err != nil {
		return 0, err
	}
	s.logger.WithFields(log.Fields{"category_id": id, "name": name}).Info("category created")
	return id, nil
}

func (s *service) AddItem(categoryID int64, name string, priceCents int64) (domain.MenuItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.MenuItem{}, domain.InvalidArgument("name", "must not be empty")
	}
	if priceCents < 0 {
		return domain.MenuItem{}, domain.InvalidArgument("price", "must not be negative")
	}

	exists, err := s.menu.CategoryExists(categoryID)
	if err != nil {
		return domain.MenuItem{}, err
	}
	if !exists {
		return domain.MenuItem{}, domain.NotFound("category", categoryID)
	}

	id, err := s.menu.CreateItem(domain.MenuItem{
		CategoryID: categoryID,
		Name:       name,
		PriceCents: priceCents,
		Active:     true,
	})
	if err != nil {
		return domain.MenuItem{}, err
	}

	s.logger.WithFields(log.Fields{
		"menu_item_id": id,
		"category_id":  categoryID,
		"price_cents":  priceCents,
	}).Info("menu item created")
	return s.menu.GetItem(id)
}

func (s *service) GetItem(id int64) (domain.MenuItem, error) {
	return s.menu.GetItem(id)
}

func (s *service) ListActive() ([]domain.MenuItem, error) {
	return s.menu.ListActiveItems()
}

func (s *service) ListByCategory(categoryID int64) ([]domain.MenuItem, error) {
	exists, err := s.menu.CategoryExists(categoryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NotFound("category", categoryID)
	}
	return s.menu.ListItemsByCategory(categoryID)
}

func (s *service) SearchByName(term string) ([]domain.MenuItem, error) {
	return s.menu.SearchItemsByName(strings.TrimSpace(term))
}

func (s *service) SearchByPriceRange(minCents, maxCents int64) ([]domain.MenuItem, error) {
	if minCents < 0 || maxCents < minCents {
		return nil, domain.InvalidArgument("price range", "must satisfy 0 <= min <= max")
	}
	return s.menu.SearchItemsByPriceRange(minCents, maxCents)
}

func (s *service) ChangePrice(id int64, priceCents int64) (domain.MenuItem, error) {
	if priceCents < 0 {
		return domain.MenuItem{}, domain.InvalidArgument("price", "must not be negative")
	}
	if err := s.menu.UpdateItemPrice(id, priceCents); err != nil {
		return domain.MenuItem{}, err
	}

	s.logger.WithFields(log.Fields{
		"menu_item_id": id,
		"price_cents":  priceCents,
	}).Info("menu item price changed")
	return s.menu.GetItem(id)
}

func (s *service) SetActive(id int64, active bool) error {
	if err := s.menu.SetItemActive(id, active); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"menu_item_id": id,
		"active":       active,
	}).Info("menu item availability changed")
	return nil
}

var _ Service = (*service)(nil)
