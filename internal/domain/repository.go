package domain

// CustomerRepository описывает требования к хранилищу клиентов.
// Репозитории проверяют только ограничения хранения (уникальность email,
// внешние ключи); бизнес-правила живут в сервисном слое.
type CustomerRepository interface {
	// Create сохраняет клиента и возвращает присвоенный идентификатор.
	Create(c Customer) (int64, error)
	// Get возвращает клиента или ошибку KindNotFound.
	Get(id int64) (Customer, error)
	// GetByEmail возвращает клиента по адресу или ошибку KindNotFound.
	GetByEmail(email string) (Customer, error)
	List() ([]Customer, error)
	SearchByName(term string) ([]Customer, error)
	// Update перезаписывает атрибуты клиента.
	Update(c Customer) error
	Delete(id int64) error
	// EmailExists проверяет занятость адреса, игнорируя клиента excludeID (0 — никого).
	EmailExists(email string, excludeID int64) (bool, error)
}

// EmployeeRepository описывает требования к хранилищу сотрудников.
type EmployeeRepository interface {
	Create(e Employee) (int64, error)
	Get(id int64) (Employee, error)
	List() ([]Employee, error)
	// ListAvailable возвращает сотрудников со снятым флагом занятости;
	// порядок не гарантируется.
	ListAvailable() ([]Employee, error)
	SearchByName(term string) ([]Employee, error)
	Update(e Employee) error
	SetAvailability(id int64, available bool) error
	Delete(id int64) error
}

// MenuRepository описывает требования к каталогу меню.
type MenuRepository interface {
	Categories() ([]Category, error)
	CreateCategory(name string) (int64, error)
	CategoryExists(id int64) (bool, error)

	CreateItem(item MenuItem) (int64, error)
	// GetItem возвращает позицию каталога вместе с именем категории.
	GetItem(id int64) (MenuItem, error)
	ListActiveItems() ([]MenuItem, error)
	ListItemsByCategory(categoryID int64) ([]MenuItem, error)
	SearchItemsByName(term string) ([]MenuItem, error)
	SearchItemsByPriceRange(minCents, maxCents int64) ([]MenuItem, error)
	UpdateItemPrice(id int64, priceCents int64) error
	SetItemActive(id int64, active bool) error
}

// OrderRepository описывает требования к хранилищу заказов и их позиций.
type OrderRepository interface {
	// Create сохраняет заказ без позиций и возвращает присвоенный идентификатор.
	Create(o Order) (int64, error)
	// Get возвращает заказ с позициями и отображаемыми именами
	// (клиент, сотрудник, названия и актуальные цены позиций меню).
	Get(id int64) (Order, error)
	ListAll() ([]Order, error)
	ListByCustomer(customerID int64) ([]Order, error)
	ListByEmployee(employeeID int64) ([]Order, error)
	ListByStatus(status OrderStatus) ([]Order, error)
	CountByCustomer(customerID int64) (int, error)
	CountByEmployee(employeeID int64) (int, error)

	UpdateStatus(id int64, status OrderStatus) error
	UpdateTotal(id int64, totalCents int64) error
	// Delete удаляет позиции, события и сам заказ одной транзакцией.
	Delete(id int64) error

	AddItem(item OrderItem) error
	// AddItems вставляет набор позиций одной транзакцией: либо все, либо ни одной.
	AddItems(items []OrderItem) error
	// GetItem возвращает позицию или ошибку KindNotFound.
	GetItem(orderID, menuItemID int64) (OrderItem, error)
	UpdateItemQuantity(orderID, menuItemID int64, quantity int32) error
	RemoveItem(orderID, menuItemID int64) error
	// SumItems считает Σ(quantity × актуальная цена каталога) по позициям заказа.
	SumItems(orderID int64) (int64, error)
}

// OrderEventRepository хранит события жизненного цикла заказа.
type OrderEventRepository interface {
	Append(ev OrderEvent) error
	ListByOrder(orderID int64) ([]OrderEvent, error)
}

// AnalyticsRepository отдаёт агрегированную статистику для отчётов.
type AnalyticsRepository interface {
	StatusStats() ([]StatusStat, error)
	TodayStats() (TodayStats, error)
	// PopularItems возвращает топ позиций по проданному количеству,
	// заказы в статусе CANCELLED не учитываются.
	PopularItems(limit int) ([]PopularItem, error)
	CategorySales() ([]CategorySale, error)
}
