package customer

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// Service управляет справочником клиентов.
type Service interface {
	Register(name, email, phone string) (domain.Customer, error)
	Get(id int64) (domain.Customer, error)
	GetByEmail(email string) (domain.Customer, error)
	List() ([]domain.Customer, error)
	SearchByName(term string) ([]domain.Customer, error)
	Update(c domain.Customer) (domain.Customer, error)
	// Delete удаляет клиента; клиент с заказами не удаляется.
	Delete(id int64) error
	OrderCount(id int64) (int, error)
}

type service struct {
	customers domain.CustomerRepository
	orders    domain.OrderRepository
	logger    *log.Entry
}

// NewService создаёт сервис клиентов.
func NewService(customers domain.CustomerRepository, orders domain.OrderRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "customer-service")
	}
	return &service{customers: customers, orders: orders, logger: logger}
}

func (s *service) Register(name, email, phone string) (domain.Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return domain.Customer{}, domain.InvalidArgument("name", "must not be empty")
	}
	if !domain.ValidEmail(email) {
		return domain.Customer{}, domain.InvalidArgument("email", "invalid email format")
	}

	exists, err := s.customers.EmailExists(email, 0)
	if err != nil {
		return domain.Customer{}, err
	}
	if exists {
		return domain.Customer{}, domain.PreconditionFailed("customer", 0, "email already registered")
	}

	id, err := s.customers.Create(domain.Customer{Name: name, Email: email, Phone: phone})
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.WithFields(log.Fields{"customer_id": id, "email": email}).Info("customer registered")
	return s.customers.Get(id)
}

func (s *service) Get(id int64) (domain.Customer, error) {
	return s.customers.Get(id)
}

func (s *service) GetByEmail(email string) (domain.Customer, error) {
	return s.customers.GetByEmail(strings.TrimSpace(email))
}

func (s *service) List() ([]domain.Customer, error) {
	return s.customers.List()
}

func (s *service) SearchByName(term string) ([]domain.Customer, error) {
	return s.customers.SearchByName(strings.TrimSpace(term))
}

func (s *service) Update(c domain.Customer) (domain.Customer, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)

	if c.Name == "" {
		return domain.Customer{}, domain.InvalidArgument("name", "must not be empty")
	}
	if !domain.ValidEmail(c.Email) {
		return domain.Customer{}, domain.InvalidArgument("email", "invalid email format")
	}

	// Собственный адрес клиента занятым не считается.
	exists, err := s.customers.EmailExists(c.Email, c.ID)
	if err != nil {
		return domain.Customer{}, err
	}
	if exists {
		return domain.Customer{}, domain.PreconditionFailed("customer", c.ID, "email already registered")
	}

	if err := s.customers.Update(c); err != nil {
		return domain.Customer{}, err
	}
	return s.customers.Get(c.ID)
}

func (s *service) Delete(id int64) error {
	if _, err := s.customers.Get(id); err != nil {
		return err
	}

	count, err := s.orders.CountByCustomer(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.PreconditionFailed("customer", id, "customer has orders")
	}

	if err := s.customers.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("customer_id", id).Info("customer deleted")
	return nil
}

func (s *service) OrderCount(id int64) (int, error) {
	if _, err := s.customers.Get(id); err != nil {
		return 0, err
	}
	return s.orders.CountByCustomer(id)
}

var _ Service = (*service)(nil)
