package employee

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// Service управляет справочником сотрудников.
type Service interface {
	Hire(name, phone string) (domain.Employee, error)
	Get(id int64) (domain.Employee, error)
	List() ([]domain.Employee, error)
	ListAvailable() ([]domain.Employee, error)
	SearchByName(term string) ([]domain.Employee, error)
	Update(e domain.Employee) (domain.Employee, error)
	SetAvailability(id int64, available bool) error
	// Delete удаляет сотрудника; сотрудник с заказами не удаляется.
	Delete(id int64) error
	OrderCount(id int64) (int, error)
}

type service struct {
	employees domain.EmployeeRepository
	orders    domain.OrderRepository
	logger    *log.Entry
}

// NewService создаёт сервис сотрудников.
func NewService(employees domain.EmployeeRepository, orders domain.OrderRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "employee-service")
	}
	return &service{employees: employees, orders: orders, logger: logger}
}

// Hire регистрирует нового сотрудника; новый сотрудник сразу доступен
// для назначения на заказы.
func (s *service) Hire(name, phone string) (domain.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Employee{}, domain.InvalidArgument("name", "must not be empty")
	}

	id, err := s.employees.Create(domain.Employee{Name: name, Phone: phone, Available: true})
	if err != nil {
		return domain.Employee{}, err
	}

	s.logger.WithField("employee_id", id).Info("employee hired")
	return s.employees.Get(id)
}

func (s *service) Get(id int64) (domain.Employee, error) {
	return s.employees.Get(id)
}

func (s *service) List() ([]domain.Employee, error) {
	return s.employees.List()
}

func (s *service) ListAvailable() ([]domain.Employee, error) {
	return s.employees.ListAvailable()
}

func (s *service) SearchByName(term string) ([]domain.Employee, error) {
	return s.employees.SearchByName(strings.TrimSpace(term))
}

func (s *service) Update(e domain.Employee) (domain.Employee, error) {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return domain.Employee{}, domain.InvalidArgument("name", "must not be empty")
	}
	if err := s.employees.Update(e); err != nil {
		return domain.Employee{}, err
	}
	return s.employees.Get(e.ID)
}

func (s *service) SetAvailability(id int64, available bool) error {
	if err := s.employees.SetAvailability(id, available); err != nil {
		return err
	}
	s.logger.WithFields(log.Fields{
		"employee_id": id,
		"available":   available,
	}).Info("employee availability changed")
	return nil
}

func (s *service) Delete(id int64) error {
	if _, err := s.employees.Get(id); err != nil {
		return err
	}

	count, err := s.orders.CountByEmployee(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.PreconditionFailed("employee", id, "employee has orders")
	}

	if err := s.employees.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("employee_id", id).Info("employee deleted")
	return nil
}

func (s *service) OrderCount(id int64) (int, error) {
	if _, err := s.employees.Get(id); err != nil {
		return 0, err
	}
	return s.orders.CountByEmployee(id)
}

var _ Service = (*service)(nil)
