package analytics

import (
	log "github.com/sirupsen/logrus"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// defaultPopularLimit ограничивает отчёт о популярных позициях по умолчанию.
const defaultPopularLimit = 5

// Service отдаёт отчёты по заказам и продажам.
type Service interface {
	StatusReport() ([]domain.StatusStat, error)
	TodayReport() (domain.TodayStats, error)
	PopularItems(limit int) ([]domain.PopularItem, error)
	CategorySales() ([]domain.CategorySale, error)
}

type service struct {
	analytics domain.AnalyticsRepository
	logger    *log.Entry
}

// NewService создаёт сервис отчётов.
func NewService(analytics domain.AnalyticsRepository, logger *log.Entry) Service {
	if logger == nil {
		logger = log.New().WithField("component", "analytics-service")
	}
	return &service{analytics: analytics, logger: logger}
}

func (s *service) StatusReport() ([]domain.StatusStat, error) {
	return s.analytics.StatusStats()
}

func (s *service) TodayReport() (domain.TodayStats, error) {
	return s.analytics.TodayStats()
}

func (s *service) PopularItems(limit int) ([]domain.PopularItem, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	return s.analytics.PopularItems(limit)
}

func (s *service) CategorySales() ([]domain.CategorySale, error) {
	return s.analytics.CategorySales()
}

var _ Service = (*service)(nil)
