package memory

import (
	"sort"
	"time"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// statusReportOrder задаёт порядок строк отчёта по жизненному циклу.
var statusReportOrder = []domain.OrderStatus{
	domain.OrderStatusPending,
	domain.OrderStatusAccepted,
	domain.OrderStatusPreparing,
	domain.OrderStatusCompleted,
	domain.OrderStatusCancelled,
}

type analyticsRepository struct {
	store *Store
	now   func() time.Time
}

// NewAnalyticsRepository возвращает in-memory реализацию AnalyticsRepository.
func NewAnalyticsRepository(store *Store) domain.AnalyticsRepository {
	return &analyticsRepository{store: store, now: time.Now}
}

func (r *analyticsRepository) StatusStats() ([]domain.StatusStat, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	byStatus := make(map[domain.OrderStatus]*domain.StatusStat)
	for _, o := range s.orders {
		stat, ok := byStatus[o.Status]
		if !ok {
			stat = &domain.StatusStat{Status: o.Status}
			byStatus[o.Status] = stat
		}
		stat.OrderCount++
		stat.RevenueCents += o.TotalCents
	}

	result := make([]domain.StatusStat, 0, len(byStatus))
	for _, status := range statusReportOrder {
		stat, ok := byStatus[status]
		if !ok {
			continue
		}
		stat.AvgCents = stat.RevenueCents / int64(stat.OrderCount)
		result = append(result, *stat)
	}
	return result, nil
}

func (r *analyticsRepository) TodayStats() (domain.TodayStats, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.TodayStats
	today := r.now().Truncate(24 * time.Hour)
	for _, o := range s.orders {
		if o.OrderedAt.Truncate(24 * time.Hour).Equal(today) {
			stats.Orders++
			if o.Status == domain.OrderStatusCompleted {
				stats.CompletedOrders++
				stats.RevenueCents += o.TotalCents
			}
		}
	}
	return stats, nil
}

func (r *analyticsRepository) PopularItems(limit int) ([]domain.PopularItem, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	type agg struct {
		item   domain.PopularItem
		orders map[int64]struct{}
	}
	byItem := make(map[int64]*agg)

	for orderID, lines := range s.orderItems {
		order, ok := s.orders[orderID]
		if !ok || order.Status == domain.OrderStatusCancelled {
			continue
		}
		for itemID, line := range lines {
			mi, ok := s.menuItems[itemID]
			if !ok {
				continue
			}
			a, ok := byItem[itemID]
			if !ok {
				a = &agg{orders: make(map[int64]struct{})}
				a.item.ItemName = mi.Name
				if cat, ok := s.categories[mi.CategoryID]; ok {
					a.item.CategoryName = cat.Name
				}
				byItem[itemID] = a
			}
			a.item.TotalOrdered += int64(line.Quantity)
			a.orders[orderID] = struct{}{}
		}
	}

	result := make([]domain.PopularItem, 0, len(byItem))
	for _, a := range byItem {
		a.item.OrderCount = len(a.orders)
		result = append(result, a.item)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalOrdered != result[j].TotalOrdered {
			return result[i].TotalOrdered > result[j].TotalOrdered
		}
		return result[i].ItemName < result[j].ItemName
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *analyticsRepository) CategorySales() ([]domain.CategorySale, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	type agg struct {
		sale   domain.CategorySale
		items  map[int64]struct{}
		orders map[int64]struct{}
	}
	byCategory := make(map[int64]*agg)

	for orderID, lines := range s.orderItems {
		order, ok := s.orders[orderID]
		if !ok || order.Status == domain.OrderStatusCancelled {
			continue
		}
		for itemID, line := range lines {
			mi, ok := s.menuItems[itemID]
			if !ok {
				continue
			}
			a, ok := byCategory[mi.CategoryID]
			if !ok {
				a = &agg{items: make(map[int64]struct{}), orders: make(map[int64]struct{})}
				if cat, ok := s.categories[mi.CategoryID]; ok {
					a.sale.CategoryName = cat.Name
				}
				byCategory[mi.CategoryID] = a
			}
			a.sale.TotalQty += int64(line.Quantity)
			a.sale.RevenueCents += int64(line.Quantity) * mi.PriceCents
			a.items[itemID] = struct{}{}
			a.orders[orderID] = struct{}{}
		}
	}

	result := make([]domain.CategorySale, 0, len(byCategory))
	for _, a := range byCategory {
		a.sale.UniqueItems = len(a.items)
		a.sale.OrderCount = len(a.orders)
		result = append(result, a.sale)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RevenueCents != result[j].RevenueCents {
			return result[i].RevenueCents > result[j].RevenueCents
		}
		return result[i].CategoryName < result[j].CategoryName
	})
	return result, nil
}

var _ domain.AnalyticsRepository = (*analyticsRepository)(nil)
