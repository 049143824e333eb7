package domain

// StatusStat — агрегат по одному статусу заказа.
type StatusStat struct {
	Status       OrderStatus
	OrderCount   int
	AvgCents     int64
	RevenueCents int64
}

// TodayStats — сводка по заказам за текущий день.
type TodayStats struct {
	Orders          int
	CompletedOrders int
	RevenueCents    int64
}

// PopularItem — строка отчёта о продажах позиции меню.
type PopularItem struct {
	ItemName     string
	CategoryName string
	TotalOrdered int64
	OrderCount   int
}

// CategorySale — строка отчёта о продажах по категории.
type CategorySale struct {
	CategoryName string
	TotalQty     int64
	RevenueCents int64
	UniqueItems  int
	OrderCount   int
}
