package domain

// Category группирует позиции меню.
type Category struct {
	ID   int64
	Name string
}

// MenuItem представляет позицию каталога меню. PriceCents — актуальная цена
// в центах; изменение цены влияет только на будущие пересчёты итогов,
// сохранённые итоги завершённых заказов не трогаются.
type MenuItem struct {
	ID         int64
	CategoryID int64
	Name       string
	PriceCents int64
	Active     bool

	CategoryName string
}
