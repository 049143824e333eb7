package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
)

// FormatCents печатает сумму в центах как доллары: 1648 -> "$16.48".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// ParseCents разбирает денежный ввод ("12", "12.5", "12.34") в центы.
func ParseCents(input string) (int64, error) {
	input = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "$"))
	if input == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, found := strings.Cut(input, ".")
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", input)
	}

	var cents int64
	if found {
		switch len(frac) {
		case 1:
			frac += "0"
		case 2:
		default:
			return 0, fmt.Errorf("invalid amount %q", input)
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid amount %q", input)
		}
	}

	if dollars < 0 {
		return dollars*100 - cents, nil
	}
	return dollars*100 + cents, nil
}

func formatOrderLine(o domain.Order) string {
	return fmt.Sprintf("#%-5d %-10s %-20s %-20s %10s  %s",
		o.ID, o.Status, truncate(o.CustomerName, 20), truncate(o.EmployeeName, 20),
		FormatCents(o.TotalCents), o.OrderedAt.Format("2006-01-02 15:04"))
}

func formatItemLine(item domain.OrderItem) string {
	return fmt.Sprintf("  %-20s x%-3d %10s  (%s)",
		truncate(item.ItemName, 20), item.Quantity,
		FormatCents(item.SubtotalCents()), item.CategoryName)
}

// truncate режет по рунам, чтобы не разорвать многобайтовый символ в имени.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
