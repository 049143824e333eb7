package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// Customer представляет клиента ресторана. Email уникален в хранилище.
type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone string
}

// ValidEmail проверяет формат адреса.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Employee представляет сотрудника. Available — фильтр для назначения
// на заказ, не блокировка.
type Employee struct {
	ID        int64
	Name      string
	Phone     string
	Available bool
}
