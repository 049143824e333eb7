package domain

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует доменные ошибки. Вызывающий код ветвится по Kind,
// а не по тексту сообщения.
type ErrorKind string

const (
	// KindNotFound — клиент/сотрудник/заказ/позиция меню отсутствует.
	KindNotFound ErrorKind = "not_found"
	// KindPreconditionFailed — сущность есть, но в неподходящем состоянии
	// (сотрудник занят, позиция меню неактивна).
	KindPreconditionFailed ErrorKind = "precondition_failed"
	// KindInvalidArgument — некорректный ввод: неположительный id или
	// количество, пустое имя, плохой email, отрицательная цена.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindInvalidTransition — переход статуса вне таблицы.
	KindInvalidTransition ErrorKind = "invalid_transition"
	// KindOrderNotModifiable — состав можно менять только в PENDING/ACCEPTED.
	KindOrderNotModifiable ErrorKind = "order_not_modifiable"
	// KindOrderNotDeletable — удалять заказ можно только в PENDING.
	KindOrderNotDeletable ErrorKind = "order_not_deletable"
	// KindNoAvailableEmployee — автоназначение не нашло свободного сотрудника.
	KindNoAvailableEmployee ErrorKind = "no_available_employee"
	// KindStorageFailure — ошибка хранилища; всегда пробрасывается наверх.
	KindStorageFailure ErrorKind = "storage_failure"
)

// Error — доменная ошибка с тегом Kind и структурированным контекстом.
type Error struct {
	Kind   ErrorKind
	Entity string
	ID     int64
	Field  string
	From   OrderStatus
	To     OrderStatus
	Err    error

	msg string
}

func (e *Error) Error() string {
	switch {
	case e.msg != "":
		return e.msg
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound сообщает об отсутствующей сущности.
func NotFound(entity string, id int64) *Error {
	return &Error{
		Kind:   KindNotFound,
		Entity: entity,
		ID:     id,
		msg:    fmt.Sprintf("%s %d does not exist", entity, id),
	}
}

// PreconditionFailed сообщает о сущности в неподходящем состоянии.
func PreconditionFailed(entity string, id int64, reason string) *Error {
	return &Error{
		Kind:   KindPreconditionFailed,
		Entity: entity,
		ID:     id,
		msg:    fmt.Sprintf("%s %d: %s", entity, id, reason),
	}
}

// InvalidArgument сообщает о некорректном поле ввода.
func InvalidArgument(field, reason string) *Error {
	return &Error{
		Kind:  KindInvalidArgument,
		Field: field,
		msg:   fmt.Sprintf("%s: %s", field, reason),
	}
}

// InvalidTransition сообщает о запрещённом переходе статуса.
func InvalidTransition(orderID int64, from, to OrderStatus) *Error {
	return &Error{
		Kind:   KindInvalidTransition,
		Entity: "order",
		ID:     orderID,
		From:   from,
		To:     to,
		msg:    fmt.Sprintf("order %d: transition %s -> %s is not allowed", orderID, from, to),
	}
}

// NotModifiable сообщает, что состав заказа заморожен его статусом.
func NotModifiable(orderID int64, status OrderStatus) *Error {
	return &Error{
		Kind:   KindOrderNotModifiable,
		Entity: "order",
		ID:     orderID,
		From:   status,
		msg:    fmt.Sprintf("order %d: cannot modify items in status %s", orderID, status),
	}
}

// NotDeletable сообщает, что заказ уже нельзя удалить.
func NotDeletable(orderID int64, status OrderStatus) *Error {
	return &Error{
		Kind:   KindOrderNotDeletable,
		Entity: "order",
		ID:     orderID,
		From:   status,
		msg:    fmt.Sprintf("order %d: only PENDING orders can be deleted, status is %s", orderID, status),
	}
}

// NoAvailableEmployee сообщает, что автоназначение не нашло кандидата.
func NoAvailableEmployee() *Error {
	return &Error{
		Kind: KindNoAvailableEmployee,
		msg:  "no available employee for assignment",
	}
}

// StorageFailure оборачивает ошибку хранилища, сохраняя причину для Unwrap.
func StorageFailure(op string, err error) *Error {
	return &Error{
		Kind: KindStorageFailure,
		Err:  err,
		msg:  fmt.Sprintf("%s: %v", op, err),
	}
}

// KindOf возвращает Kind доменной ошибки или пустую строку для посторонних ошибок.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound проверяет ошибку на KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidArgument проверяет ошибку на KindInvalidArgument.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsInvalidTransition проверяет ошибку на KindInvalidTransition.
func IsInvalidTransition(err error) bool { return KindOf(err) == KindInvalidTransition }

// IsNotModifiable проверяет ошибку на KindOrderNotModifiable.
func IsNotModifiable(err error) bool { return KindOf(err) == KindOrderNotModifiable }

// IsStorageFailure проверяет ошибку на KindStorageFailure.
func IsStorageFailure(err error) bool { return KindOf(err) == KindStorageFailure }
