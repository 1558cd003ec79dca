package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок.

Видимость и отсутствие записи намеренно неразличимы: и то и другое
превращается в ErrNotFound, чтобы не раскрывать существование приватных
записей.
*/

// =========================================================================
// Фабричные функции
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется и когда запись не существует, и когда она невидима актору.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для нарушений предусловий state machine (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные переменные
// =========================================================================

// --- Gifts ---

// ErrReserveOwnGift - владелец не может зарезервировать собственный подарок.
var ErrReserveOwnGift = New(
	CodeForbidden,
	"gift",
	"Cannot reserve your own gift",
	http.StatusForbidden,
)

// ErrGiftAlreadyReserved - подарок уже зарезервирован другим пользователем.
var ErrGiftAlreadyReserved = New(
	CodeConflict,
	"gift",
	"Gift is already reserved",
	http.StatusConflict,
)

// ErrNotGiftOwner - операция доступна только владельцу подарка.
var ErrNotGiftOwner = New(
	CodeForbidden,
	"gift",
	"Only the gift owner can perform this operation",
	http.StatusForbidden,
)

// ErrGiftNotGiven - поблагодарить можно только за уже врученный подарок.
var ErrGiftNotGiven = New(
	CodeConflict,
	"gift",
	"Gift has not been given yet",
	http.StatusConflict,
)

// ErrGiftAlreadyThanked - благодарность уже отправлена.
var ErrGiftAlreadyThanked = New(
	CodeConflict,
	"gift",
	"Gift has already been thanked for",
	http.StatusConflict,
)

// --- Donations ---

// ErrNegativeDonationAmount - сумма взноса не может быть отрицательной.
var ErrNegativeDonationAmount = New(
	CodeValidationFailed,
	"donation",
	"Donation amount must be a non-negative number",
	http.StatusBadRequest,
)

// ErrNotDonationOwner - удалить сбор может только его автор или владелец подарка.
var ErrNotDonationOwner = New(
	CodeForbidden,
	"donation",
	"Only the donation author or the gift owner can withdraw the donation",
	http.StatusForbidden,
)

// --- Friend requests ---

// ErrFriendRequestToSelf - нельзя отправить заявку самому себе.
var ErrFriendRequestToSelf = New(
	CodeInvalidOperation,
	"friends",
	"Cannot send a friend request to yourself",
	http.StatusBadRequest,
)

// ErrAlreadyFriends - пользователи уже друзья.
var ErrAlreadyFriends = New(
	CodeConflict,
	"friends",
	"Users are already friends",
	http.StatusConflict,
)

// ErrFriendRequestPending - между парой уже существует pending-заявка.
var ErrFriendRequestPending = New(
	CodeConflict,
	"friends",
	"A pending friend request already exists between these users",
	http.StatusConflict,
)

// --- Events ---

// ErrNotEventOwner - операция доступна только владельцу события.
var ErrNotEventOwner = New(
	CodeForbidden,
	"event",
	"Only the event owner can perform this operation",
	http.StatusForbidden,
)
