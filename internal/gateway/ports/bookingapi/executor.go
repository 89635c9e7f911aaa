// Package bookingapi определяет интерфейс исполнителя запросов к Booking API.
package bookingapi

import (
	"context"
	"net/http"
	"time"
)

// CallOptions содержит настройки одного вызова Booking API.
type CallOptions struct {
	// Timeout - максимальное время ожидания ответа. Ноль означает
	// таймаут по умолчанию из конфигурации клиента.
	Timeout time.Duration
	// Auth включает передачу access-токена текущей сессии.
	// Отсутствие токена не блокирует вызов: запрос уходит без
	// заголовка Authorization, отказ - прерогатива сервера.
	Auth bool
}

// CallOption настраивает один вызов Booking API.
type CallOption func(*CallOptions)

// WithTimeout переопределяет таймаут вызова.
func WithTimeout(d time.Duration) CallOption {
	return func(o *CallOptions) {
		o.Timeout = d
	}
}

// WithAuth включает авторизацию вызова токеном текущей сессии.
func WithAuth() CallOption {
	return func(o *CallOptions) {
		o.Auth = true
	}
}

// Executor выполняет один HTTP вызов Booking API: ограниченное по времени
// ожидание, разбор JSON и нормализация любого отказа в *errs.APIError.
// Повторные попытки не выполняются - политика ретраев принадлежит вызывающему.
type Executor interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...CallOption) error

	Get(ctx context.Context, path string, out any, opts ...CallOption) error

	Post(ctx context.Context, path string, body, out any, opts ...CallOption) error

	Put(ctx context.Context, path string, body, out any, opts ...CallOption) error

	Patch(ctx context.Context, path string, body, out any, opts ...CallOption) error

	Delete(ctx context.Context, path string, opts ...CallOption) error
}

// Методы HTTP, используемые клиентом Booking API.
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodPatch  = http.MethodPatch
	MethodDelete = http.MethodDelete
)
