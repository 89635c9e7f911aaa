// Package errs содержит нормализацию и классификацию ошибок Gateway.
//
// Любой отказ Booking API нормализуется на границе исполнителя запросов
// в *APIError, а классификатор сводит произвольное значение ошибки
// к замкнутому набору категорий ErrorResponse. Вызывающие не форматируют
// сообщения об ошибках самостоятельно.
package errs

import (
	"fmt"
	"net/http"
)

// Kind - категория ошибки, видимая пользователю.
type Kind string

// Замкнутый набор категорий ошибок.
const (
	KindNetwork    Kind = "NETWORK"
	KindValidation Kind = "VALIDATION"
	KindAuth       Kind = "AUTH"
	KindServer     Kind = "SERVER"
	KindUnknown    Kind = "UNKNOWN"
)

// Коды ошибок, присваиваемые на границе исполнителя запросов.
const (
	CodeNetworkError    = "NETWORK_ERROR"
	CodeTimeoutError    = "TIMEOUT_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeAuthError       = "AUTH_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeServerError     = "SERVER_ERROR"
	CodeUnknownError    = "UNKNOWN_ERROR"
)

// APIError - нормализованная ошибка вызова Booking API.
// Конструируется исполнителем запросов из тела ответа, сетевого отказа
// или таймаута; потребляется только классификатором. Никогда не сохраняется.
type APIError struct {
	Code       string         `json:"code"`
	StatusCode int            `json:"statusCode"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
}

// Error реализует интерфейс error.
func (e *APIError) Error() string {
	return fmt.Sprintf("booking api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// CodeForStatus выводит код ошибки из HTTP статуса ответа.
func CodeForStatus(statusCode int) string {
	switch {
	case statusCode == http.StatusBadRequest:
		return CodeValidationError
	case statusCode == http.StatusUnauthorized:
		return CodeAuthError
	case statusCode == http.StatusForbidden:
		return CodeUnauthorized
	case statusCode == http.StatusNotFound:
		return CodeNotFound
	case statusCode >= http.StatusInternalServerError:
		return CodeServerError
	default:
		return fmt.Sprintf("HTTP_%d", statusCode)
	}
}

// ErrorResponse - результат классификации одного отказа.
// Чистые данные: одно такое значение порождает один тост и одну запись лога.
type ErrorResponse struct {
	Type       Kind           `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// FallbackMessage - сообщение для нераспознанных ошибок.
const FallbackMessage = "Something went wrong. Please try again."

// userMessages - статическая таблица код -> отображаемое сообщение.
// Валидационные ошибки в таблицу не входят: их сообщения приходят
// из тела ответа и показываются как есть.
var userMessages = map[string]string{
	CodeNetworkError: "Unable to connect. Please check your internet connection.",
	CodeTimeoutError: "The request took too long. Please try again.",
	CodeAuthError:    "Your session has expired. Please sign in again.",
	CodeUnauthorized: "You don't have permission to do that.",
	CodeServerError:  "The service is temporarily unavailable. Please try again later.",
	CodeUnknownError: FallbackMessage,
}

// messageFor возвращает сообщение из таблицы или запасное.
func messageFor(code, fallback string) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	if fallback != "" {
		return fallback
	}
	return FallbackMessage
}
