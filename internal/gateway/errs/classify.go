package errs

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionInvalidated = "session invalidated after auth failure"

	ErrorSessionClearFailed = "failed to clear session after auth failure"
)

// Фразы транспортных отказов в сообщениях ошибок, не являющихся APIError.
var (
	networkPhrases = []string{
		"failed to fetch",
		"networkerror",
		"connection refused",
		"no such host",
		"connection reset",
	}
	timeoutPhrases = []string{
		"context deadline exceeded",
		"context canceled",
		"timeout",
		"timed out",
	}
)

// ClassifyError сводит произвольное значение ошибки к ErrorResponse.
// Функция детерминирована и не имеет побочных эффектов; для одинаковых
// входов результат одинаков.
func ClassifyError(err error) *ErrorResponse {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return classifyAPIError(apiErr)
	}

	if err != nil {
		msg := strings.ToLower(err.Error())

		if containsAny(msg, networkPhrases) {
			return &ErrorResponse{
				Type:    KindNetwork,
				Code:    CodeNetworkError,
				Message: messageFor(CodeNetworkError, ""),
			}
		}

		if errors.Is(err, context.DeadlineExceeded) || containsAny(msg, timeoutPhrases) {
			return &ErrorResponse{
				Type:    KindNetwork,
				Code:    CodeTimeoutError,
				Message: messageFor(CodeTimeoutError, ""),
			}
		}

		return &ErrorResponse{
			Type:    KindUnknown,
			Code:    CodeUnknownError,
			Message: err.Error(),
		}
	}

	return &ErrorResponse{
		Type:    KindUnknown,
		Code:    CodeUnknownError,
		Message: FallbackMessage,
	}
}

// classifyAPIError отображает нормализованную ошибку Booking API
// на категорию по статусу ответа.
func classifyAPIError(apiErr *APIError) *ErrorResponse {
	resp := &ErrorResponse{
		Code:       apiErr.Code,
		StatusCode: apiErr.StatusCode,
		Message:    messageFor(apiErr.Code, apiErr.Message),
		Details:    apiErr.Details,
	}

	switch {
	case apiErr.Code == CodeNetworkError || apiErr.Code == CodeTimeoutError:
		resp.Type = KindNetwork
	case apiErr.StatusCode == http.StatusBadRequest:
		resp.Type = KindValidation
		// Сообщение валидации приходит из тела ответа сервера.
		if apiErr.Message != "" {
			resp.Message = apiErr.Message
		}
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		resp.Type = KindAuth
	case apiErr.StatusCode >= http.StatusInternalServerError:
		resp.Type = KindServer
	default:
		resp.Type = KindUnknown
	}

	return resp
}

func containsAny(s string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}

// Classifier классифицирует ошибки и применяет единственное сквозное
// правило: ответ 401 делает сессию недействительной.
type Classifier struct {
	sessions sessionPorts.Store
}

// NewClassifier создает новый классификатор поверх хранилища сессий.
func NewClassifier(sessions sessionPorts.Store) *Classifier {
	return &Classifier{sessions: sessions}
}

// Classify классифицирует ошибку и при отказе аутентификации (401)
// очищает сессию из контекста. Остальная классификация свободна
// от побочных эффектов.
func (c *Classifier) Classify(ctx context.Context, err error) *ErrorResponse {
	resp := ClassifyError(err)

	if resp.StatusCode == http.StatusUnauthorized && resp.Type == KindAuth {
		c.invalidateSession(ctx)
	}

	return resp
}

// invalidateSession очищает сессию текущего запроса, если она есть.
func (c *Classifier) invalidateSession(ctx context.Context) {
	sessionID, ok := sessionPorts.IDFromContext(ctx)
	if !ok || c.sessions == nil {
		return
	}

	log := logger.Log(ctx)
	if err := c.sessions.Clear(ctx, sessionID); err != nil {
		log.Warn(ctx, ErrorSessionClearFailed, zap.Error(err))
		return
	}
	log.Info(ctx, LogSessionInvalidated, zap.String("session_id", sessionID))
}
