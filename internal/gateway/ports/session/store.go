// Package session определяет интерфейс хранилища пользовательских сессий.
//
// Хранилище - единственный владелец сессионного состояния: все изменения
// проходят через Set/Clear, никакой другой компонент не пишет сессионные
// ключи напрямую. Это единственное место, где обеспечивается инвариант
// "аутентифицирован тогда и только тогда, когда есть и токен, и профиль".
package session

import (
	"context"

	"stayfront/internal/gateway/app/dto"
)

// Session - сессионное состояние одного браузера.
// Создается при успешном login/register, уничтожается при logout
// или при ответе 401 от Booking API.
type Session struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	User         *dto.UserProfile `json:"user"`
}

// Authenticated сообщает, представляет ли сессия вошедшего пользователя.
// Наличия одного токена недостаточно: профиль обязан присутствовать.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccessToken != "" && s.User != nil
}

// Store определяет интерфейс хранилища сессий.
//
// При недоступности бэкенда хранилища чтения возвращают nil-сессию,
// а записи становятся no-op: деградация не должна ронять запрос.
type Store interface {
	// Set сохраняет сессию целиком. Запись атомарна с точки зрения
	// вызывающего: частично записанных сессий не бывает.
	Set(ctx context.Context, sessionID string, sess *Session) error

	// Get возвращает сессию или nil, если сессии нет.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Clear удаляет сессию. Идемпотентна.
	Clear(ctx context.Context, sessionID string) error

	// IsAuthenticated сообщает, аутентифицирована ли сессия.
	IsAuthenticated(ctx context.Context, sessionID string) bool
}

// sessionIDKeyType - тип ключа контекста для идентификатора сессии.
type sessionIDKeyType struct{}

var sessionIDKey = sessionIDKeyType{}

// NewContext создает новый контекст с идентификатором сессии.
func NewContext(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// IDFromContext извлекает идентификатор сессии из контекста.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}
