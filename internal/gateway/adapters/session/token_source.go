package session

import (
	"context"

	sessionPorts "stayfront/internal/gateway/ports/session"
)

// StoreTokenSource отдает access-токен сессии текущего запроса.
// Токен читается из хранилища заново при каждом вызове: между вызовами
// сессия могла быть очищена или обновлена.
type StoreTokenSource struct {
	store sessionPorts.Store
}

// NewTokenSource создает источник токенов поверх хранилища сессий.
func NewTokenSource(store sessionPorts.Store) *StoreTokenSource {
	return &StoreTokenSource{store: store}
}

// AccessToken возвращает access-токен сессии из контекста или пустую
// строку, если сессии или токена нет. Отсутствие токена не является
// ошибкой: запрос уйдет без авторизации, решение примет сервер.
func (t *StoreTokenSource) AccessToken(ctx context.Context) string {
	sessionID, ok := sessionPorts.IDFromContext(ctx)
	if !ok {
		return ""
	}

	sess, err := t.store.Get(ctx, sessionID)
	if err != nil || sess == nil {
		return ""
	}

	return sess.AccessToken
}
