// Package session содержит реализацию хранилища сессий поверх кэша.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	cachePorts "stayfront/internal/gateway/ports/cache"
	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/pkg/logger"
)

// KeyPrefix - префикс ключей сессий в кэше.
const KeyPrefix = "session:"

// Константы для логирования.
const (
	ErrorFailedToMarshal   = "failed to marshal session"
	ErrorFailedToUnmarshal = "failed to unmarshal session"
	ErrorStorageWrite      = "session storage write failed, continuing degraded"
	ErrorStorageRead       = "session storage read failed, treating as no session"
)

// RedisStore реализует интерфейс Store поверх Redis-кэша.
//
// Сессия хранится одним JSON значением под одним ключом, поэтому запись
// атомарна с точки зрения вызывающего: токены и профиль не могут
// разъехаться. При недоступности кэша чтения возвращают nil-сессию,
// а записи становятся no-op.
type RedisStore struct {
	cache cachePorts.Cache
	ttl   time.Duration
}

// NewRedisStore создает новое хранилище сессий с заданным временем жизни.
func NewRedisStore(cache cachePorts.Cache, ttl time.Duration) sessionPorts.Store {
	return &RedisStore{cache: cache, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return KeyPrefix + sessionID
}

// Set сохраняет сессию целиком одним значением.
func (s *RedisStore) Set(ctx context.Context, sessionID string, sess *sessionPorts.Session) error {
	log := logger.Log(ctx).With(zap.String("session_id", sessionID))

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToMarshal, err)
	}

	if err := s.cache.Set(ctx, sessionKey(sessionID), string(data), s.ttl); err != nil {
		log.Warn(ctx, ErrorStorageWrite, zap.Error(err))
		return nil
	}

	return nil
}

// Get возвращает сессию или nil, если сессии нет либо хранилище недоступно.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*sessionPorts.Session, error) {
	log := logger.Log(ctx).With(zap.String("session_id", sessionID))

	value, err := s.cache.Get(ctx, sessionKey(sessionID))
	if err != nil {
		log.Warn(ctx, ErrorStorageRead, zap.Error(err))
		return nil, nil
	}
	if value == "" {
		return nil, nil
	}

	var sess sessionPorts.Session
	if err := json.Unmarshal([]byte(value), &sess); err != nil {
		// Испорченная сессия равносильна отсутствующей.
		log.Warn(ctx, ErrorFailedToUnmarshal, zap.Error(err))
		return nil, nil
	}

	return &sess, nil
}

// Clear удаляет сессию. Повторный вызов для отсутствующей сессии безопасен.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx).With(zap.String("session_id", sessionID))

	if err := s.cache.Delete(ctx, sessionKey(sessionID)); err != nil {
		log.Warn(ctx, ErrorStorageWrite, zap.Error(err))
	}

	return nil
}

// IsAuthenticated сообщает, аутентифицирована ли сессия: требуется
// одновременно непустой access-токен и закэшированный профиль.
func (s *RedisStore) IsAuthenticated(ctx context.Context, sessionID string) bool {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return false
	}
	return sess.Authenticated()
}
