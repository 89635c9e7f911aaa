// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stayfront/pkg/logger"
)

// UserContextKey - ключ Locals, под которым лежит контекст запроса
// с request_id и идентификатором сессии.
const UserContextKey = "userContext"

// HeaderRequestID - заголовок, через который браузер может передать
// собственный идентификатор запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext извлекает обогащенный контекст запроса из Locals.
// До прохождения middleware возвращается сырой контекст fiber.
func RequestContext(ctx fiber.Ctx) context.Context {
	if userCtx, ok := ctx.Locals(UserContextKey).(context.Context); ok {
		return userCtx
	}
	return ctx.Context()
}

// NewLoggerMiddleware создает новое промежуточное ПО для логирования HTTP запросов.
// Каждому запросу присваивается request_id, который попадает во все
// записи лога ниже по стеку.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.Locals(UserContextKey, requestCtx)

		start := time.Now()
		path := ctx.Path()
		method := ctx.Method()

		log := logger.Log(requestCtx).With(
			zap.String("path", path),
			zap.String("method", method),
			zap.String("ip", ctx.IP()),
		)

		log.Info(requestCtx, "Request started")

		err := ctx.Next()

		latency := time.Since(start)
		status := ctx.Response().StatusCode()

		logFields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", latency),
		}

		if err != nil {
			log.Error(requestCtx, "Request failed", append(logFields, zap.Error(err))...)
			return fmt.Errorf("request processing error: %w", err)
		}

		log.Info(requestCtx, "Request completed", logFields...)
		return nil
	}
}
