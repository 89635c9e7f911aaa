package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayfront/internal/gateway/config"
	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogSessionIssued = "issued new session cookie"
)

// NewSessionMiddleware создает промежуточное ПО пользовательских сессий.
//
// Идентификатор сессии читается из cookie; если cookie нет, выдается
// новый. Middleware не проверяет аутентификацию и никого не блокирует:
// авторитетен в отказе Booking API, а не Gateway.
func NewSessionMiddleware(cfg *config.SessionConfig) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)

		sessionID := ctx.Cookies(cfg.CookieName)
		if sessionID == "" {
			sessionID = uuid.New().String()
			ctx.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
			logger.Log(requestCtx).Debug(requestCtx, LogSessionIssued, zap.String("cookie", cfg.CookieName))
		}

		ctx.Locals(UserContextKey, sessionPorts.NewContext(requestCtx, sessionID))
		return ctx.Next()
	}
}
