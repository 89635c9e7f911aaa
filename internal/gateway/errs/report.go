package errs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stayfront/pkg/logger"
)

// ToastDismissAfter - длительность показа уведомления об ошибке в UI.
const ToastDismissAfter = 5 * time.Second

// LogError записывает ровно одну структурированную запись лога для
// классифицированной ошибки. Идемпотентна и независима от Respond.
func LogError(ctx context.Context, contextMsg string, resp *ErrorResponse) {
	logger.Log(ctx).Error(ctx, "request failed",
		zap.String("context", contextMsg),
		zap.Time("timestamp", time.Now()),
		zap.String("error_type", string(resp.Type)),
		zap.String("error_code", resp.Code),
		zap.String("error_message", resp.Message),
		zap.Int("status_code", resp.StatusCode),
		zap.Any("details", resp.Details))
}

// Respond отправляет браузеру ровно один ответ об ошибке - аналог
// одного всплывающего уведомления с автоскрытием.
func Respond(c fiber.Ctx, resp *ErrorResponse) error {
	if err := c.Status(httpStatus(resp)).JSON(fiber.Map{
		"error":            resp,
		"dismiss_after_ms": ToastDismissAfter.Milliseconds(),
	}); err != nil {
		return fmt.Errorf("error sending error response: %w", err)
	}
	return nil
}

// httpStatus выбирает HTTP статус ответа браузеру. Статус Booking API
// передается как есть; транспортные отказы без статуса становятся 502.
func httpStatus(resp *ErrorResponse) int {
	if resp.StatusCode > 0 {
		return resp.StatusCode
	}
	if resp.Type == KindNetwork {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
