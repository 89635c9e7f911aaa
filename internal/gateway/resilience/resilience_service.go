package resilience

import (
	"context"

	"go.uber.org/zap"

	"stayfront/pkg/logger"
)

// ServiceResilience обеспечивает отказоустойчивость сервисных вызовов.
// Читающие операции проходят через ретраи и Circuit Breaker, пишущие -
// только через Circuit Breaker: повтор неидемпотентной записи может
// продублировать бронирование.
type ServiceResilience struct {
	serviceName    string
	circuitBreaker *CircuitBreaker
	retry          *Retry
}

// NewServiceResilience создает новую обертку отказоустойчивости для сервиса.
func NewServiceResilience(serviceName string) *ServiceResilience {
	return &ServiceResilience{
		serviceName:    serviceName,
		circuitBreaker: NewCircuitBreaker(serviceName, DefaultCircuitBreakerConfig()),
		retry:          NewRetry(serviceName, DefaultRetryConfig()),
	}
}

// ExecuteRead выполняет идемпотентную читающую операцию с ретраями
// под защитой Circuit Breaker.
func (r *ServiceResilience) ExecuteRead(ctx context.Context, operationName string, operation func() error) error {
	r.logOperation(ctx, operationName, "read")

	return r.circuitBreaker.Execute(ctx, func() error {
		return r.retry.Execute(ctx, operation)
	})
}

// ExecuteWrite выполняет пишущую операцию под защитой Circuit Breaker
// без повторных попыток.
func (r *ServiceResilience) ExecuteWrite(ctx context.Context, operationName string, operation func() error) error {
	r.logOperation(ctx, operationName, "write")

	return r.circuitBreaker.Execute(ctx, operation)
}

func (r *ServiceResilience) logOperation(ctx context.Context, operationName, mode string) {
	logger.Log(ctx).Debug(ctx, "executing operation with resilience",
		zap.String("service", r.serviceName),
		zap.String("operation", operationName),
		zap.String("mode", mode))
}

// ExecuteReadResult выполняет читающую операцию с ретраями и возвращает результат.
func ExecuteReadResult[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteRead(ctx, operationName, func() error {
		var opErr error
		result, opErr = operation()
		return opErr
	})
	return result, err
}

// ExecuteWriteResult выполняет пишущую операцию и возвращает результат.
func ExecuteWriteResult[T any](ctx context.Context, r *ServiceResilience, operationName string, operation func() (T, error)) (T, error) {
	var result T
	err := r.ExecuteWrite(ctx, operationName, func() error {
		var opErr error
		result, opErr = operation()
		return opErr
	})
	return result, err
}
