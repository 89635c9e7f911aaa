package resilience_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/internal/gateway/errs"
	"stayfront/internal/gateway/resilience"
)

func fastRetryConfig() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	retry := resilience.NewRetry("test", fastRetryConfig())

	attempts := 0
	err := retry.Execute(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return &errs.APIError{Code: errs.CodeServerError, StatusCode: http.StatusInternalServerError}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetry_DoesNotRetryClientErrors(t *testing.T) {
	retry := resilience.NewRetry("test", fastRetryConfig())

	attempts := 0
	err := retry.Execute(context.Background(), func() error {
		attempts++
		return &errs.APIError{Code: errs.CodeValidationError, StatusCode: http.StatusBadRequest}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_RetriesNetworkAndTimeout(t *testing.T) {
	tests := []struct {
		name   string
		apiErr *errs.APIError
	}{
		{"network", &errs.APIError{Code: errs.CodeNetworkError, StatusCode: 0}},
		{"timeout", &errs.APIError{Code: errs.CodeTimeoutError, StatusCode: http.StatusRequestTimeout}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retry := resilience.NewRetry("test", fastRetryConfig())

			attempts := 0
			err := retry.Execute(context.Background(), func() error {
				attempts++
				return tt.apiErr
			})

			require.Error(t, err)
			assert.Equal(t, 3, attempts, "transient failures are retried to exhaustion")
		})
	}
}

func TestRetry_StopsOnCanceledContext(t *testing.T) {
	retry := resilience.NewRetry("test", fastRetryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := retry.Execute(ctx, func() error {
		attempts++
		return ctx.Err()
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "a canceled call is never retried")
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cfg := resilience.CircuitBreakerConfig{
		ErrorThreshold:   3,
		Timeout:          time.Minute,
		SuccessThreshold: 1,
	}
	cb := resilience.NewCircuitBreaker("test", cfg)
	ctx := context.Background()
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, func() error { return boom })
	}
	assert.Equal(t, resilience.StateOpen, cb.GetState())

	err := cb.Execute(ctx, func() error {
		t.Fatal("operation must not run while the breaker is open")
		return nil
	})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
}

func TestCircuitBreaker_RecoversThroughHalfOpen(t *testing.T) {
	cfg := resilience.CircuitBreakerConfig{
		ErrorThreshold:   1,
		Timeout:          10 * time.Millisecond,
		SuccessThreshold: 2,
	}
	cb := resilience.NewCircuitBreaker("test", cfg)
	ctx := context.Background()

	_ = cb.Execute(ctx, func() error { return errors.New("boom") })
	require.Equal(t, resilience.StateOpen, cb.GetState())

	time.Sleep(20 * time.Millisecond)

	require.NoError(t, cb.Execute(ctx, func() error { return nil }))
	assert.Equal(t, resilience.StateHalfOpen, cb.GetState())

	require.NoError(t, cb.Execute(ctx, func() error { return nil }))
	assert.Equal(t, resilience.StateClosed, cb.GetState())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cfg := resilience.CircuitBreakerConfig{
		ErrorThreshold:   2,
		Timeout:          time.Minute,
		SuccessThreshold: 1,
	}
	cb := resilience.NewCircuitBreaker("test", cfg)
	ctx := context.Background()

	_ = cb.Execute(ctx, func() error { return errors.New("boom") })
	require.NoError(t, cb.Execute(ctx, func() error { return nil }))
	_ = cb.Execute(ctx, func() error { return errors.New("boom") })

	assert.Equal(t, resilience.StateClosed, cb.GetState(), "interleaved success resets the streak")
}

func TestServiceResilience_WriteSkipsRetry(t *testing.T) {
	r := resilience.NewServiceResilience("test")
	ctx := context.Background()

	attempts := 0
	err := r.ExecuteWrite(ctx, "CreateBooking", func() error {
		attempts++
		return &errs.APIError{Code: errs.CodeServerError, StatusCode: http.StatusInternalServerError}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestServiceResilience_ReadResultRetries(t *testing.T) {
	r := resilience.NewServiceResilience("test")
	ctx := context.Background()

	attempts := 0
	value, err := resilience.ExecuteReadResult(ctx, r, "ListHotels", func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", &errs.APIError{Code: errs.CodeNetworkError}
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, attempts)
}
