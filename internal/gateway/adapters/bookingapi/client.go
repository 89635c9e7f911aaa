// Package bookingapi содержит HTTP клиент удаленного Booking API.
//
// Клиент выполняет один вызов с ограниченным временем ожидания и приводит
// любой отказ - неуспешный статус, сетевую ошибку, таймаут - к *errs.APIError.
// Повторных попыток нет: политика ретраев принадлежит вызывающему.
package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"stayfront/internal/gateway/config"
	"stayfront/internal/gateway/errs"
	api "stayfront/internal/gateway/ports/bookingapi"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogRequest = "booking api request"

	ErrorEncodeBody      = "failed to encode request body"
	ErrorBuildRequest    = "failed to build request"
	ErrorDecodeSuccess   = "failed to decode success body, returning empty payload"
	ErrorRequestFailed   = "booking api request failed"
	ErrorRequestTimedOut = "booking api request timed out"
)

// Заголовки запросов к Booking API.
const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeJSON     = "application/json"
	bearerPrefix        = "Bearer "
)

// TokenSource отдает access-токен для авторизованных вызовов.
// Пустая строка означает, что токена нет; вызов все равно выполняется.
type TokenSource interface {
	AccessToken(ctx context.Context) string
}

// Client реализует интерфейс Executor поверх net/http.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	defaultTimeout time.Duration
	tokens         TokenSource
}

// NewClient создает новый клиент Booking API.
func NewClient(cfg *config.BookingAPIConfig, tokens TokenSource) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = cfg.MaxIdleConns

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{Transport: transport},
		defaultTimeout: cfg.RequestTimeout,
		tokens:         tokens,
	}
}

// envelope - обертка ответов Booking API вида {success, data} / {success, error}.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *envelopeError  `json:"error"`
	Message string          `json:"message"`
}

type envelopeError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// Do выполняет один вызов Booking API.
//
// Таймаут реализован через контекст: его истечение отменяет запрос
// в полете, поэтому поздний ответ сервера не может разрешить вызов
// повторно, а отложенный cancel освобождает таймер на любом пути выхода.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...api.CallOption) error {
	options := api.CallOptions{Timeout: c.defaultTimeout}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Timeout <= 0 {
		options.Timeout = c.defaultTimeout
	}

	log := logger.Log(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)
	log.Debug(ctx, LogRequest, zap.Duration("timeout", options.Timeout), zap.Bool("auth", options.Auth))

	callCtx, cancel := context.WithTimeout(ctx, options.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrorEncodeBody, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(callCtx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorBuildRequest, err)
	}

	req.Header.Set(headerContentType, contentTypeJSON)
	if options.Auth {
		if token := c.tokens.AccessToken(ctx); token != "" {
			req.Header.Set(headerAuthorization, bearerPrefix+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(ctx, log, callCtx, err, options.Timeout)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, log, callCtx, err, options.Timeout)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := buildAPIError(resp.StatusCode, data)
		log.Debug(ctx, ErrorRequestFailed,
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("code", apiErr.Code))
		return apiErr
	}

	if out == nil {
		return nil
	}

	payload := successPayload(data, resp.Header.Get(headerContentType))
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		// Неразборчивое тело при успешном статусе не фатально:
		// решение принял статус ответа.
		log.Warn(ctx, ErrorDecodeSuccess, zap.Error(err))
	}
	return nil
}

// transportError нормализует сетевой отказ или таймаут в *errs.APIError.
func (c *Client) transportError(ctx context.Context, log *logger.Logger, callCtx context.Context, err error, timeout time.Duration) error {
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		log.Warn(ctx, ErrorRequestTimedOut, zap.Duration("timeout", timeout))
		return &errs.APIError{
			Code:       errs.CodeTimeoutError,
			StatusCode: http.StatusRequestTimeout,
			Message:    fmt.Sprintf("request timed out after %s", timeout),
		}
	}

	log.Warn(ctx, ErrorRequestFailed, zap.Error(err))
	return &errs.APIError{
		Code:       errs.CodeNetworkError,
		StatusCode: 0,
		Message:    "network request failed",
	}
}

// buildAPIError строит APIError из неуспешного ответа.
// Код выводится из HTTP статуса; тело поставляет только сообщение и детали.
func buildAPIError(statusCode int, data []byte) *errs.APIError {
	apiErr := &errs.APIError{
		Code:       errs.CodeForStatus(statusCode),
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err == nil {
		if env.Error != nil && env.Error.Message != "" {
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		} else if env.Message != "" {
			apiErr.Message = env.Message
		}
	}

	return apiErr
}

// successPayload извлекает полезную нагрузку успешного ответа.
// Конверт {success: true, data: ...} разворачивается до data;
// не-JSON тело оборачивается в {"message": ...}.
func successPayload(data []byte, contentType string) json.RawMessage {
	if len(data) == 0 {
		return nil
	}

	if !strings.Contains(contentType, contentTypeJSON) {
		wrapped, err := json.Marshal(map[string]string{"message": string(data)})
		if err != nil {
			return nil
		}
		return wrapped
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Тело не разобралось - трактуется как пустое.
		return nil
	}
	if env.Success != nil && len(env.Data) > 0 {
		return env.Data
	}
	return data
}

// Get выполняет GET запрос.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...api.CallOption) error {
	return c.Do(ctx, api.MethodGet, path, nil, out, opts...)
}

// Post выполняет POST запрос.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return c.Do(ctx, api.MethodPost, path, body, out, opts...)
}

// Put выполняет PUT запрос.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return c.Do(ctx, api.MethodPut, path, body, out, opts...)
}

// Patch выполняет PATCH запрос.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return c.Do(ctx, api.MethodPatch, path, body, out, opts...)
}

// Delete выполняет DELETE запрос.
func (c *Client) Delete(ctx context.Context, path string, opts ...api.CallOption) error {
	return c.Do(ctx, api.MethodDelete, path, nil, nil, opts...)
}
