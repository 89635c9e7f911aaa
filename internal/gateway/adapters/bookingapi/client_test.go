package bookingapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/internal/gateway/adapters/bookingapi"
	"stayfront/internal/gateway/config"
	"stayfront/internal/gateway/errs"
	api "stayfront/internal/gateway/ports/bookingapi"
)

// staticTokens is a TokenSource with a fixed token.
type staticTokens struct {
	token string
}

func (s staticTokens) AccessToken(context.Context) string {
	return s.token
}

func testClient(t *testing.T, handler http.Handler, token string) *bookingapi.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.BookingAPIConfig{
		BaseURL:        server.URL,
		RequestTimeout: 2 * time.Second,
		MaxIdleConns:   2,
	}
	return bookingapi.NewClient(cfg, staticTokens{token: token})
}

func TestClient_UnwrapsEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/hotels", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"total":2}}`))
	}), "")

	var out struct {
		Total int `json:"total"`
	}
	err := client.Get(context.Background(), "/hotels", &out)

	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
}

func TestClient_BareJSONBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total":7}`))
	}), "")

	var out struct {
		Total int `json:"total"`
	}
	err := client.Get(context.Background(), "/hotels", &out)

	require.NoError(t, err)
	assert.Equal(t, 7, out.Total)
}

func TestClient_NonJSONSuccessBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	}), "")

	var out struct {
		Message string `json:"message"`
	}
	err := client.Get(context.Background(), "/ping", &out)

	require.NoError(t, err)
	assert.Equal(t, "pong", out.Message)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INVALID_DATES","message":"check-out must be after check-in","details":{"field":"checkOut"}}}`))
	}), "")

	err := client.Get(context.Background(), "/bookings", nil)

	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.CodeValidationError, apiErr.Code, "code comes from the status, not the body")
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "check-out must be after check-in", apiErr.Message)
	assert.Equal(t, "checkOut", apiErr.Details["field"])
}

func TestClient_ErrorWithoutBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), "")

	err := client.Get(context.Background(), "/hotels", nil)

	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.CodeServerError, apiErr.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestClient_AuthHeaderAttached(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}), "token-1")

	require.NoError(t, client.Get(context.Background(), "/users/me", nil, api.WithAuth()))
	assert.Equal(t, "Bearer token-1", gotAuth)
}

func TestClient_MissingTokenSendsNoAuthHeader(t *testing.T) {
	var sawHeader bool
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"unauthorized"}}`))
	}), "")

	err := client.Get(context.Background(), "/users/me", nil, api.WithAuth())

	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr, "request is still sent, the server decides")
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.False(t, sawHeader, "no Authorization header without a token")
}

func TestClient_NoAuthOptionSendsNoHeader(t *testing.T) {
	var sawHeader bool
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}), "token-1")

	require.NoError(t, client.Get(context.Background(), "/hotels", nil))
	assert.False(t, sawHeader)
}

func TestClient_Timeout(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}), "")

	start := time.Now()
	err := client.Get(context.Background(), "/hotels", nil, api.WithTimeout(50*time.Millisecond))
	elapsed := time.Since(start)

	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.CodeTimeoutError, apiErr.Code)
	assert.Equal(t, http.StatusRequestTimeout, apiErr.StatusCode)
	assert.Less(t, elapsed, 250*time.Millisecond, "the call must resolve on timeout, not on the late response")
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	cfg := &config.BookingAPIConfig{
		BaseURL:        server.URL,
		RequestTimeout: time.Second,
		MaxIdleConns:   2,
	}
	client := bookingapi.NewClient(cfg, staticTokens{})
	server.Close()

	err := client.Get(context.Background(), "/hotels", nil)

	var apiErr *errs.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, errs.CodeNetworkError, apiErr.Code)
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody []byte
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"b1"}}`))
	}), "")

	var out struct {
		ID string `json:"id"`
	}
	err := client.Post(context.Background(), "/bookings", map[string]string{"hotelId": "h1"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.JSONEq(t, `{"hotelId":"h1"}`, string(gotBody))
	assert.Equal(t, "b1", out.ID)
}
