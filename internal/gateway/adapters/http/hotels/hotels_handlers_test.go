package hotels_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayfront/internal/gateway/adapters/http/hotels"
	"stayfront/internal/gateway/adapters/http/middleware"
	"stayfront/internal/gateway/app/dto"
	"stayfront/internal/gateway/config"
	"stayfront/internal/gateway/errs"
	sessionPorts "stayfront/internal/gateway/ports/session"
)

// fakeHotelsService returns canned results.
type fakeHotelsService struct {
	page    *dto.HotelsPage
	details *dto.HotelDetails
	rooms   *dto.RoomsResponse
	err     error

	gotQuery *dto.HotelsQuery
}

func (f *fakeHotelsService) ListHotels(_ context.Context, query *dto.HotelsQuery) (*dto.HotelsPage, error) {
	f.gotQuery = query
	return f.page, f.err
}

func (f *fakeHotelsService) GetHotel(context.Context, string) (*dto.HotelDetails, error) {
	return f.details, f.err
}

func (f *fakeHotelsService) ListRooms(context.Context, string) (*dto.RoomsResponse, error) {
	return f.rooms, f.err
}

// trackStore records cleared sessions.
type trackStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionPorts.Session
	cleared  []string
}

func newTrackStore() *trackStore {
	return &trackStore{sessions: make(map[string]*sessionPorts.Session)}
}

func (s *trackStore) Set(_ context.Context, sessionID string, sess *sessionPorts.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sess
	return nil
}

func (s *trackStore) Get(_ context.Context, sessionID string) (*sessionPorts.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[sessionID], nil
}

func (s *trackStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	s.cleared = append(s.cleared, sessionID)
	return nil
}

func (s *trackStore) IsAuthenticated(ctx context.Context, sessionID string) bool {
	sess, _ := s.Get(ctx, sessionID)
	return sess.Authenticated()
}

func testApp(t *testing.T, svc *fakeHotelsService, store *trackStore) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewSessionMiddleware(&config.SessionConfig{
		CookieName: "sid",
		TTL:        time.Hour,
	}))

	handler := hotels.NewHandler(svc, errs.NewClassifier(store))
	app.Get("/api/v1/hotels", handler.ListHotels)
	app.Get("/api/v1/hotels/:hotel_id", handler.GetHotel)
	return app
}

func TestListHotels_Success(t *testing.T) {
	svc := &fakeHotelsService{page: &dto.HotelsPage{
		Hotels: []dto.Hotel{{ID: "h1", Name: "Grand Plaza"}},
		Total:  1,
	}}
	app := testApp(t, svc, newTrackStore())

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/hotels?city=Sochi&page=2&limit=10", nil))
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var page dto.HotelsPage
	require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
	assert.Len(t, page.Hotels, 1)

	require.NotNil(t, svc.gotQuery)
	assert.Equal(t, "Sochi", svc.gotQuery.City)
	assert.Equal(t, 2, svc.gotQuery.Page)
	assert.Equal(t, 10, svc.gotQuery.Limit)
}

func TestListHotels_IssuesSessionCookie(t *testing.T) {
	svc := &fakeHotelsService{page: &dto.HotelsPage{}}
	app := testApp(t, svc, newTrackStore())

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil))
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	var sid *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == "sid" {
			sid = c
		}
	}
	require.NotNil(t, sid, "first visit must receive a session cookie")
	assert.NotEmpty(t, sid.Value)
	assert.True(t, sid.HttpOnly)
}

func TestListHotels_ErrorProducesSingleToastBody(t *testing.T) {
	svc := &fakeHotelsService{err: &errs.APIError{
		Code:       errs.CodeServerError,
		StatusCode: http.StatusInternalServerError,
		Message:    "boom",
	}}
	app := testApp(t, svc, newTrackStore())

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/hotels", nil))
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))

	errBody, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, string(errs.KindServer), errBody["type"])
	assert.Equal(t, errs.CodeServerError, errBody["code"])
	assert.NotContains(t, errBody["message"], "boom", "server detail must not leak to the user")
	assert.NotZero(t, body["dismiss_after_ms"])
}

func TestGetHotel_UnauthorizedClearsSession(t *testing.T) {
	store := newTrackStore()
	require.NoError(t, store.Set(context.Background(), "sid-1", &sessionPorts.Session{
		AccessToken: "t1",
		User:        &dto.UserProfile{ID: "user-1"},
	}))

	svc := &fakeHotelsService{err: &errs.APIError{
		Code:       errs.CodeAuthError,
		StatusCode: http.StatusUnauthorized,
		Message:    "token expired",
	}}
	app := testApp(t, svc, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hotels/h1", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-1"})

	res, err := app.Test(req)
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, []string{"sid-1"}, store.cleared)
}
