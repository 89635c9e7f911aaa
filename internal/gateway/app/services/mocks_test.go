package services_test

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stayfront/internal/gateway/app/dto"
	api "stayfront/internal/gateway/ports/bookingapi"
	sessionPorts "stayfront/internal/gateway/ports/session"
)

// fakeExecutor routes calls to a configurable handler and records them.
type fakeExecutor struct {
	mu      sync.Mutex
	handler func(ctx context.Context, method, path string, body, out any, opts []api.CallOption) error
	calls   []string
}

func (f *fakeExecutor) Do(ctx context.Context, method, path string, body, out any, opts ...api.CallOption) error {
	f.mu.Lock()
	f.calls = append(f.calls, method+" "+path)
	f.mu.Unlock()
	return f.handler(ctx, method, path, body, out, opts)
}

func (f *fakeExecutor) Get(ctx context.Context, path string, out any, opts ...api.CallOption) error {
	return f.Do(ctx, api.MethodGet, path, nil, out, opts...)
}

func (f *fakeExecutor) Post(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return f.Do(ctx, api.MethodPost, path, body, out, opts...)
}

func (f *fakeExecutor) Put(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return f.Do(ctx, api.MethodPut, path, body, out, opts...)
}

func (f *fakeExecutor) Patch(ctx context.Context, path string, body, out any, opts ...api.CallOption) error {
	return f.Do(ctx, api.MethodPatch, path, body, out, opts...)
}

func (f *fakeExecutor) Delete(ctx context.Context, path string, opts ...api.CallOption) error {
	return f.Do(ctx, api.MethodDelete, path, nil, nil, opts...)
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fill copies a payload into the out argument the way the real client decodes JSON.
func fill(out, payload any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// hasAuth reports whether the call options include authorization.
func hasAuth(opts []api.CallOption) bool {
	options := api.CallOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	return options.Auth
}

// authSession is an authenticated session fixture.
func authSession() *sessionPorts.Session {
	return &sessionPorts.Session{
		AccessToken:  "t1",
		RefreshToken: "r1",
		User: &dto.UserProfile{
			ID:        "user-1",
			Email:     "guest@example.com",
			FirstName: "Ivan",
			LastName:  "Petrov",
			Role:      dto.RoleUser,
		},
	}
}

// memStore is an in-memory session store.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionPorts.Session
	cleared  int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*sessionPorts.Session)}
}

func (m *memStore) Set(_ context.Context, sessionID string, sess *sessionPorts.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = sess
	return nil
}

func (m *memStore) Get(_ context.Context, sessionID string) (*sessionPorts.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[sessionID], nil
}

func (m *memStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
	m.cleared++
	return nil
}

func (m *memStore) IsAuthenticated(ctx context.Context, sessionID string) bool {
	sess, _ := m.Get(ctx, sessionID)
	return sess.Authenticated()
}

// memCache is an in-memory cache.
type memCache struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemCache() *memCache {
	return &memCache{values: make(map[string]string)}
}

func (m *memCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *memCache) Close() error { return nil }
