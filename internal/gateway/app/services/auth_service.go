// Package services содержит реализации сервисов для Gateway.
// Сервисы оборачивают вызовы Booking API политикой отказоустойчивости
// и управляют сессионным состоянием пользователя.
package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"stayfront/internal/gateway/app/dto"
	api "stayfront/internal/gateway/ports/bookingapi"
	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/internal/gateway/ports/services"
	"stayfront/internal/gateway/resilience"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceRegister      = "auth service: register user"
	LogServiceLogin         = "auth service: login user"
	LogServiceTokenRefresh  = "auth service: token refresh" // #nosec G101 - not a credential
	LogServiceLogout        = "auth service: logout"
	LogServiceGetProfile    = "auth service: get user profile"
	LogServiceUpdateProfile = "auth service: update user profile"

	ErrorRegisterFailed      = "failed to register user"
	ErrorLoginFailed         = "failed to login"
	ErrorUpdateTokensFailed  = "failed to update tokens"
	ErrorLogoutUpstream      = "upstream logout failed, clearing session anyway"
	ErrorGetProfileFailed    = "failed to get user profile"
	ErrorUpdateProfileFailed = "failed to update user profile"
	ErrorSessionSaveFailed   = "failed to persist session"
)

// Пути аутентификации Booking API.
const (
	pathRegister = "/auth/register"
	pathLogin    = "/auth/login"
	pathRefresh  = "/auth/refresh"
	pathLogout   = "/auth/logout"
	pathProfile  = "/users/me"
)

// AuthServiceImpl реализует интерфейс AuthService.
type AuthServiceImpl struct {
	api        api.Executor
	sessions   sessionPorts.Store
	resilience *resilience.ServiceResilience
}

// NewAuthService создает новый экземпляр сервиса аутентификации.
func NewAuthService(apiClient api.Executor, sessions sessionPorts.Store) services.AuthService {
	return &AuthServiceImpl{
		api:        apiClient,
		sessions:   sessions,
		resilience: resilience.NewServiceResilience("auth"),
	}
}

// Register регистрирует нового пользователя и создает сессию.
func (s *AuthServiceImpl) Register(ctx context.Context, sessionID string, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceRegister)

	payload, err := resilience.ExecuteWriteResult(ctx, s.resilience, "Register", func() (*dto.AuthPayload, error) {
		var out dto.AuthPayload
		if err := s.api.Post(ctx, pathRegister, req, &out); err != nil {
			log.Error(ctx, ErrorRegisterFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorRegisterFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("user registration failed: %w", err)
	}

	s.storeSession(ctx, sessionID, payload)
	return &dto.AuthResponse{User: payload.User}, nil
}

// Login выполняет вход пользователя и создает сессию.
func (s *AuthServiceImpl) Login(ctx context.Context, sessionID string, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogin)

	payload, err := resilience.ExecuteWriteResult(ctx, s.resilience, "Login", func() (*dto.AuthPayload, error) {
		var out dto.AuthPayload
		if err := s.api.Post(ctx, pathLogin, req, &out); err != nil {
			log.Error(ctx, ErrorLoginFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorLoginFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("user login failed: %w", err)
	}

	s.storeSession(ctx, sessionID, payload)
	return &dto.AuthResponse{User: payload.User}, nil
}

// RefreshTokens обновляет токены сессии по refresh-токену.
// Отсутствие сессии не блокирует вызов: сервер авторитетен в отказе.
func (s *AuthServiceImpl) RefreshTokens(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceTokenRefresh)

	current, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	var refreshToken string
	if current != nil {
		refreshToken = current.RefreshToken
	}

	payload, err := resilience.ExecuteWriteResult(ctx, s.resilience, "RefreshTokens", func() (*dto.AuthPayload, error) {
		var out dto.AuthPayload
		body := map[string]string{"refreshToken": refreshToken}
		if err := s.api.Post(ctx, pathRefresh, body, &out); err != nil {
			log.Error(ctx, ErrorUpdateTokensFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorUpdateTokensFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}

	// Ответ на refresh может не содержать профиль - он берется из текущей сессии.
	if payload.User == nil && current != nil {
		payload.User = current.User
	}
	s.storeSession(ctx, sessionID, payload)
	return nil
}

// Logout завершает сессию. Сессия очищается даже при отказе Booking API:
// локальный выход не должен зависеть от доступности сервера.
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceLogout)

	current, _ := s.sessions.Get(ctx, sessionID)

	var refreshToken string
	if current != nil {
		refreshToken = current.RefreshToken
	}

	body := map[string]string{"refreshToken": refreshToken}
	if err := s.api.Post(ctx, pathLogout, body, nil, api.WithAuth()); err != nil {
		log.Warn(ctx, ErrorLogoutUpstream, zap.Error(err))
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("user logout failed: %w", err)
	}
	return nil
}

// GetProfile возвращает профиль пользователя из Booking API.
func (s *AuthServiceImpl) GetProfile(ctx context.Context) (*dto.UserProfile, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceGetProfile)

	profile, err := resilience.ExecuteReadResult(ctx, s.resilience, "GetProfile", func() (*dto.UserProfile, error) {
		var out dto.UserProfile
		if err := s.api.Get(ctx, pathProfile, &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorGetProfileFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorGetProfileFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get user profile failed: %w", err)
	}

	return profile, nil
}

// UpdateProfile изменяет профиль пользователя и обновляет его копию в сессии.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, sessionID string, req *dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceUpdateProfile)

	profile, err := resilience.ExecuteWriteResult(ctx, s.resilience, "UpdateProfile", func() (*dto.UserProfile, error) {
		var out dto.UserProfile
		if err := s.api.Patch(ctx, pathProfile, req, &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorUpdateProfileFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorUpdateProfileFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update user profile failed: %w", err)
	}

	// Копия профиля в сессии обновляется через Set: частичных записей нет.
	if current, err := s.sessions.Get(ctx, sessionID); err == nil && current != nil {
		current.User = profile
		if err := s.sessions.Set(ctx, sessionID, current); err != nil {
			log.Warn(ctx, ErrorSessionSaveFailed, zap.Error(err))
		}
	}

	return profile, nil
}

// storeSession сохраняет результат аутентификации как сессию браузера.
func (s *AuthServiceImpl) storeSession(ctx context.Context, sessionID string, payload *dto.AuthPayload) {
	sess := &sessionPorts.Session{
		AccessToken:  payload.Token,
		RefreshToken: payload.RefreshToken,
		User:         payload.User,
	}
	if err := s.sessions.Set(ctx, sessionID, sess); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorSessionSaveFailed, zap.Error(err))
	}
}
