// Package services определяет интерфейсы сервисов Gateway.
package services

import (
	"context"

	"stayfront/internal/gateway/app/dto"
)

// AuthService определяет интерфейс для работы с аутентификацией и профилем.
// sessionID идентифицирует сессию браузера; токены наружу не отдаются.
type AuthService interface {
	Register(ctx context.Context, sessionID string, req *dto.RegisterRequest) (*dto.AuthResponse, error)

	Login(ctx context.Context, sessionID string, req *dto.LoginRequest) (*dto.AuthResponse, error)

	RefreshTokens(ctx context.Context, sessionID string) error

	Logout(ctx context.Context, sessionID string) error

	GetProfile(ctx context.Context) (*dto.UserProfile, error)

	UpdateProfile(ctx context.Context, sessionID string, req *dto.UpdateProfileRequest) (*dto.UserProfile, error)
}
