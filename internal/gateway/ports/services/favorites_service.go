package services

import (
	"context"

	"stayfront/internal/gateway/app/dto"
)

// FavoritesService определяет интерфейс избранных отелей пользователя.
type FavoritesService interface {
	ListFavorites(ctx context.Context) (*dto.FavoritesResponse, error)

	AddFavorite(ctx context.Context, hotelID string) error

	RemoveFavorite(ctx context.Context, hotelID string) error
}
