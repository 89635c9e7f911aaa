package services

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"stayfront/internal/gateway/app/dto"
	api "stayfront/internal/gateway/ports/bookingapi"
	"stayfront/internal/gateway/ports/services"
	"stayfront/internal/gateway/resilience"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceListFavorites  = "favorites service: list favorites"
	LogServiceAddFavorite    = "favorites service: add favorite"
	LogServiceRemoveFavorite = "favorites service: remove favorite"

	ErrorListFavoritesFailed  = "failed to list favorites"
	ErrorAddFavoriteFailed    = "failed to add favorite"
	ErrorRemoveFavoriteFailed = "failed to remove favorite"
)

const pathFavorites = "/favorites"

// FavoritesServiceImpl реализует интерфейс FavoritesService.
type FavoritesServiceImpl struct {
	api        api.Executor
	resilience *resilience.ServiceResilience
}

// NewFavoritesService создает новый экземпляр сервиса избранного.
func NewFavoritesService(apiClient api.Executor) services.FavoritesService {
	return &FavoritesServiceImpl{
		api:        apiClient,
		resilience: resilience.NewServiceResilience("favorites"),
	}
}

// ListFavorites возвращает избранные отели пользователя.
func (s *FavoritesServiceImpl) ListFavorites(ctx context.Context) (*dto.FavoritesResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceListFavorites)

	favorites, err := resilience.ExecuteReadResult(ctx, s.resilience, "ListFavorites", func() (*dto.FavoritesResponse, error) {
		var out dto.FavoritesResponse
		if err := s.api.Get(ctx, pathFavorites, &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorListFavoritesFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorListFavoritesFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list favorites failed: %w", err)
	}

	return favorites, nil
}

// AddFavorite добавляет отель в избранное. Повторное добавление
// Booking API трактует как успех.
func (s *FavoritesServiceImpl) AddFavorite(ctx context.Context, hotelID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceAddFavorite, zap.String("hotel_id", hotelID))

	err := s.resilience.ExecuteWrite(ctx, "AddFavorite", func() error {
		body := &dto.AddFavoriteRequest{HotelID: hotelID}
		if err := s.api.Post(ctx, pathFavorites, body, nil, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorAddFavoriteFailed, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorAddFavoriteFailed, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("add favorite failed: %w", err)
	}

	return nil
}

// RemoveFavorite убирает отель из избранного.
func (s *FavoritesServiceImpl) RemoveFavorite(ctx context.Context, hotelID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceRemoveFavorite, zap.String("hotel_id", hotelID))

	err := s.resilience.ExecuteWrite(ctx, "RemoveFavorite", func() error {
		if err := s.api.Delete(ctx, pathFavorites+"/"+url.PathEscape(hotelID), api.WithAuth()); err != nil {
			log.Error(ctx, ErrorRemoveFavoriteFailed, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorRemoveFavoriteFailed, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("remove favorite failed: %w", err)
	}

	return nil
}
