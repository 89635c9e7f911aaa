package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"stayfront/internal/gateway/app/dto"
	api "stayfront/internal/gateway/ports/bookingapi"
	cachePorts "stayfront/internal/gateway/ports/cache"
	"stayfront/internal/gateway/ports/services"
	"stayfront/internal/gateway/resilience"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogServiceListHotels = "hotels service: list hotels"
	LogServiceGetHotel   = "hotels service: get hotel"
	LogServiceListRooms  = "hotels service: list rooms"
	LogHotelsDegraded    = "booking api unavailable, serving hotels from cache"

	ErrorListHotelsFailed = "failed to list hotels"
	ErrorGetHotelFailed   = "failed to get hotel"
	ErrorListRoomsFailed  = "failed to list rooms"
	ErrorHotelsCacheWrite = "failed to cache hotels payload"
)

// Ключи и срок жизни кэша каталога.
const (
	hotelsListKeyPrefix   = "hotels:list:"
	hotelsDetailKeyPrefix = "hotels:detail:"
	hotelsCacheTTL        = 15 * time.Minute
)

// HotelsServiceImpl реализует интерфейс HotelsService.
type HotelsServiceImpl struct {
	api        api.Executor
	cache      cachePorts.Cache
	resilience *resilience.ServiceResilience
}

// NewHotelsService создает новый экземпляр сервиса каталога отелей.
func NewHotelsService(apiClient api.Executor, cache cachePorts.Cache) services.HotelsService {
	return &HotelsServiceImpl{
		api:        apiClient,
		cache:      cache,
		resilience: resilience.NewServiceResilience("hotels"),
	}
}

// ListHotels возвращает страницу каталога отелей.
// При недоступности Booking API отдается последняя закэшированная
// копия страницы с пометкой degraded.
func (s *HotelsServiceImpl) ListHotels(ctx context.Context, query *dto.HotelsQuery) (*dto.HotelsPage, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceListHotels)

	path := "/hotels"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	cacheKey := hotelsListKeyPrefix + query.Encode()

	page, err := resilience.ExecuteReadResult(ctx, s.resilience, "ListHotels", func() (*dto.HotelsPage, error) {
		var out dto.HotelsPage
		if err := s.api.Get(ctx, path, &out); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorListHotelsFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		if cached, ok := readCached[dto.HotelsPage](ctx, s.cache, cacheKey); ok {
			log.Warn(ctx, LogHotelsDegraded, zap.String("cache_key", cacheKey), zap.Error(err))
			cached.Degraded = true
			return cached, nil
		}
		log.Error(ctx, ErrorListHotelsFailed, zap.Error(err))
		return nil, fmt.Errorf("list hotels failed: %w", err)
	}

	s.writeCache(ctx, cacheKey, page)
	return page, nil
}

// GetHotel возвращает карточку отеля, деградируя до кэша при отказе.
func (s *HotelsServiceImpl) GetHotel(ctx context.Context, hotelID string) (*dto.HotelDetails, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceGetHotel, zap.String("hotel_id", hotelID))

	cacheKey := hotelsDetailKeyPrefix + hotelID

	details, err := resilience.ExecuteReadResult(ctx, s.resilience, "GetHotel", func() (*dto.HotelDetails, error) {
		var out dto.Hotel
		if err := s.api.Get(ctx, "/hotels/"+url.PathEscape(hotelID), &out); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrorGetHotelFailed, err)
		}
		return &dto.HotelDetails{Hotel: &out}, nil
	})
	if err != nil {
		if cached, ok := readCached[dto.HotelDetails](ctx, s.cache, cacheKey); ok {
			log.Warn(ctx, LogHotelsDegraded, zap.String("cache_key", cacheKey), zap.Error(err))
			cached.Degraded = true
			return cached, nil
		}
		log.Error(ctx, ErrorGetHotelFailed, zap.Error(err))
		return nil, fmt.Errorf("get hotel failed: %w", err)
	}

	s.writeCache(ctx, cacheKey, details)
	return details, nil
}

// ListRooms возвращает номера отеля. Доступность номеров меняется
// слишком быстро, чтобы отдавать устаревшую копию: кэша здесь нет.
func (s *HotelsServiceImpl) ListRooms(ctx context.Context, hotelID string) (*dto.RoomsResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceListRooms, zap.String("hotel_id", hotelID))

	rooms, err := resilience.ExecuteReadResult(ctx, s.resilience, "ListRooms", func() (*dto.RoomsResponse, error) {
		var out dto.RoomsResponse
		if err := s.api.Get(ctx, "/hotels/"+url.PathEscape(hotelID)+"/rooms", &out); err != nil {
			log.Error(ctx, ErrorListRoomsFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorListRoomsFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list rooms failed: %w", err)
	}

	return rooms, nil
}

// writeCache сохраняет успешный ответ каталога; отказ кэша не фатален.
func (s *HotelsServiceImpl) writeCache(ctx context.Context, key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), hotelsCacheTTL); err != nil {
		logger.Log(ctx).Warn(ctx, ErrorHotelsCacheWrite, zap.String("cache_key", key), zap.Error(err))
	}
}

// readCached читает закэшированную копию; любой сбой трактуется как промах.
func readCached[T any](ctx context.Context, cache cachePorts.Cache, key string) (*T, bool) {
	raw, err := cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}
	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return nil, false
	}
	return &value, true
}
