package services

import (
	"context"

	"stayfront/internal/gateway/app/dto"
)

// HotelsService определяет интерфейс каталога отелей.
//
// ListHotels и GetHotel - единственные операции, которым разрешено
// деградировать до последней закэшированной копии при недоступности
// Booking API; ответ в этом случае помечается полем degraded.
type HotelsService interface {
	ListHotels(ctx context.Context, query *dto.HotelsQuery) (*dto.HotelsPage, error)

	GetHotel(ctx context.Context, hotelID string) (*dto.HotelDetails, error)

	ListRooms(ctx context.Context, hotelID string) (*dto.RoomsResponse, error)
}
