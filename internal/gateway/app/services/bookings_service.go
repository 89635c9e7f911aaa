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
	LogServiceCreateBooking = "bookings service: create booking"
	LogServiceListBookings  = "bookings service: list bookings"
	LogServiceGetBooking    = "bookings service: get booking"
	LogServiceCancelBooking = "bookings service: cancel booking"

	ErrorCreateBookingFailed = "failed to create booking"
	ErrorListBookingsFailed  = "failed to list bookings"
	ErrorGetBookingFailed    = "failed to get booking"
	ErrorCancelBookingFailed = "failed to cancel booking"
)

const pathBookings = "/bookings"

// BookingsServiceImpl реализует интерфейс BookingsService.
type BookingsServiceImpl struct {
	api        api.Executor
	resilience *resilience.ServiceResilience
}

// NewBookingsService создает новый экземпляр сервиса бронирований.
func NewBookingsService(apiClient api.Executor) services.BookingsService {
	return &BookingsServiceImpl{
		api:        apiClient,
		resilience: resilience.NewServiceResilience("bookings"),
	}
}

// CreateBooking создает бронирование. Запись не повторяется:
// повтор после неоднозначного отказа может продублировать бронь.
func (s *BookingsServiceImpl) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.Booking, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceCreateBooking, zap.String("hotel_id", req.HotelID), zap.String("room_id", req.RoomID))

	booking, err := resilience.ExecuteWriteResult(ctx, s.resilience, "CreateBooking", func() (*dto.Booking, error) {
		var out dto.Booking
		if err := s.api.Post(ctx, pathBookings, req, &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorCreateBookingFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorCreateBookingFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("create booking failed: %w", err)
	}

	return booking, nil
}

// ListBookings возвращает бронирования пользователя.
func (s *BookingsServiceImpl) ListBookings(ctx context.Context) (*dto.BookingsResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceListBookings)

	bookings, err := resilience.ExecuteReadResult(ctx, s.resilience, "ListBookings", func() (*dto.BookingsResponse, error) {
		var out dto.BookingsResponse
		if err := s.api.Get(ctx, pathBookings, &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorListBookingsFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorListBookingsFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}

	return bookings, nil
}

// GetBooking возвращает бронирование по идентификатору.
func (s *BookingsServiceImpl) GetBooking(ctx context.Context, bookingID string) (*dto.Booking, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceGetBooking, zap.String("booking_id", bookingID))

	booking, err := resilience.ExecuteReadResult(ctx, s.resilience, "GetBooking", func() (*dto.Booking, error) {
		var out dto.Booking
		if err := s.api.Get(ctx, pathBookings+"/"+url.PathEscape(bookingID), &out, api.WithAuth()); err != nil {
			log.Error(ctx, ErrorGetBookingFailed, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrorGetBookingFailed, err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, fmt.Errorf("get booking failed: %w", err)
	}

	return booking, nil
}

// CancelBooking отменяет бронирование.
func (s *BookingsServiceImpl) CancelBooking(ctx context.Context, bookingID string) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServiceCancelBooking, zap.String("booking_id", bookingID))

	err := s.resilience.ExecuteWrite(ctx, "CancelBooking", func() error {
		if err := s.api.Delete(ctx, pathBookings+"/"+url.PathEscape(bookingID), api.WithAuth()); err != nil {
			log.Error(ctx, ErrorCancelBookingFailed, zap.Error(err))
			return fmt.Errorf("%s: %w", ErrorCancelBookingFailed, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("cancel booking failed: %w", err)
	}

	return nil
}
