package services

import (
	"context"

	"stayfront/internal/gateway/app/dto"
)

// BookingsService определяет интерфейс бронирований пользователя.
// Операции бронирования никогда не деградируют до кэша: любой отказ
// Booking API доходит до вызывающего.
type BookingsService interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.Booking, error)

	ListBookings(ctx context.Context) (*dto.BookingsResponse, error)

	GetBooking(ctx context.Context, bookingID string) (*dto.Booking, error)

	CancelBooking(ctx context.Context, bookingID string) error
}
