package dto

import "time"

// Статусы бронирования, известные фронтенду.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// CreateBookingRequest содержит данные для создания бронирования.
// Итоговую цену и доступность номера считает Booking API.
type CreateBookingRequest struct {
	HotelID  string    `json:"hotelId" validate:"required"`
	RoomID   string    `json:"roomId" validate:"required"`
	CheckIn  time.Time `json:"checkIn" validate:"required"`
	CheckOut time.Time `json:"checkOut" validate:"required"`
	Guests   int       `json:"guests" validate:"required,min=1"`
}

// Booking содержит данные бронирования.
type Booking struct {
	ID         string    `json:"id"`
	HotelID    string    `json:"hotelId"`
	RoomID     string    `json:"roomId"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingsResponse - список бронирований пользователя.
type BookingsResponse struct {
	Bookings []Booking `json:"bookings"`
}
