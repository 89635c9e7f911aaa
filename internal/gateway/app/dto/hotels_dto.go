package dto

import (
	"net/url"
	"strconv"
)

// Hotel содержит данные отеля из каталога Booking API.
type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Address       string   `json:"address"`
	Description   string   `json:"description,omitempty"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"pricePerNight"`
	Images        []string `json:"images,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// Room содержит данные номера отеля.
type Room struct {
	ID            string  `json:"id"`
	HotelID       string  `json:"hotelId"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`
	PricePerNight float64 `json:"pricePerNight"`
	Available     bool    `json:"available"`
}

// HotelsQuery содержит параметры фильтрации и пагинации списка отелей.
type HotelsQuery struct {
	City     string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

// Encode возвращает параметры запроса строкой для Booking API.
func (q *HotelsQuery) Encode() string {
	values := url.Values{}
	if q.City != "" {
		values.Set("city", q.City)
	}
	if q.MinPrice > 0 {
		values.Set("minPrice", strconv.FormatFloat(q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice > 0 {
		values.Set("maxPrice", strconv.FormatFloat(q.MaxPrice, 'f', -1, 64))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values.Encode()
}

// HotelsPage - страница каталога отелей.
// Degraded выставляется, когда данные отданы из локального кэша
// из-за недоступности Booking API.
type HotelsPage struct {
	Hotels   []Hotel `json:"hotels"`
	Total    int     `json:"total"`
	Page     int     `json:"page,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	Degraded bool    `json:"degraded,omitempty"`
}

// HotelDetails - карточка отеля.
type HotelDetails struct {
	Hotel    *Hotel `json:"hotel"`
	Degraded bool   `json:"degraded,omitempty"`
}

// RoomsResponse - список номеров отеля.
type RoomsResponse struct {
	Rooms []Room `json:"rooms"`
}
