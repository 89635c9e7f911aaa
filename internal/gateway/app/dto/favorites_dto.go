package dto

// AddFavoriteRequest содержит данные для добавления отеля в избранное.
type AddFavoriteRequest struct {
	HotelID string `json:"hotelId" validate:"required"`
}

// FavoritesResponse - список избранных отелей пользователя.
type FavoritesResponse struct {
	Hotels []Hotel `json:"hotels"`
}
