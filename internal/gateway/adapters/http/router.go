// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"stayfront/internal/gateway/adapters/http/auth"
	"stayfront/internal/gateway/adapters/http/bookings"
	"stayfront/internal/gateway/adapters/http/favorites"
	"stayfront/internal/gateway/adapters/http/hotels"
	"stayfront/internal/gateway/adapters/http/middleware"
	"stayfront/internal/gateway/config"
	"stayfront/internal/gateway/errs"
	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/internal/gateway/ports/services"
)

// Services - сервисы, которые обслуживает HTTP сервер.
type Services struct {
	Auth      services.AuthService
	Hotels    services.HotelsService
	Bookings  services.BookingsService
	Favorites services.FavoritesService
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, cfg *config.SessionConfig, svc Services, sessions sessionPorts.Store) {
	classifier := errs.NewClassifier(sessions)

	authHandler := auth.NewHandler(svc.Auth, sessions, classifier)
	hotelsHandler := hotels.NewHandler(svc.Hotels, classifier)
	bookingsHandler := bookings.NewHandler(svc.Bookings, classifier)
	favoritesHandler := favorites.NewHandler(svc.Favorites, classifier)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewSessionMiddleware(cfg))

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Маршруты аутентификации и сессии.
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshTokens)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/session", authHandler.GetSession)

	// Профиль пользователя.
	userRoutes := apiV1.Group("/user")
	userRoutes.Get("/profile", authHandler.GetProfile)
	userRoutes.Patch("/profile", authHandler.UpdateProfile)
	userRoutes.Put("/profile", authHandler.UpdateProfile)

	// Каталог отелей (публичный).
	hotelsRoutes := apiV1.Group("/hotels")
	hotelsRoutes.Get("/", hotelsHandler.ListHotels)
	hotelsRoutes.Get("/:hotel_id", hotelsHandler.GetHotel)
	hotelsRoutes.Get("/:hotel_id/rooms", hotelsHandler.ListRooms)

	// Бронирования пользователя.
	bookingsRoutes := apiV1.Group("/bookings")
	bookingsRoutes.Post("/", bookingsHandler.CreateBooking)
	bookingsRoutes.Get("/", bookingsHandler.ListBookings)
	bookingsRoutes.Get("/:booking_id", bookingsHandler.GetBooking)
	bookingsRoutes.Delete("/:booking_id", bookingsHandler.CancelBooking)

	// Избранные отели.
	favoritesRoutes := apiV1.Group("/favorites")
	favoritesRoutes.Get("/", favoritesHandler.ListFavorites)
	favoritesRoutes.Post("/", favoritesHandler.AddFavorite)
	favoritesRoutes.Delete("/:hotel_id", favoritesHandler.RemoveFavorite)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
