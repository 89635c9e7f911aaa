// Package bookings содержит HTTP обработчики бронирований.
package bookings

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stayfront/internal/gateway/adapters/http/middleware"
	"stayfront/internal/gateway/app/dto"
	"stayfront/internal/gateway/errs"
	"stayfront/internal/gateway/ports/services"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerCreateBooking = "bookings handler: create booking"
	LogHandlerListBookings  = "bookings handler: list bookings"
	LogHandlerGetBooking    = "bookings handler: get booking"
	LogHandlerCancelBooking = "bookings handler: cancel booking"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики бронирований.
type Handler struct {
	bookingsService services.BookingsService
	classifier      *errs.Classifier
}

// NewHandler создает новый экземпляр обработчика бронирований.
func NewHandler(bookingsService services.BookingsService, classifier *errs.Classifier) *Handler {
	return &Handler{
		bookingsService: bookingsService,
		classifier:      classifier,
	}
}

func (h *Handler) fail(ctx fiber.Ctx, requestCtx context.Context, contextMsg string, err error) error {
	resp := h.classifier.Classify(requestCtx, err)
	errs.LogError(requestCtx, contextMsg, resp)
	return errs.Respond(ctx, resp)
}

func badRequest(ctx fiber.Ctx, requestCtx context.Context, contextMsg, message string) error {
	resp := &errs.ErrorResponse{
		Type:       errs.KindValidation,
		Code:       errs.CodeValidationError,
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
	errs.LogError(requestCtx, contextMsg, resp)
	return errs.Respond(ctx, resp)
}

func sendJSON(ctx fiber.Ctx, statusCode int, payload any) error {
	if err := ctx.Status(statusCode).JSON(payload); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// CreateBooking обрабатывает запрос на создание бронирования.
func (h *Handler) CreateBooking(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCreateBooking)

	var req dto.CreateBookingRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(ctx, requestCtx, LogHandlerCreateBooking, ErrorInvalidRequest)
	}

	if req.HotelID == "" || req.RoomID == "" || req.Guests < 1 {
		return badRequest(ctx, requestCtx, LogHandlerCreateBooking, "hotel, room and guest count are required")
	}
	if !req.CheckOut.After(req.CheckIn) {
		return badRequest(ctx, requestCtx, LogHandlerCreateBooking, "check-out must be after check-in")
	}

	booking, err := h.bookingsService.CreateBooking(requestCtx, &req)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerCreateBooking, err)
	}

	return sendJSON(ctx, http.StatusCreated, booking)
}

// ListBookings обрабатывает запрос списка бронирований пользователя.
func (h *Handler) ListBookings(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListBookings)

	bookings, err := h.bookingsService.ListBookings(requestCtx)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerListBookings, err)
	}

	return sendJSON(ctx, http.StatusOK, bookings)
}

// GetBooking обрабатывает запрос бронирования по идентификатору.
func (h *Handler) GetBooking(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetBooking)

	booking, err := h.bookingsService.GetBooking(requestCtx, ctx.Params("booking_id"))
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerGetBooking, err)
	}

	return sendJSON(ctx, http.StatusOK, booking)
}

// CancelBooking обрабатывает запрос на отмену бронирования.
func (h *Handler) CancelBooking(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCancelBooking)

	if err := h.bookingsService.CancelBooking(requestCtx, ctx.Params("booking_id")); err != nil {
		return h.fail(ctx, requestCtx, LogHandlerCancelBooking, err)
	}

	return sendJSON(ctx, http.StatusOK, fiber.Map{"message": "booking cancelled"})
}
