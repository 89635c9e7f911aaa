// Package hotels содержит HTTP обработчики каталога отелей.
package hotels

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"stayfront/internal/gateway/adapters/http/middleware"
	"stayfront/internal/gateway/app/dto"
	"stayfront/internal/gateway/errs"
	"stayfront/internal/gateway/ports/services"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListHotels = "hotels handler: list hotels"
	LogHandlerGetHotel   = "hotels handler: get hotel"
	LogHandlerListRooms  = "hotels handler: list rooms"
)

// Handler содержит HTTP обработчики каталога отелей.
type Handler struct {
	hotelsService services.HotelsService
	classifier    *errs.Classifier
}

// NewHandler создает новый экземпляр обработчика каталога.
func NewHandler(hotelsService services.HotelsService, classifier *errs.Classifier) *Handler {
	return &Handler{
		hotelsService: hotelsService,
		classifier:    classifier,
	}
}

func (h *Handler) fail(ctx fiber.Ctx, requestCtx context.Context, contextMsg string, err error) error {
	resp := h.classifier.Classify(requestCtx, err)
	errs.LogError(requestCtx, contextMsg, resp)
	return errs.Respond(ctx, resp)
}

func sendJSON(ctx fiber.Ctx, statusCode int, payload any) error {
	if err := ctx.Status(statusCode).JSON(payload); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// parseQuery собирает параметры фильтрации из строки запроса.
// Неразборчивые значения молча игнорируются: фильтр просто не применяется.
func parseQuery(ctx fiber.Ctx) *dto.HotelsQuery {
	query := &dto.HotelsQuery{City: ctx.Query("city")}
	if v, err := strconv.ParseFloat(ctx.Query("minPrice"), 64); err == nil {
		query.MinPrice = v
	}
	if v, err := strconv.ParseFloat(ctx.Query("maxPrice"), 64); err == nil {
		query.MaxPrice = v
	}
	if v, err := strconv.Atoi(ctx.Query("page")); err == nil {
		query.Page = v
	}
	if v, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		query.Limit = v
	}
	return query
}

// ListHotels обрабатывает запрос списка отелей.
func (h *Handler) ListHotels(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListHotels)

	page, err := h.hotelsService.ListHotels(requestCtx, parseQuery(ctx))
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerListHotels, err)
	}

	return sendJSON(ctx, http.StatusOK, page)
}

// GetHotel обрабатывает запрос карточки отеля.
func (h *Handler) GetHotel(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetHotel)

	details, err := h.hotelsService.GetHotel(requestCtx, ctx.Params("hotel_id"))
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerGetHotel, err)
	}

	return sendJSON(ctx, http.StatusOK, details)
}

// ListRooms обрабатывает запрос номеров отеля.
func (h *Handler) ListRooms(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListRooms)

	rooms, err := h.hotelsService.ListRooms(requestCtx, ctx.Params("hotel_id"))
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerListRooms, err)
	}

	return sendJSON(ctx, http.StatusOK, rooms)
}
