// Package favorites содержит HTTP обработчики избранных отелей.
package favorites

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
	LogHandlerListFavorites  = "favorites handler: list favorites"
	LogHandlerAddFavorite    = "favorites handler: add favorite"
	LogHandlerRemoveFavorite = "favorites handler: remove favorite"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики избранного.
type Handler struct {
	favoritesService services.FavoritesService
	classifier       *errs.Classifier
}

// NewHandler создает новый экземпляр обработчика избранного.
func NewHandler(favoritesService services.FavoritesService, classifier *errs.Classifier) *Handler {
	return &Handler{
		favoritesService: favoritesService,
		classifier:       classifier,
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

// ListFavorites обрабатывает запрос списка избранных отелей.
func (h *Handler) ListFavorites(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerListFavorites)

	favorites, err := h.favoritesService.ListFavorites(requestCtx)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerListFavorites, err)
	}

	return sendJSON(ctx, http.StatusOK, favorites)
}

// AddFavorite обрабатывает запрос на добавление отеля в избранное.
func (h *Handler) AddFavorite(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerAddFavorite)

	var req dto.AddFavoriteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(ctx, requestCtx, LogHandlerAddFavorite, ErrorInvalidRequest)
	}

	if req.HotelID == "" {
		return badRequest(ctx, requestCtx, LogHandlerAddFavorite, "hotel id is required")
	}

	if err := h.favoritesService.AddFavorite(requestCtx, req.HotelID); err != nil {
		return h.fail(ctx, requestCtx, LogHandlerAddFavorite, err)
	}

	return sendJSON(ctx, http.StatusCreated, fiber.Map{"message": "hotel added to favorites"})
}

// RemoveFavorite обрабатывает запрос на удаление отеля из избранного.
func (h *Handler) RemoveFavorite(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRemoveFavorite)

	if err := h.favoritesService.RemoveFavorite(requestCtx, ctx.Params("hotel_id")); err != nil {
		return h.fail(ctx, requestCtx, LogHandlerRemoveFavorite, err)
	}

	return sendJSON(ctx, http.StatusOK, fiber.Map{"message": "hotel removed from favorites"})
}
