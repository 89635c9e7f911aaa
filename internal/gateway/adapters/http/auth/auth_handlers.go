// Package auth содержит HTTP обработчики аутентификации и профиля.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stayfront/internal/gateway/adapters/http/middleware"
	"stayfront/internal/gateway/app/dto"
	"stayfront/internal/gateway/errs"
	sessionPorts "stayfront/internal/gateway/ports/session"
	"stayfront/internal/gateway/ports/services"
	"stayfront/internal/gateway/tokens"
	"stayfront/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister      = "auth handler: register"
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerLogout        = "auth handler: logout"
	LogHandlerGetProfile    = "auth handler: get profile"
	LogHandlerUpdateProfile = "auth handler: update profile"
	LogHandlerGetSession    = "auth handler: get session"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики для аутентификации.
type Handler struct {
	authService services.AuthService
	sessions    sessionPorts.Store
	classifier  *errs.Classifier
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authService services.AuthService, sessions sessionPorts.Store, classifier *errs.Classifier) *Handler {
	return &Handler{
		authService: authService,
		sessions:    sessions,
		classifier:  classifier,
	}
}

// sendJSON отправляет успешный ответ браузеру.
func sendJSON(ctx fiber.Ctx, statusCode int, payload any) error {
	if err := ctx.Status(statusCode).JSON(payload); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// fail классифицирует ошибку и отправляет браузеру единственный ответ.
func (h *Handler) fail(ctx fiber.Ctx, requestCtx context.Context, contextMsg string, err error) error {
	resp := h.classifier.Classify(requestCtx, err)
	errs.LogError(requestCtx, contextMsg, resp)
	return errs.Respond(ctx, resp)
}

// badRequest отправляет локальную ошибку валидации без обращения к Booking API.
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

// Register обрабатывает запрос на регистрацию нового пользователя.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(ctx, requestCtx, LogHandlerRegister, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		return badRequest(ctx, requestCtx, LogHandlerRegister, "email, password, first name and last name are required")
	}

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	response, err := h.authService.Register(requestCtx, sessionID, &req)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerRegister, err)
	}

	return sendJSON(ctx, http.StatusCreated, response)
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(ctx, requestCtx, LogHandlerLogin, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(ctx, requestCtx, LogHandlerLogin, "email and password are required")
	}

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	response, err := h.authService.Login(requestCtx, sessionID, &req)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerLogin, err)
	}

	return sendJSON(ctx, http.StatusOK, response)
}

// RefreshTokens обрабатывает запрос на обновление токенов сессии.
// Refresh-токен хранится в сессии, браузер его не предъявляет.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	if err := h.authService.RefreshTokens(requestCtx, sessionID); err != nil {
		return h.fail(ctx, requestCtx, LogHandlerRefreshTokens, err)
	}

	return sendJSON(ctx, http.StatusOK, fiber.Map{"message": "tokens refreshed"})
}

// Logout обрабатывает запрос на выход пользователя.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogout)

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	if err := h.authService.Logout(requestCtx, sessionID); err != nil {
		return h.fail(ctx, requestCtx, LogHandlerLogout, err)
	}

	return sendJSON(ctx, http.StatusOK, fiber.Map{"message": "logged out successfully"})
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	profile, err := h.authService.GetProfile(requestCtx)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerGetProfile, err)
	}

	return sendJSON(ctx, http.StatusOK, profile)
}

// UpdateProfile обрабатывает запрос на изменение профиля пользователя.
func (h *Handler) UpdateProfile(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerUpdateProfile)

	var req dto.UpdateProfileRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return badRequest(ctx, requestCtx, LogHandlerUpdateProfile, ErrorInvalidRequest)
	}

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	profile, err := h.authService.UpdateProfile(requestCtx, sessionID, &req)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerUpdateProfile, err)
	}

	return sendJSON(ctx, http.StatusOK, profile)
}

// GetSession отдает браузеру текущее состояние сессии: вошел ли
// пользователь и его профиль. Токены наружу не отдаются.
func (h *Handler) GetSession(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetSession)

	sessionID, _ := sessionPorts.IDFromContext(requestCtx)
	sess, err := h.sessions.Get(requestCtx, sessionID)
	if err != nil {
		return h.fail(ctx, requestCtx, LogHandlerGetSession, err)
	}

	// Сессия с истекшим access-токеном не выдается за активную:
	// браузеру следует сначала вызвать refresh.
	authenticated := sess.Authenticated() && !tokens.IsExpired(sess.AccessToken)

	response := fiber.Map{"authenticated": authenticated}
	if authenticated {
		response["user"] = sess.User
	}
	return sendJSON(ctx, http.StatusOK, response)
}
