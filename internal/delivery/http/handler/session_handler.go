package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
	"github.com/saferoute-assistant/internal/pkg/utils"
	"github.com/saferoute-assistant/internal/pkg/validator"
	"github.com/saferoute-assistant/internal/usecase"
	"github.com/saferoute-assistant/internal/usecase/dto"
)

// SessionHandler обрабатывает запросы жизненного цикла сессий
type SessionHandler struct {
	routeUC *usecase.RouteUseCase
	mapRepo repository.MapRepository
	logger  *zap.Logger
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(routeUC *usecase.RouteUseCase, mapRepo repository.MapRepository, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		routeUC: routeUC,
		mapRepo: mapRepo,
		logger:  logger,
	}
}

func sessionResponse(session *domain.Session) dto.SessionResponse {
	return dto.SessionResponse{
		ID:         session.ID,
		Route:      session.Route.Summary(),
		CrimeCount: session.CrimeView.Count(),
		LampCount:  session.LampView.Count(),
	}
}

// CreateSession godoc
// @Summary Create a chat session
// @Description Создает новую сессию диалога
// @Tags Sessions
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *fiber.Ctx) error {
	session, err := h.routeUC.CreateSession(c.Context())
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, sessionResponse(session), nil)
}

// GetSession godoc
// @Summary Get session state
// @Description Возвращает состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	session, err := h.routeUC.GetSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sessionResponse(session), nil)
}

// DeleteSession godoc
// @Summary Delete a session
// @Description Удаляет сессию
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	if err := h.routeUC.DeleteSession(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}

// SetRoute godoc
// @Summary Set session route
// @Description Заменяет маршрут сессии и запускает фоновый пересчет близости
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.RouteRequest true "Route points"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/route [put]
func (h *SessionHandler) SetRoute(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		h.logger.Debug("Route request validation failed", zap.Error(err))
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	points := make([]domain.Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = domain.Point{Lat: p.Lat, Lon: p.Lon}
	}

	session, err := h.routeUC.SetRoute(c.Context(), c.Params("id"), points)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sessionResponse(session), nil)
}

// ClearRoute godoc
// @Summary Clear session route
// @Description Удаляет маршрут сессии и очищает источники карты
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/route [delete]
func (h *SessionHandler) ClearRoute(c *fiber.Ctx) error {
	session, err := h.routeUC.ClearRoute(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, sessionResponse(session), nil)
}

// GetMapState godoc
// @Summary Get map display state
// @Description Возвращает снимок отображаемого состояния карты сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/sessions/{id}/map [get]
func (h *SessionHandler) GetMapState(c *fiber.Ctx) error {
	state, err := h.mapRepo.GetDisplayState(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, state, nil)
}
