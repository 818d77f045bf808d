package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
	"github.com/saferoute-assistant/internal/pkg/utils"
	"github.com/saferoute-assistant/internal/pkg/validator"
	"github.com/saferoute-assistant/internal/usecase"
	"github.com/saferoute-assistant/internal/usecase/dto"
)

// ChatHandler обрабатывает диалоговые запросы
type ChatHandler struct {
	chatUC *usecase.ChatUseCase
	logger *zap.Logger
}

// NewChatHandler создает новый экземпляр ChatHandler
func NewChatHandler(chatUC *usecase.ChatUseCase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatUC: chatUC,
		logger: logger,
	}
}

// Chat godoc
// @Summary Send a chat message
// @Description Обрабатывает сообщение пользователя: классификация, геоанализ и ответ
// @Tags Chat
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ChatRequest true "User message"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(req); err != nil {
		h.logger.Debug("Chat request validation failed", zap.Error(err))
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	resp, err := h.chatUC.HandleTurn(c.Context(), c.Params("id"), req.Message)
	if err != nil {
		h.logger.Error("Chat turn failed",
			zap.String("session_id", c.Params("id")),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}
