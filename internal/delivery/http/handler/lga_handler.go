package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/pkg/utils"
	"github.com/saferoute-assistant/internal/usecase"
)

// LGAHandler обрабатывает запросы статистики районов
type LGAHandler struct {
	lgaUC  *usecase.LGAUseCase
	logger *zap.Logger
}

// NewLGAHandler создает новый экземпляр LGAHandler
func NewLGAHandler(lgaUC *usecase.LGAUseCase, logger *zap.Logger) *LGAHandler {
	return &LGAHandler{
		lgaUC:  lgaUC,
		logger: logger,
	}
}

// GetByName godoc
// @Summary Get LGA crime statistics
// @Description Возвращает статистику преступности района по имени
// @Tags LGA
// @Produce json
// @Param name path string true "LGA name"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lga/{name} [get]
func (h *LGAHandler) GetByName(c *fiber.Ctx) error {
	stats, err := h.lgaUC.GetByName(c.Context(), c.Params("name"))
	if err != nil {
		h.logger.Debug("LGA lookup failed",
			zap.String("lga", c.Params("name")),
			zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
