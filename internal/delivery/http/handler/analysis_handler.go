package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/pkg/utils"
	"github.com/saferoute-assistant/internal/usecase"
	"github.com/saferoute-assistant/internal/usecase/dto"
)

// AnalysisHandler обрабатывает запросы геоанализа маршрута
type AnalysisHandler struct {
	analysisUC *usecase.AnalysisUseCase
	thresholds usecase.SafetyThresholds
	logger     *zap.Logger
}

// NewAnalysisHandler создает новый экземпляр AnalysisHandler
func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, thresholds usecase.SafetyThresholds, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		thresholds: thresholds,
		logger:     logger,
	}
}

// GetLighting godoc
// @Summary Analyze route lighting
// @Description Возвращает оценку освещенности маршрута сессии
// @Tags Analysis
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/analysis/lighting [get]
func (h *AnalysisHandler) GetLighting(c *fiber.Ctx) error {
	analysis, err := h.analysisUC.LightingForSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.LightingAnalysisResponse{Analysis: *analysis}, nil)
}

// GetTimePatterns godoc
// @Summary Analyze crime time patterns
// @Description Возвращает распределение инцидентов у маршрута по периодам и часам
// @Tags Analysis
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/analysis/time [get]
func (h *AnalysisHandler) GetTimePatterns(c *fiber.Ctx) error {
	dist, err := h.analysisUC.TimePatternsForSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.TimeAnalysisResponse{Distribution: *dist}, nil)
}

// GetCrime godoc
// @Summary Analyze crime along route
// @Description Возвращает криминальную сводку маршрута сессии
// @Tags Analysis
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/analysis/crime [get]
func (h *AnalysisHandler) GetCrime(c *fiber.Ctx) error {
	breakdown, err := h.analysisUC.CrimeForSession(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.CrimeAnalysisResponse{
		Breakdown: *breakdown,
		Threshold: h.thresholds.CrimeThresholdMeters,
	}, nil)
}
