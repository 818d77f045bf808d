package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
	"github.com/saferoute-assistant/internal/usecase/dto"
)

const recentAssistantWindow = 3

// Готовые ответы на категории отказов модели. Сырые ошибки наружу
// не выходят.
const (
	replyModelQuota = "I've hit my usage limit for the moment. Please try again in a few minutes."
	replyModelRate  = "I'm handling a lot of requests right now. Please try again shortly."
	replyModelDown  = "Sorry, I couldn't process that just now. Please try again."
)

// SafetyThresholds - пороги геоанализа, передаются из конфигурации
type SafetyThresholds struct {
	CrimeThresholdMeters float64
	LampBufferMeters     float64
	FacilityRadiusMeters float64
	WellLitPer100m       float64
}

// ChatUseCase обрабатывает диалоговый ход: классификация запроса,
// выбор обработчика, сбор контекста, вызов модели и разбор ответа
type ChatUseCase struct {
	sessionRepo repository.SessionRepository
	modelRepo   repository.ModelRepository
	geocodeRepo repository.GeocodeRepository
	proximityUC *ProximityUseCase
	facilityUC  *FacilityUseCase
	lgaUC       *LGAUseCase
	classifier  *Classifier
	builder     *ContextBuilder
	thresholds  SafetyThresholds
	logger      *zap.Logger
}

// NewChatUseCase создает новый экземпляр ChatUseCase
func NewChatUseCase(
	sessionRepo repository.SessionRepository,
	modelRepo repository.ModelRepository,
	geocodeRepo repository.GeocodeRepository,
	proximityUC *ProximityUseCase,
	facilityUC *FacilityUseCase,
	lgaUC *LGAUseCase,
	classifier *Classifier,
	builder *ContextBuilder,
	thresholds SafetyThresholds,
	logger *zap.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		sessionRepo: sessionRepo,
		modelRepo:   modelRepo,
		geocodeRepo: geocodeRepo,
		proximityUC: proximityUC,
		facilityUC:  facilityUC,
		lgaUC:       lgaUC,
		classifier:  classifier,
		builder:     builder,
		thresholds:  thresholds,
		logger:      logger,
	}
}

// HandleTurn обрабатывает одно сообщение пользователя. Ровно один
// обработчик формирует ответ; порядок выбора фиксирован классификатором.
func (uc *ChatUseCase) HandleTurn(ctx context.Context, sessionID, message string) (*dto.ChatResponse, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	stamp := session.NextStamp()
	kind := uc.classifier.Classify(message, session.HasRoute())

	uc.logger.Info("Query classified",
		zap.String("session_id", sessionID),
		zap.String("kind", string(kind)),
		zap.Int64("stamp", stamp))

	session.AppendMessage(domain.RoleUser, message)

	var resp *dto.ChatResponse
	switch kind {
	case domain.QueryTimeSafety:
		resp, err = uc.handleTimeQuery(ctx, session, stamp)
	case domain.QueryCrimeType:
		resp, err = uc.handleCrimeTypeQuery(ctx, session, stamp)
	case domain.QueryStreetlight:
		resp, err = uc.handleStreetlightQuery(ctx, session, stamp)
	case domain.QueryRouteSafety:
		resp, err = uc.handleSafetyQuery(ctx, session, stamp)
	case domain.QueryHospital:
		resp, err = uc.handleFacilityQuery(ctx, session, domain.FacilityHospital)
	case domain.QueryPolice:
		resp, err = uc.handleFacilityQuery(ctx, session, domain.FacilityPolice)
	case domain.QueryLGAStats:
		resp, err = uc.handleLGAQuery(ctx, session, message)
	default:
		resp, err = uc.handleGeneral(ctx, session, message, stamp)
	}
	if err != nil {
		return nil, err
	}
	resp.Kind = string(kind)

	// Устаревший ход не применяется: пока шли сетевые вызовы, маршрут
	// мог смениться, тогда выигрывает последняя запись
	fresh, ferr := uc.sessionRepo.Get(ctx, sessionID)
	if ferr == nil && fresh.TurnStamp > stamp {
		uc.logger.Info("Discarding stale turn result",
			zap.String("session_id", sessionID),
			zap.Int64("stamp", stamp),
			zap.Int64("current", fresh.TurnStamp))
		resp.Suppressed = true
		return resp, nil
	}

	if !resp.Suppressed {
		session.AppendMessage(domain.RoleAssistant, resp.Text)
	}
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		uc.logger.Warn("Failed to save session after turn",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	return resp, nil
}

// noRouteResponse - инструкция построить маршрут, без побочных эффектов
func noRouteResponse() *dto.ChatResponse {
	return &dto.ChatResponse{Text: apperrors.ErrNoRoute.Message}
}

func (uc *ChatUseCase) handleTimeQuery(ctx context.Context, session *domain.Session, stamp int64) (*dto.ChatResponse, error) {
	if !session.HasRoute() {
		return noRouteResponse(), nil
	}

	view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, stamp)
	if err != nil {
		return nil, err
	}
	session.CrimeView = view

	dist := AnalyzeTimePatterns(view.Incidents)

	var sb strings.Builder
	if dist.Total == 0 {
		sb.WriteString("No crime incidents are recorded along your route, so any time of day looks fine.")
	} else if dist.BusiestPeriod == domain.PeriodUnknown {
		fmt.Fprintf(&sb, "There are %d incidents near your route, but none have usable time information.", dist.Total)
	} else {
		fmt.Fprintf(&sb, "Of %d incidents near your route, most happen in the %s (%d%%).",
			dist.Total, dist.BusiestPeriod, dist.BusiestPercent)
		if dist.BusiestHour >= 0 {
			fmt.Fprintf(&sb, " The single busiest hour is around %02d:00.", dist.BusiestHour)
		} else {
			sb.WriteString(" The busiest hour is unknown.")
		}
		fmt.Fprintf(&sb, " The quietest period is the %s (%d%%), so that's your safest window.",
			dist.SafestPeriod, dist.SafestPercent)
		if dist.UnknownCount > 0 {
			fmt.Fprintf(&sb, " %d incidents had no usable time information.", dist.UnknownCount)
		}
	}

	return &dto.ChatResponse{
		Text:         sb.String(),
		TimePatterns: &dist,
	}, nil
}

func (uc *ChatUseCase) handleCrimeTypeQuery(ctx context.Context, session *domain.Session, stamp int64) (*dto.ChatResponse, error) {
	if !session.HasRoute() {
		return noRouteResponse(), nil
	}

	view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, stamp)
	if err != nil {
		return nil, err
	}
	session.CrimeView = view

	breakdown := BuildCrimeBreakdown(view.Incidents, session.Route.Length())

	var sb strings.Builder
	if breakdown.Total == 0 {
		sb.WriteString("No crime incidents are recorded within range of your route.")
	} else {
		fmt.Fprintf(&sb, "There are %d incidents near your route (%s, %.1f per km).",
			breakdown.Total, breakdown.SafetyBand, breakdown.DensityPerKm)
		if len(breakdown.TopTypes) > 0 {
			parts := make([]string, 0, len(breakdown.TopTypes))
			for _, tc := range breakdown.TopTypes {
				parts = append(parts, fmt.Sprintf("%s (%d%%)", tc.Name, tc.Percent))
			}
			fmt.Fprintf(&sb, " The most common types are: %s.", strings.Join(parts, ", "))
		}
	}

	return &dto.ChatResponse{
		Text:      sb.String(),
		Breakdown: &breakdown,
	}, nil
}

func (uc *ChatUseCase) handleStreetlightQuery(ctx context.Context, session *domain.Session, stamp int64) (*dto.ChatResponse, error) {
	if !session.HasRoute() {
		return noRouteResponse(), nil
	}

	box := session.Route.BoundingBox(0.01)
	lamps, err := uc.facilityUC.GetLamps(ctx, box)
	if err != nil {
		// Недоступность источника не валит ход
		uc.logger.Warn("Street lamp lookup failed", zap.Error(err))
		return &dto.ChatResponse{
			Text: "I couldn't check street lighting right now. Please try again in a moment.",
		}, nil
	}
	session.LampTotal = len(lamps)

	view, err := uc.proximityUC.FilterLampsByRoute(ctx, session, lamps, uc.thresholds.LampBufferMeters, stamp)
	if err != nil {
		return nil, err
	}
	session.LampView = view

	analysis := AnalyzeLighting(session.Route, view, uc.thresholds.LampBufferMeters, uc.thresholds.WellLitPer100m)

	var sb strings.Builder
	fmt.Fprintf(&sb, "I found %d street lamps within %.0f meters of your route (%.2f per 100m, %.0f%% of segments covered).",
		view.Count(), uc.thresholds.LampBufferMeters, analysis.DensityPer100m, analysis.CoveragePercent)
	switch analysis.SafetyLevel {
	case domain.LightingHigh:
		sb.WriteString(" Your route looks well lit.")
	case domain.LightingMedium:
		sb.WriteString(" Your route is moderately lit, stay alert on darker stretches.")
	default:
		sb.WriteString(" Parts of your route may be poorly lit, take extra care after dark.")
	}

	return &dto.ChatResponse{
		Text:         sb.String(),
		LightingInfo: &analysis,
	}, nil
}

func (uc *ChatUseCase) handleSafetyQuery(ctx context.Context, session *domain.Session, stamp int64) (*dto.ChatResponse, error) {
	if !session.HasRoute() {
		return noRouteResponse(), nil
	}

	view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, stamp)
	if err != nil {
		return nil, err
	}
	session.CrimeView = view

	breakdown := BuildCrimeBreakdown(view.Incidents, session.Route.Length())

	// Освещение - best-effort дополнение к вердикту
	var lightingInfo *domain.LightingAnalysis
	box := session.Route.BoundingBox(0.01)
	if lamps, lerr := uc.facilityUC.GetLamps(ctx, box); lerr == nil {
		session.LampTotal = len(lamps)
		lv, verr := uc.proximityUC.FilterLampsByRoute(ctx, session, lamps, uc.thresholds.LampBufferMeters, stamp)
		if verr == nil {
			session.LampView = lv
			analysis := AnalyzeLighting(session.Route, lv, uc.thresholds.LampBufferMeters, uc.thresholds.WellLitPer100m)
			lightingInfo = &analysis
		}
	} else {
		uc.logger.Warn("Lighting check skipped", zap.Error(lerr))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your route is rated %s: %d incidents within %.0f meters (%.1f per km).",
		breakdown.SafetyBand, breakdown.Total, uc.thresholds.CrimeThresholdMeters, breakdown.DensityPerKm)
	if len(breakdown.TopCategories) > 0 {
		parts := make([]string, 0, len(breakdown.TopCategories))
		for _, cc := range breakdown.TopCategories {
			parts = append(parts, fmt.Sprintf("%s (%d%%)", cc.Name, cc.Percent))
		}
		fmt.Fprintf(&sb, " Main categories: %s.", strings.Join(parts, ", "))
	}
	if lightingInfo != nil {
		if lightingInfo.SafetyLevel == domain.LightingHigh {
			sb.WriteString(" Lighting along the route looks good.")
		} else {
			fmt.Fprintf(&sb, " Lighting is sparse (%.2f lamps per 100m, %.0f%% coverage).",
				lightingInfo.DensityPer100m, lightingInfo.CoveragePercent)
		}
	}

	return &dto.ChatResponse{
		Text:         sb.String(),
		Breakdown:    &breakdown,
		LightingInfo: lightingInfo,
	}, nil
}

func (uc *ChatUseCase) handleFacilityQuery(ctx context.Context, session *domain.Session, kind domain.FacilityKind) (*dto.ChatResponse, error) {
	if !session.HasRoute() {
		return noRouteResponse(), nil
	}

	near, err := uc.facilityUC.FindNearRoute(ctx, session, kind, uc.thresholds.FacilityRadiusMeters)
	if err != nil {
		uc.logger.Warn("Facility search failed",
			zap.String("kind", string(kind)),
			zap.Error(err))
		return &dto.ChatResponse{
			Text: fmt.Sprintf("I couldn't search for %s facilities right now. Please try again shortly.", kind),
		}, nil
	}

	label := "hospitals"
	if kind == domain.FacilityPolice {
		label = "police stations"
	}

	var sb strings.Builder
	if len(near) == 0 {
		fmt.Fprintf(&sb, "I couldn't find any %s within %.0f meters of your route.",
			label, uc.thresholds.FacilityRadiusMeters)
	} else {
		fmt.Fprintf(&sb, "There are %d %s within %.0f meters of your route.",
			len(near), label, uc.thresholds.FacilityRadiusMeters)
		nearest := near[0]
		name := nearest.Facility.Name
		if name == "" {
			name = "an unnamed facility"
		}
		fmt.Fprintf(&sb, " The closest is %s, about %.0f meters away.", name, nearest.Distance)
	}

	return &dto.ChatResponse{
		Text:       sb.String(),
		Facilities: near,
	}, nil
}

func (uc *ChatUseCase) handleLGAQuery(ctx context.Context, session *domain.Session, message string) (*dto.ChatResponse, error) {
	data, err := uc.lgaUC.GetDataForQuery(ctx, uc.classifier, message)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Text:    uc.lgaUC.RenderAnswer(data),
		LGAData: data,
	}, nil
}

// handleGeneral - общий диалоговый путь через модель. К журналу
// подшивается системный контекст; при криминальной лексике в него
// попадает криминальная сводка маршрута.
func (uc *ChatUseCase) handleGeneral(ctx context.Context, session *domain.Session, message string, stamp int64) (*dto.ChatResponse, error) {
	timeRelevant := uc.classifier.IsTimeSafetyQuery(strings.ToLower(message))

	if session.HasRoute() && uc.classifier.MentionsCrime(strings.ToLower(message)) && session.CrimeView == nil {
		view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, stamp)
		if err != nil {
			uc.logger.Warn("Crime context unavailable for general query", zap.Error(err))
		} else {
			session.CrimeView = view
		}
	}

	evidence := uc.builder.BuildEvidence(session, timeRelevant)
	payload := SpliceContext(session.History, RenderSystemMessage(evidence))

	text, err := uc.modelRepo.Complete(ctx, payload)
	if err != nil {
		uc.logger.Error("Model call failed", zap.Error(err))
		return &dto.ChatResponse{Text: fallbackForModelError(err)}, nil
	}

	reply := ParseModelReply(text, uc.logger)
	uc.resolvePlaces(ctx, session, &reply)

	resp := &dto.ChatResponse{
		Text:     reply.Text,
		Places:   reply.Places,
		Crime:    reply.Crime,
		Lighting: reply.Lighting,
	}

	if IsDuplicateReply(reply.Text, session.RecentAssistantMessages(recentAssistantWindow)) {
		uc.logger.Debug("Duplicate assistant reply suppressed",
			zap.String("session_id", session.ID))
		resp.Suppressed = true
	}

	return resp, nil
}

// resolvePlaces догеокодирует точки интереса без координат
func (uc *ChatUseCase) resolvePlaces(ctx context.Context, session *domain.Session, reply *domain.ModelReply) {
	if len(reply.Places) == 0 {
		return
	}

	box := session.Route.BoundingBox(0.05)
	resolved := reply.Places[:0]
	for _, place := range reply.Places {
		if place.Lat != 0 || place.Lng != 0 {
			resolved = append(resolved, place)
			continue
		}
		found, err := uc.geocodeRepo.Forward(ctx, place.Name, box, 1)
		if err != nil || len(found) == 0 {
			uc.logger.Warn("Failed to geocode place",
				zap.String("place", place.Name),
				zap.Error(err))
			continue
		}
		place.Lat = found[0].Lat
		place.Lng = found[0].Lng
		resolved = append(resolved, place)
	}
	reply.Places = resolved
}

// fallbackForModelError подбирает готовый ответ под категорию отказа
func fallbackForModelError(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case apperrors.ErrModelQuotaExceeded.Code:
			return replyModelQuota
		case apperrors.ErrModelRateLimited.Code:
			return replyModelRate
		}
	}
	return replyModelDown
}
