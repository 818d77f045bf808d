package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
)

// AnalysisUseCase выполняет геоанализ маршрута сессии по прямому
// запросу API или по событию из стрима
type AnalysisUseCase struct {
	sessionRepo repository.SessionRepository
	proximityUC *ProximityUseCase
	facilityUC  *FacilityUseCase
	thresholds  SafetyThresholds
	logger      *zap.Logger
}

// NewAnalysisUseCase создает новый экземпляр AnalysisUseCase
func NewAnalysisUseCase(
	sessionRepo repository.SessionRepository,
	proximityUC *ProximityUseCase,
	facilityUC *FacilityUseCase,
	thresholds SafetyThresholds,
	logger *zap.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		sessionRepo: sessionRepo,
		proximityUC: proximityUC,
		facilityUC:  facilityUC,
		thresholds:  thresholds,
		logger:      logger,
	}
}

func (uc *AnalysisUseCase) routedSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasRoute() {
		return nil, apperrors.ErrNoRoute
	}
	return session, nil
}

// TimePatternsForSession строит распределение инцидентов по времени
// для маршрута сессии
func (uc *AnalysisUseCase) TimePatternsForSession(ctx context.Context, sessionID string) (*domain.TimeDistribution, error) {
	session, err := uc.routedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, session.TurnStamp)
	if err != nil {
		return nil, err
	}
	session.CrimeView = view
	uc.saveView(ctx, session)

	dist := AnalyzeTimePatterns(view.Incidents)
	return &dist, nil
}

// CrimeForSession строит криминальную сводку маршрута сессии
func (uc *AnalysisUseCase) CrimeForSession(ctx context.Context, sessionID string) (*domain.CrimeBreakdown, error) {
	session, err := uc.routedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	view, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, session.TurnStamp)
	if err != nil {
		return nil, err
	}
	session.CrimeView = view
	uc.saveView(ctx, session)

	breakdown := BuildCrimeBreakdown(view.Incidents, session.Route.Length())
	return &breakdown, nil
}

// LightingForSession оценивает освещенность маршрута сессии
func (uc *AnalysisUseCase) LightingForSession(ctx context.Context, sessionID string) (*domain.LightingAnalysis, error) {
	session, err := uc.routedSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	box := session.Route.BoundingBox(0.01)
	lamps, err := uc.facilityUC.GetLamps(ctx, box)
	if err != nil {
		return nil, apperrors.ErrFacilitySearchFailed
	}
	session.LampTotal = len(lamps)

	view, err := uc.proximityUC.FilterLampsByRoute(ctx, session, lamps, uc.thresholds.LampBufferMeters, session.TurnStamp)
	if err != nil {
		return nil, err
	}
	session.LampView = view
	uc.saveView(ctx, session)

	analysis := AnalyzeLighting(session.Route, view, uc.thresholds.LampBufferMeters, uc.thresholds.WellLitPer100m)
	return &analysis, nil
}

// RefreshForSession пересчитывает представления после смены маршрута.
// Вызывается воркером по событию из стрима. Перед записью результата
// штамп сверяется с актуальным состоянием сессии: устаревший пересчет
// отбрасывается.
func (uc *AnalysisUseCase) RefreshForSession(ctx context.Context, sessionID string, stamp int64) error {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.TurnStamp > stamp {
		uc.logger.Info("Skipping stale route refresh",
			zap.String("session_id", sessionID),
			zap.Int64("stamp", stamp),
			zap.Int64("current", session.TurnStamp))
		return nil
	}
	if !session.HasRoute() {
		return nil
	}

	crimeView, err := uc.proximityUC.FilterCrimeByRoute(ctx, session, uc.thresholds.CrimeThresholdMeters, stamp)
	if err != nil {
		return err
	}

	box := session.Route.BoundingBox(0.01)
	var lampView *domain.LampFilterView
	lamps, err := uc.facilityUC.GetLamps(ctx, box)
	if err != nil {
		// Освещение best-effort, криминальное представление важнее
		uc.logger.Warn("Lamp refresh skipped", zap.Error(err))
	} else {
		session.LampTotal = len(lamps)
		lampView, err = uc.proximityUC.FilterLampsByRoute(ctx, session, lamps, uc.thresholds.LampBufferMeters, stamp)
		if err != nil {
			uc.logger.Warn("Lamp filtering failed", zap.Error(err))
			lampView = nil
		}
	}

	// Повторная проверка штампа после сетевых вызовов
	fresh, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if fresh.TurnStamp > stamp {
		uc.logger.Info("Discarding stale route refresh result",
			zap.String("session_id", sessionID),
			zap.Int64("stamp", stamp),
			zap.Int64("current", fresh.TurnStamp))
		return nil
	}

	fresh.CrimeView = crimeView
	if lampView != nil {
		fresh.LampView = lampView
		fresh.LampTotal = session.LampTotal
	}

	return uc.sessionRepo.Save(ctx, fresh)
}

func (uc *AnalysisUseCase) saveView(ctx context.Context, session *domain.Session) {
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		uc.logger.Warn("Failed to persist analysis view",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}
}
