package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
	"github.com/saferoute-assistant/internal/pkg/utils"
)

// StreamRouteEvents - имя стрима событий изменения маршрута
const StreamRouteEvents = "route:events"

// RouteUseCase управляет жизненным циклом сессий и их маршрутами
type RouteUseCase struct {
	sessionRepo repository.SessionRepository
	streamRepo  repository.StreamRepository
	mapRepo     repository.MapRepository
	logger      *zap.Logger
}

// NewRouteUseCase создает новый экземпляр RouteUseCase
func NewRouteUseCase(
	sessionRepo repository.SessionRepository,
	streamRepo repository.StreamRepository,
	mapRepo repository.MapRepository,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		sessionRepo: sessionRepo,
		streamRepo:  streamRepo,
		mapRepo:     mapRepo,
		logger:      logger,
	}
}

// CreateSession создает новую пустую сессию
func (uc *RouteUseCase) CreateSession(ctx context.Context) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		History:   []domain.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save new session: %w", err)
	}

	uc.logger.Info("Session created", zap.String("session_id", session.ID))
	return session, nil
}

// GetSession возвращает сессию по идентификатору
func (uc *RouteUseCase) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return uc.sessionRepo.Get(ctx, id)
}

// DeleteSession удаляет сессию
func (uc *RouteUseCase) DeleteSession(ctx context.Context, id string) error {
	return uc.sessionRepo.Delete(ctx, id)
}

// SetRoute заменяет маршрут сессии. Штамп хода увеличивается, прежние
// отфильтрованные представления сбрасываются, событие публикуется
// в стрим для фонового пересчета.
func (uc *RouteUseCase) SetRoute(ctx context.Context, sessionID string, points []domain.Point) (*domain.Session, error) {
	for _, p := range points {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, apperrors.ErrInvalidCoordinates
		}
	}

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Route = domain.Route(points)
	stamp := session.NextStamp()
	session.CrimeView = nil
	session.LampView = nil
	session.UpdatedAt = time.Now()

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session route: %w", err)
	}

	event := domain.RouteEvent{
		SessionID:  sessionID,
		Stamp:      stamp,
		OccurredAt: time.Now(),
	}
	if err := uc.streamRepo.PublishRouteEvent(ctx, StreamRouteEvents, event); err != nil {
		uc.logger.Warn("Failed to publish route event",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	uc.logger.Info("Route updated",
		zap.String("session_id", sessionID),
		zap.Int("points", len(points)),
		zap.Int64("stamp", stamp))

	return session, nil
}

// ClearRoute удаляет маршрут сессии и очищает источники карты
func (uc *RouteUseCase) ClearRoute(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Route = nil
	stamp := session.NextStamp()
	session.CrimeView = nil
	session.LampView = nil
	session.UpdatedAt = time.Now()

	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session route: %w", err)
	}

	if err := uc.mapRepo.SetCrimeSource(ctx, sessionID, nil); err != nil {
		uc.logger.Warn("Failed to clear crime source", zap.Error(err))
	}
	if err := uc.mapRepo.SetLampSource(ctx, sessionID, nil); err != nil {
		uc.logger.Warn("Failed to clear lamp source", zap.Error(err))
	}

	event := domain.RouteEvent{
		SessionID:  sessionID,
		Stamp:      stamp,
		Cleared:    true,
		OccurredAt: time.Now(),
	}
	if err := uc.streamRepo.PublishRouteEvent(ctx, StreamRouteEvents, event); err != nil {
		uc.logger.Warn("Failed to publish route event",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	uc.logger.Info("Route cleared", zap.String("session_id", sessionID))
	return session, nil
}
