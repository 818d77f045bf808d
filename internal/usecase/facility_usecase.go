package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

// FacilityUseCase обрабатывает поиск фонарей и экстренной инфраструктуры
type FacilityUseCase struct {
	facilityRepo repository.FacilityRepository
	cacheRepo    repository.CacheRepository
	mapRepo      repository.MapRepository
	lampTTL      time.Duration
	facilityTTL  time.Duration
	logger       *zap.Logger
}

// NewFacilityUseCase создает новый экземпляр FacilityUseCase
func NewFacilityUseCase(
	facilityRepo repository.FacilityRepository,
	cacheRepo repository.CacheRepository,
	mapRepo repository.MapRepository,
	lampTTL, facilityTTL time.Duration,
	logger *zap.Logger,
) *FacilityUseCase {
	return &FacilityUseCase{
		facilityRepo: facilityRepo,
		cacheRepo:    cacheRepo,
		mapRepo:      mapRepo,
		lampTTL:      lampTTL,
		facilityTTL:  facilityTTL,
		logger:       logger,
	}
}

// GetLamps возвращает фонари области, используя кеш когда возможно
func (uc *FacilityUseCase) GetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error) {
	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetLamps(ctx, box)
	if err == nil && cached != nil {
		uc.logger.Debug("Street lamps fetched from cache", zap.Int("count", len(cached)))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get lamps from cache", zap.Error(err))
	}

	// 2. Запрашиваем у внешнего источника
	lamps, err := uc.facilityRepo.SearchStreetLamps(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("search street lamps: %w", err)
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetLamps(ctx, box, lamps, uc.lampTTL); err != nil {
		uc.logger.Warn("Failed to cache lamps", zap.Error(err))
	}

	return lamps, nil
}

// GetFacilities возвращает объекты инфраструктуры области с кешированием
func (uc *FacilityUseCase) GetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error) {
	cached, err := uc.cacheRepo.GetFacilities(ctx, kind, box)
	if err == nil && cached != nil {
		uc.logger.Debug("Facilities fetched from cache",
			zap.String("kind", string(kind)),
			zap.Int("count", len(cached)))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get facilities from cache", zap.Error(err))
	}

	facilities, err := uc.facilityRepo.SearchFacilities(ctx, kind, box)
	if err != nil {
		return nil, fmt.Errorf("search facilities %s: %w", kind, err)
	}

	if err := uc.cacheRepo.SetFacilities(ctx, kind, box, facilities, uc.facilityTTL); err != nil {
		uc.logger.Warn("Failed to cache facilities", zap.Error(err))
	}

	return facilities, nil
}

// FindNearRoute возвращает объекты вида kind в радиусе radius метров
// от маршрута, отсортированные по расстоянию, и публикует маркеры
// в состояние карты
func (uc *FacilityUseCase) FindNearRoute(
	ctx context.Context,
	session *domain.Session,
	kind domain.FacilityKind,
	radius float64,
) ([]domain.FacilityWithDistance, error) {
	if !session.Route.IsUsable() {
		return nil, nil
	}

	box := session.Route.BoundingBox(0.01)
	facilities, err := uc.GetFacilities(ctx, kind, box)
	if err != nil {
		return nil, err
	}

	near := make([]domain.FacilityWithDistance, 0)
	for _, f := range facilities {
		d := DistanceToRoute(f.Point, session.Route, 0)
		if d <= radius {
			near = append(near, domain.FacilityWithDistance{Facility: f, Distance: d})
		}
	}

	sort.Slice(near, func(i, j int) bool { return near[i].Distance < near[j].Distance })

	if err := uc.mapRepo.SetFacilityMarkers(ctx, session.ID, kind, near); err != nil {
		uc.logger.Warn("Failed to publish facility markers",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	uc.logger.Info("Facilities located near route",
		zap.String("session_id", session.ID),
		zap.String("kind", string(kind)),
		zap.Int("total", len(facilities)),
		zap.Int("near", len(near)),
		zap.Float64("radius_m", radius))

	return near, nil
}
