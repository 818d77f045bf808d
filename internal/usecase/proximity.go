package usecase

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/pkg/utils"
)

// ProximityUseCase фильтрует точечные объекты по близости к маршруту
type ProximityUseCase struct {
	crimeRepo repository.CrimeRepository
	mapRepo   repository.MapRepository
	logger    *zap.Logger
}

// NewProximityUseCase создает новый экземпляр ProximityUseCase
func NewProximityUseCase(
	crimeRepo repository.CrimeRepository,
	mapRepo repository.MapRepository,
	logger *zap.Logger,
) *ProximityUseCase {
	return &ProximityUseCase{
		crimeRepo: crimeRepo,
		mapRepo:   mapRepo,
		logger:    logger,
	}
}

// DistanceToRoute возвращает минимальное расстояние в метрах от точки
// до ломаной маршрута. При обнаружении сегмента ближе threshold поиск
// прекращается досрочно: одного такого сегмента достаточно для
// включения точки. threshold <= 0 отключает досрочный выход.
func DistanceToRoute(p domain.Point, route domain.Route, threshold float64) float64 {
	if len(route) == 0 {
		return math.Inf(1)
	}
	if len(route) == 1 {
		return utils.HaversineDistance(p.Lat, p.Lon, route[0].Lat, route[0].Lon)
	}

	minDist := math.Inf(1)
	for i := 1; i < len(route); i++ {
		d := utils.PointToSegmentDistance(
			p.Lat, p.Lon,
			route[i-1].Lat, route[i-1].Lon,
			route[i].Lat, route[i].Lon,
		)
		if d < minDist {
			minDist = d
		}
		if threshold > 0 && minDist <= threshold {
			return minDist
		}
	}
	return minDist
}

// coordKey - идентичность по координатам, округленным до 5 знаков
func coordKey(p domain.Point) string {
	return fmt.Sprintf("%.5f,%.5f", p.Lat, p.Lon)
}

// FilterCrimeByRoute отбирает инциденты в пределах threshold метров
// от маршрута сессии и публикует результат в источник карты.
// Кандидаты объединяются из БД и уже загруженного источника карты
// с дедупликацией по координатам. На пустом или вырожденном маршруте
// возвращается пустое представление без ошибки.
func (uc *ProximityUseCase) FilterCrimeByRoute(
	ctx context.Context,
	session *domain.Session,
	threshold float64,
	stamp int64,
) (*domain.CrimeFilterView, error) {
	view := &domain.CrimeFilterView{
		Incidents:       []domain.FilteredIncident{},
		ThresholdMeters: threshold,
		Stamp:           stamp,
	}

	if !session.Route.IsUsable() {
		uc.logger.Debug("Crime filtering skipped, route not usable",
			zap.String("session_id", session.ID),
			zap.Int("route_points", len(session.Route)))
		return view, nil
	}

	box := session.Route.BoundingBox(0.01)
	fromDB, err := uc.crimeRepo.ListIncidents(ctx, box)
	if err != nil {
		uc.logger.Warn("Failed to load incidents from database",
			zap.String("session_id", session.ID),
			zap.Error(err))
		fromDB = nil
	}

	fromMap, err := uc.mapRepo.GetCrimeSource(ctx, session.ID)
	if err != nil {
		uc.logger.Warn("Failed to read crime source from map state",
			zap.String("session_id", session.ID),
			zap.Error(err))
		fromMap = nil
	}

	// Слияние источников с дедупликацией по координатной идентичности
	seen := make(map[string]struct{}, len(fromDB)+len(fromMap))
	merged := make([]domain.CrimeIncident, 0, len(fromDB)+len(fromMap))
	for _, src := range [][]domain.CrimeIncident{fromDB, fromMap} {
		for _, inc := range src {
			key := coordKey(inc.Point)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, inc)
		}
	}

	// Кластеризация выключается на время фильтрации, чтобы счетчик
	// отражал отдельные инциденты
	if err := uc.mapRepo.SetClustering(ctx, session.ID, false); err != nil {
		uc.logger.Warn("Failed to disable clustering", zap.Error(err))
	}

	filtered := make([]domain.CrimeIncident, 0)
	for _, inc := range merged {
		d := DistanceToRoute(inc.Point, session.Route, threshold)
		if d <= threshold {
			view.Incidents = append(view.Incidents, domain.FilteredIncident{
				Incident: inc,
				Distance: d,
			})
			filtered = append(filtered, inc)
		}
	}

	if err := uc.mapRepo.SetCrimeSource(ctx, session.ID, filtered); err != nil {
		uc.logger.Warn("Failed to update crime source",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	uc.logger.Info("Crime incidents filtered by route",
		zap.String("session_id", session.ID),
		zap.Int("candidates", len(merged)),
		zap.Int("matched", len(view.Incidents)),
		zap.Float64("threshold_m", threshold))

	return view, nil
}

// CountCrimeNearRoute считает инциденты около маршрута, не изменяя
// отображаемое состояние карты
func (uc *ProximityUseCase) CountCrimeNearRoute(
	ctx context.Context,
	session *domain.Session,
	threshold float64,
) (int, error) {
	if !session.Route.IsUsable() {
		return 0, nil
	}

	box := session.Route.BoundingBox(0.01)
	incidents, err := uc.crimeRepo.ListIncidents(ctx, box)
	if err != nil {
		return 0, err
	}

	count := 0
	seen := make(map[string]struct{}, len(incidents))
	for _, inc := range incidents {
		key := coordKey(inc.Point)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if DistanceToRoute(inc.Point, session.Route, threshold) <= threshold {
			count++
		}
	}
	return count, nil
}

// FilterLampsByRoute отбирает фонари в буфере маршрута
func (uc *ProximityUseCase) FilterLampsByRoute(
	ctx context.Context,
	session *domain.Session,
	lamps []domain.StreetLamp,
	buffer float64,
	stamp int64,
) (*domain.LampFilterView, error) {
	view := &domain.LampFilterView{
		Lamps:           []domain.FilteredLamp{},
		ThresholdMeters: buffer,
		Stamp:           stamp,
	}

	if !session.Route.IsUsable() || len(lamps) == 0 {
		return view, nil
	}

	seen := make(map[string]struct{}, len(lamps))
	kept := make([]domain.StreetLamp, 0)
	for _, lamp := range lamps {
		key := coordKey(lamp.Point)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		d := DistanceToRoute(lamp.Point, session.Route, buffer)
		if d <= buffer {
			view.Lamps = append(view.Lamps, domain.FilteredLamp{Lamp: lamp, Distance: d})
			kept = append(kept, lamp)
		}
	}

	if err := uc.mapRepo.SetLampSource(ctx, session.ID, kept); err != nil {
		uc.logger.Warn("Failed to update lamp source",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}

	uc.logger.Debug("Street lamps filtered by route",
		zap.String("session_id", session.ID),
		zap.Int("candidates", len(lamps)),
		zap.Int("matched", len(view.Lamps)))

	return view, nil
}
