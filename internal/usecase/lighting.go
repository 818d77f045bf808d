package usecase

import (
	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/pkg/utils"
)

// Пороги уровней освещенности: high требует плотности не ниже
// wellLitPer100m при покрытии сегментов от 80%, medium - 60% от этой
// плотности при покрытии от 60%
const (
	coverageHighPercent   = 80.0
	coverageMediumPercent = 60.0
	mediumDensityFactor   = 0.6
)

// AnalyzeLighting оценивает освещенность маршрута: плотность фонарей
// на 100 метров и долю сегментов, у которых хотя бы один конец имеет
// фонарь в пределах буфера
func AnalyzeLighting(route domain.Route, view *domain.LampFilterView, bufferMeters, wellLitPer100m float64) domain.LightingAnalysis {
	analysis := domain.LightingAnalysis{
		LampCount:   view.Count(),
		SafetyLevel: domain.LightingLow,
	}

	if !route.IsUsable() {
		return analysis
	}

	length := route.Length()
	analysis.RouteLengthMeters = length
	if length > 0 {
		analysis.DensityPer100m = float64(analysis.LampCount) / (length / 100.0)
	}
	analysis.CoveragePercent = segmentCoverage(route, view, bufferMeters)

	switch {
	case analysis.DensityPer100m >= wellLitPer100m && analysis.CoveragePercent >= coverageHighPercent:
		analysis.SafetyLevel = domain.LightingHigh
	case analysis.DensityPer100m >= wellLitPer100m*mediumDensityFactor && analysis.CoveragePercent >= coverageMediumPercent:
		analysis.SafetyLevel = domain.LightingMedium
	}

	return analysis
}

// segmentCoverage возвращает процент сегментов маршрута с фонарем
// в пределах буфера от начала или конца сегмента
func segmentCoverage(route domain.Route, view *domain.LampFilterView, bufferMeters float64) float64 {
	segments := len(route) - 1
	if segments < 1 || view.Count() == 0 {
		return 0
	}

	covered := 0
	for i := 0; i < segments; i++ {
		for _, fl := range view.Lamps {
			p := fl.Lamp.Point
			if utils.HaversineDistance(p.Lat, p.Lon, route[i].Lat, route[i].Lon) <= bufferMeters ||
				utils.HaversineDistance(p.Lat, p.Lon, route[i+1].Lat, route[i+1].Lon) <= bufferMeters {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(segments) * 100.0
}

// NeighborhoodType - эвристическая классификация района по плотности
// фонарей и инцидентов вдоль маршрута. Это приближенный сигнал,
// а не данные о землепользовании.
func NeighborhoodType(visibleLamps, visibleCrimes int) string {
	switch {
	case visibleLamps > 20 || visibleCrimes > 15:
		return domain.NeighborhoodUrban
	case visibleLamps > 5 || visibleCrimes > 5:
		return domain.NeighborhoodSuburban
	default:
		return domain.NeighborhoodRural
	}
}
