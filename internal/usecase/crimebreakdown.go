package usecase

import (
	"sort"
	"strings"

	"github.com/saferoute-assistant/internal/domain"
)

const (
	topCategories = 3
	topTypes      = 5
)

// SafetyBandForDensity возвращает категорию риска для плотности
// инцидентов на километр маршрута
func SafetyBandForDensity(densityPerKm float64) string {
	switch {
	case densityPerKm == 0:
		return "Very Safe"
	case densityPerKm < 5:
		return "Relatively Safe"
	case densityPerKm < 15:
		return "Moderate Risk"
	case densityPerKm < 30:
		return "High Risk"
	default:
		return "Very High Risk"
	}
}

// BuildCrimeBreakdown строит частотную сводку по категориям и типам
// отфильтрованных инцидентов и оценку плотности на километр маршрута
func BuildCrimeBreakdown(incidents []domain.FilteredIncident, routeLengthMeters float64) domain.CrimeBreakdown {
	total := len(incidents)

	categories := make(map[string]int)
	types := make(map[string]int)
	for _, fi := range incidents {
		categories[normalizeLabel(fi.Incident.Category, "Unknown Category")]++
		types[normalizeLabel(fi.Incident.Type, "Unknown Type")]++
	}

	breakdown := domain.CrimeBreakdown{
		Total:         total,
		TopCategories: topCounts(categories, total, topCategories),
		TopTypes:      topCounts(types, total, topTypes),
	}

	if routeLengthMeters > 0 {
		breakdown.DensityPerKm = float64(total) / (routeLengthMeters / 1000.0)
	}
	breakdown.SafetyBand = SafetyBandForDensity(breakdown.DensityPerKm)

	return breakdown
}

// normalizeLabel приводит метку к виду с заглавной первой буквой
func normalizeLabel(s, fallback string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

func topCounts(counts map[string]int, total, limit int) []domain.CategoryCount {
	out := make([]domain.CategoryCount, 0, len(counts))
	for name, count := range counts {
		cc := domain.CategoryCount{Name: name, Count: count}
		if total > 0 {
			cc.Percent = count * 100 / total
		}
		out = append(out, cc)
	}

	// Сортировка по убыванию счетчика, при равенстве по имени
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
