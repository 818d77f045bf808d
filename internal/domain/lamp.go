package domain

// StreetLamp - уличный фонарь, у точечного объекта значимы только координаты
type StreetLamp struct {
	ID    string `json:"id"`
	Point Point  `json:"point"`
}

// FilteredLamp - фонарь с расстоянием до маршрута
type FilteredLamp struct {
	Lamp     StreetLamp `json:"lamp"`
	Distance float64    `json:"distance"`
}

// LampFilterView - фонари в пределах буфера от маршрута
type LampFilterView struct {
	Lamps           []FilteredLamp `json:"lamps"`
	ThresholdMeters float64        `json:"threshold_meters"`
	Stamp           int64          `json:"stamp"`
}

// Count возвращает число фонарей в представлении
func (v *LampFilterView) Count() int {
	if v == nil {
		return 0
	}
	return len(v.Lamps)
}

// Уровни освещенности маршрута
const (
	LightingHigh   = "high"
	LightingMedium = "medium"
	LightingLow    = "low"
)

// LightingAnalysis - оценка освещенности маршрута
type LightingAnalysis struct {
	RouteLengthMeters float64 `json:"route_length_meters"`
	LampCount         int     `json:"lamp_count"`
	DensityPer100m    float64 `json:"density_per_100m"`
	CoveragePercent   float64 `json:"coverage_percent"`
	SafetyLevel       string  `json:"safety_level"` // LightingHigh, LightingMedium либо LightingLow
}
