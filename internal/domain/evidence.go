package domain

// Условия освещения в текущий момент
const (
	LightDaylight = "daylight"
	LightDawn     = "dawn" // [6,8)
	LightDusk     = "dusk" // [17,19)
	LightDark     = "dark"
)

// Типы районов для эвристической классификации
const (
	NeighborhoodUrban    = "urban"
	NeighborhoodSuburban = "suburban"
	NeighborhoodRural    = "rural"
)

// TimeContext - классификация текущего момента
type TimeContext struct {
	CurrentTime     string `json:"current_time"` // "HH:MM"
	DayOfWeek       string `json:"day_of_week"`
	Period          string `json:"period"`
	LightCondition  string `json:"light_condition"`
	IsWeekend       bool   `json:"is_weekend"`
	IsBusinessHours bool   `json:"is_business_hours"`
}

// InfrastructureContext - счетчики инфраструктуры, каждый best-effort
type InfrastructureContext struct {
	LampTotal       int                   `json:"lamp_total"`
	LampVisible     int                   `json:"lamp_visible"`
	LampDensity     float64               `json:"lamp_density"` // фонарей на 100 м маршрута
	HospitalTotal   int                   `json:"hospital_total"`
	HospitalNearby  int                   `json:"hospital_nearby"`
	NearestHospital *FacilityWithDistance `json:"nearest_hospital,omitempty"`
	PoliceTotal     int                   `json:"police_total"`
	PoliceNearby    int                   `json:"police_nearby"`
	NearestPolice   *FacilityWithDistance `json:"nearest_police,omitempty"`
}

// CrimeContext - криминальная сводка для контекста модели
type CrimeContext struct {
	VisibleCount int               `json:"visible_count"`
	TotalCount   int               `json:"total_count"`
	Breakdown    *CrimeBreakdown   `json:"breakdown,omitempty"`
	TimePatterns *TimeDistribution `json:"time_patterns,omitempty"`
}

// NeighborhoodContext - эвристическая классификация района.
// Выводится только из плотности фонарей и инцидентов вдоль маршрута,
// а не из авторитетных данных о землепользовании.
type NeighborhoodContext struct {
	Type string `json:"type"`
}

// EvidenceContext - ограниченный набор фактов для одного запроса.
// Собирается заново на каждый ход и нигде не сохраняется.
type EvidenceContext struct {
	Time           TimeContext           `json:"time"`
	Route          RouteSummary          `json:"route"`
	Infrastructure InfrastructureContext `json:"infrastructure"`
	Crime          CrimeContext          `json:"crime"`
	Neighborhood   NeighborhoodContext   `json:"neighborhood"`
}
