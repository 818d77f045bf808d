package domain

// CrimeIncident - точечный инцидент из загруженного набора данных.
// Исходная коллекция неизменяема, обработчики работают только с
// отфильтрованными представлениями.
type CrimeIncident struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Time        string `json:"time,omitempty"`       // "HH:MM" либо описательный период
	StartTime   string `json:"start_time,omitempty"` // альтернативное поле источника "HH:MM"
	Date        string `json:"date,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Point       Point  `json:"point"`
}

// FilteredIncident - инцидент с вычисленным расстоянием до маршрута
type FilteredIncident struct {
	Incident CrimeIncident `json:"incident"`
	Distance float64       `json:"distance"`
}

// CrimeFilterView - результат фильтрации инцидентов по близости к маршруту.
// Живет не дольше следующего вызова фильтрации для той же сессии.
type CrimeFilterView struct {
	Incidents       []FilteredIncident `json:"incidents"`
	ThresholdMeters float64            `json:"threshold_meters"`
	Stamp           int64              `json:"stamp"`
}

// Count возвращает число инцидентов в представлении
func (v *CrimeFilterView) Count() int {
	if v == nil {
		return 0
	}
	return len(v.Incidents)
}

// Периоды суток, полуоткрытые интервалы по часам
const (
	PeriodMorning   = "morning"   // [5,12)
	PeriodAfternoon = "afternoon" // [12,17)
	PeriodEvening   = "evening"   // [17,21)
	PeriodNight     = "night"     // [21,24) и [0,5)
	PeriodUnknown   = "unknown"
)

// PeriodOrder - порядок периодов для детерминированного разрешения ничьих
var PeriodOrder = []string{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight}

// PeriodForHour возвращает период суток для часа 0-23
func PeriodForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 17:
		return PeriodAfternoon
	case hour >= 17 && hour < 21:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// TimeDistribution - распределение инцидентов по периодам и часам суток
type TimeDistribution struct {
	MorningCount   int     `json:"morning_count"`
	AfternoonCount int     `json:"afternoon_count"`
	EveningCount   int     `json:"evening_count"`
	NightCount     int     `json:"night_count"`
	UnknownCount   int     `json:"unknown_count"`
	HourlyCounts   [24]int `json:"hourly_counts"`
	Total          int     `json:"total"`
	BusiestPeriod  string  `json:"busiest_period"` // "unknown" при пустых данных
	BusiestHour    int     `json:"busiest_hour"`   // -1 при пустых данных
	BusiestPercent int     `json:"busiest_percent"`
	SafestPeriod   string  `json:"safest_period"`
	SafestPercent  int     `json:"safest_percent"`
}

// PeriodCount возвращает счетчик указанного периода
func (d *TimeDistribution) PeriodCount(period string) int {
	switch period {
	case PeriodMorning:
		return d.MorningCount
	case PeriodAfternoon:
		return d.AfternoonCount
	case PeriodEvening:
		return d.EveningCount
	case PeriodNight:
		return d.NightCount
	default:
		return d.UnknownCount
	}
}

// CategoryCount - счетчик категории или типа преступления
type CategoryCount struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// CrimeBreakdown - частотная сводка по отфильтрованным инцидентам
type CrimeBreakdown struct {
	Total         int             `json:"total"`
	TopCategories []CategoryCount `json:"top_categories"`
	TopTypes      []CategoryCount `json:"top_types"`
	DensityPerKm  float64         `json:"density_per_km"`
	SafetyBand    string          `json:"safety_band"`
}
