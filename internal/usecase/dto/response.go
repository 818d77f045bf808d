package dto

import (
	"encoding/json"

	"github.com/saferoute-assistant/internal/domain"
)

// SessionResponse - состояние сессии
type SessionResponse struct {
	ID         string              `json:"id"`
	Route      domain.RouteSummary `json:"route"`
	CrimeCount int                 `json:"crime_count"`
	LampCount  int                 `json:"lamp_count"`
}

// ChatResponse - результат диалогового хода
type ChatResponse struct {
	Kind       string          `json:"kind"`
	Text       string          `json:"text"`
	Suppressed bool            `json:"suppressed,omitempty"`
	Places     []domain.Place  `json:"places,omitempty"`
	Crime      json.RawMessage `json:"crime,omitempty"`
	Lighting   json.RawMessage `json:"lighting,omitempty"`

	TimePatterns *domain.TimeDistribution      `json:"time_patterns,omitempty"`
	Breakdown    *domain.CrimeBreakdown        `json:"breakdown,omitempty"`
	LightingInfo *domain.LightingAnalysis      `json:"lighting_info,omitempty"`
	Facilities   []domain.FacilityWithDistance `json:"facilities,omitempty"`
	LGAData      *domain.LGAQueryData          `json:"lga_data,omitempty"`
}

// LightingAnalysisResponse - результат анализа освещенности маршрута
type LightingAnalysisResponse struct {
	Analysis domain.LightingAnalysis `json:"analysis"`
}

// TimeAnalysisResponse - распределение инцидентов по времени
type TimeAnalysisResponse struct {
	Distribution domain.TimeDistribution `json:"distribution"`
}

// CrimeAnalysisResponse - криминальная сводка маршрута
type CrimeAnalysisResponse struct {
	Breakdown domain.CrimeBreakdown `json:"breakdown"`
	Threshold float64               `json:"threshold_meters"`
}
