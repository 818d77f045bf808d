package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// Идентификаторы источников и слоев отображаемого состояния карты
const (
	SourceCrime    = "crime"
	SourceLamps    = "lamps"
	LayerCrime     = "crime-points"
	LayerLamps     = "lamp-points"
	LayerHospitals = "hospital-points"
	LayerPolice    = "police-points"
)

// MapRepository определяет методы работы с отображаемым состоянием карты.
// Реализация хранит состояние на стороне сервиса, клиент карты его опрашивает.
type MapRepository interface {
	// GetCrimeSource возвращает инциденты, загруженные в источник карты
	GetCrimeSource(ctx context.Context, sessionID string) ([]domain.CrimeIncident, error)

	// SetCrimeSource заменяет данные источника инцидентов
	SetCrimeSource(ctx context.Context, sessionID string, incidents []domain.CrimeIncident) error

	// GetLampSource возвращает фонари, загруженные в источник карты
	GetLampSource(ctx context.Context, sessionID string) ([]domain.StreetLamp, error)

	// SetLampSource заменяет данные источника фонарей
	SetLampSource(ctx context.Context, sessionID string, lamps []domain.StreetLamp) error

	// SetFacilityMarkers заменяет маркеры инфраструктуры
	SetFacilityMarkers(ctx context.Context, sessionID string, kind domain.FacilityKind, facilities []domain.FacilityWithDistance) error

	// SetLayerVisibility переключает видимость слоя
	SetLayerVisibility(ctx context.Context, sessionID, layer string, visible bool) error

	// SetClustering включает или выключает кластеризацию точек.
	// На время фильтрации кластеризация выключается, чтобы счетчики
	// отражали отдельные объекты, а не группы.
	SetClustering(ctx context.Context, sessionID string, enabled bool) error

	// GetDisplayState возвращает снимок состояния карты сессии
	GetDisplayState(ctx context.Context, sessionID string) (map[string]interface{}, error)
}
