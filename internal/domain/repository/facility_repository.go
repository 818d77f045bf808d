package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// FacilityRepository определяет методы поиска инфраструктуры
type FacilityRepository interface {
	// SearchStreetLamps возвращает уличные фонари в области
	SearchStreetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error)

	// SearchFacilities возвращает объекты заданного вида в области
	SearchFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error)
}
