package repository

import (
	"context"
	"time"

	"github.com/saferoute-assistant/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetLamps получает фонари области из кеша
	GetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error)

	// SetLamps сохраняет фонари области в кеше
	SetLamps(ctx context.Context, box domain.BoundingBox, lamps []domain.StreetLamp, ttl time.Duration) error

	// GetFacilities получает объекты инфраструктуры из кеша
	GetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error)

	// SetFacilities сохраняет объекты инфраструктуры в кеше
	SetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox, facilities []domain.Facility, ttl time.Duration) error
}
