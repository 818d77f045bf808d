package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// boxKey - ключ области с точностью до 3 знаков, чтобы близкие
// запросы попадали в одну запись кеша
func boxKey(prefix string, box domain.BoundingBox) string {
	return fmt.Sprintf("%s:%.3f:%.3f:%.3f:%.3f",
		prefix, box.MinLat, box.MinLon, box.MaxLat, box.MaxLon)
}

func (r *cacheRepository) GetLamps(ctx context.Context, box domain.BoundingBox) ([]domain.StreetLamp, error) {
	data, err := r.Get(ctx, boxKey("lamps", box))
	if err != nil || data == nil {
		return nil, err
	}

	var lamps []domain.StreetLamp
	if err := json.Unmarshal(data, &lamps); err != nil {
		r.logger.Warn("Failed to unmarshal cached lamps", zap.Error(err))
		return nil, nil
	}
	return lamps, nil
}

func (r *cacheRepository) SetLamps(ctx context.Context, box domain.BoundingBox, lamps []domain.StreetLamp, ttl time.Duration) error {
	data, err := json.Marshal(lamps)
	if err != nil {
		return fmt.Errorf("marshal lamps: %w", err)
	}
	return r.Set(ctx, boxKey("lamps", box), data, ttl)
}

func (r *cacheRepository) GetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox) ([]domain.Facility, error) {
	data, err := r.Get(ctx, boxKey("facilities:"+string(kind), box))
	if err != nil || data == nil {
		return nil, err
	}

	var facilities []domain.Facility
	if err := json.Unmarshal(data, &facilities); err != nil {
		r.logger.Warn("Failed to unmarshal cached facilities", zap.Error(err))
		return nil, nil
	}
	return facilities, nil
}

func (r *cacheRepository) SetFacilities(ctx context.Context, kind domain.FacilityKind, box domain.BoundingBox, facilities []domain.Facility, ttl time.Duration) error {
	data, err := json.Marshal(facilities)
	if err != nil {
		return fmt.Errorf("marshal facilities: %w", err)
	}
	return r.Set(ctx, boxKey("facilities:"+string(kind), box), data, ttl)
}
