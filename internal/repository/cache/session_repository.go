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
	"github.com/saferoute-assistant/internal/pkg/errors"
)

type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionRepository создает хранилище сессий поверх Redis
func NewSessionRepository(redis *Redis, ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{
		client: redis.Client(),
		ttl:    ttl,
		logger: redis.logger,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, errors.ErrSessionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get session", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("session get error: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Error("Failed to unmarshal session", zap.String("session_id", id), zap.Error(err))
		return nil, fmt.Errorf("session unmarshal error: %w", err)
	}

	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session marshal error: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save session",
			zap.String("session_id", session.ID),
			zap.Error(err))
		return fmt.Errorf("session save error: %w", err)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		r.logger.Error("Failed to delete session", zap.String("session_id", id), zap.Error(err))
		return fmt.Errorf("session delete error: %w", err)
	}
	return nil
}
