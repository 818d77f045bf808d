package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
)

// Поля события маршрута в записи стрима
const (
	fieldSessionID  = "session_id"
	fieldStamp      = "stamp"
	fieldCleared    = "cleared"
	fieldOccurredAt = "occurred_at"
)

const (
	readBatchSize = 10
	readBlock     = 1 * time.Second
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создает consumer group для стрима.
// Группа начинает с "$": старые события до запуска воркера не важны,
// актуальное состояние все равно определяется штампом сессии
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeStream читает события маршрута через consumer group.
// Записи без валидных полей события подтверждаются и отбрасываются здесь,
// чтобы воркер видел только пригодные события
func (r *streamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.RouteEventMessage, error) {
	events := make(chan domain.RouteEventMessage, readBatchSize)

	go func() {
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				r.logger.Info("Stream consumer stopped",
					zap.String("stream", stream),
					zap.String("consumer", consumer))
				return
			default:
			}

			result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    group,
				Consumer: consumer,
				Streams:  []string{stream, ">"},
				Count:    readBatchSize,
				Block:    readBlock,
			}).Result()

			if err != nil {
				if err == redis.Nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				r.logger.Error("Failed to read from stream",
					zap.String("stream", stream),
					zap.Error(err))
				time.Sleep(time.Second)
				continue
			}

			for _, res := range result {
				for _, msg := range res.Messages {
					event, err := parseRouteEvent(msg.Values)
					if err != nil {
						r.logger.Warn("Discarding unreadable stream entry",
							zap.String("message_id", msg.ID),
							zap.Error(err))
						if ackErr := r.AckMessage(ctx, stream, group, msg.ID); ackErr != nil {
							r.logger.Error("Failed to ack unreadable entry",
								zap.String("message_id", msg.ID),
								zap.Error(ackErr))
						}
						continue
					}

					select {
					case events <- domain.RouteEventMessage{ID: msg.ID, Event: event}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return events, nil
}

// AckMessage подтверждает обработку события
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	if err := r.client.XAck(ctx, stream, group, messageID).Err(); err != nil {
		return fmt.Errorf("failed to acknowledge message: %w", err)
	}
	return nil
}

// PublishRouteEvent публикует событие смены маршрута в стрим
func (r *streamRepository) PublishRouteEvent(ctx context.Context, stream string, event domain.RouteEvent) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	id, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			fieldSessionID:  event.SessionID,
			fieldStamp:      strconv.FormatInt(event.Stamp, 10),
			fieldCleared:    strconv.FormatBool(event.Cleared),
			fieldOccurredAt: occurredAt.Format(time.RFC3339),
		},
	}).Result()

	if err != nil {
		r.logger.Error("Failed to publish route event",
			zap.String("stream", stream),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return fmt.Errorf("failed to publish route event: %w", err)
	}

	r.logger.Debug("Route event published",
		zap.String("stream", stream),
		zap.String("message_id", id),
		zap.String("session_id", event.SessionID),
		zap.Int64("stamp", event.Stamp))
	return nil
}

// parseRouteEvent восстанавливает событие из полей записи стрима
func parseRouteEvent(values map[string]interface{}) (domain.RouteEvent, error) {
	var event domain.RouteEvent

	sessionID, ok := values[fieldSessionID].(string)
	if !ok || sessionID == "" {
		return event, fmt.Errorf("missing %s field", fieldSessionID)
	}
	event.SessionID = sessionID

	rawStamp, ok := values[fieldStamp].(string)
	if !ok {
		return event, fmt.Errorf("missing %s field", fieldStamp)
	}
	stamp, err := strconv.ParseInt(rawStamp, 10, 64)
	if err != nil {
		return event, fmt.Errorf("invalid %s field: %w", fieldStamp, err)
	}
	event.Stamp = stamp

	if rawCleared, ok := values[fieldCleared].(string); ok {
		cleared, err := strconv.ParseBool(rawCleared)
		if err != nil {
			return event, fmt.Errorf("invalid %s field: %w", fieldCleared, err)
		}
		event.Cleared = cleared
	}

	if rawTime, ok := values[fieldOccurredAt].(string); ok {
		if ts, err := time.Parse(time.RFC3339, rawTime); err == nil {
			event.OccurredAt = ts
		}
	}

	return event, nil
}
