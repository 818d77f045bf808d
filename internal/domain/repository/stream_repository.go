package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// StreamRepository - поток событий смены маршрута поверх Redis Streams
type StreamRepository interface {
	// ConsumeStream читает события маршрута через consumer group.
	// Нечитаемые сообщения подтверждаются и отбрасываются на этом уровне
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.RouteEventMessage, error)

	// AckMessage подтверждает обработку события
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup создает consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishRouteEvent публикует событие смены маршрута
	PublishRouteEvent(ctx context.Context, stream string, event domain.RouteEvent) error
}
