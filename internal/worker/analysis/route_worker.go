package analysis

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/usecase"
	"github.com/saferoute-assistant/internal/worker"
)

// RouteRefresher пересчитывает представления сессии для заданного штампа
type RouteRefresher interface {
	RefreshForSession(ctx context.Context, sessionID string, stamp int64) error
}

// RouteAnalysisWorker пересчитывает криминальное и световое представление
// сессии по событиям смены маршрута
type RouteAnalysisWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	analysisUC   RouteRefresher
	consumerName string
}

// NewRouteAnalysisWorker создает новый RouteAnalysisWorker
func NewRouteAnalysisWorker(
	streamRepo repository.StreamRepository,
	analysisUC RouteRefresher,
	consumerGroup string,
	logger *zap.Logger,
) *RouteAnalysisWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RouteAnalysisWorker{
		BaseWorker:   worker.NewBaseWorker("route-analysis", consumerGroup, logger),
		streamRepo:   streamRepo,
		analysisUC:   analysisUC,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *RouteAnalysisWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RouteAnalysisWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, usecase.StreamRouteEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, usecase.StreamRouteEvents, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.handleMessage(ctx, msg)
		}
	}
}

// handleMessage обрабатывает одно событие из стрима.
// Сообщение подтверждается и при ошибке обработки: повтор не даст
// другого результата, так как пересчет устаревшего штампа отбрасывается.
func (w *RouteAnalysisWorker) handleMessage(ctx context.Context, msg domain.RouteEventMessage) {
	logger := w.Logger()
	event := msg.Event

	if event.Cleared {
		logger.Debug("Route cleared, nothing to recompute",
			zap.String("session_id", event.SessionID))
		w.ack(ctx, msg.ID)
		return
	}

	if err := w.analysisUC.RefreshForSession(ctx, event.SessionID, event.Stamp); err != nil {
		logger.Error("Route refresh failed",
			zap.String("session_id", event.SessionID),
			zap.Int64("stamp", event.Stamp),
			zap.Error(err))
	} else {
		logger.Info("Route views refreshed",
			zap.String("session_id", event.SessionID),
			zap.Int64("stamp", event.Stamp))
	}

	w.ack(ctx, msg.ID)
}

func (w *RouteAnalysisWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, usecase.StreamRouteEvents, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
