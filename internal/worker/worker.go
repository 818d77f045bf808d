// Package worker содержит каркас фоновых обработчиков: интерфейс
// воркера, общую базу остановки и менеджер жизненного цикла.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Worker - фоновый обработчик с собственным жизненным циклом
type Worker interface {
	// Start блокирует до остановки воркера или отмены контекста
	Start(ctx context.Context) error

	// Stop сигнализирует воркеру о завершении
	Stop() error

	// Name возвращает имя воркера
	Name() string
}

// BaseWorker - общая часть воркеров-потребителей стрима:
// имя, consumer group и идемпотентная остановка
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
}

// NewBaseWorker создает базу воркера
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки. Повторные вызовы безопасны
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker", zap.String("name", w.name))
	close(w.stopChan)
	w.stopped = true
	return nil
}

// StopChan возвращает канал, закрываемый при остановке
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// ConsumerGroup возвращает имя consumer group
func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger возвращает логгер воркера
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
