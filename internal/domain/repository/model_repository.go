package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// ModelRepository определяет интерфейс диалоговой модели
type ModelRepository interface {
	// Complete отправляет журнал сообщений и возвращает текст ответа
	Complete(ctx context.Context, messages []domain.Message) (string, error)
}
