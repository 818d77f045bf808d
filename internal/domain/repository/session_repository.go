package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// SessionRepository определяет методы хранения сессий диалога
type SessionRepository interface {
	// Get возвращает сессию по идентификатору
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Save сохраняет состояние сессии
	Save(ctx context.Context, session *domain.Session) error

	// Delete удаляет сессию
	Delete(ctx context.Context, id string) error
}
