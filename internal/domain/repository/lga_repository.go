package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// LGARepository определяет методы доступа к статистике районов (LGA)
type LGARepository interface {
	// GetByName возвращает статистику района по имени
	GetByName(ctx context.Context, name string) (*domain.LGAStats, error)

	// GetByNames возвращает статистику нескольких районов одним запросом
	GetByNames(ctx context.Context, names []string) ([]domain.LGAStats, error)

	// ListNames возвращает имена всех известных районов
	ListNames(ctx context.Context) ([]string, error)

	// ListOffenceTypes возвращает известные типы правонарушений
	ListOffenceTypes(ctx context.Context) ([]string, error)

	// GetOffenceAverages возвращает средние показатели по типам правонарушений
	GetOffenceAverages(ctx context.Context) ([]domain.OffenceAverage, error)

	// GetRankings возвращает самые безопасные и самые опасные районы
	GetRankings(ctx context.Context, limit int) (safest, mostDangerous []domain.LGARankingEntry, err error)
}
