package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// GeocodeRepository определяет интерфейс прямого геокодирования
type GeocodeRepository interface {
	// Forward ищет именованные точки по свободному тексту
	// с привязкой к области поиска
	Forward(ctx context.Context, query string, box domain.BoundingBox, limit int) ([]domain.Place, error)
}
