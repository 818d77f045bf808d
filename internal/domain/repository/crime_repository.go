package repository

import (
	"context"

	"github.com/saferoute-assistant/internal/domain"
)

// CrimeRepository определяет методы доступа к набору инцидентов
type CrimeRepository interface {
	// ListIncidents возвращает инциденты в заданной области
	ListIncidents(ctx context.Context, box domain.BoundingBox) ([]domain.CrimeIncident, error)

	// CountAll возвращает общее число загруженных инцидентов
	CountAll(ctx context.Context) (int, error)
}
