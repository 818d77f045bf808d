package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/pkg/errors"
)

type crimeRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCrimeRepository(db *DB) repository.CrimeRepository {
	return &crimeRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *crimeRepository) ListIncidents(ctx context.Context, box domain.BoundingBox) ([]domain.CrimeIncident, error) {
	query := `
		SELECT
			id, category, type,
			COALESCE(incident_time, '') AS incident_time,
			COALESCE(incident_start_time, '') AS incident_start_time,
			COALESCE(incident_date, '') AS incident_date,
			COALESCE(location, '') AS location,
			COALESCE(description, '') AS description,
			lat, lon
		FROM crime_incidents
		WHERE lat BETWEEN $1 AND $2
		  AND lon BETWEEN $3 AND $4
	`

	rows, err := r.db.QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		r.logger.Error("Failed to query crime incidents",
			zap.Float64("min_lat", box.MinLat),
			zap.Float64("max_lat", box.MaxLat),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	incidents := make([]domain.CrimeIncident, 0)
	for rows.Next() {
		var inc domain.CrimeIncident
		if err := rows.Scan(
			&inc.ID, &inc.Category, &inc.Type,
			&inc.Time, &inc.StartTime, &inc.Date,
			&inc.Location, &inc.Description,
			&inc.Point.Lat, &inc.Point.Lon,
		); err != nil {
			r.logger.Error("Failed to scan crime incident", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		incidents = append(incidents, inc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration error", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return incidents, nil
}

func (r *crimeRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM crime_incidents`); err != nil {
		r.logger.Error("Failed to count crime incidents", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}
	return count, nil
}
