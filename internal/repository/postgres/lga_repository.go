package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/pkg/errors"
)

type lgaRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLGARepository(db *DB) repository.LGARepository {
	return &lgaRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *lgaRepository) GetByName(ctx context.Context, name string) (*domain.LGAStats, error) {
	query := `
		SELECT offence, total_incidents, rate, average_rank, year_counts
		FROM lga_offence_stats
		WHERE LOWER(lga_name) = LOWER($1)
	`

	rows, err := r.db.QueryContext(ctx, query, strings.TrimSpace(name))
	if err != nil {
		r.logger.Error("Failed to query LGA stats",
			zap.String("lga", name),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	stats := &domain.LGAStats{
		Name:     strings.ToLower(strings.TrimSpace(name)),
		Offences: make(map[string]domain.LGAOffenceStats),
	}

	for rows.Next() {
		var o domain.LGAOffenceStats
		var yearJSON []byte
		if err := rows.Scan(&o.Offence, &o.TotalIncidents, &o.Rate, &o.AverageRank, &yearJSON); err != nil {
			r.logger.Error("Failed to scan LGA offence row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		if len(yearJSON) > 0 {
			counts := make(map[string]int)
			if err := json.Unmarshal(yearJSON, &counts); err != nil {
				r.logger.Warn("Failed to unmarshal year counts",
					zap.String("lga", name),
					zap.String("offence", o.Offence),
					zap.Error(err))
			} else {
				o.YearCounts = counts
			}
		}
		stats.Offences[o.Offence] = o
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration error", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	if len(stats.Offences) == 0 {
		return nil, errors.ErrLGANotFound
	}

	return stats, nil
}

func (r *lgaRepository) GetByNames(ctx context.Context, names []string) ([]domain.LGAStats, error) {
	if len(names) == 0 {
		return nil, nil
	}

	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(name))
	}

	query := `
		SELECT LOWER(lga_name), offence, total_incidents, rate, average_rank, year_counts
		FROM lga_offence_stats
		WHERE LOWER(lga_name) = ANY($1)
		ORDER BY LOWER(lga_name), offence
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(lowered))
	if err != nil {
		r.logger.Error("Failed to query LGA stats batch",
			zap.Strings("lgas", lowered),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	byName := make(map[string]*domain.LGAStats)
	order := make([]string, 0, len(lowered))

	for rows.Next() {
		var lgaName string
		var o domain.LGAOffenceStats
		var yearJSON []byte
		if err := rows.Scan(&lgaName, &o.Offence, &o.TotalIncidents, &o.Rate, &o.AverageRank, &yearJSON); err != nil {
			r.logger.Error("Failed to scan LGA offence row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		if len(yearJSON) > 0 {
			counts := make(map[string]int)
			if err := json.Unmarshal(yearJSON, &counts); err == nil {
				o.YearCounts = counts
			}
		}

		stats, ok := byName[lgaName]
		if !ok {
			stats = &domain.LGAStats{
				Name:     lgaName,
				Offences: make(map[string]domain.LGAOffenceStats),
			}
			byName[lgaName] = stats
			order = append(order, lgaName)
		}
		stats.Offences[o.Offence] = o
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Row iteration error", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	out := make([]domain.LGAStats, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func (r *lgaRepository) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := r.db.SelectContext(ctx, &names,
		`SELECT DISTINCT LOWER(lga_name) FROM lga_offence_stats ORDER BY 1`)
	if err != nil {
		r.logger.Error("Failed to list LGA names", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return names, nil
}

func (r *lgaRepository) ListOffenceTypes(ctx context.Context) ([]string, error) {
	offences := make([]string, 0)
	err := r.db.SelectContext(ctx, &offences,
		`SELECT DISTINCT offence FROM lga_offence_stats ORDER BY 1`)
	if err != nil {
		r.logger.Error("Failed to list offence types", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return offences, nil
}

func (r *lgaRepository) GetOffenceAverages(ctx context.Context) ([]domain.OffenceAverage, error) {
	query := `
		SELECT
			offence,
			AVG(total_incidents) AS average_incidents,
			AVG(rate) AS average_rate,
			SUM(total_incidents) AS total_incidents,
			COUNT(DISTINCT lga_name) AS participating_lgas
		FROM lga_offence_stats
		GROUP BY offence
		ORDER BY offence
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query offence averages", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	averages := make([]domain.OffenceAverage, 0)
	for rows.Next() {
		var a domain.OffenceAverage
		if err := rows.Scan(&a.Offence, &a.AverageIncidents, &a.AverageRate, &a.TotalIncidents, &a.ParticipatingLGAs); err != nil {
			r.logger.Error("Failed to scan offence average", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		averages = append(averages, a)
	}

	return averages, rows.Err()
}

func (r *lgaRepository) GetRankings(ctx context.Context, limit int) (safest, mostDangerous []domain.LGARankingEntry, err error) {
	safest, err = r.queryRanking(ctx, "ASC", limit)
	if err != nil {
		return nil, nil, err
	}
	mostDangerous, err = r.queryRanking(ctx, "DESC", limit)
	if err != nil {
		return nil, nil, err
	}
	return safest, mostDangerous, nil
}

func (r *lgaRepository) queryRanking(ctx context.Context, order string, limit int) ([]domain.LGARankingEntry, error) {
	// order задается только из кода, не из пользовательского ввода
	query := `
		SELECT LOWER(lga_name), SUM(total_incidents) AS total, AVG(rate) AS rate
		FROM lga_offence_stats
		GROUP BY LOWER(lga_name)
		ORDER BY total ` + order + `
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to query LGA ranking", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	entries := make([]domain.LGARankingEntry, 0, limit)
	for rows.Next() {
		var e domain.LGARankingEntry
		if err := rows.Scan(&e.Name, &e.TotalIncidents, &e.Rate); err != nil {
			r.logger.Error("Failed to scan ranking entry", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err == sql.ErrNoRows {
		return entries, nil
	} else if err != nil {
		return nil, errors.ErrDatabaseError
	}

	return entries, nil
}
