package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	"github.com/saferoute-assistant/internal/pkg/textmatch"
)

const rankingLimit = 5

// LGAUseCase обрабатывает запросы статистики по районам
type LGAUseCase struct {
	lgaRepo repository.LGARepository
	logger  *zap.Logger
}

// NewLGAUseCase создает новый экземпляр LGAUseCase
func NewLGAUseCase(lgaRepo repository.LGARepository, logger *zap.Logger) *LGAUseCase {
	return &LGAUseCase{
		lgaRepo: lgaRepo,
		logger:  logger,
	}
}

// GetByName возвращает статистику одного района
func (uc *LGAUseCase) GetByName(ctx context.Context, name string) (*domain.LGAStats, error) {
	return uc.lgaRepo.GetByName(ctx, name)
}

// GetDataForQuery собирает статистику под конкретный текст запроса:
// упомянутые районы, упомянутые типы правонарушений, а также средние
// и ранжирования, если запрос сравнительный
func (uc *LGAUseCase) GetDataForQuery(ctx context.Context, classifier *Classifier, message string) (*domain.LGAQueryData, error) {
	text := textmatch.Normalize(message)
	data := &domain.LGAQueryData{}

	if names := classifier.MatchedLGANames(text); len(names) > 0 {
		matched, err := uc.lgaRepo.GetByNames(ctx, names)
		if err != nil {
			uc.logger.Warn("Failed to load LGA stats",
				zap.Strings("lgas", names),
				zap.Error(err))
		} else {
			data.Matched = matched
		}
	}

	offences, err := uc.lgaRepo.ListOffenceTypes(ctx)
	if err != nil {
		uc.logger.Warn("Failed to list offence types", zap.Error(err))
	} else {
		for _, offence := range offences {
			if textmatch.Match(text, strings.ToLower(offence), textmatch.DefaultThreshold) {
				data.MatchedOffences = append(data.MatchedOffences, offence)
			}
		}
	}

	comparative := strings.Contains(text, "average") || strings.Contains(text, "compare") ||
		strings.Contains(text, "versus") || strings.Contains(text, " vs ")
	if comparative || len(data.Matched) > 1 {
		averages, err := uc.lgaRepo.GetOffenceAverages(ctx)
		if err != nil {
			uc.logger.Warn("Failed to load offence averages", zap.Error(err))
		} else {
			data.Averages = averages
		}
	}

	wantsRanking := strings.Contains(text, "safest") || strings.Contains(text, "most dangerous") ||
		strings.Contains(text, "worst") || strings.Contains(text, "best") ||
		strings.Contains(text, "rank")
	if wantsRanking {
		safest, mostDangerous, err := uc.lgaRepo.GetRankings(ctx, rankingLimit)
		if err != nil {
			uc.logger.Warn("Failed to load LGA rankings", zap.Error(err))
		} else {
			data.Safest = safest
			data.MostDangerous = mostDangerous
		}
	}

	return data, nil
}

// RenderAnswer формирует текстовый ответ по собранной статистике
func (uc *LGAUseCase) RenderAnswer(data *domain.LGAQueryData) string {
	var sb strings.Builder

	for _, lga := range data.Matched {
		title := titleCase(lga.Name)
		if len(data.MatchedOffences) > 0 {
			for _, offence := range data.MatchedOffences {
				stats, ok := lga.Offences[offence]
				if !ok {
					fmt.Fprintf(&sb, "No %s records are available for %s. ", strings.ToLower(offence), title)
					continue
				}
				fmt.Fprintf(&sb, "%s recorded %d %s incidents (rate %.1f per 100,000). ",
					title, stats.TotalIncidents, strings.ToLower(offence), stats.Rate)
			}
		} else {
			fmt.Fprintf(&sb, "%s recorded %d incidents across all offence types. ",
				title, lga.TotalIncidents())
		}
	}

	if len(data.Safest) > 0 {
		names := make([]string, 0, len(data.Safest))
		for _, e := range data.Safest {
			names = append(names, titleCase(e.Name))
		}
		fmt.Fprintf(&sb, "Lowest-crime areas: %s. ", strings.Join(names, ", "))
	}
	if len(data.MostDangerous) > 0 {
		names := make([]string, 0, len(data.MostDangerous))
		for _, e := range data.MostDangerous {
			names = append(names, titleCase(e.Name))
		}
		fmt.Fprintf(&sb, "Highest-crime areas: %s. ", strings.Join(names, ", "))
	}

	if sb.Len() == 0 {
		return "I couldn't find statistics for that area. Try naming a specific local government area."
	}
	return strings.TrimSpace(sb.String())
}

// RenderContext формирует фрагмент системного контекста по статистике
func (uc *LGAUseCase) RenderContext(data *domain.LGAQueryData) string {
	if data == nil || len(data.Matched) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Area statistics: ")
	for _, lga := range data.Matched {
		fmt.Fprintf(&sb, "%s has %d recorded incidents. ", titleCase(lga.Name), lga.TotalIncidents())
	}
	for _, avg := range data.Averages {
		fmt.Fprintf(&sb, "State average for %s: %.0f incidents. ", strings.ToLower(avg.Offence), avg.AverageIncidents)
	}
	return strings.TrimSpace(sb.String())
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
