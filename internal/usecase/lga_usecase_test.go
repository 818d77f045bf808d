package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/usecase"
)

func baysideStats() *domain.LGAStats {
	return &domain.LGAStats{
		Name: "bayside",
		Offences: map[string]domain.LGAOffenceStats{
			"Theft":   {Offence: "Theft", TotalIncidents: 120, Rate: 88.2},
			"Assault": {Offence: "Assault", TotalIncidents: 30, Rate: 22.0},
		},
	}
}

func TestLGAUseCase_GetDataForQuery(t *testing.T) {
	ctx := context.Background()
	classifier := usecase.NewClassifier([]string{"Bayside", "Melbourne"})

	t.Run("matched area with offence filter", func(t *testing.T) {
		mockLGA := &MockLGARepository{}
		mockLGA.On("GetByNames", ctx, []string{"bayside"}).Return([]domain.LGAStats{*baysideStats()}, nil)
		mockLGA.On("ListOffenceTypes", ctx).Return([]string{"Theft", "Assault"}, nil)

		uc := usecase.NewLGAUseCase(mockLGA, zap.NewNop())
		data, err := uc.GetDataForQuery(ctx, classifier, "How much theft happens in Bayside?")

		assert.NoError(t, err)
		assert.Len(t, data.Matched, 1)
		assert.Contains(t, data.MatchedOffences, "Theft")
		assert.NotContains(t, data.MatchedOffences, "Assault")
		mockLGA.AssertNotCalled(t, "GetRankings", mock.Anything, mock.Anything)
	})

	t.Run("ranking request loads rankings", func(t *testing.T) {
		mockLGA := &MockLGARepository{}
		mockLGA.On("ListOffenceTypes", ctx).Return([]string{"Theft"}, nil)
		mockLGA.On("GetRankings", ctx, 5).Return(
			[]domain.LGARankingEntry{{Name: "hepburn", TotalIncidents: 12}},
			[]domain.LGARankingEntry{{Name: "melbourne", TotalIncidents: 900}},
			nil,
		)

		uc := usecase.NewLGAUseCase(mockLGA, zap.NewNop())
		data, err := uc.GetDataForQuery(ctx, classifier, "Which suburb is safest?")

		assert.NoError(t, err)
		assert.Len(t, data.Safest, 1)
		assert.Len(t, data.MostDangerous, 1)
	})

	t.Run("comparative request loads averages", func(t *testing.T) {
		mockLGA := &MockLGARepository{}
		mockLGA.On("GetByNames", ctx, []string{"bayside"}).Return([]domain.LGAStats{*baysideStats()}, nil)
		mockLGA.On("ListOffenceTypes", ctx).Return([]string{"Theft"}, nil)
		mockLGA.On("GetOffenceAverages", ctx).Return([]domain.OffenceAverage{
			{Offence: "Theft", AverageIncidents: 75},
		}, nil)

		uc := usecase.NewLGAUseCase(mockLGA, zap.NewNop())
		data, err := uc.GetDataForQuery(ctx, classifier, "How does Bayside compare to the average?")

		assert.NoError(t, err)
		assert.Len(t, data.Averages, 1)
	})

	t.Run("failed lookups degrade to partial data", func(t *testing.T) {
		mockLGA := &MockLGARepository{}
		mockLGA.On("GetByNames", ctx, []string{"bayside"}).Return(nil, assert.AnError)
		mockLGA.On("ListOffenceTypes", ctx).Return(nil, assert.AnError)

		uc := usecase.NewLGAUseCase(mockLGA, zap.NewNop())
		data, err := uc.GetDataForQuery(ctx, classifier, "crime in Bayside")

		assert.NoError(t, err)
		assert.Empty(t, data.Matched)
		assert.Empty(t, data.MatchedOffences)
	})
}

func TestLGAUseCase_RenderAnswer(t *testing.T) {
	uc := usecase.NewLGAUseCase(&MockLGARepository{}, zap.NewNop())

	t.Run("offence specific answer", func(t *testing.T) {
		data := &domain.LGAQueryData{
			Matched:         []domain.LGAStats{*baysideStats()},
			MatchedOffences: []string{"Theft"},
		}

		text := uc.RenderAnswer(data)

		assert.Contains(t, text, "Bayside")
		assert.Contains(t, text, "120")
		assert.Contains(t, text, "theft")
		assert.NotContains(t, text, "Assault")
	})

	t.Run("aggregate answer without offence filter", func(t *testing.T) {
		data := &domain.LGAQueryData{Matched: []domain.LGAStats{*baysideStats()}}

		text := uc.RenderAnswer(data)

		assert.Contains(t, text, "150 incidents")
	})

	t.Run("missing offence is reported", func(t *testing.T) {
		data := &domain.LGAQueryData{
			Matched:         []domain.LGAStats{*baysideStats()},
			MatchedOffences: []string{"Arson"},
		}

		text := uc.RenderAnswer(data)

		assert.Contains(t, text, "No arson records")
	})

	t.Run("nothing matched falls back to guidance", func(t *testing.T) {
		text := uc.RenderAnswer(&domain.LGAQueryData{})
		assert.Contains(t, text, "naming a specific local government area")
	})

	t.Run("rankings listed", func(t *testing.T) {
		data := &domain.LGAQueryData{
			Safest:        []domain.LGARankingEntry{{Name: "hepburn"}},
			MostDangerous: []domain.LGARankingEntry{{Name: "melbourne"}},
		}

		text := uc.RenderAnswer(data)

		assert.Contains(t, text, "Lowest-crime areas: Hepburn")
		assert.Contains(t, text, "Highest-crime areas: Melbourne")
	})
}
