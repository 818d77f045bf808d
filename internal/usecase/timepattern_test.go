package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/usecase"
)

func incidentAt(timeStr string) domain.FilteredIncident {
	return domain.FilteredIncident{
		Incident: domain.CrimeIncident{Category: "Theft", Type: "Steal from person", Time: timeStr},
	}
}

func TestAnalyzeTimePatterns_Empty(t *testing.T) {
	dist := usecase.AnalyzeTimePatterns(nil)

	assert.Equal(t, 0, dist.Total)
	assert.Equal(t, domain.PeriodUnknown, dist.BusiestPeriod)
	assert.Equal(t, domain.PeriodUnknown, dist.SafestPeriod)
	assert.Equal(t, -1, dist.BusiestHour)
}

func TestAnalyzeTimePatterns_CountInvariant(t *testing.T) {
	incidents := []domain.FilteredIncident{
		incidentAt("06:15"),
		incidentAt("13:00"),
		incidentAt("18:45"),
		incidentAt("23:30"),
		incidentAt("02:00"),
		incidentAt("evening"),
		incidentAt("no idea"),
		incidentAt(""),
	}

	dist := usecase.AnalyzeTimePatterns(incidents)

	assert.Equal(t, len(incidents), dist.Total)
	sum := dist.MorningCount + dist.AfternoonCount + dist.EveningCount + dist.NightCount + dist.UnknownCount
	assert.Equal(t, dist.Total, sum)
	assert.Equal(t, 2, dist.UnknownCount)
	assert.Equal(t, 2, dist.EveningCount)
	assert.Equal(t, 2, dist.NightCount)
}

func TestAnalyzeTimePatterns_BusiestAndSafest(t *testing.T) {
	incidents := []domain.FilteredIncident{
		incidentAt("18:00"),
		incidentAt("18:30"),
		incidentAt("19:10"),
		incidentAt("08:00"),
		incidentAt("13:00"),
		incidentAt("22:00"),
	}

	dist := usecase.AnalyzeTimePatterns(incidents)

	assert.Equal(t, domain.PeriodEvening, dist.BusiestPeriod)
	assert.Equal(t, 50, dist.BusiestPercent)
	assert.Equal(t, 18, dist.BusiestHour)
	assert.LessOrEqual(t, dist.BusiestPercent+dist.SafestPercent, 100)
}

func TestAnalyzeTimePatterns_TieBreakByPeriodOrder(t *testing.T) {
	// One incident in each period; the earliest declared period wins both titles
	incidents := []domain.FilteredIncident{
		incidentAt("08:00"),
		incidentAt("14:00"),
		incidentAt("19:00"),
		incidentAt("23:00"),
	}

	dist := usecase.AnalyzeTimePatterns(incidents)

	assert.Equal(t, domain.PeriodMorning, dist.BusiestPeriod)
	assert.Equal(t, domain.PeriodMorning, dist.SafestPeriod)
}

func TestAnalyzeTimePatterns_PeriodNameOnly(t *testing.T) {
	// Descriptive period without a clock time contributes to the period
	// distribution but not to the hourly one
	incidents := []domain.FilteredIncident{
		incidentAt("night"),
		incidentAt("Night time"),
	}

	dist := usecase.AnalyzeTimePatterns(incidents)

	assert.Equal(t, 2, dist.NightCount)
	assert.Equal(t, domain.PeriodNight, dist.BusiestPeriod)
	assert.Equal(t, -1, dist.BusiestHour)
}

func TestAnalyzeTimePatterns_StartTimeFallback(t *testing.T) {
	inc := domain.FilteredIncident{
		Incident: domain.CrimeIncident{Time: "garbage", StartTime: "07:45"},
	}

	dist := usecase.AnalyzeTimePatterns([]domain.FilteredIncident{inc})

	assert.Equal(t, 1, dist.MorningCount)
	assert.Equal(t, 7, dist.BusiestHour)
}

func TestAnalyzeTimePatterns_AllUnknown(t *testing.T) {
	incidents := []domain.FilteredIncident{
		incidentAt(""),
		incidentAt("???"),
	}

	dist := usecase.AnalyzeTimePatterns(incidents)

	assert.Equal(t, 2, dist.Total)
	assert.Equal(t, 2, dist.UnknownCount)
	assert.Equal(t, domain.PeriodUnknown, dist.BusiestPeriod)
	assert.Equal(t, -1, dist.BusiestHour)
}

func TestPeriodForHour(t *testing.T) {
	assert.Equal(t, domain.PeriodMorning, domain.PeriodForHour(5))
	assert.Equal(t, domain.PeriodMorning, domain.PeriodForHour(11))
	assert.Equal(t, domain.PeriodAfternoon, domain.PeriodForHour(12))
	assert.Equal(t, domain.PeriodAfternoon, domain.PeriodForHour(16))
	assert.Equal(t, domain.PeriodEvening, domain.PeriodForHour(17))
	assert.Equal(t, domain.PeriodEvening, domain.PeriodForHour(20))
	assert.Equal(t, domain.PeriodNight, domain.PeriodForHour(21))
	assert.Equal(t, domain.PeriodNight, domain.PeriodForHour(4))
}
