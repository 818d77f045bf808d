package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/saferoute-assistant/internal/domain"
)

var clockTimeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)

// parseIncidentHour извлекает час происшествия в порядке приоритета:
// явное время "HH:MM", описательный период, альтернативное поле времени.
// Возвращает (час, период, ok). Для описательного периода час равен -1.
func parseIncidentHour(inc domain.CrimeIncident) (int, string, bool) {
	if h, ok := parseClockHour(inc.Time); ok {
		return h, domain.PeriodForHour(h), true
	}

	if period := parsePeriodName(inc.Time); period != "" {
		return -1, period, true
	}

	if h, ok := parseClockHour(inc.StartTime); ok {
		return h, domain.PeriodForHour(h), true
	}

	return -1, "", false
}

func parseClockHour(s string) (int, bool) {
	m := clockTimeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	h, err := strconv.Atoi(m[1])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}

func parsePeriodName(s string) string {
	lower := strings.ToLower(s)
	for _, period := range domain.PeriodOrder {
		if strings.Contains(lower, period) {
			return period
		}
	}
	return ""
}

// AnalyzeTimePatterns строит распределение инцидентов по периодам и часам.
// Инциденты без распознанного времени считаются в unknown и в общем итоге,
// но не участвуют в распределении.
func AnalyzeTimePatterns(incidents []domain.FilteredIncident) domain.TimeDistribution {
	dist := domain.TimeDistribution{
		Total:         len(incidents),
		BusiestPeriod: domain.PeriodUnknown,
		SafestPeriod:  domain.PeriodUnknown,
		BusiestHour:   -1,
	}

	for _, fi := range incidents {
		hour, period, ok := parseIncidentHour(fi.Incident)
		if !ok {
			dist.UnknownCount++
			continue
		}

		switch period {
		case domain.PeriodMorning:
			dist.MorningCount++
		case domain.PeriodAfternoon:
			dist.AfternoonCount++
		case domain.PeriodEvening:
			dist.EveningCount++
		case domain.PeriodNight:
			dist.NightCount++
		}

		if hour >= 0 {
			dist.HourlyCounts[hour]++
		}
	}

	known := dist.Total - dist.UnknownCount
	if known <= 0 {
		return dist
	}

	// Самый загруженный и самый спокойный периоды. При равенстве
	// счетчиков побеждает период, объявленный раньше в PeriodOrder.
	busiest, safest := domain.PeriodOrder[0], domain.PeriodOrder[0]
	for _, period := range domain.PeriodOrder[1:] {
		if dist.PeriodCount(period) > dist.PeriodCount(busiest) {
			busiest = period
		}
		if dist.PeriodCount(period) < dist.PeriodCount(safest) {
			safest = period
		}
	}
	dist.BusiestPeriod = busiest
	dist.BusiestPercent = dist.PeriodCount(busiest) * 100 / known
	dist.SafestPeriod = safest
	dist.SafestPercent = dist.PeriodCount(safest) * 100 / known

	// Самый загруженный час требует строгого максимума
	maxCount := 0
	for hour, count := range dist.HourlyCounts {
		if count > maxCount {
			maxCount = count
			dist.BusiestHour = hour
		}
	}

	return dist
}
