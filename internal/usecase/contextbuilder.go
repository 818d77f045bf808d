package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/saferoute-assistant/internal/domain"
)

// ContextBuilder собирает ограниченный контекст фактов для одного хода.
// Часы инжектируются ради тестируемости.
type ContextBuilder struct {
	now            func() time.Time
	wellLitPer100m float64
}

// NewContextBuilder создает сборщик контекста
func NewContextBuilder(wellLitPer100m float64) *ContextBuilder {
	return &ContextBuilder{
		now:            time.Now,
		wellLitPer100m: wellLitPer100m,
	}
}

// WithClock подменяет источник времени
func (b *ContextBuilder) WithClock(now func() time.Time) *ContextBuilder {
	b.now = now
	return b
}

// BuildTimeContext классифицирует текущий момент
func (b *ContextBuilder) BuildTimeContext() domain.TimeContext {
	now := b.now()
	hour := now.Hour()
	weekday := now.Weekday()

	light := domain.LightDark
	switch {
	case hour >= 6 && hour < 8:
		light = domain.LightDawn
	case hour >= 8 && hour < 17:
		light = domain.LightDaylight
	case hour >= 17 && hour < 19:
		light = domain.LightDusk
	}

	return domain.TimeContext{
		CurrentTime:     now.Format("15:04"),
		DayOfWeek:       weekday.String(),
		Period:          domain.PeriodForHour(hour),
		LightCondition:  light,
		IsWeekend:       weekday == time.Saturday || weekday == time.Sunday,
		IsBusinessHours: weekday >= time.Monday && weekday <= time.Friday && hour >= 9 && hour < 17,
	}
}

// BuildEvidence собирает контекст из состояния сессии. Каждая часть
// best-effort: отсутствие данных по одной из них не прерывает сборку.
// Детальное распределение по времени включается только для запросов,
// распознанных как временные.
func (b *ContextBuilder) BuildEvidence(session *domain.Session, timeRelevant bool) domain.EvidenceContext {
	ev := domain.EvidenceContext{
		Time:  b.BuildTimeContext(),
		Route: session.Route.Summary(),
	}

	visibleLamps := session.LampView.Count()
	visibleCrimes := session.CrimeView.Count()

	ev.Infrastructure = domain.InfrastructureContext{
		LampTotal:     session.LampTotal,
		LampVisible:   visibleLamps,
		HospitalTotal: session.HospitalTotal,
		PoliceTotal:   session.PoliceTotal,
	}
	if ev.Route.LengthMeters > 0 {
		ev.Infrastructure.LampDensity = float64(visibleLamps) / (ev.Route.LengthMeters / 100.0)
	}

	ev.Crime = domain.CrimeContext{
		VisibleCount: visibleCrimes,
		TotalCount:   session.CrimeTotal,
	}
	if session.CrimeView != nil && visibleCrimes > 0 {
		breakdown := BuildCrimeBreakdown(session.CrimeView.Incidents, ev.Route.LengthMeters)
		ev.Crime.Breakdown = &breakdown
		if timeRelevant {
			dist := AnalyzeTimePatterns(session.CrimeView.Incidents)
			ev.Crime.TimePatterns = &dist
		}
	}

	ev.Neighborhood = domain.NeighborhoodContext{
		Type: NeighborhoodType(visibleLamps, visibleCrimes),
	}

	return ev
}

// RenderSystemMessage превращает контекст в системное сообщение для
// модели. Текст не предназначен для показа пользователю.
func RenderSystemMessage(ev domain.EvidenceContext) string {
	var sb strings.Builder

	sb.WriteString("Current conditions: ")
	fmt.Fprintf(&sb, "%s (%s), %s, light: %s.",
		ev.Time.CurrentTime, ev.Time.Period, ev.Time.DayOfWeek, ev.Time.LightCondition)
	if ev.Time.IsWeekend {
		sb.WriteString(" It is a weekend.")
	}
	if ev.Time.IsBusinessHours {
		sb.WriteString(" Business hours are in effect.")
	}

	if ev.Route.HasRoute {
		fmt.Fprintf(&sb, " Route: %.2f km, about %d minutes on foot.",
			ev.Route.LengthKm, ev.Route.WalkingMinutes)
	} else {
		sb.WriteString(" No route is plotted.")
	}

	fmt.Fprintf(&sb, " Street lamps near route: %d (%.2f per 100m).",
		ev.Infrastructure.LampVisible, ev.Infrastructure.LampDensity)
	if ev.Infrastructure.HospitalTotal > 0 || ev.Infrastructure.PoliceTotal > 0 {
		fmt.Fprintf(&sb, " Hospitals known: %d, police stations known: %d.",
			ev.Infrastructure.HospitalTotal, ev.Infrastructure.PoliceTotal)
	}

	fmt.Fprintf(&sb, " Crime incidents near route: %d.", ev.Crime.VisibleCount)
	if ev.Crime.Breakdown != nil {
		fmt.Fprintf(&sb, " Risk level: %s (%.1f incidents/km).",
			ev.Crime.Breakdown.SafetyBand, ev.Crime.Breakdown.DensityPerKm)
		if len(ev.Crime.Breakdown.TopCategories) > 0 {
			parts := make([]string, 0, len(ev.Crime.Breakdown.TopCategories))
			for _, cc := range ev.Crime.Breakdown.TopCategories {
				parts = append(parts, fmt.Sprintf("%s (%d%%)", cc.Name, cc.Percent))
			}
			fmt.Fprintf(&sb, " Top categories: %s.", strings.Join(parts, ", "))
		}
	}
	if ev.Crime.TimePatterns != nil && ev.Crime.TimePatterns.BusiestPeriod != domain.PeriodUnknown {
		fmt.Fprintf(&sb, " Incidents peak in the %s (%d%%), quietest period is the %s.",
			ev.Crime.TimePatterns.BusiestPeriod,
			ev.Crime.TimePatterns.BusiestPercent,
			ev.Crime.TimePatterns.SafestPeriod)
	}

	fmt.Fprintf(&sb, " Neighborhood appears %s (heuristic from lamp and incident density).",
		ev.Neighborhood.Type)

	return sb.String()
}

// SpliceContext вставляет системное сообщение непосредственно перед
// последним пользовательским сообщением. Журнал не изменяется,
// возвращается копия для вызова модели.
func SpliceContext(history []domain.Message, systemMsg string) []domain.Message {
	if systemMsg == "" {
		out := make([]domain.Message, len(history))
		copy(out, history)
		return out
	}

	insertAt := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleUser {
			insertAt = i
			break
		}
	}

	out := make([]domain.Message, 0, len(history)+1)
	out = append(out, history[:insertAt]...)
	out = append(out, domain.Message{Role: domain.RoleSystem, Content: systemMsg})
	out = append(out, history[insertAt:]...)
	return out
}
