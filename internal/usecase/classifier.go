package usecase

import (
	"strings"

	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/pkg/textmatch"
)

// Словари ключевых слов классификатора. Предикаты намеренно делят
// словарь ("crime", "safe"), однозначность обеспечивает порядок
// разрешения в Classify, а не взаимная исключительность.
var (
	areaTypeKeywords = []string{
		"suburb", "area", "lga", "council", "district", "region", "neighbourhood",
	}
	crimeStatsKeywords = []string{
		"crime statistics", "crime rate", "statistics", "stats",
		"offences", "offence", "incidents",
	}
	quantitativeKeywords = []string{
		"how many", "how much", "number of", "total", "count",
		"highest", "lowest", "most", "least", "compare", "average", "rank",
	}
	timeKeywords = []string{
		"time", "hour", "morning", "afternoon", "evening", "night",
		"midnight", "late", "early", "when",
	}
	safetyKeywords = []string{
		"safe", "safety", "danger", "dangerous", "risk", "risky", "avoid",
	}
	timeSafetyPhrases = []string{
		"safest time", "best time", "worst time",
		"when is it safe", "when should i walk", "what time is safest",
	}
	timePatternKeywords = []string{
		"pattern", "distribution", "usually", "typically", "often",
	}
	timeQuestionTemplates = []string{
		"what time", "which time", "when is", "when are", "when do",
	}
	crimeKeywords = []string{
		"crime", "robbery", "assault", "theft", "steal", "murder",
		"burglary", "break in", "offence", "incident",
	}
	analysisKeywords = []string{
		"type", "kind", "category", "breakdown", "common",
		"happen", "occur", "statistics", "most",
	}
	crimeTypeTemplates = []string{
		"what crimes", "which crimes", "what kind of crime", "what type of crime",
		"what sort of crime",
	}
	routeKeywords = []string{
		"route", "path", "way", "walk", "walking", "journey", "trip", "street",
	}
	deicticKeywords = []string{"here", "this"}
	lightingKeywords = []string{
		"streetlight", "street light", "street lamp", "lamp", "lighting", "lit",
	}
	hospitalKeywords = []string{
		"hospital", "medical", "emergency room", "clinic", "doctor", "ambulance",
	}
	policeKeywords = []string{
		"police", "cop", "police station", "law enforcement",
	}
	proximityKeywords = []string{
		"near", "nearby", "close", "closest", "nearest", "along", "around",
	}
)

// Classifier выбирает обработчик для свободного текстового запроса.
// Справочные данные (имена LGA) загружаются один раз при сборке.
type Classifier struct {
	threshold float64
	lgaNames  []string
}

// NewClassifier создает классификатор с известными именами районов
func NewClassifier(lgaNames []string) *Classifier {
	names := make([]string, len(lgaNames))
	for i, n := range lgaNames {
		names[i] = strings.ToLower(n)
	}
	return &Classifier{
		threshold: textmatch.DefaultThreshold,
		lgaNames:  names,
	}
}

func (c *Classifier) matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if textmatch.Match(text, kw, c.threshold) {
			return true
		}
	}
	return false
}

// MatchedLGANames возвращает имена районов, упомянутые в тексте
func (c *Classifier) MatchedLGANames(text string) []string {
	text = textmatch.Normalize(text)
	var matched []string
	for _, name := range c.lgaNames {
		if textmatch.Match(text, name, c.threshold) {
			matched = append(matched, name)
		}
	}
	return matched
}

// IsLGAStatsQuery - запрос статистики по району: упоминание типа
// территории или известного имени района вместе со статистической
// или количественной лексикой. Маршрут не требуется.
func (c *Classifier) IsLGAStatsQuery(text string) bool {
	areaRef := c.matchesAny(text, areaTypeKeywords) || len(c.MatchedLGANames(text)) > 0
	if !areaRef {
		return false
	}
	return c.matchesAny(text, crimeStatsKeywords) || c.matchesAny(text, quantitativeKeywords)
}

// IsTimeSafetyQuery - вопрос о безопасном времени суток
func (c *Classifier) IsTimeSafetyQuery(text string) bool {
	if c.matchesAny(text, timeKeywords) && c.matchesAny(text, safetyKeywords) {
		return true
	}
	if c.matchesAny(text, timeSafetyPhrases) {
		return true
	}
	if strings.Contains(text, "when") &&
		(c.matchesAny(text, crimeKeywords) || c.matchesAny(text, safetyKeywords)) {
		return true
	}
	if c.matchesAny(text, timeQuestionTemplates) &&
		(c.matchesAny(text, crimeKeywords) || c.matchesAny(text, safetyKeywords)) {
		return true
	}
	return c.matchesAny(text, safetyKeywords) && c.matchesAny(text, timePatternKeywords)
}

// IsCrimeTypeQuery - вопрос о видах преступлений вдоль маршрута.
// Требует отсылки к маршруту или дейктической отсылки ("here", "this").
func (c *Classifier) IsCrimeTypeQuery(text string) bool {
	routeRef := c.matchesAny(text, routeKeywords) || containsWord(text, deicticKeywords)
	if !routeRef {
		return false
	}
	if c.matchesAny(text, crimeKeywords) && c.matchesAny(text, analysisKeywords) {
		return true
	}
	return c.matchesAny(text, crimeTypeTemplates)
}

// IsStreetlightQuery - вопрос об освещенности маршрута
func (c *Classifier) IsStreetlightQuery(text string) bool {
	return c.matchesAny(text, lightingKeywords) && c.matchesAny(text, routeKeywords)
}

// IsRouteSafetyQuery - общий вопрос о безопасности маршрута
func (c *Classifier) IsRouteSafetyQuery(text string) bool {
	return c.matchesAny(text, safetyKeywords) &&
		(c.matchesAny(text, routeKeywords) || containsWord(text, deicticKeywords))
}

// IsHospitalQuery - поиск больниц рядом с маршрутом
func (c *Classifier) IsHospitalQuery(text string) bool {
	return c.matchesAny(text, hospitalKeywords) &&
		(c.matchesAny(text, proximityKeywords) || c.matchesAny(text, routeKeywords))
}

// IsPoliceQuery - поиск полиции рядом с маршрутом
func (c *Classifier) IsPoliceQuery(text string) bool {
	return c.matchesAny(text, policeKeywords) &&
		(c.matchesAny(text, proximityKeywords) || c.matchesAny(text, routeKeywords))
}

// MentionsCrime сообщает, касается ли текст криминальной лексики.
// Используется общим диалоговым путем для выбора контекста.
func (c *Classifier) MentionsCrime(text string) bool {
	return c.matchesAny(text, crimeKeywords)
}

// Classify выбирает единственный обработчик запроса. Порядок проверки
// фиксирован: время -> тип преступлений -> освещение -> общая
// безопасность -> больницы -> полиция -> статистика района -> диалог.
// Предикат общей безопасности подавляется, если запрос уже распознан
// как статистика района.
func (c *Classifier) Classify(message string, hasRoute bool) domain.QueryKind {
	text := textmatch.Normalize(message)
	isLGA := c.IsLGAStatsQuery(text)

	if hasRoute {
		switch {
		case c.IsTimeSafetyQuery(text):
			return domain.QueryTimeSafety
		case c.IsCrimeTypeQuery(text):
			return domain.QueryCrimeType
		case c.IsStreetlightQuery(text):
			return domain.QueryStreetlight
		case !isLGA && c.IsRouteSafetyQuery(text):
			return domain.QueryRouteSafety
		case c.IsHospitalQuery(text):
			return domain.QueryHospital
		case c.IsPoliceQuery(text):
			return domain.QueryPolice
		}
	}

	if isLGA {
		return domain.QueryLGAStats
	}

	// Вопрос о безопасности без маршрута ведет к инструкции
	// построить маршрут, а не к общему диалогу
	if !hasRoute && !isLGA && c.IsRouteSafetyQuery(text) {
		return domain.QueryRouteSafety
	}

	return domain.QueryGeneral
}

// containsWord проверяет наличие целого слова, без нечеткости
func containsWord(text string, words []string) bool {
	fields := strings.Fields(text)
	for _, f := range fields {
		f = strings.Trim(f, ".,!?")
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}
