package usecase

import (
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/domain"
)

// Контракт разделителей структурированного ответа модели.
// Формат должен сохраняться побайтово для совместимости с промптом.
var (
	responseBlockRe = regexp.MustCompile(`(?s)<response>(.*?)</response>`)
	placesBlockRe   = regexp.MustCompile(`(?s)<places>(.*?)</places>`)
	crimeBlockRe    = regexp.MustCompile(`(?s)<crime>(.*?)</crime>`)
	lightingBlockRe = regexp.MustCompile(`(?s)<lighting>(.*?)</lighting>`)

	anyTagRe = regexp.MustCompile(`</?(response|places|crime|lighting)>`)

	// Осиротевшие JSON-фрагменты с узнаваемыми именами полей
	jsonFragmentRe = regexp.MustCompile(`(?s)[\[{][^\[\]{}]*"(name|type|lat|lng|count|level|density|total)"[^\[\]{}]*[}\]]`)
)

// FallbackReply показывается, когда из ответа модели не удалось
// извлечь ни одного осмысленного фрагмента
const FallbackReply = "I'm here to help with route safety questions. Could you try rephrasing that?"

// ParseModelReply разбирает размеченный ответ модели. Ошибки разбора
// отдельных блоков логируются и не прерывают разбор остальных.
func ParseModelReply(text string, logger *zap.Logger) domain.ModelReply {
	reply := domain.ModelReply{}

	if m := responseBlockRe.FindStringSubmatch(text); m != nil {
		reply.Text = strings.TrimSpace(m[1])
	} else if loc := anyTagRe.FindStringIndex(text); loc != nil {
		// Внешний блок отсутствует: диалоговый текст - все до первого тега
		reply.Text = strings.TrimSpace(text[:loc[0]])
	} else {
		reply.Text = strings.TrimSpace(text)
	}

	if m := placesBlockRe.FindStringSubmatch(text); m != nil {
		var places []domain.Place
		if err := json.Unmarshal([]byte(strings.TrimSpace(m[1])), &places); err != nil {
			logger.Warn("Failed to parse places block", zap.Error(err))
		} else {
			reply.Places = places
		}
	} else if strings.Contains(text, "<places>") {
		logger.Warn("Unterminated places block in model reply")
	}

	reply.Crime = parseJSONBlock(text, crimeBlockRe, "crime", logger)
	reply.Lighting = parseJSONBlock(text, lightingBlockRe, "lighting", logger)

	if reply.Text == "" {
		reply.Text = CleanForDisplay(text)
	}

	return reply
}

func parseJSONBlock(text string, re *regexp.Regexp, name string, logger *zap.Logger) json.RawMessage {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	raw := strings.TrimSpace(m[1])
	if !json.Valid([]byte(raw)) {
		logger.Warn("Failed to parse structured block", zap.String("block", name))
		return nil
	}
	return json.RawMessage(raw)
}

// CleanForDisplay вычищает остаточные теги и обрывки JSON из текста.
// Никогда не возвращает пустую строку.
func CleanForDisplay(text string) string {
	s := anyTagRe.ReplaceAllString(text, " ")
	s = jsonFragmentRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return FallbackReply
	}
	return s
}

// IsDuplicateReply сравнивает кандидата с последними показанными
// ответами ассистента. Совпадение, вхождение подстрокой или
// надстрокой считается дубликатом.
func IsDuplicateReply(candidate string, recent []string) bool {
	cand := strings.Join(strings.Fields(candidate), " ")
	if cand == "" {
		return false
	}
	for _, prev := range recent {
		p := strings.Join(strings.Fields(prev), " ")
		if p == "" {
			continue
		}
		if cand == p || strings.Contains(p, cand) || strings.Contains(cand, p) {
			return true
		}
	}
	return false
}
