// Package textmatch реализует нечеткое сопоставление ключевых слов
// на основе расстояния Левенштейна. Используется классификатором запросов.
package textmatch

import (
	"math"
	"strings"
)

// DefaultThreshold - порог сходства по умолчанию
const DefaultThreshold = 0.7

// typoFixes - частые опечатки, исправляемые до классификации.
// Заменяются только целые слова.
var typoFixes = map[string]string{
	"sreet":      "street",
	"stret":      "street",
	"ligth":      "light",
	"lite":       "light",
	"safty":      "safety",
	"safey":      "safety",
	"saftey":     "safety",
	"steetlight": "streetlight",
	"streelight": "streetlight",
	"sreetlight": "streetlight",
	"steetlamp":  "streetlamp",
	"polic":      "police",
	"hospitl":    "hospital",
	"hosptal":    "hospital",
	"rout":       "route",
	"dangerus":   "dangerous",
	"dangeros":   "dangerous",
}

// Normalize приводит текст к нижнему регистру, схлопывает пробелы
// и исправляет частые опечатки
func Normalize(text string) string {
	words := strings.Fields(strings.ToLower(text))
	for i, w := range words {
		core := strings.TrimRight(w, ".,!?;:")
		if fix, ok := typoFixes[core]; ok {
			words[i] = fix + w[len(core):]
		}
	}
	return strings.Join(words, " ")
}

// Match проверяет нечеткое вхождение ключевого слова в текст.
// Точное вхождение подстроки принимается сразу. Ключевые слова длиной
// до 3 символов принимаются только при точном вхождении.
func Match(text, keyword string, threshold float64) bool {
	text = strings.ToLower(text)
	keyword = strings.ToLower(keyword)

	if keyword == "" {
		return false
	}

	if strings.Contains(text, keyword) {
		return true
	}

	kw := []rune(keyword)
	if len(kw) <= 3 {
		return false
	}

	// Скользящее окно длины len(keyword)+2 по тексту
	runes := []rune(text)
	window := len(kw) + 2
	if window > len(runes) {
		window = len(runes)
	}
	if window > 0 {
		for i := 0; i+window <= len(runes); i++ {
			if Similarity(string(runes[i:i+window]), keyword) >= threshold {
				return true
			}
		}
	}

	// Для многословных ключевых слов - пословное сопоставление
	words := strings.Fields(keyword)
	if len(words) > 1 {
		return matchWords(text, words, threshold)
	}

	return false
}

// matchWords принимает совпадение, если доля совпавших слов ключа
// не меньше ceil(threshold * количество значимых слов).
// Слова ключа длиной до 2 символов игнорируются.
func matchWords(text string, words []string, threshold float64) bool {
	textWords := strings.Fields(text)

	significant := 0
	matched := 0
	for _, w := range words {
		if len([]rune(w)) <= 2 {
			continue
		}
		significant++
		for _, tw := range textWords {
			if strings.Contains(tw, w) || Similarity(tw, w) >= threshold {
				matched++
				break
			}
		}
	}

	if significant == 0 {
		return false
	}

	required := int(math.Ceil(threshold * float64(significant)))
	return matched >= required
}

// Similarity вычисляет нормированное сходство двух строк: 1 - lev/maxLen.
// При разнице длин более 50% от короткой строки сразу возвращает 0 -
// это приближение ради производительности, допускающее ложные отказы
// для длинных ключей с большими опечатками.
func Similarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 && len(rb) == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	shorter := len(ra)
	longer := len(rb)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(longer-shorter) > 0.5*float64(shorter) {
		return 0.0
	}

	dist := levenshtein(ra, rb)
	return 1.0 - float64(dist)/float64(longer)
}

// levenshtein вычисляет редакционное расстояние двумя строками DP-таблицы
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
