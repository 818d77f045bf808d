package domain

// LGAOffenceStats - статистика одного типа правонарушений в LGA
type LGAOffenceStats struct {
	Offence        string         `json:"offence"`
	TotalIncidents int            `json:"total_incidents"`
	Rate           float64        `json:"rate"` // инцидентов на 100 тыс. населения
	AverageRank    float64        `json:"average_rank"`
	YearCounts     map[string]int `json:"year_counts,omitempty"`
}

// LGAStats - статистика преступности района местного самоуправления
type LGAStats struct {
	Name     string                     `json:"name"`
	Offences map[string]LGAOffenceStats `json:"offences"`
}

// TotalIncidents возвращает суммарное число инцидентов по всем типам
func (s *LGAStats) TotalIncidents() int {
	total := 0
	for _, o := range s.Offences {
		total += o.TotalIncidents
	}
	return total
}

// OffenceAverage - средние показатели типа правонарушений по всем LGA
type OffenceAverage struct {
	Offence           string  `json:"offence"`
	AverageIncidents  float64 `json:"average_incidents"`
	AverageRate       float64 `json:"average_rate"`
	TotalIncidents    int     `json:"total_incidents"`
	ParticipatingLGAs int     `json:"participating_lgas"`
}

// LGARankingEntry - позиция LGA в ранжировании по уровню преступности
type LGARankingEntry struct {
	Name           string  `json:"name"`
	TotalIncidents int     `json:"total_incidents"`
	Rate           float64 `json:"rate"`
}

// LGAQueryData - данные статистики, собранные под конкретный запрос
type LGAQueryData struct {
	Matched         []LGAStats        `json:"matched"`
	MatchedOffences []string          `json:"matched_offences,omitempty"`
	Averages        []OffenceAverage  `json:"averages,omitempty"`
	Safest          []LGARankingEntry `json:"safest,omitempty"`
	MostDangerous   []LGARankingEntry `json:"most_dangerous,omitempty"`
}
