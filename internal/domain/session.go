package domain

import "time"

// Session - явное состояние диалога, передаваемое в каждый обработчик.
// Хранится в Redis между ходами.
type Session struct {
	ID        string    `json:"id"`
	Route     Route     `json:"route,omitempty"`
	TurnStamp int64     `json:"turn_stamp"`
	History   []Message `json:"history"`

	CrimeView *CrimeFilterView `json:"crime_view,omitempty"`
	LampView  *LampFilterView  `json:"lamp_view,omitempty"`

	LampTotal     int `json:"lamp_total"`
	HospitalTotal int `json:"hospital_total"`
	PoliceTotal   int `json:"police_total"`
	CrimeTotal    int `json:"crime_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRoute сообщает, построен ли пригодный для анализа маршрут
func (s *Session) HasRoute() bool {
	return s.Route.IsUsable()
}

// NextStamp выдает следующий монотонный идентификатор хода.
// Используется для отбрасывания устаревших вычислений: результат
// применяется только если его штамп не младше текущего.
func (s *Session) NextStamp() int64 {
	s.TurnStamp++
	return s.TurnStamp
}

// IsStale проверяет, устарел ли штамп относительно состояния сессии
func (s *Session) IsStale(stamp int64) bool {
	return stamp < s.TurnStamp
}

// RecentAssistantMessages возвращает до n последних ответов ассистента
// в обратном хронологическом порядке
func (s *Session) RecentAssistantMessages(n int) []string {
	out := make([]string, 0, n)
	for i := len(s.History) - 1; i >= 0 && len(out) < n; i-- {
		if s.History[i].Role == RoleAssistant {
			out = append(out, s.History[i].Content)
		}
	}
	return out
}

// AppendMessage дописывает запись в журнал диалога
func (s *Session) AppendMessage(role, content string) {
	s.History = append(s.History, Message{Role: role, Content: content})
}
