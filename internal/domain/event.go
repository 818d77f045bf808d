package domain

import "time"

// RouteEvent - событие изменения маршрута, публикуемое в поток
// для фонового пересчета близости
type RouteEvent struct {
	SessionID  string    `json:"session_id"`
	Stamp      int64     `json:"stamp"`
	Cleared    bool      `json:"cleared"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RouteEventMessage - событие маршрута, прочитанное из стрима,
// вместе с идентификатором сообщения для подтверждения
type RouteEventMessage struct {
	ID    string
	Event RouteEvent
}
