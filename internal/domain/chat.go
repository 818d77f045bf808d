package domain

import "encoding/json"

// Роли сообщений диалога
const (
	RoleUser      = "user"
	RoleSystem    = "system"
	RoleAssistant = "assistant"
)

// Message - запись журнала диалога
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Place - именованная точка интереса из ответа модели
type Place struct {
	Name string  `json:"name"`
	Type string  `json:"type,omitempty"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// ModelReply - разобранный структурированный ответ модели.
// Любой из блоков может отсутствовать.
type ModelReply struct {
	Text     string          `json:"text"`
	Places   []Place         `json:"places,omitempty"`
	Crime    json.RawMessage `json:"crime,omitempty"`
	Lighting json.RawMessage `json:"lighting,omitempty"`
}
