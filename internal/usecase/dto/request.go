package dto

// PointDTO - точка маршрута в запросе
type PointDTO struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// RouteRequest - запрос установки маршрута сессии
type RouteRequest struct {
	Points []PointDTO `json:"points" validate:"required,min=2,max=500,dive"`
}

// ChatRequest - запрос диалогового хода
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}
