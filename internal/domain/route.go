package domain

import "github.com/saferoute-assistant/internal/pkg/utils"

// Скорость пешехода для оценки времени прохождения маршрута (~5 км/ч)
const WalkingPaceMetersPerMinute = 83.3

// Route - упорядоченная последовательность точек маршрута
type Route []Point

// IsUsable сообщает, пригоден ли маршрут для геоанализа (минимум 2 точки)
func (r Route) IsUsable() bool {
	return len(r) >= 2
}

// Length возвращает длину маршрута в метрах как сумму
// расстояний между последовательными точками
func (r Route) Length() float64 {
	total := 0.0
	for i := 1; i < len(r); i++ {
		total += utils.HaversineDistance(r[i-1].Lat, r[i-1].Lon, r[i].Lat, r[i].Lon)
	}
	return total
}

// BoundingBox возвращает охватывающую область маршрута с буфером в градусах
func (r Route) BoundingBox(bufferDeg float64) BoundingBox {
	if len(r) == 0 {
		return BoundingBox{}
	}

	box := BoundingBox{
		MinLat: r[0].Lat, MaxLat: r[0].Lat,
		MinLon: r[0].Lon, MaxLon: r[0].Lon,
	}
	for _, p := range r[1:] {
		if p.Lat < box.MinLat {
			box.MinLat = p.Lat
		}
		if p.Lat > box.MaxLat {
			box.MaxLat = p.Lat
		}
		if p.Lon < box.MinLon {
			box.MinLon = p.Lon
		}
		if p.Lon > box.MaxLon {
			box.MaxLon = p.Lon
		}
	}

	box.MinLat -= bufferDeg
	box.MaxLat += bufferDeg
	box.MinLon -= bufferDeg
	box.MaxLon += bufferDeg
	return box
}

// RouteSummary - сводка маршрута для контекста модели и API
type RouteSummary struct {
	HasRoute       bool    `json:"has_route"`
	PointCount     int     `json:"point_count"`
	LengthMeters   float64 `json:"length_meters"`
	LengthKm       float64 `json:"length_km"`
	WalkingMinutes int     `json:"walking_minutes"`
	Start          *Point  `json:"start,omitempty"`
	End            *Point  `json:"end,omitempty"`
}

// Summary строит сводку маршрута
func (r Route) Summary() RouteSummary {
	if !r.IsUsable() {
		return RouteSummary{HasRoute: false, PointCount: len(r)}
	}

	length := r.Length()
	start := r[0]
	end := r[len(r)-1]
	return RouteSummary{
		HasRoute:       true,
		PointCount:     len(r),
		LengthMeters:   length,
		LengthKm:       length / 1000.0,
		WalkingMinutes: int(length/WalkingPaceMetersPerMinute + 0.5),
		Start:          &start,
		End:            &end,
	}
}
