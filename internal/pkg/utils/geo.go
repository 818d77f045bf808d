package utils

import "math"

// Радиус Земли в метрах (совместим с эталонной haversine-функцией)
const earthRadiusMeters = 6371000.0

// HaversineDistance вычисляет расстояние между двумя точками в метрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// PointToSegmentDistance вычисляет минимальное расстояние в метрах от точки
// до отрезка маршрута. Используется равнопромежуточная проекция - на городских
// масштабах результат согласован с haversine.
func PointToSegmentDistance(lat, lon, lat1, lon1, lat2, lon2 float64) float64 {
	// Проекция в локальную плоскость (метры), широта средней точки как опорная
	refLat := (lat1 + lat2) / 2.0 * math.Pi / 180.0
	cosRef := math.Cos(refLat)

	px := lon * cosRef
	py := lat
	ax := lon1 * cosRef
	ay := lat1
	bx := lon2 * cosRef
	by := lat2

	dx := bx - ax
	dy := by - ay

	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		// Вырожденный отрезок - расстояние до точки
		return HaversineDistance(lat, lon, lat1, lon1)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	projLat := lat1 + t*(lat2-lat1)
	projLon := lon1 + t*(lon2-lon1)

	return HaversineDistance(lat, lon, projLat, projLon)
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateThreshold проверяет валидность порога расстояния (1 м - 5 км)
func ValidateThreshold(meters float64) bool {
	return meters >= 1 && meters <= 5000
}
