package domain

// QueryKind - выбранный классификатором обработчик запроса
type QueryKind string

const (
	QueryLGAStats    QueryKind = "lga_stats"
	QueryTimeSafety  QueryKind = "time_safety"
	QueryCrimeType   QueryKind = "crime_type"
	QueryStreetlight QueryKind = "streetlight"
	QueryRouteSafety QueryKind = "route_safety"
	QueryHospital    QueryKind = "hospital"
	QueryPolice      QueryKind = "police"
	QueryGeneral     QueryKind = "general"
)

// RequiresRoute сообщает, нужен ли обработчику построенный маршрут
func (k QueryKind) RequiresRoute() bool {
	switch k {
	case QueryLGAStats, QueryGeneral:
		return false
	default:
		return true
	}
}
