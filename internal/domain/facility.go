package domain

// FacilityKind - вид объекта экстренной инфраструктуры
type FacilityKind string

const (
	FacilityHospital FacilityKind = "hospital"
	FacilityPolice   FacilityKind = "police"
)

// Facility - именованный точечный объект (больница, участок полиции)
type Facility struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Kind      FacilityKind `json:"kind"`
	Point     Point        `json:"point"`
	Phone     string       `json:"phone,omitempty"`
	Emergency bool         `json:"emergency,omitempty"`
}

// FacilityWithDistance - объект с расстоянием до маршрута
type FacilityWithDistance struct {
	Facility Facility `json:"facility"`
	Distance float64  `json:"distance"`
}
