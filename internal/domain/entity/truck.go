package entity

// Truck representa un móvil de reparto.
type Truck struct {
	ID   int64
	Name string
}
