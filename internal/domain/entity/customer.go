package entity

// Customer representa un cliente al que se le entregan pedidos.
// PhoneNumber es la llave externa de búsqueda ("pedidos por cliente").
type Customer struct {
	ID          int64
	Name        string
	Address     string
	PhoneNumber string
}
