package entity

import "github.com/shopspring/decimal"

// Item artículo del catálogo con su precio unitario.
type Item struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// OrderItem línea de un pedido: artículo y cantidad (siempre positiva).
type OrderItem struct {
	Item     Item
	Quantity int
}
