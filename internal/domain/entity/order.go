package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del ciclo de vida del pedido.
// El ciclo de vida lo administra el módulo de pedidos; aquí solo se lee.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

// Order pedido con cliente, móvil e ítems ya resueltos.
//
// Date es un día calendario (medianoche UTC). TotalPrice se persiste al crear el
// pedido (Σ precio × cantidad) y nunca se recalcula aquí. DeliveryFee (flete) y
// Truck son opcionales.
type Order struct {
	ID          int64
	Date        time.Time
	Status      OrderStatus
	DeliveryFee *decimal.Decimal
	TotalPrice  decimal.Decimal
	Customer    Customer
	Truck       *Truck
	Items       []OrderItem
}

// Fee devuelve el flete del pedido o cero si no fue cargado.
func (o Order) Fee() decimal.Decimal {
	if o.DeliveryFee == nil {
		return decimal.Zero
	}
	return *o.DeliveryFee
}

// ItemsQuantity suma las cantidades de todas las líneas del pedido.
func (o Order) ItemsQuantity() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}
