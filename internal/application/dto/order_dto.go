package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

// CustomerDTO datos del cliente tal como se muestran en reportes y listados.
type CustomerDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// OrderItemDTO línea de pedido: artículo, cantidad y precio unitario de catálogo.
type OrderItemDTO struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderDTO pedido en listados de lectura.
type OrderDTO struct {
	ID          int64           `json:"id"`
	Date        string          `json:"date"`
	Status      string          `json:"status"`
	Customer    CustomerDTO     `json:"customer"`
	Items       []OrderItemDTO  `json:"items"`
	DeliveryFee decimal.Decimal `json:"flete"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// NewCustomerDTO proyecta el cliente del pedido.
func NewCustomerDTO(c entity.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Address: c.Address, PhoneNumber: c.PhoneNumber}
}

// NewOrderItemDTOs proyecta las líneas en el orden original del pedido.
func NewOrderItemDTOs(items []entity.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemDTO{
			ID:       it.Item.ID,
			Name:     it.Item.Name,
			Quantity: it.Quantity,
			Price:    it.Item.Price,
		})
	}
	return out
}

// NewOrderDTO proyecta un pedido; el flete ausente se informa como 0.
func NewOrderDTO(o entity.Order) OrderDTO {
	return OrderDTO{
		ID:          o.ID,
		Date:        sales.Label(o.Date),
		Status:      string(o.Status),
		Customer:    NewCustomerDTO(o.Customer),
		Items:       NewOrderItemDTOs(o.Items),
		DeliveryFee: o.Fee(),
		TotalPrice:  o.TotalPrice,
	}
}
