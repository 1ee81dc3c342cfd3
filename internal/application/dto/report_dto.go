package dto

import "github.com/shopspring/decimal"

// DeliveryReportQuery parámetros de los reportes de entrega por móvil.
// El rango es cerrado: incluye startDate y endDate.
type DeliveryReportQuery struct {
	TruckID   int64  `query:"truckId" validate:"required,gt=0"`
	StartDate string `query:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"required,datetime=2006-01-02"`
}

// TruckDTO identidad del móvil.
type TruckDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ReportRowDTO una fila por pedido (no por ítem). Se publica bajo "orders" con
// el flete en "flete", igual que el listado de pedidos.
// Total = ItemsSubtotal + DeliveryFee.
type ReportRowDTO struct {
	OrderID       int64           `json:"id"`
	Date          string          `json:"date"`
	Customer      CustomerDTO     `json:"customer"`
	Items         []OrderItemDTO  `json:"items"`
	ItemsQuantity int             `json:"itemsQuantity"`
	ItemsSubtotal decimal.Decimal `json:"itemsSubtotal"`
	DeliveryFee   decimal.Decimal `json:"flete"`
	Total         decimal.Decimal `json:"total"`
}

// ReportSummaryDTO totales del reporte. Los montos incluyen el flete.
type ReportSummaryDTO struct {
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	OrderCount         int             `json:"orderCount"`
	TotalItemsQuantity int             `json:"totalItemsQuantity"`
	AverageOrderValue  decimal.Decimal `json:"averageOrderValue"`
}

// DeliveryReportDTO reporte de entregas de un móvil en un período.
type DeliveryReportDTO struct {
	Truck   TruckDTO         `json:"truck"`
	Period  PeriodDTO        `json:"period"`
	Rows    []ReportRowDTO   `json:"orders"`
	Summary ReportSummaryDTO `json:"summary"`
}
