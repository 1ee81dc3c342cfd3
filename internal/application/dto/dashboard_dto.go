package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/domain/sales"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// DateQuery parámetro ?date=YYYY-MM-DD (ventanas diaria y mensual, pedidos del móvil).
type DateQuery struct {
	Date string `query:"date" validate:"required,datetime=2006-01-02"`
}

// WeekQuery parámetro ?startDate=YYYY-MM-DD de la ventana semanal.
type WeekQuery struct {
	StartDate string `query:"startDate" validate:"required,datetime=2006-01-02"`
}

// ── Ventanas de ventas ────────────────────────────────────────────────────────

// DailySalesDTO respuesta de GET /api/dashboard/truck-sales/daily.
// truckSales usa "null" como llave de los pedidos sin móvil asignado.
type DailySalesDTO struct {
	Date        string                          `json:"date"`
	TruckSales  map[sales.TruckKey]sales.Bucket `json:"truckSales"`
	TotalSales  decimal.Decimal                 `json:"totalSales"`
	TotalOrders int                             `json:"totalOrders"`
}

// WeeklySalesDTO respuesta de GET /api/dashboard/truck-sales/weekly.
// DailySales tiene siempre 7 entradas, una por día desde StartDate.
type WeeklySalesDTO struct {
	StartDate   string              `json:"startDate"`
	EndDate     string              `json:"endDate"`
	DailySales  []sales.DailyBucket `json:"dailySales"`
	TotalSales  decimal.Decimal     `json:"totalSales"`
	TotalOrders int                 `json:"totalOrders"`
}

// MonthlySalesDTO respuesta de GET /api/dashboard/truck-sales/monthly.
// DailySales cubre cada día calendario del mes.
type MonthlySalesDTO struct {
	Month       int                 `json:"month"`
	Year        int                 `json:"year"`
	DailySales  []sales.DailyBucket `json:"dailySales"`
	TotalSales  decimal.Decimal     `json:"totalSales"`
	TotalOrders int                 `json:"totalOrders"`
}

// TruckDaySalesDTO pedidos de un móvil en un día, con el total del día.
type TruckDaySalesDTO struct {
	TruckID       int64           `json:"truckId"`
	Date          string          `json:"date"`
	Orders        []OrderDTO      `json:"orders"`
	DayTotalPrice decimal.Decimal `json:"dayTotalPrice"`
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

// MonthSummaryDTO bucket del mes en curso con su desglose por fecha de pedido.
// A diferencia de MonthlySalesDTO, solo aparecen las fechas con pedidos.
type MonthSummaryDTO struct {
	sales.Bucket
	DailySales []sales.DailyBucket `json:"dailySales"`
}

// DashboardSnapshotDTO respuesta de GET /api/dashboard/statistics.
type DashboardSnapshotDTO struct {
	Today             sales.Bucket    `json:"today"`
	Month             MonthSummaryDTO `json:"month"`
	PendingOrders     int             `json:"pendingOrders"`
	TotalTrucks       int             `json:"totalTrucks"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// ZeroSnapshot instantánea completa en cero; es la respuesta cuando falla cualquier lectura.
func ZeroSnapshot() DashboardSnapshotDTO {
	return DashboardSnapshotDTO{
		Today: sales.Bucket{TotalSales: decimal.Zero},
		Month: MonthSummaryDTO{
			Bucket:     sales.Bucket{TotalSales: decimal.Zero},
			DailySales: []sales.DailyBucket{},
		},
		AverageOrderValue: decimal.Zero,
	}
}
