package pdf

import (
	"golang.org/x/text/language"

	"github.com/jhoicas/orders-api/internal/application/ports"
)

// labels textos fijos de los documentos en un idioma.
type labels struct {
	titles ports.DocumentTitles

	period     string // %s al %s
	date       string
	customer   string
	address    string
	items      string
	subtotal   string
	fee        string
	orderTotal string

	summary       string
	totalAmount   string
	totalOrders   string
	totalItems    string
	averageOrder  string
	truck         string
	unassigned    string
	orders        string
	totalSales    string
	today         string
	currentMonth  string
	pendingOrders string
	totalTrucks   string
	noData        string
}

var spanish = labels{
	titles: ports.DocumentTitles{
		DeliveryReport: "Reporte de Entregas del Móvil: %s",
		DailySales:     "Ventas Diarias por Móvil - %s",
		Statistics:     "Estadísticas del Dashboard - %s",
	},
	period:     "Período: %s al %s",
	date:       "Fecha",
	customer:   "Cliente",
	address:    "Dirección",
	items:      "Items (Cant)",
	subtotal:   "Subtotal Items",
	fee:        "Costo Envío",
	orderTotal: "Total Pedido",

	summary:       "RESUMEN",
	totalAmount:   "Monto Total (incl. Costo Envío)",
	totalOrders:   "Total Pedidos",
	totalItems:    "Total Items (Cantidad General)",
	averageOrder:  "Valor Promedio Pedido (incl. Costo Envío)",
	truck:         "Móvil",
	unassigned:    "Sin móvil asignado",
	orders:        "Pedidos",
	totalSales:    "Ventas Totales",
	today:         "Hoy",
	currentMonth:  "Mes en curso",
	pendingOrders: "Pedidos pendientes",
	totalTrucks:   "Total de móviles",
	noData:        "Sin pedidos en el período.",
}

var english = labels{
	titles: ports.DocumentTitles{
		DeliveryReport: "Truck Delivery Report: %s",
		DailySales:     "Daily Truck Sales Report - %s",
		Statistics:     "Dashboard Statistics - %s",
	},
	period:     "Period: %s to %s",
	date:       "Date",
	customer:   "Customer",
	address:    "Address",
	items:      "Items (Qty)",
	subtotal:   "Items Subtotal",
	fee:        "Delivery Fee",
	orderTotal: "Order Total",

	summary:       "SUMMARY",
	totalAmount:   "Total Amount (incl. Delivery Fee)",
	totalOrders:   "Total Orders",
	totalItems:    "Total Items (Overall Quantity)",
	averageOrder:  "Average Order Value (incl. Delivery Fee)",
	truck:         "Truck",
	unassigned:    "Unassigned",
	orders:        "Orders",
	totalSales:    "Total Sales",
	today:         "Today",
	currentMonth:  "Current month",
	pendingOrders: "Pending orders",
	totalTrucks:   "Total trucks",
	noData:        "No orders in this period.",
}

// labelsFor elige el juego de etiquetas por idioma base; todo lo que no sea
// inglés usa español.
func labelsFor(tag language.Tag) labels {
	base, _ := tag.Base()
	if en, _ := language.English.Base(); base == en {
		return english
	}
	return spanish
}
