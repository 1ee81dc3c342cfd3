package ports

import (
	"context"

	"github.com/jhoicas/orders-api/internal/application/dto"
)

// DocumentRenderer define el puerto de salida que convierte los datos estructurados
// de un reporte en un documento paginado (PDF). Es una caja negra: títulos,
// encabezados de columnas e idioma de las etiquetas son configuración del adaptador.
type DocumentRenderer interface {
	// RenderDeliveryReport serializa el reporte de entregas de un móvil.
	// Si el reporte no tiene pedidos, la línea de valor promedio se omite.
	RenderDeliveryReport(ctx context.Context, report *dto.DeliveryReportDTO, title string) ([]byte, error)

	// RenderDashboardSnapshot serializa las estadísticas del dashboard.
	RenderDashboardSnapshot(ctx context.Context, snapshot *dto.DashboardSnapshotDTO, title string) ([]byte, error)

	// RenderDailySales serializa las ventas del día desglosadas por móvil.
	RenderDailySales(ctx context.Context, daily *dto.DailySalesDTO, title string) ([]byte, error)
}

// DocumentTitles plantillas (fmt) de los títulos de página. El adaptador de PDF
// las provee según el idioma configurado.
type DocumentTitles struct {
	DeliveryReport string // %s = nombre del móvil
	DailySales     string // %s = fecha YYYY-MM-DD
	Statistics     string // %s = fecha YYYY-MM-DD
}
