// Package report arma el reporte de entregas por móvil y período, tanto en su
// forma estructurada (JSON) como en documento (PDF).
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/application/ports"
	"github.com/jhoicas/orders-api/internal/domain"
	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/repository"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

// DeliveryReportFilename nombre del adjunto PDF del reporte de entregas.
const DeliveryReportFilename = "truck-delivery-report.pdf"

// DeliveryReportUseCase genera el reporte de entregas de un móvil.
// Es un pipeline sin estado sobre los pedidos leídos; no reintenta ni persiste nada.
type DeliveryReportUseCase struct {
	orders   repository.OrderQueryRepository
	trucks   repository.TruckRepository
	renderer ports.DocumentRenderer
	titles   ports.DocumentTitles
}

// NewDeliveryReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDeliveryReportUseCase(
	orders repository.OrderQueryRepository,
	trucks repository.TruckRepository,
	renderer ports.DocumentRenderer,
	titles ports.DocumentTitles,
) *DeliveryReportUseCase {
	return &DeliveryReportUseCase{
		orders:   orders,
		trucks:   trucks,
		renderer: renderer,
		titles:   titles,
	}
}

// BuildReport arma el reporte del móvil para el rango cerrado [startDate, endDate].
//
// Retorna:
//   - domain.ErrNotFound  si el móvil no existe (no se consultan pedidos).
//   - el error de la fachada de pedidos tal cual si la lectura falla.
func (uc *DeliveryReportUseCase) BuildReport(
	ctx context.Context,
	truckID int64,
	startDate, endDate time.Time,
) (*dto.DeliveryReportDTO, error) {
	// ── 1. Móvil ──────────────────────────────────────────────────────────────
	truck, err := uc.trucks.FindByID(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("report: obtener móvil: %w", err)
	}
	if truck == nil {
		return nil, fmt.Errorf("%w: móvil %d", domain.ErrNotFound, truckID)
	}

	// ── 2. Pedidos del rango (cerrado, a diferencia de las ventanas del dashboard)
	rng := sales.DateRange{Start: sales.Day(startDate), End: sales.Day(endDate)}
	orders, err := uc.orders.FindByTruckAndDateRange(ctx, truckID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("report: pedidos del móvil: %w", err)
	}

	// ── 3. Filas y totales ────────────────────────────────────────────────────
	return buildDeliveryReport(*truck, rng, orders), nil
}

// ReportPDF genera el PDF del reporte de entregas.
func (uc *DeliveryReportUseCase) ReportPDF(
	ctx context.Context,
	truckID int64,
	startDate, endDate time.Time,
) (pdfBytes []byte, filename string, err error) {
	report, err := uc.BuildReport(ctx, truckID, startDate, endDate)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf(uc.titles.DeliveryReport, report.Truck.Name)
	pdfBytes, err = uc.renderer.RenderDeliveryReport(ctx, report, title)
	if err != nil {
		return nil, "", fmt.Errorf("report: generación fallida: %w", err)
	}
	return pdfBytes, DeliveryReportFilename, nil
}

// buildDeliveryReport una fila por pedido en el orden recibido.
// Total de fila = subtotal de ítems + flete; el promedio también incluye el flete.
// No se redondea aquí: el redondeo a dos decimales ocurre al renderizar.
func buildDeliveryReport(truck entity.Truck, rng sales.DateRange, orders []entity.Order) *dto.DeliveryReportDTO {
	rows := make([]dto.ReportRowDTO, 0, len(orders))
	totalAmount := decimal.Zero
	totalItems := 0

	for _, o := range orders {
		qty := o.ItemsQuantity()
		fee := o.Fee()
		rowTotal := o.TotalPrice.Add(fee)

		rows = append(rows, dto.ReportRowDTO{
			OrderID:       o.ID,
			Date:          sales.Label(o.Date),
			Customer:      dto.NewCustomerDTO(o.Customer),
			Items:         dto.NewOrderItemDTOs(o.Items),
			ItemsQuantity: qty,
			ItemsSubtotal: o.TotalPrice,
			DeliveryFee:   fee,
			Total:         rowTotal,
		})
		totalAmount = totalAmount.Add(rowTotal)
		totalItems += qty
	}

	average := decimal.Zero
	if len(orders) > 0 {
		average = totalAmount.Div(decimal.NewFromInt(int64(len(orders))))
	}

	return &dto.DeliveryReportDTO{
		Truck: dto.TruckDTO{ID: truck.ID, Name: truck.Name},
		Period: dto.PeriodDTO{
			StartDate: sales.Label(rng.Start),
			EndDate:   sales.Label(rng.End),
		},
		Rows: rows,
		Summary: dto.ReportSummaryDTO{
			TotalAmount:        totalAmount,
			OrderCount:         len(orders),
			TotalItemsQuantity: totalItems,
			AverageOrderValue:  average,
		},
	}
}
