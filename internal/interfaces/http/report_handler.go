package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain/sales"
	"github.com/jhoicas/orders-api/pkg/logger"
)

// ReportService reporte de entregas por móvil. Lo implementa *report.DeliveryReportUseCase.
type ReportService interface {
	BuildReport(ctx context.Context, truckID int64, startDate, endDate time.Time) (*dto.DeliveryReportDTO, error)
	ReportPDF(ctx context.Context, truckID int64, startDate, endDate time.Time) ([]byte, string, error)
}

// ReportHandler endpoints del reporte de entregas.
type ReportHandler struct {
	uc     ReportService
	errors errorResponder
}

// NewReportHandler construye el handler.
func NewReportHandler(uc ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, errors: errorResponder{log: log.Component("http.report")}}
}

// DeliveryReport reporte estructurado (JSON).
// GET /api/dashboard/truck-delivery-report?truckId=&startDate=&endDate=
func (h *ReportHandler) DeliveryReport(c *fiber.Ctx) error {
	q, start, end, ok, err := h.bind(c)
	if !ok {
		return err
	}
	out, err := h.uc.BuildReport(c.UserContext(), q.TruckID, start, end)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// DeliveryReportPDF mismo reporte como PDF adjunto (truck-delivery-report.pdf).
// GET /api/reports/truck-delivery?truckId=&startDate=&endDate=
func (h *ReportHandler) DeliveryReportPDF(c *fiber.Ctx) error {
	q, start, end, ok, err := h.bind(c)
	if !ok {
		return err
	}
	pdf, filename, err := h.uc.ReportPDF(c.UserContext(), q.TruckID, start, end)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return sendPDF(c, pdf, filename)
}

// bind valida los parámetros y que el rango no esté invertido.
func (h *ReportHandler) bind(c *fiber.Ctx) (q dto.DeliveryReportQuery, start, end time.Time, ok bool, err error) {
	if ok, err := bindQuery(c, &q); !ok {
		return q, start, end, false, err
	}
	start, _ = sales.ParseDay(q.StartDate)
	end, _ = sales.ParseDay(q.EndDate)
	if start.After(end) {
		return q, start, end, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_RANGE", Message: "startDate no puede ser posterior a endDate",
		})
	}
	return q, start, end, true, nil
}
