package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain/sales"
	"github.com/jhoicas/orders-api/pkg/logger"
)

// DashboardService casos de uso del dashboard que expone la API.
// Lo implementa *analytics.DashboardUseCase.
type DashboardService interface {
	DailySales(ctx context.Context, date time.Time) (*dto.DailySalesDTO, error)
	WeeklySales(ctx context.Context, startDate time.Time) (*dto.WeeklySalesDTO, error)
	MonthlySales(ctx context.Context, anyDate time.Time) (*dto.MonthlySalesDTO, error)
	TruckDaySales(ctx context.Context, truckID int64, date time.Time) (*dto.TruckDaySalesDTO, error)
	Statistics(ctx context.Context) dto.DashboardSnapshotDTO
	DailySalesPDF(ctx context.Context, date time.Time) ([]byte, string, error)
	StatisticsPDF(ctx context.Context) ([]byte, string, error)
}

// DashboardHandler maneja los endpoints del Dashboard de ventas por móvil.
type DashboardHandler struct {
	uc     DashboardService
	errors errorResponder
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, errors: errorResponder{log: log.Component("http.dashboard")}}
}

// DailySales ventas del día agrupadas por móvil.
// GET /api/dashboard/truck-sales/daily?date=YYYY-MM-DD
//
// truckSales usa la llave "null" para los pedidos sin móvil asignado.
func (h *DashboardHandler) DailySales(c *fiber.Ctx) error {
	var q dto.DateQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	date, _ := sales.ParseDay(q.Date)

	out, err := h.uc.DailySales(c.UserContext(), date)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// DailySalesPDF mismo contenido que DailySales como PDF adjunto.
// GET /api/dashboard/truck-sales/daily/pdf?date=YYYY-MM-DD
func (h *DashboardHandler) DailySalesPDF(c *fiber.Ctx) error {
	var q dto.DateQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	date, _ := sales.ParseDay(q.Date)

	pdf, filename, err := h.uc.DailySalesPDF(c.UserContext(), date)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return sendPDF(c, pdf, filename)
}

// WeeklySales siete días desde startDate, incluidos los días sin pedidos.
// GET /api/dashboard/truck-sales/weekly?startDate=YYYY-MM-DD
func (h *DashboardHandler) WeeklySales(c *fiber.Ctx) error {
	var q dto.WeekQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	start, _ := sales.ParseDay(q.StartDate)

	out, err := h.uc.WeeklySales(c.UserContext(), start)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// MonthlySales mes calendario que contiene date, un bucket por día.
// GET /api/dashboard/truck-sales/monthly?date=YYYY-MM-DD
func (h *DashboardHandler) MonthlySales(c *fiber.Ctx) error {
	var q dto.DateQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	date, _ := sales.ParseDay(q.Date)

	out, err := h.uc.MonthlySales(c.UserContext(), date)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// TruckDaySales pedidos de un móvil en el día y total del día.
// GET /api/dashboard/truck-sales/truck/:truckId?date=YYYY-MM-DD
func (h *DashboardHandler) TruckDaySales(c *fiber.Ctx) error {
	truckID, err := strconv.ParseInt(c.Params("truckId"), 10, 64)
	if err != nil || truckID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_ID", Message: "truckId debe ser un entero positivo",
		})
	}
	var q dto.DateQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	date, _ := sales.ParseDay(q.Date)

	out, err := h.uc.TruckDaySales(c.UserContext(), truckID, date)
	if err != nil {
		return h.errors.respond(c, err)
	}
	return c.JSON(out)
}

// Statistics instantánea del dashboard. Siempre responde 200: ante fallas
// internas la instantánea viene en cero.
// GET /api/dashboard/statistics
func (h *DashboardHandler) Statistics(c *fiber.Ctx) error {
	return c.JSON(h.uc.Statistics(c.UserContext()))
}

// StatisticsPDF instantánea del dashboard como PDF adjunto.
// GET /api/dashboard/statistics/pdf
func (h *DashboardHandler) StatisticsPDF(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.StatisticsPDF(c.UserContext())
	if err != nil {
		return h.errors.respond(c, err)
	}
	return sendPDF(c, pdf, filename)
}
