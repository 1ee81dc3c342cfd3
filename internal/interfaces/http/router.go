package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/orders-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Dashboard DashboardService
	Reports   ReportService
	Logger    *logger.Logger
	JWTSecret string
	JWTIssuer string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Todo /api requiere Bearer Token.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard, deps.Logger)
	reportHandler := NewReportHandler(deps.Reports, deps.Logger)

	dashboard := api.Group("/dashboard")
	truckSales := dashboard.Group("/truck-sales")
	truckSales.Get("/daily", dashboardHandler.DailySales)
	truckSales.Get("/daily/pdf", dashboardHandler.DailySalesPDF)
	truckSales.Get("/weekly", dashboardHandler.WeeklySales)
	truckSales.Get("/monthly", dashboardHandler.MonthlySales)
	truckSales.Get("/truck/:truckId", dashboardHandler.TruckDaySales)
	dashboard.Get("/statistics", dashboardHandler.Statistics)
	dashboard.Get("/statistics/pdf", dashboardHandler.StatisticsPDF)
	dashboard.Get("/truck-delivery-report", reportHandler.DeliveryReport)

	// Reportes (documentos)
	reports := api.Group("/reports")
	reports.Get("/truck-delivery", reportHandler.DeliveryReportPDF)
}
