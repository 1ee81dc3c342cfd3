package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain"
	"github.com/jhoicas/orders-api/internal/domain/sales"
	apphttp "github.com/jhoicas/orders-api/internal/interfaces/http"
	"github.com/jhoicas/orders-api/pkg/logger"
)

func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeDashboard struct {
	gotDate    time.Time
	gotTruckID int64
	err        error
	snapshot   dto.DashboardSnapshotDTO
}

func (f *fakeDashboard) DailySales(_ context.Context, date time.Time) (*dto.DailySalesDTO, error) {
	f.gotDate = date
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DailySalesDTO{
		Date: sales.Label(date),
		TruckSales: map[sales.TruckKey]sales.Bucket{
			{ID: 1, Assigned: true}: {TotalSales: decimal.NewFromInt(100), OrderCount: 1},
			sales.Unassigned:        {TotalSales: decimal.NewFromInt(50), OrderCount: 1},
		},
		TotalSales:  decimal.NewFromInt(150),
		TotalOrders: 2,
	}, nil
}

func (f *fakeDashboard) WeeklySales(_ context.Context, start time.Time) (*dto.WeeklySalesDTO, error) {
	f.gotDate = start
	return &dto.WeeklySalesDTO{StartDate: sales.Label(start), DailySales: []sales.DailyBucket{}, TotalSales: decimal.Zero}, f.err
}

func (f *fakeDashboard) MonthlySales(_ context.Context, date time.Time) (*dto.MonthlySalesDTO, error) {
	f.gotDate = date
	return &dto.MonthlySalesDTO{Month: int(date.Month()), Year: date.Year(), DailySales: []sales.DailyBucket{}, TotalSales: decimal.Zero}, f.err
}

func (f *fakeDashboard) TruckDaySales(_ context.Context, truckID int64, date time.Time) (*dto.TruckDaySalesDTO, error) {
	f.gotTruckID, f.gotDate = truckID, date
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TruckDaySalesDTO{TruckID: truckID, Date: sales.Label(date), Orders: []dto.OrderDTO{}, DayTotalPrice: decimal.Zero}, nil
}

func (f *fakeDashboard) Statistics(context.Context) dto.DashboardSnapshotDTO { return f.snapshot }

func (f *fakeDashboard) DailySalesPDF(_ context.Context, date time.Time) ([]byte, string, error) {
	f.gotDate = date
	return []byte("%PDF-daily"), "daily-truck-sales-" + sales.Label(date) + ".pdf", f.err
}

func (f *fakeDashboard) StatisticsPDF(context.Context) ([]byte, string, error) {
	return []byte("%PDF-stats"), "dashboard-statistics-2024-02-10.pdf", f.err
}

type fakeReports struct {
	calls      int
	gotTruckID int64
	gotStart   time.Time
	gotEnd     time.Time
	err        error
}

func (f *fakeReports) BuildReport(_ context.Context, truckID int64, start, end time.Time) (*dto.DeliveryReportDTO, error) {
	f.calls++
	f.gotTruckID, f.gotStart, f.gotEnd = truckID, start, end
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DeliveryReportDTO{
		Truck:  dto.TruckDTO{ID: truckID, Name: "T1"},
		Period: dto.PeriodDTO{StartDate: sales.Label(start), EndDate: sales.Label(end)},
		Rows:   []dto.ReportRowDTO{},
		Summary: dto.ReportSummaryDTO{
			TotalAmount: decimal.Zero, AverageOrderValue: decimal.Zero,
		},
	}, nil
}

func (f *fakeReports) ReportPDF(_ context.Context, truckID int64, start, end time.Time) ([]byte, string, error) {
	f.calls++
	f.gotTruckID, f.gotStart, f.gotEnd = truckID, start, end
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-report"), "truck-delivery-report.pdf", nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildAPI(d *fakeDashboard, r *fakeReports) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Dashboard: d,
		Reports:   r,
		Logger:    logger.New(logger.Config{Output: io.Discard}),
		JWTSecret: testJWTSecret,
		JWTIssuer: testIssuer,
	})
	return app
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func day(s string) time.Time {
	d, _ := sales.ParseDay(s)
	return d
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRouter_HealthSinToken(t *testing.T) {
	resp := get(t, buildAPI(&fakeDashboard{}, &fakeReports{}), "/health", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_APIRequiereToken(t *testing.T) {
	app := buildAPI(&fakeDashboard{}, &fakeReports{})
	for _, path := range []string{
		"/api/dashboard/truck-sales/daily?date=2024-02-10",
		"/api/dashboard/statistics",
		"/api/reports/truck-delivery?truckId=1&startDate=2024-02-01&endDate=2024-02-03",
	} {
		resp := get(t, app, path, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestDailySales_AgrupaConLlaveNull(t *testing.T) {
	d := &fakeDashboard{}
	resp := get(t, buildAPI(d, &fakeReports{}), "/api/dashboard/truck-sales/daily?date=2024-02-10", bearer(t, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, day("2024-02-10"), d.gotDate)
	assert.Equal(t, "2024-02-10", body["date"])
	assert.Equal(t, 150.0, body["totalSales"])

	truckSales := body["truckSales"].(map[string]interface{})
	assert.Contains(t, truckSales, "1")
	assert.Contains(t, truckSales, "null")
}

func TestDailySales_ValidacionDeFecha(t *testing.T) {
	app := buildAPI(&fakeDashboard{}, &fakeReports{})
	for _, path := range []string{
		"/api/dashboard/truck-sales/daily",
		"/api/dashboard/truck-sales/daily?date=10-02-2024",
		"/api/dashboard/truck-sales/daily?date=2024-02-30",
	} {
		resp := get(t, app, path, bearer(t, ""))
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, path)

		var body dto.ErrorResponse
		decode(t, resp, &body)
		assert.Equal(t, "VALIDATION_ERROR", body.Code)
		require.Len(t, body.Fields, 1)
		assert.Equal(t, "date", body.Fields[0].Field)
	}
}

func TestDailySales_ErrorDeDatosEs500Generico(t *testing.T) {
	d := &fakeDashboard{err: fmt.Errorf("%w: orders.find_by_date: conexión rechazada", domain.ErrDataAccess)}
	resp := get(t, buildAPI(d, &fakeReports{}), "/api/dashboard/truck-sales/daily?date=2024-02-10", bearer(t, ""))
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "DATA_ACCESS", body.Code)
	assert.NotContains(t, body.Message, "conexión rechazada")
}

func TestWeeklyYMonthly_PasanLaFecha(t *testing.T) {
	d := &fakeDashboard{}
	app := buildAPI(d, &fakeReports{})

	resp := get(t, app, "/api/dashboard/truck-sales/weekly?startDate=2024-01-31", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, day("2024-01-31"), d.gotDate)

	resp = get(t, app, "/api/dashboard/truck-sales/monthly?date=2024-02-15", bearer(t, ""))
	var body dto.MonthlySalesDTO
	decode(t, resp, &body)
	assert.Equal(t, 2, body.Month)
	assert.Equal(t, 2024, body.Year)

	resp = get(t, app, "/api/dashboard/truck-sales/weekly?date=2024-01-31", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "weekly exige startDate")
}

func TestTruckDaySales(t *testing.T) {
	d := &fakeDashboard{}
	app := buildAPI(d, &fakeReports{})

	resp := get(t, app, "/api/dashboard/truck-sales/truck/7?date=2024-02-10", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(7), d.gotTruckID)

	resp = get(t, app, "/api/dashboard/truck-sales/truck/abc?date=2024-02-10", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	d.err = fmt.Errorf("móvil 99: %w", domain.ErrNotFound)
	resp = get(t, app, "/api/dashboard/truck-sales/truck/99?date=2024-02-10", bearer(t, ""))
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestStatistics_Siempre200(t *testing.T) {
	d := &fakeDashboard{snapshot: dto.ZeroSnapshot()}
	resp := get(t, buildAPI(d, &fakeReports{}), "/api/dashboard/statistics", bearer(t, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"today": {"totalSales": 0, "orderCount": 0},
		"month": {"totalSales": 0, "orderCount": 0, "dailySales": []},
		"pendingOrders": 0,
		"totalTrucks": 0,
		"averageOrderValue": 0
	}`, string(raw))
}

func TestPDFs_AdjuntoConNombre(t *testing.T) {
	app := buildAPI(&fakeDashboard{}, &fakeReports{})
	tests := []struct {
		path     string
		filename string
	}{
		{"/api/dashboard/truck-sales/daily/pdf?date=2024-02-10", "daily-truck-sales-2024-02-10.pdf"},
		{"/api/dashboard/statistics/pdf", "dashboard-statistics-2024-02-10.pdf"},
		{"/api/reports/truck-delivery?truckId=1&startDate=2024-02-01&endDate=2024-02-03", "truck-delivery-report.pdf"},
	}
	for _, tt := range tests {
		resp := get(t, app, tt.path, bearer(t, ""))
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.path)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), tt.filename)
		body, _ := io.ReadAll(resp.Body)
		assert.True(t, len(body) > 4 && string(body[:4]) == "%PDF")
		resp.Body.Close()
	}
}

func TestDeliveryReport_JSON(t *testing.T) {
	r := &fakeReports{}
	resp := get(t, buildAPI(&fakeDashboard{}, r),
		"/api/dashboard/truck-delivery-report?truckId=1&startDate=2024-02-01&endDate=2024-02-03", bearer(t, ""))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DeliveryReportDTO
	decode(t, resp, &body)
	assert.Equal(t, int64(1), r.gotTruckID)
	assert.Equal(t, day("2024-02-01"), r.gotStart)
	assert.Equal(t, day("2024-02-03"), r.gotEnd)
	assert.Equal(t, "T1", body.Truck.Name)
	assert.NotNil(t, body.Rows)
}

func TestDeliveryReport_MismoDiaEsValido(t *testing.T) {
	r := &fakeReports{}
	resp := get(t, buildAPI(&fakeDashboard{}, r),
		"/api/dashboard/truck-delivery-report?truckId=1&startDate=2024-02-01&endDate=2024-02-01", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDeliveryReport_ParametrosInvalidos(t *testing.T) {
	tests := []struct {
		name  string
		query string
		code  string
	}{
		{"sin truckId", "startDate=2024-02-01&endDate=2024-02-03", "VALIDATION_ERROR"},
		{"truckId cero", "truckId=0&startDate=2024-02-01&endDate=2024-02-03", "VALIDATION_ERROR"},
		{"truckId no numérico", "truckId=abc&startDate=2024-02-01&endDate=2024-02-03", "INVALID_QUERY"},
		{"sin endDate", "truckId=1&startDate=2024-02-01", "VALIDATION_ERROR"},
		{"rango invertido", "truckId=1&startDate=2024-02-05&endDate=2024-02-01", "INVALID_RANGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &fakeReports{}
			resp := get(t, buildAPI(&fakeDashboard{}, r), "/api/dashboard/truck-delivery-report?"+tt.query, bearer(t, ""))
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body dto.ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, tt.code, body.Code)
			assert.Zero(t, r.calls, "no debe consultarse el caso de uso")
		})
	}
}

func TestDeliveryReport_MovilInexistente(t *testing.T) {
	r := &fakeReports{err: fmt.Errorf("móvil 42: %w", domain.ErrNotFound)}
	resp := get(t, buildAPI(&fakeDashboard{}, r),
		"/api/reports/truck-delivery?truckId=42&startDate=2024-02-01&endDate=2024-02-03", bearer(t, ""))
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeliveryReport_ErrorInesperado(t *testing.T) {
	r := &fakeReports{err: errors.New("boom")}
	resp := get(t, buildAPI(&fakeDashboard{}, r),
		"/api/reports/truck-delivery?truckId=1&startDate=2024-02-01&endDate=2024-02-03", bearer(t, ""))

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
}
