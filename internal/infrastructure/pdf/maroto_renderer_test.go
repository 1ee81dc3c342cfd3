package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

func sampleReport(rows int) *dto.DeliveryReportDTO {
	r := &dto.DeliveryReportDTO{
		Truck:  dto.TruckDTO{ID: 1, Name: "T1"},
		Period: dto.PeriodDTO{StartDate: "2024-01-01", EndDate: "2024-01-10"},
		Rows:   []dto.ReportRowDTO{},
		Summary: dto.ReportSummaryDTO{
			TotalAmount:       decimal.Zero,
			AverageOrderValue: decimal.Zero,
		},
	}
	for i := 0; i < rows; i++ {
		r.Rows = append(r.Rows, dto.ReportRowDTO{
			OrderID:       int64(i + 1),
			Date:          "2024-01-05",
			Customer:      dto.CustomerDTO{Name: "Cliente", Address: "Calle 10 # 5-20"},
			ItemsQuantity: 3,
			ItemsSubtotal: decimal.NewFromInt(100),
			DeliveryFee:   decimal.NewFromInt(10),
			Total:         decimal.NewFromInt(110),
		})
	}
	if rows > 0 {
		r.Summary = dto.ReportSummaryDTO{
			TotalAmount:        decimal.NewFromInt(int64(110 * rows)),
			OrderCount:         rows,
			TotalItemsQuantity: 3 * rows,
			AverageOrderValue:  decimal.NewFromInt(110),
		}
	}
	return r
}

func TestRenderDeliveryReport(t *testing.T) {
	r := NewMarotoRenderer(language.Spanish, "Orders")

	for _, n := range []int{0, 2, 80} {
		pdf, err := r.RenderDeliveryReport(context.Background(), sampleReport(n), "Reporte de Entregas del Móvil: T1")
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "filas=%d", n)
	}
}

func TestRenderDailySales(t *testing.T) {
	r := NewMarotoRenderer(language.English, "Orders")
	daily := &dto.DailySalesDTO{
		Date: "2024-01-05",
		TruckSales: map[sales.TruckKey]sales.Bucket{
			{ID: 2, Assigned: true}: {TotalSales: decimal.NewFromInt(50), OrderCount: 1},
			sales.Unassigned:        {TotalSales: decimal.NewFromInt(20), OrderCount: 1},
		},
		TotalSales:  decimal.NewFromInt(70),
		TotalOrders: 2,
	}

	pdf, err := r.RenderDailySales(context.Background(), daily, "Daily Truck Sales Report - 2024-01-05")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderDashboardSnapshot(t *testing.T) {
	r := NewMarotoRenderer(language.Spanish, "Orders")
	zero := dto.ZeroSnapshot()

	pdf, err := r.RenderDashboardSnapshot(context.Background(), &zero, "Estadísticas del Dashboard - 2024-03-15")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestMoney_DosDecimales(t *testing.T) {
	assert.Equal(t, "$160.00", money(decimal.RequireFromString("160")))
	assert.Equal(t, "$33.34", money(decimal.RequireFromString("33.335")))
	assert.Equal(t, "$0.00", money(decimal.Zero))
}

func TestSortedTruckKeys_SinMovilAlFinal(t *testing.T) {
	keys := sortedTruckKeys(map[sales.TruckKey]sales.Bucket{
		sales.Unassigned:        {},
		{ID: 9, Assigned: true}: {},
		{ID: 2, Assigned: true}: {},
	})

	require.Len(t, keys, 3)
	assert.Equal(t, int64(2), keys[0].ID)
	assert.Equal(t, int64(9), keys[1].ID)
	assert.Equal(t, sales.Unassigned, keys[2])
}

func TestLabelsFor(t *testing.T) {
	assert.Equal(t, "Truck Delivery Report: %s", labelsFor(language.MustParse("en-GB")).titles.DeliveryReport)
	assert.Equal(t, "Reporte de Entregas del Móvil: %s", labelsFor(language.Spanish).titles.DeliveryReport)
	assert.Equal(t, "Reporte de Entregas del Móvil: %s", labelsFor(language.French).titles.DeliveryReport)
	assert.Equal(t, english.titles, NewMarotoRenderer(language.English, "").Titles())
}
