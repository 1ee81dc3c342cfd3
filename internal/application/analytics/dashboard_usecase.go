// Package analytics contiene los casos de uso del Dashboard de ventas por móvil:
// ventanas diaria, semanal y mensual, y la instantánea de estadísticas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/application/ports"
	"github.com/jhoicas/orders-api/internal/domain"
	"github.com/jhoicas/orders-api/internal/domain/entity"
	"github.com/jhoicas/orders-api/internal/domain/repository"
	"github.com/jhoicas/orders-api/internal/domain/sales"
)

const statisticsOperation = "dashboard.Statistics"

// DashboardUseCase arma los resúmenes de ventas del dashboard.
//
// Fuente de datos: OrderQueryRepository y TruckRepository (consultas read-only).
// Nunca modifica pedidos ni móviles. El caché es opcional (nil = sin caché).
type DashboardUseCase struct {
	orders   repository.OrderQueryRepository
	trucks   repository.TruckRepository
	cache    ports.SalesCache
	sink     ports.DiagnosticSink
	renderer ports.DocumentRenderer
	titles   ports.DocumentTitles
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	orders repository.OrderQueryRepository,
	trucks repository.TruckRepository,
	cache ports.SalesCache,
	sink ports.DiagnosticSink,
	renderer ports.DocumentRenderer,
	titles ports.DocumentTitles,
) *DashboardUseCase {
	if sink == nil {
		sink = ports.NopSink{}
	}
	return &DashboardUseCase{
		orders:   orders,
		trucks:   trucks,
		cache:    cache,
		sink:     sink,
		renderer: renderer,
		titles:   titles,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj usado para "hoy" y "mes en curso".
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// Today día calendario vigente según el reloj del caso de uso. El worker de
// precalentamiento lo usa para no desfasarse de la API.
func (uc *DashboardUseCase) Today() time.Time {
	return sales.Day(uc.now())
}

// ── Ventanas de ventas ────────────────────────────────────────────────────────

// DailySales ventas del día agrupadas por móvil (sin filtro de estado).
func (uc *DashboardUseCase) DailySales(ctx context.Context, date time.Time) (*dto.DailySalesDTO, error) {
	day := sales.Day(date)
	return fetchCached(ctx, uc, sales.DayPeriod(day), []string{"sales", "daily", sales.Label(day)}, func(ctx context.Context) (*dto.DailySalesDTO, error) {
		orders, err := uc.orders.FindByDate(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("dashboard: pedidos del día: %w", err)
		}
		total := sales.Aggregate(orders)
		return &dto.DailySalesDTO{
			Date:        sales.Label(day),
			TruckSales:  sales.GroupByTruck(orders),
			TotalSales:  total.TotalSales,
			TotalOrders: total.OrderCount,
		}, nil
	})
}

// WeeklySales siete días desde startDate; cada día aparece aunque no tenga pedidos.
func (uc *DashboardUseCase) WeeklySales(ctx context.Context, startDate time.Time) (*dto.WeeklySalesDTO, error) {
	period := sales.WeekPeriod(startDate)
	return fetchCached(ctx, uc, period, []string{"sales", "weekly", sales.Label(period.Start)}, func(ctx context.Context) (*dto.WeeklySalesDTO, error) {
		orders, err := uc.orders.FindByDateRange(ctx, period)
		if err != nil {
			return nil, fmt.Errorf("dashboard: pedidos de la semana: %w", err)
		}
		total := sales.Aggregate(orders)
		return &dto.WeeklySalesDTO{
			StartDate:   sales.Label(period.Start),
			EndDate:     sales.Label(period.LastDay()),
			DailySales:  sales.AggregateByDay(orders, period.Days()),
			TotalSales:  total.TotalSales,
			TotalOrders: total.OrderCount,
		}, nil
	})
}

// MonthlySales mes calendario del día indicado (no una ventana móvil de 30 días),
// con un bucket por cada día del mes.
func (uc *DashboardUseCase) MonthlySales(ctx context.Context, anyDate time.Time) (*dto.MonthlySalesDTO, error) {
	period := sales.MonthPeriod(anyDate)
	return fetchCached(ctx, uc, period, []string{"sales", "monthly", period.Start.Format("2006-01")}, func(ctx context.Context) (*dto.MonthlySalesDTO, error) {
		orders, err := uc.orders.FindByDateRange(ctx, period)
		if err != nil {
			return nil, fmt.Errorf("dashboard: pedidos del mes: %w", err)
		}
		total := sales.Aggregate(orders)
		return &dto.MonthlySalesDTO{
			Month:       int(period.Start.Month()),
			Year:        period.Start.Year(),
			DailySales:  sales.AggregateByDay(orders, period.Days()),
			TotalSales:  total.TotalSales,
			TotalOrders: total.OrderCount,
		}, nil
	})
}

// TruckDaySales pedidos de un móvil en un día y el total vendido ese día.
// No se cachea: es un listado operativo que cambia con cada entrega.
func (uc *DashboardUseCase) TruckDaySales(ctx context.Context, truckID int64, date time.Time) (*dto.TruckDaySalesDTO, error) {
	truck, err := uc.trucks.FindByID(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: obtener móvil: %w", err)
	}
	if truck == nil {
		return nil, fmt.Errorf("%w: móvil %d", domain.ErrNotFound, truckID)
	}
	day := sales.Day(date)
	orders, err := uc.orders.FindByTruckAndDay(ctx, truckID, day)
	if err != nil {
		return nil, fmt.Errorf("dashboard: pedidos del móvil: %w", err)
	}
	list := make([]dto.OrderDTO, 0, len(orders))
	for _, o := range orders {
		list = append(list, dto.NewOrderDTO(o))
	}
	return &dto.TruckDaySalesDTO{
		TruckID:       truck.ID,
		Date:          sales.Label(day),
		Orders:        list,
		DayTotalPrice: sales.Aggregate(orders).TotalSales,
	}, nil
}

// ── Estadísticas ──────────────────────────────────────────────────────────────

// Statistics arma la instantánea del dashboard: hoy, mes en curso, pedidos
// pendientes y total de móviles.
//
// Nunca retorna error: ante cualquier falla (lectura, cálculo o panic) devuelve
// dto.ZeroSnapshot() y reporta la causa al DiagnosticSink. El dashboard siempre
// debe poder mostrarse.
func (uc *DashboardUseCase) Statistics(ctx context.Context) (snapshot dto.DashboardSnapshotDTO) {
	defer func() {
		if r := recover(); r != nil {
			uc.sink.Report(ctx, statisticsOperation, fmt.Errorf("panic: %v", r))
			snapshot = dto.ZeroSnapshot()
		}
	}()

	s, err := uc.buildStatistics(ctx)
	if err != nil {
		uc.sink.Report(ctx, statisticsOperation, err)
		return dto.ZeroSnapshot()
	}
	return *s
}

// buildStatistics lanza las cuatro lecturas en paralelo; la primera falla cancela el resto.
func (uc *DashboardUseCase) buildStatistics(ctx context.Context) (*dto.DashboardSnapshotDTO, error) {
	today := uc.Today()
	month := sales.MonthPeriod(today)

	var (
		todayOrders   []entity.Order
		monthOrders   []entity.Order
		pendingOrders []entity.Order
		totalTrucks   int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(guard(func() error {
		var err error
		if todayOrders, err = uc.orders.FindByDate(gctx, today); err != nil {
			return fmt.Errorf("dashboard: pedidos de hoy: %w", err)
		}
		return nil
	}))
	g.Go(guard(func() error {
		var err error
		if monthOrders, err = uc.orders.FindByDateRange(gctx, month); err != nil {
			return fmt.Errorf("dashboard: pedidos del mes: %w", err)
		}
		return nil
	}))
	g.Go(guard(func() error {
		var err error
		if pendingOrders, err = uc.orders.FindByStatus(gctx, entity.OrderStatusPending); err != nil {
			return fmt.Errorf("dashboard: pedidos pendientes: %w", err)
		}
		return nil
	}))
	g.Go(guard(func() error {
		var err error
		if totalTrucks, err = uc.trucks.Count(gctx); err != nil {
			return fmt.Errorf("dashboard: total de móviles: %w", err)
		}
		return nil
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthBucket := sales.Aggregate(monthOrders)
	return &dto.DashboardSnapshotDTO{
		Today: sales.Aggregate(todayOrders),
		Month: dto.MonthSummaryDTO{
			Bucket:     monthBucket,
			DailySales: sales.GroupByDate(monthOrders),
		},
		PendingOrders:     len(pendingOrders),
		TotalTrucks:       totalTrucks,
		AverageOrderValue: averageOf(monthBucket),
	}, nil
}

// guard convierte un panic de la goroutine en error; recover solo actúa en la
// goroutine que entra en pánico.
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return fn()
	}
}

// averageOf total / cantidad, o cero si no hay pedidos.
func averageOf(b sales.Bucket) decimal.Decimal {
	if b.OrderCount == 0 {
		return decimal.Zero
	}
	return b.TotalSales.Div(decimal.NewFromInt(int64(b.OrderCount)))
}

// ── Documentos ────────────────────────────────────────────────────────────────

// DailySalesPDF genera el PDF de ventas del día por móvil.
func (uc *DashboardUseCase) DailySalesPDF(ctx context.Context, date time.Time) (pdfBytes []byte, filename string, err error) {
	daily, err := uc.DailySales(ctx, date)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf(uc.titles.DailySales, daily.Date)
	pdfBytes, err = uc.renderer.RenderDailySales(ctx, daily, title)
	if err != nil {
		return nil, "", fmt.Errorf("dashboard: generar PDF diario: %w", err)
	}
	return pdfBytes, fmt.Sprintf("daily-truck-sales-%s.pdf", daily.Date), nil
}

// StatisticsPDF genera el PDF de la instantánea del dashboard.
// La instantánea nunca falla; solo el render puede fallar.
func (uc *DashboardUseCase) StatisticsPDF(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	snapshot := uc.Statistics(ctx)
	label := sales.Label(uc.Today())
	pdfBytes, err = uc.renderer.RenderDashboardSnapshot(ctx, &snapshot, fmt.Sprintf(uc.titles.Statistics, label))
	if err != nil {
		return nil, "", fmt.Errorf("dashboard: generar PDF de estadísticas: %w", err)
	}
	return pdfBytes, fmt.Sprintf("dashboard-statistics-%s.pdf", label), nil
}

// ── Caché ─────────────────────────────────────────────────────────────────────

// fetchCached resuelve una ventana desde el caché o con load. Una falla del caché
// no falla la consulta: se reporta y se responde con el valor calculado.
// Las ventanas que contienen hoy siempre se calculan: siguen recibiendo pedidos.
func fetchCached[T any](
	ctx context.Context,
	uc *DashboardUseCase,
	window sales.Period,
	keyParts []string,
	load func(context.Context) (*T, error),
) (*T, error) {
	if uc.cache == nil || window.Contains(uc.now()) {
		return load(ctx)
	}
	key, err := uc.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		uc.sink.Report(ctx, "dashboard.cache", err)
		return load(ctx)
	}

	var (
		out     T
		loaded  *T
		called  bool
		loadErr error
	)
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		called = true
		loaded, loadErr = load(ctx)
		return loaded, loadErr
	})
	switch {
	case loadErr != nil:
		return nil, loadErr
	case err == nil:
		return &out, nil
	case called:
		uc.sink.Report(ctx, "dashboard.cache", err)
		return loaded, nil
	default:
		uc.sink.Report(ctx, "dashboard.cache", err)
		return load(ctx)
	}
}
