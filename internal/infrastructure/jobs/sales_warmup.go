package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/orders-api/internal/application/dto"
	"github.com/jhoicas/orders-api/internal/domain/sales"
	"github.com/jhoicas/orders-api/pkg/logger"
)

// SalesWarmer ventanas del dashboard que el job precalcula. Cada llamada deja
// el resultado en el caché del caso de uso; Today fija el día de referencia con
// el mismo reloj que usa la API.
type SalesWarmer interface {
	Today() time.Time
	DailySales(ctx context.Context, date time.Time) (*dto.DailySalesDTO, error)
	WeeklySales(ctx context.Context, startDate time.Time) (*dto.WeeklySalesDTO, error)
	MonthlySales(ctx context.Context, anyDate time.Time) (*dto.MonthlySalesDTO, error)
}

// SalesWarmupJob precalcula las ventanas ya cerradas: ayer, los siete días que
// terminan ayer y los meses anteriores indicados. Las ventanas que contienen hoy
// no se cachean.
type SalesWarmupJob struct {
	dashboard SalesWarmer
	log       *logger.Logger
}

// NewSalesWarmupJob construye el handler.
func NewSalesWarmupJob(dashboard SalesWarmer, log *logger.Logger) *SalesWarmupJob {
	return &SalesWarmupJob{
		dashboard: dashboard,
		log:       log.Component("jobs." + TaskSalesWarmup),
	}
}

// Handle procesa TaskSalesWarmup. Un payload inválido no se reintenta.
func (j *SalesWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.dashboard == nil {
		return errors.New("sales warmup: handler no configurado")
	}
	var payload SalesWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("sales warmup: payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.PreviousMonths < 0 {
		return fmt.Errorf("sales warmup: previousMonths negativo: %w", asynq.SkipRetry)
	}

	started := time.Now()
	today := j.dashboard.Today()

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	yesterday := today.AddDate(0, 0, -1)
	if _, err := j.dashboard.DailySales(runCtx, yesterday); err != nil {
		return j.fail("daily", yesterday, err)
	}
	weekStart := today.AddDate(0, 0, -7)
	if _, err := j.dashboard.WeeklySales(runCtx, weekStart); err != nil {
		return j.fail("weekly", weekStart, err)
	}
	month := sales.MonthPeriod(today).Start
	for i := 1; i <= payload.PreviousMonths; i++ {
		m := month.AddDate(0, -i, 0)
		if _, err := j.dashboard.MonthlySales(runCtx, m); err != nil {
			return j.fail("monthly", m, err)
		}
	}

	j.log.Info().
		Str("today", sales.Label(today)).
		Int("months", payload.PreviousMonths).
		Dur("duration", time.Since(started)).
		Msg("ventanas de ventas precalculadas")
	return nil
}

func (j *SalesWarmupJob) fail(window string, date time.Time, err error) error {
	j.log.Error().Err(err).Str("window", window).Str("date", sales.Label(date)).Msg("warmup fallido")
	return fmt.Errorf("sales warmup %s %s: %w", window, sales.Label(date), err)
}
