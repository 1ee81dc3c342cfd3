// worker precalcula en Redis las ventanas de ventas ya cerradas del dashboard
// (ayer, la semana que termina ayer y los meses anteriores) según WORKER_WARMUP_CRON.
//
// Uso: go run ./cmd/worker
// Requiere REDIS_ADDR; sin Redis no hay caché que precalentar.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/application/analytics"
	"github.com/jhoicas/orders-api/internal/infrastructure/cache"
	"github.com/jhoicas/orders-api/internal/infrastructure/jobs"
	infrapdf "github.com/jhoicas/orders-api/internal/infrastructure/pdf"
	"github.com/jhoicas/orders-api/internal/infrastructure/postgres"
	"github.com/jhoicas/orders-api/pkg/config"
	"github.com/jhoicas/orders-api/pkg/logger"
)

// warmupPreviousMonths meses anteriores al actual que se precalculan.
const warmupPreviousMonths = 1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name + "-worker",
	})
	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("REDIS_ADDR requerido para el worker")
	}

	// Mismo formato de montos que la API: el caché es compartido.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	client, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer client.Close()
	salesCache := cache.NewSalesCache(client, cfg.Redis.CacheTTL)

	renderer := infrapdf.NewMarotoRenderer(cfg.Report.Locale, cfg.Report.Company)
	dashboardUC := analytics.NewDashboardUseCase(
		postgres.NewOrderRepository(pool),
		postgres.NewTruckRepository(pool),
		salesCache,
		logger.NewDiagnosticSink(log),
		renderer,
		renderer.Titles(),
	)

	warmupTask, err := jobs.NewSalesWarmupTask(warmupPreviousMonths)
	if err != nil {
		log.Fatal().Err(err).Msg("tarea de precalentamiento")
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Concurrency: cfg.Worker.Concurrency,
		Logger:      log,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskSalesWarmup, Handler: jobs.NewSalesWarmupJob(dashboardUC, log).Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.Worker.WarmupCron, Task: warmupTask},
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar worker")
	}

	if err := worker.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("worker finalizado")
	}
	log.Info().Msg("worker detenido")
}
