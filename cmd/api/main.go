package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/orders-api/internal/application/analytics"
	"github.com/jhoicas/orders-api/internal/application/ports"
	"github.com/jhoicas/orders-api/internal/application/report"
	"github.com/jhoicas/orders-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/orders-api/internal/infrastructure/pdf"
	"github.com/jhoicas/orders-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/orders-api/internal/interfaces/http"
	"github.com/jhoicas/orders-api/pkg/config"
	"github.com/jhoicas/orders-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Montos como números JSON (160.5), no como strings.
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Pedidos antiguos sin flete: se normalizan a 0 una vez por arranque.
	backfilled, err := postgres.BackfillDeliveryFees(ctx, pool)
	if err != nil {
		log.Warn().Err(err).Msg("normalización de flete omitida")
	} else if backfilled > 0 {
		log.Info().Int64("orders", backfilled).Msg("flete nulo normalizado a 0")
	}

	// Caché Redis opcional. Sin REDIS_ADDR el dashboard consulta siempre la base.
	var salesCache ports.SalesCache
	if cfg.Redis.Enabled() {
		salesCache = startCache(ctx, cfg.Redis, backfilled, log)
	}

	orderRepo := postgres.NewOrderRepository(pool)
	truckRepo := postgres.NewTruckRepository(pool)
	renderer := infrapdf.NewMarotoRenderer(cfg.Report.Locale, cfg.Report.Company)
	sink := logger.NewDiagnosticSink(log)

	dashboardUC := analytics.NewDashboardUseCase(orderRepo, truckRepo, salesCache, sink, renderer, renderer.Titles())
	reportUC := report.NewDeliveryReportUseCase(orderRepo, truckRepo, renderer, renderer.Titles())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.HTTP.Swagger {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Orders API - Dashboard de Móviles",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Dashboard: dashboardUC,
		Reports:   reportUC,
		Logger:    log,
		JWTSecret: cfg.JWT.Secret,
		JWTIssuer: cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// startCache conecta Redis y escucha invalidaciones de otras instancias.
// Devuelve nil si Redis no responde: el servicio sigue sin caché.
func startCache(ctx context.Context, cfg config.RedisConfig, backfilled int64, log *logger.Logger) ports.SalesCache {
	log = log.Component("cache")

	client, err := cache.NewClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible, caché deshabilitado")
		return nil
	}
	c := cache.NewSalesCache(client, cfg.CacheTTL)

	// El backfill cambió montos ya cacheados.
	if backfilled > 0 {
		if v, err := c.Bump(ctx, cfg.InvalidationChannel); err != nil {
			log.Warn().Err(err).Msg("invalidar caché")
		} else {
			log.Info().Int64("version", v).Msg("caché invalidado")
		}
	}

	err = c.ListenForInvalidation(ctx, cfg.InvalidationChannel, func(err error) {
		log.Warn().Err(err).Msg("mensaje de invalidación")
	})
	if err != nil {
		log.Warn().Err(err).Msg("sin suscripción de invalidación, el caché expira por TTL")
	}
	go func() {
		<-ctx.Done()
		_ = client.Close()
	}()

	return c
}
