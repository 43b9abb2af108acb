package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-ledger/internal/application/cache"
	"github.com/jhoicas/Inventario-ledger/internal/application/credit"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/application/moneybox"
	"github.com/jhoicas/Inventario-ledger/internal/application/orders"
	"github.com/jhoicas/Inventario-ledger/internal/application/ports"
	"github.com/jhoicas/Inventario-ledger/internal/application/returns"
	"github.com/jhoicas/Inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Inventario-ledger/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Inventario-ledger/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
	"github.com/jhoicas/Inventario-ledger/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	zl := log.Zerolog()

	flushTraces, err := telemetry.Setup(ctx, cfg.OTel, cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}
	if cfg.OTel.Enabled() {
		log.Info().Str("endpoint", cfg.OTel.Endpoint).Msg("exportando trazas OTLP")
	}

	var txRunner ports.TxRunner
	switch cfg.Store.Driver {
	case config.StoreMemory:
		txRunner = memory.New()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool, zl)
	}

	gateway := cache.NewGateway(nil, zl)
	if cfg.Redis.Enabled() {
		rc := infraredis.New(infraredis.NewClient(cfg.Redis), cfg.App.Name, cfg.Cache.TTL)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se continúa sin caché")
		} else {
			defer func() { _ = rc.Close() }()
			gateway = cache.NewGateway(rc, zl).WithReadCache(rc)
		}
	}

	recorder := inventory.NewRecorder(zl)
	account := moneybox.NewAccount(txRunner, gateway, zl)
	advisor := credit.NewAdvisor(zl)
	adjustUC := inventory.NewAdjustStockUseCase(txRunner, recorder, gateway, zl)
	ordersUC := orders.NewCreateOrderUseCase(txRunner, recorder, account, advisor, gateway, zl)
	returnsUC := returns.NewProcessReturnUseCase(txRunner, recorder, account, gateway, zl)
	productUC := usecase.NewProductUseCase(txRunner, recorder, gateway, zl)
	partyUC := usecase.NewPartyUseCase(txRunner, gateway, zl)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Products:    productUC,
		Parties:     partyUC,
		AdjustStock: adjustUC,
		Orders:      ordersUC,
		Returns:     returnsUC,
		MoneyBoxes:  account,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := flushTraces(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("cierre del exportador de trazas")
	}

	log.Info().Msg("aplicación detenida")
}
