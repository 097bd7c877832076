package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/medicine-inventory-api/internal/application/inventory"
	"github.com/jhoicas/medicine-inventory-api/internal/application/usecase"
	"github.com/jhoicas/medicine-inventory-api/internal/domain/repository"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/batchlock"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/mongodb"
	"github.com/jhoicas/medicine-inventory-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medicine-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/medicine-inventory-api/pkg/config"
	"github.com/jhoicas/medicine-inventory-api/pkg/logger"
)

// storage repositorios y runner del backend elegido con DB_DRIVER.
type storage struct {
	txRunner    inventory.TxRunner
	items       repository.ItemRepository
	stockIns    repository.StockInRepository
	disposals   repository.DisposalRepository
	adjustments repository.AdjustmentRepository
	close       func()
}

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
		Str("driver", cfg.DB.Driver).
		Str("quantity_policy", cfg.Inventory.QuantityPolicy).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación finalizada con error")
	}
}

// run abre almacenamiento y lock, sirve HTTP hasta SIGINT/SIGTERM y cierra los recursos al volver.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("conexión a la base de datos (%s): %w", cfg.DB.Driver, err)
	}
	defer store.close()

	var locker inventory.BatchLocker = batchlock.NewLocal()
	if cfg.Redis.Addr != "" {
		client, err := batchlock.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		defer client.Close()
		locker = batchlock.NewRedis(client, cfg.Redis.LockTTL, cfg.Redis.LockWait, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lock distribuido por lote activo")
	}

	itemUC := usecase.NewItemUseCase(store.txRunner, store.items)
	stockInUC := inventory.NewStockInUseCase(store.txRunner, locker, store.stockIns, log)
	disposalUC := inventory.NewDisposalUseCase(store.txRunner, locker, store.disposals, cfg.Inventory.QuantityPolicy, log)
	adjustmentUC := inventory.NewAdjustmentUseCase(store.txRunner, locker, store.adjustments, log)
	batchQueryUC := inventory.NewBatchQueryUseCase(store.stockIns, store.disposals, store.adjustments)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Medicine Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": cfg.DB.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:       itemUC,
		StockInUC:    stockInUC,
		DisposalUC:   disposalUC,
		AdjustmentUC: adjustmentUC,
		BatchQueryUC: batchQueryUC,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
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

	log.Info().Msg("aplicación detenida")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &storage{
			txRunner:    postgres.NewTxRunner(pool),
			items:       postgres.NewItemRepository(pool),
			stockIns:    postgres.NewStockInRepository(pool),
			disposals:   postgres.NewDisposalRepository(pool),
			adjustments: postgres.NewAdjustmentRepository(pool),
			close:       pool.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = mongodb.Disconnect(client)
			return nil, err
		}
		return &storage{
			txRunner:    mongodb.NewTxRunner(client, db),
			items:       mongodb.NewItemRepository(db),
			stockIns:    mongodb.NewStockInRepository(db),
			disposals:   mongodb.NewDisposalRepository(db),
			adjustments: mongodb.NewAdjustmentRepository(db),
			close:       func() { _ = mongodb.Disconnect(client) },
		}, nil

	case config.DriverMemory:
		mem := memory.NewStore()
		return &storage{
			txRunner:    mem,
			items:       mem.Items(),
			stockIns:    mem.StockIns(),
			disposals:   mem.Disposals(),
			adjustments: mem.Adjustments(),
			close:       func() {},
		}, nil
	}
	return nil, fmt.Errorf("DB_DRIVER %q no soportado", cfg.DB.Driver)
}
