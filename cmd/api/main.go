package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"

	appanalytics "github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/application/ports"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/infrastructure/cache"
	"github.com/jhoicas/ventas-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
	"github.com/jhoicas/ventas-api/pkg/telemetry"
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
		Bool("stock_allow_negative", cfg.Stock.AllowNegative).
		Msg("iniciando aplicación")

	ctx := context.Background()

	tracer, shutdownTracer, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("configurar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.SchemaPath != "" {
		if err := postgres.ApplySchema(ctx, pool, cfg.DB.SchemaPath); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DB.SchemaPath).Msg("aplicar esquema")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.TxTimeout, tracer)

	// Redis y NATS son opcionales: sin dirección se usan las variantes no-op.
	var statsCache ports.StatsCache = ports.NopStatsCache{}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
		} else {
			statsCache = cache.NewRedisStatsCache(rdb, cfg.Redis.StatsTTL)
		}
	}

	var publisher ports.EventPublisher = ports.NopPublisher{}
	var nc *nats.Conn
	if cfg.NATS.URL != "" {
		nc, err = events.Connect(cfg.NATS.URL, cfg.App.Name)
		if err != nil {
			log.Warn().Err(err).Str("url", cfg.NATS.URL).Msg("nats no disponible, eventos desactivados")
		} else {
			publisher = events.NewNATSPublisher(nc, cfg.NATS.Subject)
		}
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
	}

	createSaleUC := sales.NewCreateSaleUseCase(txRunner, customerRepo, publisher, statsCache, cfg.Stock.AllowNegative, log)
	saleQueryUC := sales.NewQueryUseCase(saleRepo, customerRepo, settingsRepo, infrapdf.NewMarotoReceiptGenerator())
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, publisher, statsCache, cfg.Stock.AllowNegative, log)

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
		Title:    "Ventas API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(userRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo),
		CustomerUC:       usecase.NewCustomerUseCase(customerRepo),
		SettingsUC:       usecase.NewSettingsUseCase(settingsRepo),
		CatalogUC:        usecase.NewCatalogUseCase(postgres.NewCategoryRepository(pool), postgres.NewSupplierRepository(pool)),
		RegisterMovement: registerMovementUC,
		MovementQuery:    inventory.NewMovementQueryUseCase(movementRepo, productRepo),
		LowStock:         inventory.NewLowStockUseCase(productRepo),
		CreateSale:       createSaleUC,
		SaleQuery:        saleQueryUC,
		DashboardUC:      appanalytics.NewDashboardUseCase(dashboardRepo, statsCache, log),
		JWTSecret:        cfg.JWT.Secret,
		ServiceName:      cfg.App.Name,
		HealthCheck:      pool.Ping,
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
	if nc != nil {
		if err := nc.Drain(); err != nil {
			log.Warn().Err(err).Msg("cerrar conexión NATS")
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar cliente redis")
		}
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("vaciar trazas pendientes")
	}

	log.Info().Msg("aplicación detenida")
}
