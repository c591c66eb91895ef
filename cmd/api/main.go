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

	appanalytics "github.com/jhoicas/ironhub-api/internal/application/analytics"
	"github.com/jhoicas/ironhub-api/internal/application/auth"
	"github.com/jhoicas/ironhub-api/internal/application/intake"
	"github.com/jhoicas/ironhub-api/internal/application/inventory"
	"github.com/jhoicas/ironhub-api/internal/application/ledger"
	"github.com/jhoicas/ironhub-api/internal/application/ports"
	"github.com/jhoicas/ironhub-api/internal/domain/repository"
	infraai "github.com/jhoicas/ironhub-api/internal/infrastructure/ai"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/importer"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/lock"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/ironhub-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/postgres"
	"github.com/jhoicas/ironhub-api/internal/infrastructure/system"
	httpRouter "github.com/jhoicas/ironhub-api/internal/interfaces/http"
	"github.com/jhoicas/ironhub-api/pkg/config"
	"github.com/jhoicas/ironhub-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Persistencia: PostgreSQL (por defecto) o memoria para demos y desarrollo local.
	var (
		txRunner ports.TxRunner
		userRepo repository.UserRepository
		db       httpRouter.Pinger
	)
	switch cfg.App.Store {
	case config.StoreMemory:
		store := memory.New()
		txRunner = memory.NewTxRunner(store)
		userRepo = memory.NewUserRepository(store)
		db = store
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.MigrateOnStart {
			runMigrations(cfg.DB.ConnectionString(), log)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner = postgres.NewTxRunner(pool)
		userRepo = postgres.NewUserRepository(pool)
		db = pool
	}

	// Lock distribuido por cliente cuando hay varias réplicas de la API.
	if cfg.Redis.Enabled() {
		rdb, err := lock.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		ttl := time.Duration(cfg.Redis.LockTTLSec) * time.Second
		txRunner = lock.NewTxRunner(txRunner, lock.NewRedisLocker(rdb), ttl, log)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("lock distribuido por cliente activo")
	}

	clock := system.Clock{}
	ids := system.UUIDGenerator{}

	customerUC := ledger.NewCustomerUseCase(txRunner, clock, ids, log)
	quoteUC := ledger.NewQuoteUseCase(txRunner, clock, ids, log)
	paymentUC := ledger.NewPaymentUseCase(txRunner, clock, ids, log)
	accountUC := ledger.NewAccountUseCase(txRunner, clock, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	inventoryUC := inventory.NewUseCase(txRunner, clock, ids, log)
	dashboardUC := appanalytics.NewDashboardUseCase(txRunner, clock)
	intakeUC := intake.NewUseCase(importer.NewParser(), newExtractor(cfg.AI, log), txRunner, customerUC, paymentUC, inventoryUC, log)

	authUC := auth.NewAuthUseCase(userRepo, clock, ids, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Seed.AdminEmail != "" && cfg.Seed.AdminPassword != "" {
		created, err := authUC.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
		if created {
			log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // la ingesta vía LLM puede tardar hasta 45 s
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "American Iron Portal API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC:  customerUC,
		QuoteUC:     quoteUC,
		PaymentUC:   paymentUC,
		AccountUC:   accountUC,
		InventoryUC: inventoryUC,
		IntakeUC:    intakeUC,
		DashboardUC: dashboardUC,
		AuthUC:      authUC,
		DB:          db,
		JWTSecret:   cfg.JWT.Secret,
		Production:  cfg.App.IsProduction(),
		Logger:      log,
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
}

func runMigrations(dsn string, log *logger.Logger) {
	m, err := postgres.NewMigrator(dsn, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()
	if err := m.Up(); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
}

// newExtractor devuelve nil si el proveedor elegido no tiene API key: la ingesta de texto libre queda deshabilitada.
func newExtractor(cfg config.AIConfig, log *logger.Logger) ports.ImportExtractor {
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey != "" {
			return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		}
	default:
		if cfg.GeminiAPIKey != "" {
			return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
		}
	}
	log.Warn().Str("provider", cfg.Provider).Msg("sin API key de IA: ingesta de texto libre deshabilitada")
	return nil
}
