package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/auth"
	"github.com/workermill-examples/shipapi/internal/application/stock"
	"github.com/workermill-examples/shipapi/internal/application/usecase"
	"github.com/workermill-examples/shipapi/internal/infrastructure/postgres"
	httpRouter "github.com/workermill-examples/shipapi/internal/interfaces/http"
	"github.com/workermill-examples/shipapi/pkg/config"
	"github.com/workermill-examples/shipapi/pkg/jwt"
	"github.com/workermill-examples/shipapi/pkg/logger"
	"github.com/workermill-examples/shipapi/web"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	showcaseRepo := postgres.NewShowcaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authUC := auth.NewAuthUseCase(userRepo, tokens)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, txRunner)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, txRunner)
	stockUC := stock.NewStockUseCase(stockRepo, productRepo, warehouseRepo, txRunner)
	auditUC := audit.NewAuditUseCase(auditRepo)
	showcaseUC := usecase.NewShowcaseUseCase(showcaseRepo, pool, version)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "ShipAPI",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CategoryUC:  categoryUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		StockUC:     stockUC,
		AuditUC:     auditUC,
		ShowcaseUC:  showcaseUC,
		Tokens:      tokens,
		UserRepo:    userRepo,
		Rates:       cfg.Rates,
		Landing:     web.Landing,
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
