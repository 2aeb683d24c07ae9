package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/workermill-examples/shipapi/internal/application/audit"
	"github.com/workermill-examples/shipapi/internal/application/auth"
	"github.com/workermill-examples/shipapi/internal/application/stock"
	"github.com/workermill-examples/shipapi/internal/application/usecase"
	"github.com/workermill-examples/shipapi/internal/domain/repository"
	"github.com/workermill-examples/shipapi/pkg/config"
	"github.com/workermill-examples/shipapi/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *stock.StockUseCase
	AuditUC     *audit.AuditUseCase
	ShowcaseUC  *usecase.ShowcaseUseCase
	Tokens      *jwt.Manager
	UserRepo    repository.UserRepository
	Rates       config.RateLimitConfig
	Landing     []byte
}

// Router registra las rutas de la API bajo /api/v1 más las públicas de la raíz.
func Router(app *fiber.App, deps RouterDeps) {
	showcaseHandler := NewShowcaseHandler(deps.ShowcaseUC, deps.Landing)
	app.Get("/", showcaseHandler.Landing)
	app.Get("/health", showcaseHandler.Health)
	app.Get("/showcase/stats", showcaseHandler.Stats)

	api := app.Group("/api/v1")

	// Auth (público, con límites por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", ipLimiter(deps.Rates.Register), authHandler.Register)
	authGroup.Post("/login", ipLimiter(deps.Rates.Login), authHandler.Login)
	authGroup.Post("/refresh", ipLimiter(deps.Rates.Refresh), authHandler.Refresh)

	// Lecturas públicas del catálogo: categorías y productos se consultan
	// sin credenciales; las bodegas y el stock no.
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	productHandler := NewProductHandler(deps.ProductUC)
	api.Get("/categories", categoryHandler.List)
	api.Get("/categories/:id", categoryHandler.GetByID)
	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)

	// Rutas protegidas (Bearer JWT o X-API-Key)
	protected := api.Group("/", AuthMiddleware(deps.Tokens, deps.UserRepo))

	// /auth/me limita por usuario autenticado, no por IP
	protected.Get("/auth/me", userLimiter(deps.Rates.Me), authHandler.Me)

	// Escrituras del catálogo: solo admin, salvo la creación de productos.
	categories := protected.Group("/categories")
	categories.Post("/", RequireAdmin(), categoryHandler.Create)
	categories.Put("/:id", RequireAdmin(), categoryHandler.Update)
	categories.Delete("/:id", RequireAdmin(), categoryHandler.Delete)

	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	stockHandler := NewStockHandler(deps.StockUC)
	warehouses.Post("/", RequireAdmin(), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireAdmin(), warehouseHandler.Update)
	warehouses.Get("/:warehouse_id/stock", stockHandler.ListByWarehouse)

	// Stock: las rutas fijas van antes que /:product_id/:warehouse_id
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/transfer", stockHandler.Transfer)
	stockGroup.Get("/alerts", stockHandler.Alerts)
	stockGroup.Get("/product/:product_id", stockHandler.ListByProduct)
	stockGroup.Put("/:product_id/:warehouse_id", stockHandler.Upsert)
	stockGroup.Get("/:product_id/:warehouse_id", stockHandler.Get)

	// Auditoría (solo admin)
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-log", RequireAdmin(), auditHandler.List)
}

// ipLimiter limita por IP a max peticiones por minuto.
func ipLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   time.Minute,
		LimitReached: limitReached,
	})
}

// userLimiter limita por usuario autenticado a max peticiones por minuto.
// Debe montarse después del middleware de auth.
func userLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id := GetUserID(c); id != "" {
				return "user:" + id
			}
			return c.IP()
		},
		LimitReached: limitReached,
	})
}

func limitReached(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusTooManyRequests, CodeRateLimited, "demasiadas peticiones, intenta más tarde")
}
