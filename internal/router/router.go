package router

import (
	"time"

	"fsstock/internal/catalog"
	"fsstock/internal/config"
	"fsstock/internal/handler"
	"fsstock/internal/middleware"
	"fsstock/internal/repository"
	"fsstock/internal/service"
	"fsstock/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, builtin *catalog.Catalog, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	farmRepo := repository.NewFarmRepository(db)
	stockRepo := repository.NewStockRepository(db)
	planRepo := repository.NewPlanRepository(db)
	userProductRepo := repository.NewUserProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	farmSvc := service.NewFarmService(farmRepo)
	catalogSvc := service.NewCatalogService(builtin, userProductRepo)
	stockSvc := service.NewStockService(stockRepo, farmRepo, catalogSvc, rdb)
	planSvc := service.NewPlanService(planRepo, stockRepo, farmRepo, rdb, dispatcher, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	farmsH := handler.NewFarmsHandler(farmSvc)
	stockH := handler.NewStockHandler(stockSvc)
	plansH := handler.NewPlansHandler(planSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: viewer can read everything, planner additionally mutates
		// stock and plans, admin additionally manages farms and users.
		read := middleware.RequireRole("viewer", "planner", "admin")
		plan := middleware.RequireRole("planner", "admin")
		admin := middleware.RequireRole("admin")

		v1.GET("/catalog", read, catalogH.List)

		v1.GET("/farms", read, farmsH.List)
		v1.GET("/farms/:id", read, farmsH.Get)
		farms := v1.Group("/farms", admin)
		{
			farms.POST("", farmsH.Create)
			farms.PUT("/:id", farmsH.Rename)
			farms.DELETE("/:id", farmsH.Delete)
		}

		// Stock and plans key on :farm_id to avoid clashing with the farm
		// CRUD wildcard above.
		v1.GET("/farms/:id/stock", read, withFarmID(stockH.List))
		v1.PUT("/farms/:id/stock/:product_id", plan, withFarmID(stockH.Upsert))
		v1.DELETE("/farms/:id/stock/:product_id", plan, withFarmID(stockH.Delete))

		v1.POST("/farms/:id/products", plan, withFarmID(catalogH.CreateUserProduct))

		v1.POST("/farms/:id/plan", plan, withFarmID(plansH.Compute))
		v1.GET("/farms/:id/plan", read, withFarmID(plansH.Last))
		v1.POST("/farms/:id/plan/apply", plan, withFarmID(plansH.Apply))

		users := v1.Group("/users", admin)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

// withFarmID aliases the :id path param to :farm_id so nested handlers can
// share one farm-scoped parameter name.
func withFarmID(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "farm_id", Value: c.Param("id")})
		next(c)
	}
}
