package router

import (
	"time"

	"lilass/internal/config"
	"lilass/internal/handler"
	"lilass/internal/infra"
	"lilass/internal/middleware"
	"lilass/internal/model"
	"lilass/internal/repository"
	"lilass/internal/service"
	"lilass/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, gateway infra.PaymentGateway, paymentCB *infra.CircuitBreaker, dispatcher *worker.Dispatcher) *gin.Engine {
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
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	costRepo := repository.NewCostRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo)
	storeSvc := service.NewStoreService(productRepo)
	stockSvc := service.NewStockService(stockRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, productRepo, stockRepo, dispatcher)
	financeSvc := service.NewFinanceService(invoiceRepo, costRepo)
	analyticsSvc := service.NewAnalyticsService(orderRepo)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, customerRepo)
	paymentSvc := service.NewPaymentService(paymentRepo, gateway, paymentCB)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	storeH := handler.NewStoreHandler(storeSvc)
	stockH := handler.NewStockHandler(stockSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	financeH := handler.NewFinanceHandler(financeSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	feedbackH := handler.NewFeedbackHandler(feedbackSvc)
	paymentsH := handler.NewPaymentHandler(paymentSvc)
	contentH := handler.NewContentHandler(productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, paymentCB))

	api := r.Group("/api")

	// Auth (public)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Storefront — no auth required
	api.GET("/products", productsH.List)
	api.GET("/products/related", productsH.Related)
	api.GET("/products/:slug", productsH.GetBySlug)
	api.GET("/content/home", contentH.Home)
	api.GET("/content/pages/:slug", contentH.Page)
	api.POST("/cs/feedback", feedbackH.Create)

	// Checkout — guests may order; claims attached when a token is present
	optionalJWT := middleware.OptionalJWT(cfg.JWTSecret)
	api.POST("/orders", optionalJWT, ordersH.Create)
	api.POST("/payments", optionalJWT, paymentsH.Initiate)
	api.GET("/payments/:id", optionalJWT, paymentsH.Get)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	protected := api.Group("", jwtMW)
	{
		protected.GET("/auth/me", authH.Me)
		protected.GET("/orders/me", ordersH.ListMine)
		protected.GET("/orders/:id", ordersH.Get)

		staff := middleware.RequireRole(model.RoleStaff, model.RoleAdmin)

		protected.PATCH("/orders/:id/status", staff, ordersH.UpdateStatus)

		store := protected.Group("/store", staff)
		{
			store.GET("/products", storeH.List)
			store.POST("/products", storeH.Create)
			store.PATCH("/products/:id", storeH.Update)
			store.DELETE("/products/:id", storeH.Delete)
		}

		stock := protected.Group("/stock", staff)
		{
			stock.GET("/ingredients", stockH.Ingredients)
			stock.GET("/products-coverage", stockH.Coverage)
			stock.GET("/product/:id/recipe", stockH.Recipe)
			stock.GET("/low", stockH.Low)
			stock.GET("/forecast", stockH.Forecast)
			stock.POST("/reorder", stockH.Reorder)
			stock.PATCH("/adjust", stockH.Adjust)
			stock.PATCH("/reorder-level", stockH.ReorderLevel)
		}

		finance := protected.Group("/finance", staff)
		{
			finance.GET("/invoices", financeH.ListInvoices)
			finance.GET("/invoices/summary", financeH.InvoiceSummary)
			finance.GET("/costs", financeH.ListCosts)
			finance.POST("/costs", financeH.CreateCost)
			finance.DELETE("/costs/:id", financeH.DeleteCost)
		}

		protected.GET("/analytics/overview", staff, analyticsH.Overview)

		cs := protected.Group("/cs", staff)
		{
			cs.GET("/feedback", feedbackH.List)
			cs.GET("/feedback/summary", feedbackH.Summary)
			cs.GET("/customers", feedbackH.Customers)
		}

		// User administration — admin only
		protected.POST("/auth/users", middleware.RequireRole(model.RoleAdmin), authH.CreateUser)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
