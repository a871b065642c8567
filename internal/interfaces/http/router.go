package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogUC "github.com/packlane-io/packlane/internal/application/catalog/usecases"
	purchaseUC "github.com/packlane-io/packlane/internal/application/purchase/usecases"
	"github.com/packlane-io/packlane/internal/infrastructure/auth"
	"github.com/packlane-io/packlane/internal/infrastructure/cache"
	"github.com/packlane-io/packlane/internal/infrastructure/config"
	"github.com/packlane-io/packlane/internal/infrastructure/repository"
	"github.com/packlane-io/packlane/internal/interfaces/http/handlers"
	"github.com/packlane-io/packlane/internal/interfaces/http/middleware"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine              *gin.Engine
	purchaseHandler     *handlers.PurchaseHandler
	accessHandler       *handlers.AccessHandler
	adminRequestHandler *handlers.AdminRequestHandler
	catalogHandler      *handlers.CatalogHandler
	authMiddleware      *middleware.AuthMiddleware
	log                 logger.Interface
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	engine := gin.New()

	requestRepo := repository.NewPurchaseRequestRepository(db, log)
	receiptRepo := repository.NewReceiptRepository(db, log)
	catalogRepo := repository.NewCatalogRepository(db, log)

	// The decision cache is optional; use cases fall back to the
	// repositories when it is absent.
	var decisionCache purchaseUC.DecisionCache
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ttl := cfg.Purchase.DecisionCacheTTL()
		decisionCache = cache.NewAccessDecisionCache(client, ttl)
		log.Infow("access decision cache enabled", "addr", cfg.Redis.GetAddr(), "ttl", ttl)
	}

	submitUC := purchaseUC.NewSubmitRequestUseCase(requestRepo, catalogRepo, decisionCache, log)
	listRequestsUC := purchaseUC.NewListRequestsUseCase(requestRepo, receiptRepo, log)
	attachReceiptUC := purchaseUC.NewAttachReceiptUseCase(requestRepo, receiptRepo, log)
	checkAccessUC := purchaseUC.NewCheckAccessUseCase(requestRepo, catalogRepo, decisionCache, log)
	reviewUC := purchaseUC.NewReviewRequestUseCase(requestRepo, decisionCache, log)
	listPendingUC := purchaseUC.NewListPendingRequestsUseCase(requestRepo, receiptRepo, log)

	createPackUC := catalogUC.NewCreatePackUseCase(catalogRepo, log)
	createSubUnitUC := catalogUC.NewCreateSubUnitUseCase(catalogRepo, log)
	listPacksUC := catalogUC.NewListPacksUseCase(catalogRepo, log)
	listSubUnitsUC := catalogUC.NewListSubUnitsUseCase(catalogRepo, log)
	publishPackUC := catalogUC.NewPublishPackUseCase(catalogRepo, log)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)

	return &Router{
		engine:              engine,
		purchaseHandler:     handlers.NewPurchaseHandler(submitUC, listRequestsUC, attachReceiptUC, log),
		accessHandler:       handlers.NewAccessHandler(checkAccessUC, log),
		adminRequestHandler: handlers.NewAdminRequestHandler(reviewUC, listPendingUC, log),
		catalogHandler:      handlers.NewCatalogHandler(createPackUC, createSubUnitUC, listPacksUC, listSubUnitsUC, publishPackUC, log),
		authMiddleware:      middleware.NewAuthMiddleware(jwtSvc, log),
		log:                 log,
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes(cfg *config.Config) {
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.ErrorHandler())

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.engine.Group("/api/v1")

	r.setupCatalogRoutes(v1)
	r.setupPurchaseRoutes(v1)
	r.setupAdminRoutes(v1)
}

// setupCatalogRoutes configures public catalog browsing routes.
func (r *Router) setupCatalogRoutes(v1 *gin.RouterGroup) {
	v1.GET("/packs", r.authMiddleware.OptionalAuth(), r.catalogHandler.ListPacks)
	v1.GET("/packs/:id/subunits", r.catalogHandler.ListSubUnits)
}

// setupPurchaseRoutes configures the purchase-request workflow routes.
func (r *Router) setupPurchaseRoutes(v1 *gin.RouterGroup) {
	v1.GET("/check_access", r.accessHandler.CheckAccess)

	authed := v1.Group("")
	authed.Use(r.authMiddleware.RequireAuth())
	{
		authed.POST("/requests", r.purchaseHandler.SubmitPackRequest)
		authed.GET("/requests", r.purchaseHandler.ListPackRequests)
		authed.POST("/requests/:id/receipt", r.purchaseHandler.AttachReceipt)

		authed.POST("/subunit-requests", r.purchaseHandler.SubmitSubUnitRequest)
		authed.GET("/subunit-requests", r.purchaseHandler.ListSubUnitRequests)
	}
}

// setupAdminRoutes configures admin review and catalog management routes.
func (r *Router) setupAdminRoutes(v1 *gin.RouterGroup) {
	admin := v1.Group("/admin")
	admin.Use(r.authMiddleware.RequireAuth(), r.authMiddleware.RequireAdmin())
	{
		admin.GET("/requests", r.adminRequestHandler.ListPending)
		admin.PUT("/requests/:id/status", r.adminRequestHandler.Review)

		admin.POST("/packs", r.catalogHandler.CreatePack)
		admin.POST("/packs/:id/subunits", r.catalogHandler.CreateSubUnit)
		admin.PUT("/packs/:id/publish", r.catalogHandler.PublishPack)
	}
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
