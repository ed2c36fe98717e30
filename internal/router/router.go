package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gstbill/docs"
	"gstbill/internal/domain"
	"gstbill/internal/handler"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	sellerH *handler.SellerHandler,
	buyerH *handler.BuyerHandler,
	productH *handler.ProductHandler,
	invoiceH *handler.InvoiceHandler,
	fileH *handler.FileHandler,
	statsH *handler.StatsHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	issuer := middleware.RequireRole(domain.RoleAdmin, domain.RoleSeller)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	protected.GET("/auth/me", userH.Me)

	// Seller routes
	sellers := protected.Group("/sellers")
	sellers.POST("", issuer, sellerH.Create)
	sellers.GET("", sellerH.List)
	sellers.GET("/:id", sellerH.GetByID)
	sellers.PUT("/:id", issuer, sellerH.Update)
	sellers.DELETE("/:id", adminOnly, sellerH.Delete)

	// Buyer routes
	buyers := protected.Group("/buyers")
	buyers.POST("", issuer, buyerH.Create)
	buyers.GET("", buyerH.List)
	buyers.GET("/:id", buyerH.GetByID)
	buyers.PUT("/:id", issuer, buyerH.Update)
	buyers.DELETE("/:id", adminOnly, buyerH.Delete)

	// Product routes
	products := protected.Group("/products")
	products.POST("", issuer, productH.Create)
	products.GET("", productH.List)
	products.GET("/:id", productH.GetByID)
	products.PUT("/:id", issuer, productH.Update)
	products.DELETE("/:id", issuer, productH.Delete)

	// Invoice routes
	invoices := protected.Group("/invoices")
	invoices.POST("", issuer, invoiceH.Create)
	invoices.GET("", invoiceH.List)
	invoices.GET("/export/csv", issuer, invoiceH.ExportCSV)
	invoices.GET("/export/xlsx", issuer, invoiceH.ExportXLSX)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.PATCH("/:id/status", issuer, invoiceH.UpdateStatus)
	invoices.DELETE("/:id", issuer, invoiceH.Delete)

	// Invoice attachments
	invoices.POST("/:id/attachments", issuer, fileH.Upload)
	invoices.GET("/:id/attachments", fileH.List)
	attachments := protected.Group("/attachments")
	attachments.GET("/:id/download", fileH.Download)
	attachments.DELETE("/:id", issuer, fileH.Delete)

	// Dashboard stats
	stats := protected.Group("/stats")
	stats.GET("/invoices", issuer, statsH.InvoiceStats)

	// User management
	users := protected.Group("/users")
	users.GET("", adminOnly, userH.List)
	users.GET("/:id", userH.GetByID)
	users.PUT("/:id", userH.Update)
	users.DELETE("/:id", adminOnly, userH.Delete)

	return r
}
