package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"aurelia-api/internal/core/auth"
	"aurelia-api/internal/service"
	"aurelia-api/internal/transport/http/handler"
	mdw "aurelia-api/internal/transport/http/middleware"
)

type Deps struct {
	Logger *zap.Logger
	JWTer  *auth.JWTer

	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Reviews  *service.ReviewService

	AllowOrigins []string
}

func NewEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Logger, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Logger),
		corsMiddleware(d.AllowOrigins),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authH := handler.NewAuthHandler(d.Auth)
	productH := handler.NewProductHandler(d.Catalog)
	cartH := handler.NewCartHandler(d.Cart)
	orderH := handler.NewOrderHandler(d.Checkout, d.Orders)
	reviewH := handler.NewReviewHandler(d.Reviews)

	authed := mdw.Authenticate(d.JWTer, d.Auth)
	adminOnly := mdw.RequireAdmin()

	// auth
	ag := r.Group("/auth")
	{
		ag.POST("/register", authH.Register)
		ag.POST("/login", authH.Login)
		ag.GET("/me", authed, authH.Me)
	}

	// products: reads public, writes admin
	pg := r.Group("/products")
	{
		pg.GET("", productH.List)
		pg.GET("/search", productH.Search)
		pg.GET("/category/:category", productH.ByCategory)
		pg.GET("/:id", productH.Get)

		pg.POST("", authed, adminOnly, productH.Create)
		pg.PUT("/:id", authed, adminOnly, productH.Replace)
		pg.PATCH("/:id", authed, adminOnly, productH.Patch)
		pg.DELETE("/:id", authed, adminOnly, productH.Delete)
	}

	// cart
	cg := r.Group("/cart", authed)
	{
		cg.GET("", cartH.List)
		cg.POST("", cartH.Add)
		cg.PUT("/:item_id", cartH.SetQuantity)
		cg.DELETE("/:item_id", cartH.Remove)
		cg.DELETE("", cartH.Clear)
	}

	// orders
	og := r.Group("/orders", authed)
	{
		og.POST("", orderH.Checkout)
		og.GET("", orderH.List)
		og.GET("/admin/all", adminOnly, orderH.AdminListAll)
		og.PATCH("/admin/:order_id/status", adminOnly, orderH.AdminUpdateStatus)
		og.GET("/:order_id", orderH.Get)
	}

	// reviews
	rg := r.Group("/reviews")
	{
		rg.GET("/product/:product_id", reviewH.ListForProduct)
		rg.POST("/product/:product_id", authed, reviewH.Create)
		rg.DELETE("/:review_id", authed, reviewH.Delete)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		// Local dev frontends.
		origins = []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"}
	}
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(cfg)
}
