package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/repository/order"
	"storefront/internal/repository/product"
	cartsvc "storefront/internal/service/cart"
	checkoutsvc "storefront/internal/service/checkout"
)

// Deps collects the collaborators the handlers need.
type Deps struct {
	ProductRepo product.Repository
	OrderRepo   order.Repository
	CartSvc     *cartsvc.Service
	CheckoutSvc *checkoutsvc.Service

	// PublicBaseURL is the externally reachable base URL used for the
	// provider's success/cancel redirects.
	PublicBaseURL string
	SessionTTL    time.Duration
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	shop := router.Group("/", sessionMiddleware(deps.SessionTTL))
	{
		shop.GET("/products", listProductsHandler(deps))
		shop.GET("/cart", viewCartHandler(deps))
		shop.POST("/cart/items", addToCartHandler(deps))
		shop.POST("/cart/clear", clearCartHandler(deps))
		shop.POST("/api/update_cart", updateCartHandler(deps))
		shop.POST("/create-checkout-session", createCheckoutSessionHandler(deps))
		shop.GET("/success", paymentSuccessHandler(deps))
	}

	admin := router.Group("/admin")
	{
		admin.POST("/products", createProductHandler(deps))
		admin.GET("/transactions", listTransactionsHandler(deps))
	}

	return router, nil
}
