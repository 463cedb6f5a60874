package server

import (
	"context"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
)

type Handlers struct {
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Paypal   *handler.PaypalHandler
}

type Server struct {
	echo     *echo.Echo
	handlers Handlers
	authCfg  config.Auth
	userRepo repository.UserRepository
}

func NewServer(handlers Handlers, authCfg config.Auth, userRepo repository.UserRepository, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
	}))

	s := &Server{
		echo:     e,
		handlers: handlers,
		authCfg:  authCfg,
		userRepo: userRepo,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authed := middleware.Authenticate(s.authCfg, s.userRepo)
	admin := middleware.RequireAdmin()

	// -------- users --------
	users := api.Group("/users")
	users.POST("", s.handlers.User.Register)
	users.POST("/auth", s.handlers.User.Login)
	users.POST("/logout", s.handlers.User.Logout)
	users.GET("/profile", s.handlers.User.Profile, authed)
	users.PATCH("/profile", s.handlers.User.UpdateProfile, authed)
	users.GET("", s.handlers.User.List, authed, admin)

	// -------- categories --------
	categories := api.Group("/categories")
	categories.POST("", s.handlers.Category.Create, authed, admin)
	categories.PUT("/:categoryId", s.handlers.Category.Update, authed, admin)
	categories.DELETE("/:categoryId", s.handlers.Category.Delete, authed, admin)
	categories.GET("", s.handlers.Category.List)
	categories.GET("/:categoryId", s.handlers.Category.Get)

	// -------- products --------
	products := api.Group("/products")
	products.GET("", s.handlers.Product.Page)
	products.GET("/allproducts", s.handlers.Product.All)
	products.GET("/top", s.handlers.Product.Top)
	products.GET("/new", s.handlers.Product.New)
	products.POST("/filtered-products", s.handlers.Product.Filter)
	products.GET("/:id", s.handlers.Product.Get)
	products.POST("", s.handlers.Product.Create, authed, admin)
	products.PUT("/:id", s.handlers.Product.Update, authed, admin)
	products.DELETE("/:id", s.handlers.Product.Delete, authed, admin)
	products.POST("/:id/reviews", s.handlers.Product.AddReview, authed)

	// -------- cart --------
	cart := api.Group("/cart", authed)
	cart.GET("", s.handlers.Cart.Get)
	cart.POST("", s.handlers.Cart.Add)
	cart.DELETE("", s.handlers.Cart.Clear)
	cart.DELETE("/:productId", s.handlers.Cart.Remove)
	cart.POST("/checkout", s.handlers.Cart.Checkout)

	// -------- orders --------
	orders := api.Group("/orders", authed)
	orders.POST("", s.handlers.Order.Create)
	orders.GET("", s.handlers.Order.List, admin)
	orders.GET("/mine", s.handlers.Order.Mine)
	orders.GET("/total-orders", s.handlers.Order.Count, admin)
	orders.GET("/total-sales", s.handlers.Order.TotalSales, admin)
	orders.GET("/total-sales-by-date", s.handlers.Order.SalesByDate, admin)
	orders.GET("/:id", s.handlers.Order.Get)
	orders.PUT("/:id/pay", s.handlers.Order.Pay)
	orders.PUT("/:id/deliver", s.handlers.Order.Deliver, admin)

	// -------- paypal --------
	api.GET("/config/paypal", s.handlers.Paypal.Config)
	api.POST("/paypal/webhook", s.handlers.Paypal.Webhook)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
