package server

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"digitalstore/internal/dto"
	"digitalstore/internal/handler"
	"digitalstore/internal/middleware"
	"digitalstore/internal/service"
)

type Server struct {
	echo            *echo.Echo
	productHandler  *handler.ProductHandler
	downloadHandler *handler.DownloadHandler
	authHandler     *handler.AuthHandler
	orderHandler    *handler.OrderHandler
	feedbackHandler *handler.FeedbackHandler
	authService     service.AuthService
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	catalogService service.CatalogService,
	downloadService service.DownloadService,
	authService service.AuthService,
	checkoutService service.CheckoutService,
	feedbackService service.FeedbackService,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Validator = &requestValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	s := &Server{
		echo:            e,
		productHandler:  handler.NewProductHandler(catalogService),
		downloadHandler: handler.NewDownloadHandler(downloadService),
		authHandler:     handler.NewAuthHandler(authService),
		orderHandler:    handler.NewOrderHandler(checkoutService),
		feedbackHandler: handler.NewFeedbackHandler(feedbackService),
		authService:     authService,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- catalog --------
	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)
	api.POST("/products/download-file", s.downloadHandler.DownloadFile)

	admin := api.Group("", middleware.RequireAdmin(s.authService))
	admin.POST("/products", s.productHandler.CreateProduct)
	admin.PUT("/products/:id", s.productHandler.UpdateProduct)
	admin.POST("/products/:id/bundles", s.productHandler.AddBundle)
	admin.GET("/contacts", s.feedbackHandler.ListContacts)

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/signup", s.authHandler.Signup)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/logout", s.authHandler.Logout)

	// -------- orders --------
	orders := api.Group("/orders")
	orders.POST("/checkout", s.orderHandler.Checkout)
	orders.POST("/confirm", s.orderHandler.Confirm)
	orders.GET("", s.orderHandler.ListOrders)
	orders.POST("/paypal/webhook", s.orderHandler.PayPalWebhook)

	// -------- reviews / contacts --------
	api.POST("/reviews", s.feedbackHandler.CreateReview)
	api.GET("/reviews/:productId", s.feedbackHandler.ListReviews)
	api.POST("/contacts", s.feedbackHandler.CreateContact)
}

// errorHandler converts anything that escapes a handler into the JSON
// error shape; internal detail stays server-side.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "something went wrong, please try again later"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	} else {
		c.Logger().Error(err)
	}

	_ = c.JSON(code, dto.ErrorResponse{Error: msg, Success: false})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
