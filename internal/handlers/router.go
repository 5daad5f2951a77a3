package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ukydev/fleet-rental/internal/metrics"
	"github.com/ukydev/fleet-rental/internal/middleware"
	"github.com/ukydev/fleet-rental/internal/models"
	"github.com/ukydev/fleet-rental/internal/service"
)

// Services holds everything the router exposes.
type Services struct {
	Cars           *service.CarService
	Motorcycles    *service.MotorcycleService
	Bicycles       *service.BicycleService
	UtilityVans    *service.UtilityVanService
	CampingCars    *service.CampingCarService
	Clients        *service.ClientService
	Administrators *service.AdministratorService
	Rentals        *service.RentalService
	Accounts       Authenticator
}

// RouterOptions holds the cross-cutting pieces of the HTTP stack.
type RouterOptions struct {
	Tokens   middleware.TokenValidator
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Limiter  *middleware.RateLimiter
}

// NewRouter builds the echo instance serving the rental API.
func NewRouter(s Services, opts RouterOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID)
	e.Use(middleware.RequestLogger)
	if opts.Metrics != nil {
		e.Use(middleware.Metrics(opts.Metrics))
	}
	if opts.Limiter != nil {
		e.Use(echo.WrapMiddleware(opts.Limiter.RateLimit))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	authHandler := NewAuthHandler(s.Accounts, opts.Metrics)
	e.POST("/api/auth/login", authHandler.Login)

	guard := middleware.NewAuthMiddleware(opts.Tokens, opts.Metrics)
	api := e.Group("/api", echo.WrapMiddleware(guard.Authenticate))
	api.GET("/auth/me", authHandler.Me)

	fleet := echo.WrapMiddleware(guard.ReadWrite(models.ActionViewFleet, models.ActionManageFleet))
	NewResource(s.Cars, IntKey, opts.Metrics).Register(api.Group("/cars", fleet))
	NewResource(s.Motorcycles, IntKey, opts.Metrics).Register(api.Group("/motorcycles", fleet))
	NewResource(s.Bicycles, IntKey, opts.Metrics).Register(api.Group("/bicycles", fleet))
	NewResource(s.UtilityVans, IntKey, opts.Metrics).Register(api.Group("/utility-vans", fleet))
	NewResource(s.CampingCars, IntKey, opts.Metrics).Register(api.Group("/camping-cars", fleet))

	rentals := echo.WrapMiddleware(guard.ReadWrite(models.ActionViewRentals, models.ActionManageRentals))
	NewResource(s.Rentals, IntKey, opts.Metrics).Register(api.Group("/rentals", rentals))

	clients := echo.WrapMiddleware(guard.RequirePermission(models.ActionManageClients))
	NewResource(s.Clients, MailKey, opts.Metrics).Register(api.Group("/clients", clients))

	admins := echo.WrapMiddleware(guard.RequireRole(models.RoleAdmin))
	NewResource(s.Administrators, MailKey, opts.Metrics).Register(api.Group("/administrators", admins))

	return e
}
