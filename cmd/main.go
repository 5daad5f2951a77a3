package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-rental/internal/auth"
	"github.com/ukydev/fleet-rental/internal/config"
	"github.com/ukydev/fleet-rental/internal/events"
	"github.com/ukydev/fleet-rental/internal/handlers"
	"github.com/ukydev/fleet-rental/internal/metrics"
	"github.com/ukydev/fleet-rental/internal/middleware"
	"github.com/ukydev/fleet-rental/internal/models"
	"github.com/ukydev/fleet-rental/internal/service"
)

// app is the assembled server and the resources to release on shutdown.
type app struct {
	echo    *echo.Echo
	stores  *stores
	events  events.Publisher
	limiter *middleware.RateLimiter
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	st, err := openStores(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}

	pub, err := newPublisher(cfg.MQTT)
	if err != nil {
		_ = st.close(ctx)
		return nil, err
	}

	tokens, err := auth.NewService(cfg.JWT.Secret, cfg.JWT.Expiry)
	if err != nil {
		_ = st.close(ctx)
		pub.Close()
		return nil, err
	}

	fleet := service.NewFleet().
		Register(models.KindCar, st.cars).
		Register(models.KindMotorcycle, st.motorcycles).
		Register(models.KindBicycle, st.bicycles).
		Register(models.KindUtilityVan, st.utilityVans).
		Register(models.KindCampingCar, st.campingCars)

	admins := service.NewAdministratorService(st.administrators, tokens, pub)
	clients := service.NewClientService(st.clients, st.rentals, tokens, pub)
	accounts := service.NewAccounts(admins, clients, tokens)

	if cfg.Admin.Mail != "" {
		if _, err := admins.EnsureBootstrap(ctx, models.AdministratorInput{
			UserBaseInput: models.UserBaseInput{
				Mail:      &cfg.Admin.Mail,
				Password:  &cfg.Admin.Password,
				LastName:  &cfg.Admin.LastName,
				FirstName: &cfg.Admin.FirstName,
			},
			JobTitle: &cfg.Admin.JobTitle,
		}); err != nil {
			_ = st.close(ctx)
			pub.Close()
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "fleet_rental")
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, m).
		TrustProxy(cfg.RateLimit.TrustProxy)

	e := handlers.NewRouter(handlers.Services{
		Cars:           service.NewCarService(st.cars, pub),
		Motorcycles:    service.NewMotorcycleService(st.motorcycles, pub),
		Bicycles:       service.NewBicycleService(st.bicycles, pub),
		UtilityVans:    service.NewUtilityVanService(st.utilityVans, pub),
		CampingCars:    service.NewCampingCarService(st.campingCars, pub),
		Clients:        clients,
		Administrators: admins,
		Rentals:        service.NewRentalService(st.rentals, clients, fleet, pub),
		Accounts:       accounts,
	}, handlers.RouterOptions{
		Tokens:   tokens,
		Metrics:  m,
		Gatherer: reg,
		Limiter:  limiter,
	})

	return &app{echo: e, stores: st, events: pub, limiter: limiter}, nil
}

func newPublisher(cfg config.MQTTConfig) (events.Publisher, error) {
	if cfg.Broker == "" {
		log.Info("MQTT_BROKER not set, change events are not published")
		return events.NopPublisher{}, nil
	}
	pub, err := events.ConnectMQTT(events.MQTTConfig{
		Broker:   cfg.Broker,
		ClientID: cfg.ClientID,
		Prefix:   cfg.Prefix,
		QoS:      cfg.QoS,
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect mqtt: %w", err)
	}
	log.WithField("broker", cfg.Broker).Info("publishing change events over MQTT")
	return pub, nil
}

// sweep drops idle rate limiter entries until ctx ends.
func (a *app) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.limiter.Cleanup(every); n > 0 {
				log.WithField("removed", n).Debug("rate limiter cleanup")
			}
		}
	}
}

func (a *app) shutdown(ctx context.Context) {
	if err := a.echo.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}
	a.events.Close()
	if err := a.stores.close(ctx); err != nil {
		log.WithError(err).Error("closing stores failed")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Log.ConfigureLogger(); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}
	log.WithFields(cfg.Fields()).Info("starting fleet rental API")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialise application")
	}
	go a.sweep(ctx, 10*time.Minute)

	go func() {
		log.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := a.echo.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	a.shutdown(shutdownCtx)
}
